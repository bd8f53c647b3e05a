package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/amishk599/resumehub/internal/feedback"
	"github.com/amishk599/resumehub/internal/intake"
	"github.com/amishk599/resumehub/internal/model"
	"github.com/amishk599/resumehub/internal/notifier"
	"github.com/amishk599/resumehub/internal/upload"
)

var (
	analyzeHTML  string
	analyzeWidth int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>...",
	Short: "Upload resumes and print the AI feedback",
	Long:  "Validates each file, uploads it to the analysis backend and prints the feedback split into sections. Invalid files are reported and never sent.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeHTML, "html", "", "also write an HTML report to this path")
	analyzeCmd.Flags().IntVar(&analyzeWidth, "width", 80, "wrap feedback at this many columns")
	rootCmd.AddCommand(analyzeCmd)
}

// consoleNotifier prints notifications to stderr as colored lines.
type consoleNotifier struct{}

func (consoleNotifier) Notify(n model.Notification) {
	fmt.Fprintln(os.Stderr, notifier.Format(n))
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	p := setupPipeline(cfg, consoleNotifier{}, logger)
	p.OnProgress(func(name string, s intake.Stage) {
		logger.Debug("upload progress", "file", name, "stage", s.String(), "percent", int(s.Percent()*100))
	})

	files := p.Process(ctx, args)

	title := color.New(color.Bold, color.FgCyan)
	var entries []feedback.ReportEntry
	for _, f := range files {
		title.Printf("\n%s (%s)\n\n", f.Name, upload.FormatFileSize(f.Size))
		fmt.Print(feedback.RenderText(f.Feedback, analyzeWidth))
		entries = append(entries, reportEntry(f))
	}

	if analyzeHTML != "" && len(entries) > 0 {
		if err := writeReport(analyzeHTML, "Resume Feedback", entries); err != nil {
			logger.Error("failed to write html report", "error", err)
			return err
		}
		logger.Info("html report written", "path", analyzeHTML)
	}

	if failed := len(args) - len(files); failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

func reportEntry(f model.File) feedback.ReportEntry {
	added := f.AddedAt
	if added.IsZero() {
		added = time.Now()
	}
	return feedback.ReportEntry{
		Name:     f.Name,
		Icon:     upload.Icon(f.MIMEType),
		Size:     upload.FormatFileSize(f.Size),
		Date:     added.Format("Jan 2, 2006"),
		Document: feedback.Layout(f.Feedback),
	}
}

func writeReport(path, title string, entries []feedback.ReportEntry) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := feedback.RenderHTMLReport(out, title, entries); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
