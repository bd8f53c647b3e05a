package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/resumehub/internal/model"
	"github.com/amishk599/resumehub/internal/notifier"
	"github.com/amishk599/resumehub/internal/tui"
)

var (
	browseDir     string
	browseLogFile string
)

var browseCmd = &cobra.Command{
	Use:   "browse [file]...",
	Short: "Interactive resume browser",
	Long:  "Opens a split-pane terminal UI: pick resumes, watch them upload, read the AI feedback and generate improved versions.",
	RunE:  runBrowse,
}

func init() {
	browseCmd.Flags().StringVarP(&browseDir, "dir", "d", ".", "directory the file picker lists")
	browseCmd.Flags().StringVar(&browseLogFile, "log-file", "resumehub-debug.log", "file that receives logs when --debug is set")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		setupLogger(debug).Error("failed to load config", "error", err)
		return err
	}

	// The TUI owns the terminal, so logs go to a file with --debug and are
	// discarded otherwise.
	logger := discardLogger()
	if debug {
		f, err := os.OpenFile(browseLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = fileLogger(f)
	}

	ctx, stop := signalContext()
	defer stop()

	toaster := notifier.NewToaster(cfg.UI.NotificationTTL)
	p := setupPipeline(cfg, browseNotifier(toaster, logger, debug), logger)

	return tui.RunBrowser(ctx, p, toaster, tui.Options{
		Dir:          browseDir,
		Pacing:       cfg.UI.Pacing,
		ImprovedPath: cfg.Output.ImprovedPath,
		Initial:      args,
	})
}

func fileLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// browseNotifier shows notifications as toasts and, with debug on, also logs them.
func browseNotifier(toaster *notifier.Toaster, logger *slog.Logger, dbg bool) model.Notifier {
	if !dbg {
		return toaster
	}
	return notifier.Multi{toaster, notifier.NewLogNotifier(logger)}
}
