package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/resumehub/internal/intake"
)

var (
	improveFile         string
	improveFeedback     string
	improveFeedbackFile string
	improveOut          string
	improvePrint        bool
)

var improveCmd = &cobra.Command{
	Use:   "improve",
	Short: "Generate an improved resume from feedback",
	Long:  "Sends a resume and its feedback to the backend and writes the rewritten resume to a file.",
	Args:  cobra.NoArgs,
	RunE:  runImprove,
}

func init() {
	improveCmd.Flags().StringVarP(&improveFile, "file", "f", "", "resume file to improve")
	improveCmd.Flags().StringVar(&improveFeedback, "feedback", "", "feedback text")
	improveCmd.Flags().StringVar(&improveFeedbackFile, "feedback-file", "", "read feedback text from this file")
	improveCmd.Flags().StringVarP(&improveOut, "out", "o", "", "output path (default: output.improved_path from config)")
	improveCmd.Flags().BoolVar(&improvePrint, "print", false, "also print the improved resume to stdout")
	improveCmd.MarkFlagsMutuallyExclusive("feedback", "feedback-file")
	rootCmd.AddCommand(improveCmd)
}

func runImprove(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return err
	}

	fb := improveFeedback
	if improveFeedbackFile != "" {
		data, err := os.ReadFile(improveFeedbackFile)
		if err != nil {
			return fmt.Errorf("read feedback: %w", err)
		}
		fb = string(data)
	}

	ctx, stop := signalContext()
	defer stop()

	p := setupPipeline(cfg, consoleNotifier{}, logger)
	text, err := p.Improve(ctx, improveFile, fb)
	if err != nil {
		if errors.Is(err, intake.ErrNoFile) || errors.Is(err, intake.ErrNoFeedback) {
			return fmt.Errorf("%w (use --file and --feedback or --feedback-file)", err)
		}
		return err
	}

	out := improveOut
	if out == "" {
		out = cfg.Output.ImprovedPath
	}
	if err := intake.SaveImproved(out, text); err != nil {
		return err
	}
	logger.Info("improved resume saved", "path", out, "bytes", len(text))

	if improvePrint {
		fmt.Println(text)
	}
	return nil
}
