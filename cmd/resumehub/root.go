package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/MatusOllah/slogcolor"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/amishk599/resumehub/internal/client"
	"github.com/amishk599/resumehub/internal/config"
	"github.com/amishk599/resumehub/internal/intake"
	"github.com/amishk599/resumehub/internal/model"
	"github.com/amishk599/resumehub/internal/session"
	"github.com/amishk599/resumehub/internal/upload"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:           "resumehub",
	Short:         "Resume feedback from the terminal",
	Long:          "ResumeHub uploads resumes to the analysis backend and shows its AI feedback as labeled sections.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: RESUMEHUB_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > RESUMEHUB_CONFIG env var > "./config.yaml".
// Only the implicit default may be missing.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = os.Getenv("RESUMEHUB_CONFIG")
	}
	if path == "" {
		return config.LoadOrDefault("config.yaml")
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	opts := slogcolor.DefaultOptions
	opts.Level = slog.LevelInfo
	if dbg {
		opts.Level = slog.LevelDebug
	}
	opts.MsgColor = color.New(color.FgMagenta)
	opts.SrcFileMode = slogcolor.Nop
	return slog.New(slogcolor.NewHandler(os.Stderr, opts))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupClient(cfg *config.Config, logger *slog.Logger) *client.Client {
	return client.New(cfg.API.BaseURL, cfg.API.Timeout, logger)
}

func setupValidator(cfg *config.Config) upload.Validator {
	return upload.NewValidator(cfg.Upload.AllowedTypes, cfg.Upload.MaxSizeBytes())
}

func setupPipeline(cfg *config.Config, n model.Notifier, logger *slog.Logger) *intake.Pipeline {
	c := setupClient(cfg, logger)
	return intake.NewPipeline(setupValidator(cfg), c, c, session.New(), n, logger)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
