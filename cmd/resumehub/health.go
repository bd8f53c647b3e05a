package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the analysis backend is up",
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return err
	}

	ctx := cmd.Context()
	h, err := setupClient(cfg, logger).Health(ctx)
	if err != nil {
		color.Red("✖ %s unreachable: %v", cfg.API.BaseURL, err)
		return err
	}
	color.Green("✔ %s %s", h.Status, h.Message)
	return nil
}
