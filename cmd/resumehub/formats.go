package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/resumehub/internal/upload"
)

var formatsRemote bool

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "Show accepted file types and size limit",
	RunE:  runFormats,
}

func init() {
	formatsCmd.Flags().BoolVar(&formatsRemote, "remote", false, "ask the backend instead of reading local config")
	rootCmd.AddCommand(formatsCmd)
}

func runFormats(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return err
	}

	if !formatsRemote {
		v := setupValidator(cfg)
		fmt.Printf("extensions: %s\n", strings.Join(upload.Extensions(), ", "))
		fmt.Printf("types:      %s\n", strings.Join(v.AllowedTypes, ", "))
		fmt.Printf("max size:   %s\n", upload.FormatFileSize(v.MaxSize))
		return nil
	}

	ctx := cmd.Context()
	f, err := setupClient(cfg, logger).SupportedFormats(ctx)
	if err != nil {
		logger.Error("failed to fetch supported formats", "error", err)
		return err
	}
	fmt.Printf("extensions: %s\n", strings.Join(f.Formats, ", "))
	fmt.Printf("max size:   %g MB\n", f.MaxSizeMB)
	return nil
}
