package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/resumehub/internal/feedback"
)

var (
	renderHTML  string
	renderWidth int
)

var renderCmd = &cobra.Command{
	Use:   "render [feedback.txt]",
	Short: "Split saved feedback text into sections",
	Long:  "Runs the section extractor over feedback text from a file or stdin. No backend is involved.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderHTML, "html", "", "write an HTML fragment to this path instead of plain text")
	renderCmd.Flags().IntVar(&renderWidth, "width", 80, "wrap text at this many columns")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("read feedback: %w", err)
	}
	text := string(data)

	if renderHTML == "" {
		fmt.Fprint(cmd.OutOrStdout(), feedback.RenderText(text, renderWidth))
		return nil
	}

	out, err := os.Create(renderHTML)
	if err != nil {
		return fmt.Errorf("create %s: %w", renderHTML, err)
	}
	if err := feedback.RenderHTML(out, text); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
