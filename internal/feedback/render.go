package feedback

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
)

//go:embed templates/feedback.html.tmpl
var templatesFS embed.FS

// Parsed once at package init; html/template escapes the feedback text.
var htmlTemplates = template.Must(template.ParseFS(templatesFS, "templates/feedback.html.tmpl"))

// RenderHTML writes the feedback as an HTML fragment.
func RenderHTML(w io.Writer, text string) error {
	if err := htmlTemplates.ExecuteTemplate(w, "feedback", Layout(text)); err != nil {
		return fmt.Errorf("render feedback html: %w", err)
	}
	return nil
}

// ReportEntry is one analyzed file in an HTML report.
type ReportEntry struct {
	Name     string
	Icon     string
	Size     string
	Date     string
	Document Document
}

// RenderHTMLReport writes a standalone HTML page with one entry per file.
func RenderHTMLReport(w io.Writer, title string, entries []ReportEntry) error {
	data := struct {
		Title   string
		Entries []ReportEntry
	}{title, entries}
	if err := htmlTemplates.ExecuteTemplate(w, "report", data); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}
	return nil
}

// RenderText lays feedback out for a plain terminal, wrapping at width.
func RenderText(text string, width int) string {
	return RenderDocument(Layout(text), width)
}

// RenderDocument renders an already laid out document as plain text.
func RenderDocument(doc Document, width int) string {
	width = max(width, 20)
	var b strings.Builder
	for i, blk := range doc.Blocks {
		if i > 0 {
			b.WriteByte('\n')
		}
		if blk.Title != "" {
			b.WriteString(blk.Glyph + " " + blk.Title)
			if blk.Rating != "" {
				b.WriteString("  [" + blk.Rating + "/10]")
			}
			b.WriteByte('\n')
		} else if blk.Rating != "" {
			b.WriteString("[" + blk.Rating + "/10]\n")
		}
		switch {
		case blk.IsList():
			for _, item := range blk.Items {
				b.WriteString(indent(WordWrap(item, width-4), "  • ", "    "))
				b.WriteByte('\n')
			}
		case blk.Verbatim:
			for _, line := range blk.Lines() {
				b.WriteString(indent(WordWrap(line, width-2), "  ", "  "))
				b.WriteByte('\n')
			}
		default:
			b.WriteString(indent(WordWrap(blk.Paragraph, width-2), "  ", "  "))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// WordWrap greedily wraps text at width columns, collapsing whitespace.
func WordWrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) <= width {
			line += " " + w
		} else {
			lines = append(lines, line)
			line = w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

func indent(s, first, rest string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = first + lines[i]
		} else {
			lines[i] = rest + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
