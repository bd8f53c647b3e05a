package upload

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Preview returns up to limit runes of the file's text. PDFs are read with a
// text extractor, plain text is read as is, other types yield "".
func Preview(path, mimeType string, limit int) (string, error) {
	var text string
	switch mimeType {
	case TypePDF:
		t, err := pdfText(path)
		if err != nil {
			return "", err
		}
		text = t
	case TypeText:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		text = string(data)
	default:
		return "", nil
	}

	text = strings.TrimSpace(text)
	if limit > 0 {
		if r := []rune(text); len(r) > limit {
			text = string(r[:limit]) + "…"
		}
	}
	return text, nil
}

func pdfText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text %s: %w", path, err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("extract pdf text %s: %w", path, err)
	}
	return buf.String(), nil
}
