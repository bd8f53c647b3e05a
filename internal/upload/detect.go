package upload

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/amishk599/resumehub/internal/model"
)

// MIME types accepted by the analysis backend.
const (
	TypePDF  = "application/pdf"
	TypeDOC  = "application/msword"
	TypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	TypeText = "text/plain"
)

// DefaultAllowedTypes is the accepted set when configuration does not override it.
var DefaultAllowedTypes = []string{TypePDF, TypeDOC, TypeDOCX, TypeText}

var extensionTypes = map[string]string{
	".pdf":  TypePDF,
	".doc":  TypeDOC,
	".docx": TypeDOCX,
	".txt":  TypeText,
}

// Extensions lists the file extensions that map to an accepted type.
func Extensions() []string {
	return []string{".pdf", ".doc", ".docx", ".txt"}
}

// DetectType reports the MIME type of the file at path. The extension decides
// when it is known; otherwise the content is sniffed. Parameters such as
// charset are dropped.
func DetectType(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := extensionTypes[ext]; ok {
		return t, nil
	}
	if t := mime.TypeByExtension(ext); ext != "" && t != "" {
		return stripParams(t), nil
	}
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("detect type of %s: %w", filepath.Base(path), err)
	}
	return stripParams(m.String()), nil
}

func stripParams(t string) string {
	mt, _, err := mime.ParseMediaType(t)
	if err != nil {
		return t
	}
	return mt
}

// Inspect stats the file at path and returns its description with a fresh id.
func Inspect(path string) (model.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.File{}, fmt.Errorf("inspect %s: %w", path, err)
	}
	if info.IsDir() {
		return model.File{}, fmt.Errorf("inspect %s: is a directory", path)
	}
	mt, err := DetectType(path)
	if err != nil {
		return model.File{}, err
	}
	return model.File{
		ID:       uuid.NewString(),
		Name:     info.Name(),
		Path:     path,
		Size:     info.Size(),
		MIMEType: mt,
		AddedAt:  time.Now(),
	}, nil
}

// Icon returns the Font Awesome class used for a file of the given type.
func Icon(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "pdf"):
		return "fa-file-pdf"
	case strings.Contains(mimeType, "word"):
		return "fa-file-word"
	case strings.Contains(mimeType, "text"):
		return "fa-file-alt"
	default:
		return "fa-file"
	}
}

// Glyph is the terminal counterpart of Icon.
func Glyph(mimeType string) string {
	switch Icon(mimeType) {
	case "fa-file-pdf":
		return "PDF"
	case "fa-file-word":
		return "DOC"
	case "fa-file-alt":
		return "TXT"
	default:
		return "---"
	}
}
