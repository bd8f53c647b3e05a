package upload

import (
	"errors"
	"fmt"
	"slices"

	"github.com/amishk599/resumehub/internal/model"
)

// DefaultMaxSize is the backend's upload limit, 10 MiB.
const DefaultMaxSize int64 = 10 * 1024 * 1024

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file too large")
)

// Validator checks files before they are sent anywhere.
type Validator struct {
	AllowedTypes []string
	MaxSize      int64
}

// NewValidator returns a Validator, falling back to the defaults for empty values.
func NewValidator(allowed []string, maxSize int64) Validator {
	if len(allowed) == 0 {
		allowed = DefaultAllowedTypes
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return Validator{AllowedTypes: allowed, MaxSize: maxSize}
}

// Validate returns ErrUnsupportedType or ErrTooLarge, wrapped with the file name.
func (v Validator) Validate(f model.File) error {
	if !slices.Contains(v.AllowedTypes, f.MIMEType) {
		return fmt.Errorf("%s: %w %q", f.Name, ErrUnsupportedType, f.MIMEType)
	}
	if f.Size > v.MaxSize {
		return fmt.Errorf("%s: %w (%s, limit %s)", f.Name, ErrTooLarge, FormatFileSize(f.Size), FormatFileSize(v.MaxSize))
	}
	return nil
}

// Message is the user-facing text for a validation error.
func (v Validator) Message(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedType):
		return "Please upload PDF, DOC, DOCX, or TXT files only"
	case errors.Is(err, ErrTooLarge):
		return "File size must be less than " + FormatFileSize(v.MaxSize)
	default:
		return err.Error()
	}
}
