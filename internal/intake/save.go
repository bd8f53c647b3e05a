package intake

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultImprovedPath is where an improved resume is written when no path is given.
const DefaultImprovedPath = "improved_resume.txt"

// SaveImproved writes improved resume text to path, creating parent directories.
func SaveImproved(path, text string) error {
	if path == "" {
		path = DefaultImprovedPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save improved resume: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("save improved resume: %w", err)
	}
	return nil
}
