package model

import (
	"context"
	"time"
)

// File is a resume the user picked for analysis, plus whatever the backend
// returned for it.
type File struct {
	ID       string    // uuid assigned on inspection
	Name     string    // base name shown to the user
	Path     string    // local path the file is read from
	Size     int64     // bytes
	MIMEType string    // detected type, parameters stripped
	AddedAt  time.Time // our clock

	Feedback string // raw feedback text, empty until analyzed
	Improved string // improved resume text, empty until generated
}

// Analyzed reports whether the backend has returned feedback for the file.
func (f File) Analyzed() bool {
	return f.Feedback != ""
}

// Analysis is the decoded result of a successful /upload-resume call.
type Analysis struct {
	Filename string // name the backend stored the file under
	Feedback string // free-form feedback text
}

// ResumeAnalyzer uploads a resume and returns the backend's feedback.
type ResumeAnalyzer interface {
	UploadResume(ctx context.Context, path string) (Analysis, error)
}

// ResumeImprover asks the backend to rewrite a resume using feedback.
type ResumeImprover interface {
	GenerateImprovedResume(ctx context.Context, path, feedback string) (string, error)
}
