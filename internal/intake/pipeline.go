// Package intake runs the upload workflow: inspect, validate, upload, record.
package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amishk599/resumehub/internal/feedback"
	"github.com/amishk599/resumehub/internal/model"
	"github.com/amishk599/resumehub/internal/session"
	"github.com/amishk599/resumehub/internal/upload"
)

// Stage is a step of one file's upload.
type Stage int

const (
	StageUploading Stage = iota
	StageAnalyzing
	StageComplete
)

func (s Stage) String() string {
	switch s {
	case StageAnalyzing:
		return "Analyzing with AI..."
	case StageComplete:
		return "Complete!"
	default:
		return "Uploading..."
	}
}

// Percent is how far along the progress bar a stage sits.
func (s Stage) Percent() float64 {
	switch s {
	case StageAnalyzing:
		return 0.5
	case StageComplete:
		return 1
	default:
		return 0
	}
}

// ProgressFunc is told about each stage a file goes through.
type ProgressFunc func(name string, stage Stage)

var (
	ErrNoFile     = errors.New("no resume file selected")
	ErrNoFeedback = errors.New("no feedback available")
)

// Inspector turns a path into a file description.
type Inspector func(path string) (model.File, error)

// Pipeline owns the full intake for resume files:
// inspect → validate → upload → parse → record → notify.
type Pipeline struct {
	inspect   Inspector
	validator upload.Validator
	analyzer  model.ResumeAnalyzer
	improver  model.ResumeImprover
	session   *session.Session
	notifier  model.Notifier
	logger    *slog.Logger

	progress ProgressFunc
	now      func() time.Time
}

// NewPipeline creates a pipeline wired with all its dependencies.
func NewPipeline(
	validator upload.Validator,
	analyzer model.ResumeAnalyzer,
	improver model.ResumeImprover,
	sess *session.Session,
	notifier model.Notifier,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		inspect:   upload.Inspect,
		validator: validator,
		analyzer:  analyzer,
		improver:  improver,
		session:   sess,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

// OnProgress registers fn to receive stage updates.
func (p *Pipeline) OnProgress(fn ProgressFunc) {
	p.progress = fn
}

// Session returns the session files are recorded in.
func (p *Pipeline) Session() *session.Session {
	return p.session
}

// Process runs each path through the pipeline in order and returns the files
// that were analyzed. Failures are reported as notifications and do not stop
// the remaining files. Nothing is retried.
func (p *Pipeline) Process(ctx context.Context, paths []string) []model.File {
	var done []model.File
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		f, err := p.ProcessOne(ctx, path)
		if err != nil {
			continue
		}
		done = append(done, f)
	}
	p.logger.Info("intake complete", "requested", len(paths), "analyzed", len(done))
	return done
}

// ProcessOne runs a single path through the pipeline. A file that fails
// validation is never sent to the backend.
func (p *Pipeline) ProcessOne(ctx context.Context, path string) (model.File, error) {
	f, err := p.inspect(path)
	if err != nil {
		p.fail(err.Error(), err)
		return model.File{}, err
	}
	if err := p.validator.Validate(f); err != nil {
		p.fail(p.validator.Message(err), err)
		return model.File{}, err
	}

	p.report(f.Name, StageUploading)
	analysis, err := p.analyzer.UploadResume(ctx, f.Path)
	if err != nil {
		p.fail("Upload failed: "+errorMessage(err), err)
		return model.File{}, fmt.Errorf("intake %s: %w", f.Name, err)
	}
	p.report(f.Name, StageAnalyzing)

	f.Feedback = analysis.Feedback
	sections := feedback.Extract(f.Feedback)
	p.session.Add(f)
	p.report(f.Name, StageComplete)

	p.logger.Debug("file analyzed",
		"file", f.Name,
		"size", upload.FormatFileSize(f.Size),
		"sections", len(sections),
	)
	p.notify(model.LevelSuccess, fmt.Sprintf("%s uploaded and analyzed successfully!", f.Name))
	return f, nil
}

// Improve asks the backend to rewrite the resume at path using feedback text.
// Missing input fails before any request is made.
func (p *Pipeline) Improve(ctx context.Context, path, feedbackText string) (string, error) {
	if strings.TrimSpace(path) == "" {
		p.notify(model.LevelError, "Please upload a resume file first")
		return "", ErrNoFile
	}
	if strings.TrimSpace(feedbackText) == "" {
		p.notify(model.LevelError, "No feedback available to generate improved resume")
		return "", ErrNoFeedback
	}
	f, err := p.inspect(path)
	if err != nil {
		p.fail(err.Error(), err)
		return "", err
	}
	if err := p.validator.Validate(f); err != nil {
		p.fail(p.validator.Message(err), err)
		return "", err
	}

	p.notify(model.LevelInfo, "Generating improved resume...")
	text, err := p.improver.GenerateImprovedResume(ctx, f.Path, feedbackText)
	if err != nil {
		p.fail("Failed to generate improved resume: "+errorMessage(err), err)
		return "", fmt.Errorf("improve %s: %w", f.Name, err)
	}
	p.notify(model.LevelSuccess, "Improved resume generated successfully!")
	return text, nil
}

// ImproveFile generates an improved resume for a file already in the session
// and stores the result on it.
func (p *Pipeline) ImproveFile(ctx context.Context, id string) (string, error) {
	f, ok := p.session.Get(id)
	if !ok {
		p.notify(model.LevelError, "Please upload a resume file first")
		return "", ErrNoFile
	}
	text, err := p.Improve(ctx, f.Path, f.Feedback)
	if err != nil {
		return "", err
	}
	p.session.SetImproved(id, text)
	return text, nil
}

func (p *Pipeline) report(name string, stage Stage) {
	if p.progress != nil {
		p.progress(name, stage)
	}
}

func (p *Pipeline) notify(level model.Level, msg string) {
	p.notifier.Notify(model.Notification{Level: level, Message: msg, At: p.now()})
}

func (p *Pipeline) fail(msg string, err error) {
	p.logger.Debug("intake step failed", "error", err)
	p.notify(model.LevelError, msg)
}

// errorMessage prefers the backend's own message over the wrapped chain.
func errorMessage(err error) string {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}
