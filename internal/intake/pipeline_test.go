package intake

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amishk599/resumehub/internal/client"
	"github.com/amishk599/resumehub/internal/model"
	"github.com/amishk599/resumehub/internal/session"
	"github.com/amishk599/resumehub/internal/upload"
)

// --- Fakes ---

// FakeBackend answers uploads and improvements with canned results.
type FakeBackend struct {
	Feedback     string
	Improved     string
	Err          error
	Uploads      []string
	Improves     []string
	LastFeedback string
}

func (b *FakeBackend) UploadResume(_ context.Context, path string) (model.Analysis, error) {
	b.Uploads = append(b.Uploads, path)
	if b.Err != nil {
		return model.Analysis{}, b.Err
	}
	return model.Analysis{Filename: filepath.Base(path), Feedback: b.Feedback}, nil
}

func (b *FakeBackend) GenerateImprovedResume(_ context.Context, path, fb string) (string, error) {
	b.Improves = append(b.Improves, path)
	b.LastFeedback = fb
	if b.Err != nil {
		return "", b.Err
	}
	return b.Improved, nil
}

// RecordingNotifier records every notification.
type RecordingNotifier struct {
	Got []model.Notification
}

func (n *RecordingNotifier) Notify(note model.Notification) {
	n.Got = append(n.Got, note)
}

func (n *RecordingNotifier) Last() model.Notification {
	if len(n.Got) == 0 {
		return model.Notification{}
	}
	return n.Got[len(n.Got)-1]
}

// --- Helpers ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(strings.Repeat("a", size)), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func newPipeline(backend *FakeBackend, n *RecordingNotifier) *Pipeline {
	return NewPipeline(upload.NewValidator(nil, 0), backend, backend, session.New(), n, discardLogger())
}

// --- Tests ---

func TestProcess_AnalyzesAndRecords(t *testing.T) {
	dir := t.TempDir()
	backend := &FakeBackend{Feedback: "Strengths:\n- Focus\n- Clarity"}
	n := &RecordingNotifier{}
	p := newPipeline(backend, n)

	var stages []Stage
	p.OnProgress(func(name string, s Stage) { stages = append(stages, s) })

	done := p.Process(context.Background(), []string{
		writeFile(t, dir, "a.txt", 10),
		writeFile(t, dir, "b.pdf", 20),
	})

	if len(done) != 2 || p.Session().Len() != 2 {
		t.Fatalf("done = %d, session = %d, want 2", len(done), p.Session().Len())
	}
	files := p.Session().Files()
	if files[0].Name != "a.txt" || files[1].Name != "b.pdf" {
		t.Errorf("session order = %q, %q", files[0].Name, files[1].Name)
	}
	if !files[0].Analyzed() || files[0].Feedback != backend.Feedback {
		t.Errorf("file not analyzed: %+v", files[0])
	}
	want := []Stage{StageUploading, StageAnalyzing, StageComplete, StageUploading, StageAnalyzing, StageComplete}
	if len(stages) != len(want) {
		t.Fatalf("stages = %v", stages)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Errorf("stage %d = %v, want %v", i, stages[i], want[i])
		}
	}
	if last := n.Last(); last.Level != model.LevelSuccess || last.Message != "b.pdf uploaded and analyzed successfully!" {
		t.Errorf("last notification = %+v", last)
	}
}

func TestProcess_RejectsInvalidFilesWithoutUpload(t *testing.T) {
	dir := t.TempDir()
	backend := &FakeBackend{Feedback: "ok"}
	n := &RecordingNotifier{}
	p := NewPipeline(upload.NewValidator(nil, 100), backend, backend, session.New(), n, discardLogger())

	done := p.Process(context.Background(), []string{
		writeFile(t, dir, "photo.png", 10),
		writeFile(t, dir, "huge.txt", 101),
	})

	if len(done) != 0 || p.Session().Len() != 0 {
		t.Errorf("invalid files were recorded")
	}
	if len(backend.Uploads) != 0 {
		t.Errorf("backend called for invalid files: %v", backend.Uploads)
	}
	if len(n.Got) != 2 {
		t.Fatalf("notifications = %+v", n.Got)
	}
	if n.Got[0].Level != model.LevelError || n.Got[0].Message != "Please upload PDF, DOC, DOCX, or TXT files only" {
		t.Errorf("first = %+v", n.Got[0])
	}
	if n.Got[1].Message != "File size must be less than 100 Bytes" {
		t.Errorf("second = %+v", n.Got[1])
	}
}

func TestProcess_UploadFailureNotifies(t *testing.T) {
	backend := &FakeBackend{Err: &model.APIError{StatusCode: 500, Message: "Analysis failed"}}
	n := &RecordingNotifier{}
	p := newPipeline(backend, n)

	done := p.Process(context.Background(), []string{writeFile(t, t.TempDir(), "a.txt", 5)})
	if len(done) != 0 || p.Session().Len() != 0 {
		t.Error("failed upload was recorded")
	}
	if len(backend.Uploads) != 1 {
		t.Errorf("uploads = %d, want exactly 1 (no retry)", len(backend.Uploads))
	}
	if last := n.Last(); last.Level != model.LevelError || last.Message != "Upload failed: Analysis failed" {
		t.Errorf("last = %+v", last)
	}
}

func TestProcess_MissingFile(t *testing.T) {
	backend := &FakeBackend{}
	n := &RecordingNotifier{}
	p := newPipeline(backend, n)

	p.Process(context.Background(), []string{filepath.Join(t.TempDir(), "gone.pdf")})
	if len(backend.Uploads) != 0 {
		t.Error("backend called for missing file")
	}
	if n.Last().Level != model.LevelError {
		t.Errorf("last = %+v", n.Last())
	}
}

func TestProcess_StopsOnCancelledContext(t *testing.T) {
	backend := &FakeBackend{Feedback: "x"}
	p := newPipeline(backend, &RecordingNotifier{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if done := p.Process(ctx, []string{writeFile(t, t.TempDir(), "a.txt", 1)}); len(done) != 0 {
		t.Errorf("done = %v", done)
	}
}

func TestProcess_OversizedFileNeverReachesServer(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.Write([]byte(`{"success": true, "feedback": "x"}`))
	}))
	defer srv.Close()

	c := client.NewWithHTTPClient(srv.URL, srv.Client(), discardLogger())
	n := &RecordingNotifier{}
	p := NewPipeline(upload.NewValidator(nil, 1024), c, c, session.New(), n, discardLogger())

	p.Process(context.Background(), []string{writeFile(t, t.TempDir(), "big.pdf", 2048)})
	if called {
		t.Error("request reached the server for an oversized file")
	}
	if n.Last().Level != model.LevelError {
		t.Errorf("last = %+v", n.Last())
	}
}

func TestImprove_RequiresFileAndFeedback(t *testing.T) {
	backend := &FakeBackend{Improved: "better"}
	n := &RecordingNotifier{}
	p := newPipeline(backend, n)
	path := writeFile(t, t.TempDir(), "a.txt", 5)

	if _, err := p.Improve(context.Background(), "", "feedback"); !errors.Is(err, ErrNoFile) {
		t.Errorf("no file: err = %v", err)
	}
	if _, err := p.Improve(context.Background(), path, "  \n "); !errors.Is(err, ErrNoFeedback) {
		t.Errorf("blank feedback: err = %v", err)
	}
	if len(backend.Improves) != 0 {
		t.Errorf("backend called: %v", backend.Improves)
	}
	if n.Last().Message != "No feedback available to generate improved resume" {
		t.Errorf("last = %+v", n.Last())
	}
}

func TestImprove_ValidatesFile(t *testing.T) {
	backend := &FakeBackend{Improved: "better"}
	p := newPipeline(backend, &RecordingNotifier{})

	_, err := p.Improve(context.Background(), writeFile(t, t.TempDir(), "a.png", 5), "feedback")
	if !errors.Is(err, upload.ErrUnsupportedType) {
		t.Errorf("err = %v", err)
	}
	if len(backend.Improves) != 0 {
		t.Error("backend called for invalid file")
	}
}

func TestImprove_Success(t *testing.T) {
	backend := &FakeBackend{Improved: "JANE DOE"}
	n := &RecordingNotifier{}
	p := newPipeline(backend, n)

	got, err := p.Improve(context.Background(), writeFile(t, t.TempDir(), "a.txt", 5), "Add metrics")
	if err != nil {
		t.Fatalf("Improve: %v", err)
	}
	if got != "JANE DOE" || backend.LastFeedback != "Add metrics" {
		t.Errorf("got %q, feedback sent %q", got, backend.LastFeedback)
	}
	if n.Last().Level != model.LevelSuccess {
		t.Errorf("last = %+v", n.Last())
	}
}

func TestImproveFile_StoresResult(t *testing.T) {
	backend := &FakeBackend{Feedback: "Summary: fine", Improved: "NEW"}
	p := newPipeline(backend, &RecordingNotifier{})

	f, err := p.ProcessOne(context.Background(), writeFile(t, t.TempDir(), "a.txt", 5))
	if err != nil {
		t.Fatalf("ProcessOne: %v", err)
	}
	if _, err := p.ImproveFile(context.Background(), f.ID); err != nil {
		t.Fatalf("ImproveFile: %v", err)
	}
	got, _ := p.Session().Get(f.ID)
	if got.Improved != "NEW" {
		t.Errorf("Improved = %q", got.Improved)
	}
	if backend.LastFeedback != "Summary: fine" {
		t.Errorf("feedback sent = %q", backend.LastFeedback)
	}

	if _, err := p.ImproveFile(context.Background(), "missing"); !errors.Is(err, ErrNoFile) {
		t.Errorf("missing id: err = %v", err)
	}
}

func TestStage(t *testing.T) {
	if StageAnalyzing.Percent() != 0.5 || StageComplete.Percent() != 1 || StageUploading.Percent() != 0 {
		t.Error("unexpected stage percentages")
	}
	if StageAnalyzing.String() != "Analyzing with AI..." {
		t.Errorf("String = %q", StageAnalyzing.String())
	}
}

func TestSaveImproved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "better.txt")
	if err := SaveImproved(path, "JANE DOE"); err != nil {
		t.Fatalf("SaveImproved: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "JANE DOE" {
		t.Errorf("file = %q", data)
	}
}
