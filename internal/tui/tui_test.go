package tui

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amishk599/resumehub/internal/feedback"
	"github.com/amishk599/resumehub/internal/intake"
	"github.com/amishk599/resumehub/internal/model"
	"github.com/amishk599/resumehub/internal/notifier"
	"github.com/amishk599/resumehub/internal/session"
	"github.com/amishk599/resumehub/internal/upload"
)

type fakeBackend struct {
	feedback string
}

func (b fakeBackend) UploadResume(_ context.Context, path string) (model.Analysis, error) {
	return model.Analysis{Filename: filepath.Base(path), Feedback: b.feedback}, nil
}

func (b fakeBackend) GenerateImprovedResume(context.Context, string, string) (string, error) {
	return "IMPROVED", nil
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func writeFiles(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("resume text"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func newTestBrowser(t *testing.T, dir string) (browserModel, *intake.Pipeline, *notifier.Toaster) {
	t.Helper()
	toaster := notifier.NewToaster(0)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	backend := fakeBackend{feedback: "Strengths:\n- Focus\n- Clarity\nAction items:\n- Add metrics"}
	p := intake.NewPipeline(upload.NewValidator(nil, 0), backend, backend, session.New(), toaster, logger)
	m := newBrowserModel(context.Background(), p, toaster, Options{Dir: dir})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(browserModel), p, toaster
}

func TestListResumes_FiltersExtensions(t *testing.T) {
	dir := writeFiles(t, "a.pdf", "b.DOCX", "c.txt", "d.png", "e.doc", "notes.md")
	entries, err := listResumes(dir)
	if err != nil {
		t.Fatalf("listResumes: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.name)
	}
	if got := strings.Join(names, ","); got != "a.pdf,b.DOCX,c.txt,e.doc" {
		t.Errorf("entries = %s", got)
	}
}

func TestPicker_MarkAndChoose(t *testing.T) {
	dir := writeFiles(t, "a.pdf", "b.pdf", "c.pdf")
	m := newPickerModel(dir)

	m, _ = m.update(key("x"))
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.update(key("x"))
	m, done := m.update(tea.KeyMsg{Type: tea.KeyEnter})

	if !done {
		t.Fatal("picker not finished after enter")
	}
	if len(m.chosen) != 2 || filepath.Base(m.chosen[0]) != "a.pdf" || filepath.Base(m.chosen[1]) != "c.pdf" {
		t.Errorf("chosen = %v", m.chosen)
	}
}

func TestPicker_EnterWithoutMarksTakesCursor(t *testing.T) {
	m := newPickerModel(writeFiles(t, "a.txt", "b.txt"))
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEnter})
	if len(m.chosen) != 1 || filepath.Base(m.chosen[0]) != "b.txt" {
		t.Errorf("chosen = %v", m.chosen)
	}
}

func TestPicker_Cancel(t *testing.T) {
	m := newPickerModel(writeFiles(t, "a.txt"))
	m, done := m.update(tea.KeyMsg{Type: tea.KeyEsc})
	if !done || m.chosen != nil {
		t.Errorf("done = %v, chosen = %v", done, m.chosen)
	}
}

func TestBrowser_DeleteNeedsConfirmation(t *testing.T) {
	dir := writeFiles(t, "a.txt")
	m, p, toaster := newTestBrowser(t, dir)
	if _, err := p.ProcessOne(context.Background(), filepath.Join(dir, "a.txt")); err != nil {
		t.Fatal(err)
	}

	updated, _ := m.Update(key("d"))
	m = updated.(browserModel)
	if m.mode != modeConfirmDelete {
		t.Fatalf("mode = %v, want confirm", m.mode)
	}
	if !strings.Contains(m.View(), "Delete a.txt? (y/n)") {
		t.Error("confirmation prompt not shown")
	}

	updated, _ = m.Update(key("n"))
	m = updated.(browserModel)
	if p.Session().Len() != 1 {
		t.Fatal("file removed without confirmation")
	}

	updated, _ = m.Update(key("d"))
	updated, _ = updated.(browserModel).Update(key("y"))
	m = updated.(browserModel)
	if p.Session().Len() != 0 {
		t.Errorf("session len = %d after confirmed delete", p.Session().Len())
	}
	if n, ok := toaster.Current(); !ok || !strings.Contains(n.Message, "Removed a.txt") {
		t.Errorf("toast = %+v, %v", n, ok)
	}
}

func TestBrowser_ToggleFeedback(t *testing.T) {
	dir := writeFiles(t, "a.txt")
	m, p, _ := newTestBrowser(t, dir)
	f, err := p.ProcessOne(context.Background(), filepath.Join(dir, "a.txt"))
	if err != nil {
		t.Fatal(err)
	}

	updated, _ := m.Update(key("v"))
	m = updated.(browserModel)
	if !m.expanded[f.ID] {
		t.Fatal("feedback not expanded after v")
	}
	if !strings.Contains(m.feedbackViewport.View(), "Key Strengths") {
		t.Errorf("feedback pane missing section title:\n%s", m.feedbackViewport.View())
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(browserModel)
	if m.expanded[f.ID] {
		t.Error("feedback still expanded after enter")
	}
}

func TestBrowser_WriteWithoutImprovedWarns(t *testing.T) {
	dir := writeFiles(t, "a.txt")
	m, p, toaster := newTestBrowser(t, dir)
	if _, err := p.ProcessOne(context.Background(), filepath.Join(dir, "a.txt")); err != nil {
		t.Fatal(err)
	}

	_, cmd := m.Update(key("w"))
	if cmd == nil {
		t.Error("expected toast expiry command")
	}
	if n, ok := toaster.Current(); !ok || n.Level != model.LevelWarning {
		t.Errorf("toast = %+v, %v", n, ok)
	}
}

func TestBrowser_ImproveStoresResult(t *testing.T) {
	dir := writeFiles(t, "a.txt")
	m, p, _ := newTestBrowser(t, dir)
	f, err := p.ProcessOne(context.Background(), filepath.Join(dir, "a.txt"))
	if err != nil {
		t.Fatal(err)
	}

	updated, cmd := m.Update(key("i"))
	m = updated.(browserModel)
	if !m.busy || cmd == nil {
		t.Fatal("improve did not start")
	}
	msg := cmd()
	updated, _ = m.Update(msg)
	m = updated.(browserModel)
	if m.busy {
		t.Error("still busy after improvedMsg")
	}
	if got, _ := p.Session().Get(f.ID); got.Improved != "IMPROVED" {
		t.Errorf("Improved = %q", got.Improved)
	}
}

func TestRenderDocument(t *testing.T) {
	out := renderDocument(feedback.Layout("Rating: 8/10\nSummary: good\nStrengths:\n- a\n- b"), 60)
	for _, want := range []string{"Overall Assessment", "8/10", "Key Strengths", "• a", "• b"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestBrowser_InitialUploadBlocksSecondUpload(t *testing.T) {
	dir := writeFiles(t, "a.txt")
	toaster := notifier.NewToaster(0)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	backend := fakeBackend{feedback: "Strengths: focus"}
	p := intake.NewPipeline(upload.NewValidator(nil, 0), backend, backend, session.New(), toaster, logger)

	m := newBrowserModel(context.Background(), p, toaster, Options{Dir: dir, Initial: []string{filepath.Join(dir, "a.txt")}})
	if !m.busy {
		t.Fatal("browser with initial files should start busy")
	}
	updated, cmd := m.Update(key("a"))
	m = updated.(browserModel)
	if m.mode != modeBrowse || cmd != nil {
		t.Errorf("a started another upload while the initial one runs (mode %v)", m.mode)
	}
}

func TestRunUpload_StopsSendingAfterCancel(t *testing.T) {
	dir := writeFiles(t, "a.txt", "b.txt", "c.txt")
	_, p, _ := newTestBrowser(t, dir)
	paths := []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt"), filepath.Join(dir, "c.txt")}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Nobody reads the unbuffered channel, so every send must give up on ctx.
	ch := make(chan tea.Msg)
	done := make(chan struct{})
	go func() {
		runUpload(ctx, p, paths, time.Hour, ch)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("runUpload blocked after the context was cancelled")
	}
	if _, ok := <-ch; ok {
		t.Error("channel should be closed")
	}
}
