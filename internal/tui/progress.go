package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amishk599/resumehub/internal/intake"
	"github.com/amishk599/resumehub/internal/model"
)

// stageMsg reports a file moving to the next upload stage.
type stageMsg struct {
	name  string
	stage intake.Stage
	ch    <-chan tea.Msg
}

// uploadDoneMsg is sent when every picked file has been processed.
type uploadDoneMsg struct {
	files []model.File
}

// uploadBar shows which file is being uploaded and how far along it is.
type uploadBar struct {
	bar     progress.Model
	name    string
	stage   intake.Stage
	visible bool
}

func newUploadBar() uploadBar {
	return uploadBar{bar: progress.New(progress.WithDefaultGradient())}
}

func (u uploadBar) update(msg tea.Msg) (uploadBar, tea.Cmd) {
	switch msg := msg.(type) {
	case stageMsg:
		u.visible = true
		u.name = msg.name
		u.stage = msg.stage
		return u, tea.Batch(u.bar.SetPercent(msg.stage.Percent()), waitForUpload(msg.ch))
	case uploadDoneMsg:
		u.visible = false
		return u, u.bar.SetPercent(0)
	case progress.FrameMsg:
		m, cmd := u.bar.Update(msg)
		u.bar = m.(progress.Model)
		return u, cmd
	}
	return u, nil
}

func (u uploadBar) view(width int) string {
	if !u.visible {
		return ""
	}
	u.bar.Width = max(width-4, 10)
	label := fmt.Sprintf(" %s  %s  %d%%", u.name, u.stage, int(u.stage.Percent()*100))
	return hintStyle.Render(label) + "\n " + u.bar.View()
}

// startUpload runs the pipeline over paths in the background. Stage changes
// are streamed back as stageMsg values, followed by one uploadDoneMsg.
func startUpload(ctx context.Context, p *intake.Pipeline, paths []string, pacing time.Duration) tea.Cmd {
	ch := make(chan tea.Msg, 4)
	go runUpload(ctx, p, paths, pacing, ch)
	return waitForUpload(ch)
}

// runUpload processes paths and closes ch when done. pacing holds each file at
// the analyzing stage so the user can follow along. Sends give up once ctx is
// done, so a quit mid-upload never leaves the goroutine blocked.
func runUpload(ctx context.Context, p *intake.Pipeline, paths []string, pacing time.Duration, ch chan tea.Msg) {
	defer close(ch)
	send := func(msg tea.Msg) bool {
		select {
		case ch <- msg:
			return true
		case <-ctx.Done():
			return false
		}
	}
	p.OnProgress(func(name string, s intake.Stage) {
		if !send(stageMsg{name: name, stage: s, ch: ch}) {
			return
		}
		if s == intake.StageAnalyzing && pacing > 0 {
			select {
			case <-time.After(pacing):
			case <-ctx.Done():
			}
		}
	})
	defer p.OnProgress(nil)
	files := p.Process(ctx, paths)
	send(uploadDoneMsg{files: files})
}

func waitForUpload(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}
