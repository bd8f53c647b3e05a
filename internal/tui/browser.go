// Package tui is the interactive terminal front end: a file picker, a split
// pane browser of analyzed resumes, an upload progress bar and toasts.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/resumehub/internal/feedback"
	"github.com/amishk599/resumehub/internal/intake"
	"github.com/amishk599/resumehub/internal/model"
	"github.com/amishk599/resumehub/internal/notifier"
	"github.com/amishk599/resumehub/internal/upload"
)

// Lines per file item in the list view (name + meta + blank separator).
const fileItemHeight = 3

const previewRunes = 800

type mode int

const (
	modeBrowse mode = iota
	modePick
	modeConfirmDelete
)

// Options configures the browser.
type Options struct {
	Dir          string        // directory the picker lists
	Pacing       time.Duration // time a file is held at the analyzing stage
	ImprovedPath string        // where w writes the improved resume
	Initial      []string      // files uploaded on start
}

// improvedMsg is sent when an improved resume has been generated.
type improvedMsg struct {
	id   string
	text string
	err  error
}

// savedMsg is sent after the improved resume was written to disk.
type savedMsg struct {
	path string
	err  error
}

// toastExpiredMsg triggers a redraw once a toast's TTL has passed.
type toastExpiredMsg struct{}

type browserModel struct {
	ctx      context.Context
	pipeline *intake.Pipeline
	toaster  *notifier.Toaster
	opts     Options

	mode     mode
	picker   pickerModel
	upload   uploadBar
	busy     bool // upload or improve in flight
	cursor   int
	expanded map[string]bool // file id -> feedback visible

	listViewport     viewport.Model
	feedbackViewport viewport.Model
	activePane       int // 0=list, 1=feedback
	width            int
	height           int
	ready            bool
}

func newBrowserModel(ctx context.Context, p *intake.Pipeline, toaster *notifier.Toaster, opts Options) browserModel {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	return browserModel{
		ctx:      ctx,
		pipeline: p,
		toaster:  toaster,
		opts:     opts,
		busy:     len(opts.Initial) > 0, // Init starts the initial upload
		upload:   newUploadBar(),
		expanded: make(map[string]bool),
	}
}

func (m browserModel) Init() tea.Cmd {
	if len(m.opts.Initial) > 0 {
		return startUpload(m.ctx, m.pipeline, m.opts.Initial, m.opts.Pacing)
	}
	return nil
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		return m, nil

	case stageMsg:
		m.busy = true
		var cmd tea.Cmd
		m.upload, cmd = m.upload.update(msg)
		return m, cmd

	case uploadDoneMsg:
		m.busy = false
		var cmd tea.Cmd
		m.upload, cmd = m.upload.update(msg)
		if n := len(msg.files); n > 0 {
			// Select the first of the newly analyzed files and show its feedback.
			m.cursor = max(m.pipeline.Session().Len()-n, 0)
			m.expanded[msg.files[0].ID] = true
		}
		m.recalcContent()
		return m, tea.Batch(cmd, m.expireToast())

	case improvedMsg:
		m.busy = false
		m.recalcContent()
		return m, m.expireToast()

	case savedMsg:
		if msg.err != nil {
			m.toast(model.LevelError, fmt.Sprintf("Failed to save improved resume: %v", msg.err))
		} else {
			m.toast(model.LevelSuccess, "Improved resume saved to "+msg.path)
		}
		return m, m.expireToast()

	case toastExpiredMsg:
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modePick:
			return m.updatePicker(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		}
		return m.updateBrowse(msg)
	}

	var cmd tea.Cmd
	m.upload, cmd = m.upload.update(msg)
	return m, cmd
}

func (m browserModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "a":
		if m.busy {
			return m, nil
		}
		m.picker = newPickerModel(m.opts.Dir)
		m.mode = modePick
		return m, nil
	case "tab", "left", "right":
		m.activePane = 1 - m.activePane
		m.recalcContent()
		return m, nil
	case "up", "k":
		if m.activePane == 0 {
			m.moveCursor(-1)
			return m, nil
		}
	case "down", "j":
		if m.activePane == 0 {
			m.moveCursor(1)
			return m, nil
		}
	case "v", "enter":
		if f, ok := m.selected(); ok && f.Analyzed() {
			m.expanded[f.ID] = !m.expanded[f.ID]
			m.recalcContent()
			m.feedbackViewport.GotoTop()
		}
		return m, nil
	case "d":
		if _, ok := m.selected(); ok && !m.busy {
			m.mode = modeConfirmDelete
		}
		return m, nil
	case "i":
		f, ok := m.selected()
		if !ok || m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.improveCmd(f.ID)
	case "w":
		f, ok := m.selected()
		if !ok {
			return m, nil
		}
		if f.Improved == "" {
			m.toast(model.LevelWarning, "Generate an improved resume first (press i)")
			return m, m.expireToast()
		}
		return m, saveCmd(m.opts.ImprovedPath, f.Improved)
	}

	// Forward other keys (pgup/pgdn/home/end) to the active viewport.
	var cmd tea.Cmd
	if m.activePane == 0 {
		m.listViewport, cmd = m.listViewport.Update(msg)
	} else {
		m.feedbackViewport, cmd = m.feedbackViewport.Update(msg)
	}
	return m, cmd
}

func (m browserModel) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	picker, finished := m.picker.update(msg)
	m.picker = picker
	if !finished {
		return m, nil
	}
	m.mode = modeBrowse
	if len(picker.chosen) == 0 {
		return m, nil
	}
	m.busy = true
	return m, startUpload(m.ctx, m.pipeline, picker.chosen, m.opts.Pacing)
}

func (m browserModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeBrowse
	if msg.String() != "y" && msg.String() != "Y" {
		return m, nil
	}
	f, ok := m.selected()
	if !ok {
		return m, nil
	}
	removed := m.pipeline.Session().RemoveByName(f.Name)
	delete(m.expanded, f.ID)
	m.cursor = clamp(m.cursor, 0, max(m.pipeline.Session().Len()-1, 0))
	m.recalcContent()
	m.toast(model.LevelInfo, fmt.Sprintf("Removed %s (%d)", f.Name, removed))
	return m, m.expireToast()
}

func (m browserModel) improveCmd(id string) tea.Cmd {
	ctx, p := m.ctx, m.pipeline
	return func() tea.Msg {
		text, err := p.ImproveFile(ctx, id)
		return improvedMsg{id: id, text: text, err: err}
	}
}

func saveCmd(path, text string) tea.Cmd {
	return func() tea.Msg {
		err := intake.SaveImproved(path, text)
		return savedMsg{path: path, err: err}
	}
}

func (m browserModel) toast(level model.Level, msg string) {
	m.toaster.Notify(model.Notification{Level: level, Message: msg})
}

func (m browserModel) expireToast() tea.Cmd {
	return tea.Tick(m.toaster.TTL(), func(time.Time) tea.Msg {
		return toastExpiredMsg{}
	})
}

func (m browserModel) files() []model.File {
	return m.pipeline.Session().Files()
}

func (m browserModel) selected() (model.File, bool) {
	files := m.files()
	if len(files) == 0 || m.cursor >= len(files) {
		return model.File{}, false
	}
	return files[m.cursor], true
}

func (m *browserModel) moveCursor(delta int) {
	m.cursor = clamp(m.cursor+delta, 0, max(len(m.files())-1, 0))
	m.recalcContent()
	m.ensureCursorVisible()
	m.feedbackViewport.GotoTop()
}

func (m *browserModel) ensureCursorVisible() {
	cursorTop := m.cursor * fileItemHeight
	cursorBottom := cursorTop + fileItemHeight - 1

	if cursorTop < m.listViewport.YOffset {
		m.listViewport.SetYOffset(cursorTop)
	} else if cursorBottom >= m.listViewport.YOffset+m.listViewport.Height {
		m.listViewport.SetYOffset(cursorBottom - m.listViewport.Height + 1)
	}
}

func (m *browserModel) recalcLayout() {
	// 2 border chars per pane + 1 gap between panes.
	listWidth := max((m.width-5)/3, 24)
	feedbackWidth := max(m.width-5-listWidth, 30)

	// Header (1) + borders (2) + progress (2) + toast (1) + status bar (1).
	paneHeight := max(m.height-7, 5)

	if !m.ready {
		m.listViewport = viewport.New(listWidth, paneHeight)
		m.feedbackViewport = viewport.New(feedbackWidth, paneHeight)
		m.ready = true
	} else {
		m.listViewport.Width = listWidth
		m.listViewport.Height = paneHeight
		m.feedbackViewport.Width = feedbackWidth
		m.feedbackViewport.Height = paneHeight
	}

	m.recalcContent()
}

func (m *browserModel) recalcContent() {
	if !m.ready {
		return
	}
	files := m.files()
	m.listViewport.SetContent(renderFiles(files, m.cursor, m.activePane == 0))
	if f, ok := m.selected(); ok {
		m.feedbackViewport.SetContent(renderFileDetail(f, m.expanded[f.ID], m.feedbackViewport.Width-2))
	} else {
		m.feedbackViewport.SetContent(hintStyle.Render("  press a to add resumes"))
	}
}

func (m browserModel) View() string {
	if m.mode == modePick {
		return m.picker.View()
	}
	if !m.ready {
		return "Initializing..."
	}

	files := m.files()
	listHeader := fmt.Sprintf(" Uploaded Files (%d)", len(files))
	feedbackHeader := " AI Feedback"

	listHeaderSt, feedbackHeaderSt := activeHeaderStyle, inactiveHeaderStyle
	listBorder, feedbackBorder := activeBorderStyle, inactiveBorderStyle
	if m.activePane == 1 {
		listHeaderSt, feedbackHeaderSt = inactiveHeaderStyle, activeHeaderStyle
		listBorder, feedbackBorder = inactiveBorderStyle, activeBorderStyle
	}

	headerRow := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(m.listViewport.Width+2).Render(listHeaderSt.Render(listHeader)),
		" ",
		lipgloss.NewStyle().Width(m.feedbackViewport.Width+2).Render(feedbackHeaderSt.Render(feedbackHeader)),
	)

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		listBorder.Width(m.listViewport.Width).Render(m.listViewport.View()),
		" ",
		feedbackBorder.Width(m.feedbackViewport.Width).Render(m.feedbackViewport.View()),
	)

	var b strings.Builder
	b.WriteString(headerRow + "\n" + panes + "\n")
	if bar := m.upload.view(m.width); bar != "" {
		b.WriteString(bar + "\n")
	}
	if n, ok := m.toaster.Current(); ok {
		b.WriteString(toastStyle(n.Level).Render(notifier.Icon(n.Level)+" "+n.Message) + "\n")
	}

	var status string
	switch {
	case m.mode == modeConfirmDelete:
		f, _ := m.selected()
		status = confirmStyle.Width(m.width).Render(fmt.Sprintf(" Delete %s? (y/n)", f.Name))
	case m.busy:
		status = statusBarStyle.Width(m.width).Render(" working...  q quit")
	default:
		status = statusBarStyle.Width(m.width).Render(" a add  ↑/↓ select  v/enter feedback  i improve  w write  d delete  tab pane  q quit")
	}
	b.WriteString(status)
	return b.String()
}

func renderFiles(files []model.File, cursor int, isActive bool) string {
	if len(files) == 0 {
		return "  (no files)"
	}

	var b strings.Builder
	for i, f := range files {
		isSelected := i == cursor

		nameSt, metaSt := fileNameStyle, fileMetaStyle
		prefix := "  "
		if isSelected {
			prefix = "> "
			if isActive {
				nameSt, metaSt = selectedFileNameStyle, selectedFileMetaStyle
			}
		}

		b.WriteString(prefix)
		b.WriteString(nameSt.Render(upload.Glyph(f.MIMEType) + " " + f.Name))
		b.WriteByte('\n')

		b.WriteString(prefix)
		b.WriteString(metaSt.Render(fmt.Sprintf("%s · %s", upload.FormatFileSize(f.Size), f.AddedAt.Format("2006-01-02"))))
		if f.Analyzed() {
			b.WriteString(" " + analyzedBadgeStyle.Render("AI Analyzed"))
		}
		b.WriteByte('\n')

		if i < len(files)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// renderFileDetail shows the laid out feedback when expanded, otherwise a
// preview of the file's text.
func renderFileDetail(f model.File, expanded bool, width int) string {
	width = max(width, 20)
	var b strings.Builder
	b.WriteString(sectionTitleStyle.Render(f.Name) + "\n")
	b.WriteString(fileMetaStyle.Render(fmt.Sprintf("%s · %s · %s", f.MIMEType, upload.FormatFileSize(f.Size), f.AddedAt.Format("2006-01-02 15:04"))) + "\n\n")

	if expanded && f.Analyzed() {
		b.WriteString(renderDocument(feedback.Layout(f.Feedback), width))
	} else {
		if f.Analyzed() {
			b.WriteString(hintStyle.Render("  press v to show AI feedback") + "\n\n")
		}
		preview, err := upload.Preview(f.Path, f.MIMEType, previewRunes)
		switch {
		case err != nil:
			b.WriteString(hintStyle.Render("  preview unavailable: "+err.Error()) + "\n")
		case preview != "":
			b.WriteString(bodyStyle.Render(feedback.WordWrap(preview, width)) + "\n")
		}
	}

	if f.Improved != "" {
		b.WriteString("\n" + sectionTitleStyle.Render("Improved Resume") + "\n")
		b.WriteString(bodyStyle.Render(f.Improved) + "\n")
	}
	return b.String()
}

// renderDocument styles laid out feedback for the terminal.
func renderDocument(doc feedback.Document, width int) string {
	var b strings.Builder
	for i, blk := range doc.Blocks {
		if i > 0 {
			b.WriteByte('\n')
		}
		if blk.Title != "" {
			b.WriteString(sectionTitleStyle.Render(blk.Glyph + " " + blk.Title))
		}
		if blk.Rating != "" {
			b.WriteString("  " + ratingStyle.Render(blk.Rating+"/10"))
		}
		if blk.Title != "" || blk.Rating != "" {
			b.WriteByte('\n')
		}
		switch {
		case blk.IsList():
			for _, item := range blk.Items {
				b.WriteString(bodyStyle.Render(indentLines(feedback.WordWrap(item, width-4), "  • ", "    ")) + "\n")
			}
		case blk.Verbatim:
			for _, line := range blk.Lines() {
				b.WriteString(bodyStyle.Render(indentLines(feedback.WordWrap(line, width-2), "  ", "  ")) + "\n")
			}
		default:
			b.WriteString(bodyStyle.Render(indentLines(feedback.WordWrap(blk.Paragraph, width-2), "  ", "  ")) + "\n")
		}
	}
	return b.String()
}

func indentLines(s, first, rest string) string {
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

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RunBrowser launches the interactive browser over the pipeline's session.
func RunBrowser(ctx context.Context, p *intake.Pipeline, toaster *notifier.Toaster, opts Options) error {
	m := newBrowserModel(ctx, p, toaster, opts)
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := prog.Run()
	return err
}
