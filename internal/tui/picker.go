package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/resumehub/internal/upload"
)

var (
	pickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Padding(1, 0, 1, 2)

	pickerItemStyle = lipgloss.NewStyle().
			Padding(0, 0, 0, 4)

	pickerSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 0, 0, 2)

	pickerHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0, 0, 2)
)

type pickerEntry struct {
	path string
	name string
	size int64
}

// pickerModel lists resume files in one directory and lets the user mark
// several of them.
type pickerModel struct {
	dir     string
	entries []pickerEntry
	cursor  int
	marked  map[int]bool
	done    bool
	chosen  []string // nil when cancelled
	err     error
}

func newPickerModel(dir string) pickerModel {
	m := pickerModel{dir: dir, marked: make(map[int]bool)}
	m.entries, m.err = listResumes(dir)
	return m
}

// listResumes returns the files in dir whose extension maps to an accepted type.
func listResumes(dir string) ([]pickerEntry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	exts := upload.Extensions()
	var out []pickerEntry
	for _, de := range des {
		if de.IsDir() || !slices.Contains(exts, strings.ToLower(filepath.Ext(de.Name()))) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		out = append(out, pickerEntry{path: filepath.Join(dir, de.Name()), name: de.Name(), size: info.Size()})
	}
	return out, nil
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, quit := m.update(msg)
	if quit {
		return m, tea.Quit
	}
	return m, nil
}

// update handles a message and reports whether the picker has finished.
func (m pickerModel) update(msg tea.Msg) (pickerModel, bool) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, false
	}
	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.done = true
		m.chosen = nil
		return m, true
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case " ", "x":
		if len(m.entries) > 0 {
			m.marked[m.cursor] = !m.marked[m.cursor]
		}
	case "enter":
		m.done = true
		m.chosen = m.selection()
		return m, true
	}
	return m, false
}

// selection returns the marked paths, or the one under the cursor when
// nothing is marked.
func (m pickerModel) selection() []string {
	var paths []string
	for i, e := range m.entries {
		if m.marked[i] {
			paths = append(paths, e.path)
		}
	}
	if len(paths) == 0 && len(m.entries) > 0 {
		paths = []string{m.entries[m.cursor].path}
	}
	return paths
}

func (m pickerModel) View() string {
	s := pickerTitleStyle.Render("Select resumes in " + m.dir)
	s += "\n"

	if m.err != nil {
		s += pickerItemStyle.Render(m.err.Error()) + "\n"
	} else if len(m.entries) == 0 {
		s += pickerItemStyle.Render("(no .pdf, .doc, .docx or .txt files)") + "\n"
	}

	for i, e := range m.entries {
		mark := "[ ]"
		if m.marked[i] {
			mark = "[x]"
		}
		label := fmt.Sprintf("%s %s (%s)", mark, e.name, upload.FormatFileSize(e.size))
		if i == m.cursor {
			s += pickerSelectedStyle.Render("> "+label) + "\n"
		} else {
			s += pickerItemStyle.Render(label) + "\n"
		}
	}

	s += pickerHintStyle.Render("↑/↓/j/k navigate  space mark  enter upload  esc cancel")
	return s
}

// RunFilePicker shows an interactive resume selector for dir.
// Returns the chosen paths, or nil if the user cancelled.
func RunFilePicker(dir string) ([]string, error) {
	m := newPickerModel(dir)
	if m.err != nil {
		return nil, m.err
	}

	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return nil, err
	}

	final := result.(pickerModel)
	return final.chosen, nil
}
