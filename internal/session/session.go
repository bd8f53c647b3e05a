// Package session holds the files uploaded during one run of the program.
package session

import (
	"sync"

	"github.com/amishk599/resumehub/internal/model"
)

// Session is the ordered list of uploaded files. It is created once per run and
// passed to whatever needs it. Safe for concurrent use.
type Session struct {
	mu    sync.RWMutex
	files []model.File
}

// New returns an empty session.
func New() *Session {
	return &Session{}
}

// Add appends f, keeping upload order.
func (s *Session) Add(f model.File) {
	s.mu.Lock()
	s.files = append(s.files, f)
	s.mu.Unlock()
}

// Get returns the file with the given id.
func (s *Session) Get(id string) (model.File, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.index(id); i >= 0 {
		return s.files[i], true
	}
	return model.File{}, false
}

// Files returns a copy of the files in upload order.
func (s *Session) Files() []model.File {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.File, len(s.files))
	copy(out, s.files)
	return out
}

// Len returns the number of files.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

// Remove deletes the file with the given id and reports whether it existed.
func (s *Session) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.files = append(s.files[:i], s.files[i+1:]...)
	return true
}

// RemoveByName deletes every file called name and returns how many were removed.
func (s *Session) RemoveByName(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.files[:0]
	for _, f := range s.files {
		if f.Name != name {
			kept = append(kept, f)
		}
	}
	n := len(s.files) - len(kept)
	clear(s.files[len(kept):])
	s.files = kept
	return n
}

// SetImproved stores generated resume text on the file with the given id.
func (s *Session) SetImproved(id, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.files[i].Improved = text
	return true
}

func (s *Session) index(id string) int {
	for i, f := range s.files {
		if f.ID == id {
			return i
		}
	}
	return -1
}
