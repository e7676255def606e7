package state

import (
	"time"

	"github.com/nikbrunner/studio/internal/model"
)

// NoticeKind selects how a notice is styled.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// Notice is a transient message shown after an action.
type Notice struct {
	ID        string
	Kind      NoticeKind
	Text      string
	CreatedAt time.Time
}

// NewNotice creates a notice with a fresh ID.
func NewNotice(kind NoticeKind, text string) Notice {
	return Notice{
		ID:        model.GenerateUUID(),
		Kind:      kind,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// Notify records a notice and returns its ID.
func (s *Synchronizer) Notify(kind NoticeKind, text string) string {
	n := NewNotice(kind, text)
	s.mu.Lock()
	s.state = WithNotice(s.state, n)
	s.mu.Unlock()
	return n.ID
}

// DismissNotice clears the current notice if it still has the given ID.
// A newer notice is left in place.
func (s *Synchronizer) DismissNotice(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Notice != nil && s.state.Notice.ID == id {
		s.state.Notice = nil
	}
}
