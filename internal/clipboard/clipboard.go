// Package clipboard copies share text to the system clipboard.
package clipboard

import (
	"errors"
	"sync"

	"github.com/atotto/clipboard"
)

var ErrUnsupported = errors.New("clipboard not available on this system")

// Writer copies text to a clipboard.
type Writer interface {
	WriteText(text string) error
}

// System writes to the OS clipboard.
type System struct{}

// NewSystem returns the OS clipboard, or an Unsupported writer when no
// clipboard utility is available (headless sessions, missing xclip/xsel).
func NewSystem() Writer {
	if clipboard.Unsupported {
		return Unsupported{}
	}
	return System{}
}

func (System) WriteText(text string) error {
	return clipboard.WriteAll(text)
}

// Unsupported always fails with ErrUnsupported.
type Unsupported struct{}

func (Unsupported) WriteText(string) error {
	return ErrUnsupported
}

// Memory records the last copied text. Used by tests and the CLI's --print mode.
type Memory struct {
	mu   sync.Mutex
	text string
	Err  error // returned by WriteText when set
}

func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.text = text
	return nil
}

// Text returns the last copied text.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}
