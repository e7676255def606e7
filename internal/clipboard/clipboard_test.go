package clipboard_test

import (
	"errors"
	"testing"

	"github.com/nikbrunner/studio/internal/clipboard"
)

func TestUnsupported(t *testing.T) {
	err := clipboard.Unsupported{}.WriteText("x")
	if !errors.Is(err, clipboard.ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestMemory(t *testing.T) {
	m := &clipboard.Memory{}
	if err := m.WriteText("Go\nhttps://go.dev"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.Text(); got != "Go\nhttps://go.dev" {
		t.Errorf("Text() = %q", got)
	}

	m.Err = errors.New("boom")
	if err := m.WriteText("other"); err == nil {
		t.Error("expected configured error")
	}
	if got := m.Text(); got != "Go\nhttps://go.dev" {
		t.Errorf("failed write must not change text, got %q", got)
	}
}
