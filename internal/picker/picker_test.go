package picker

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/studio/internal/model"
	"github.com/nikbrunner/studio/internal/search"
)

func gitResults() []search.SearchResult {
	return []search.SearchResult{
		{Bookmark: model.Bookmark{ID: "b1", Title: "GitHub", URL: "https://github.com", Author: model.Author{Username: "mayat"}}},
		{Bookmark: model.Bookmark{ID: "b2", Title: "GitLab", URL: "https://gitlab.com", Tags: []string{"git", "ci"}}},
	}
}

func TestPicker_InitialState(t *testing.T) {
	p := New(gitResults(), "git")

	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}
	if len(p.results) != 2 {
		t.Errorf("expected 2 results, got %d", len(p.results))
	}
}

func TestPicker_NavigateDownUp(t *testing.T) {
	p := New(gitResults(), "git")

	newModel, _ := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	p = newModel.(Picker)
	if p.cursor != 1 {
		t.Errorf("expected cursor at 1, got %d", p.cursor)
	}

	newModel, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	p = newModel.(Picker)
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}
}

func TestPicker_BoundsCheck(t *testing.T) {
	p := New(gitResults()[:1], "git")

	// Try to go up from 0 (should stay at 0)
	newModel, _ := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	p = newModel.(Picker)
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}

	// Try to go down from last (should stay at last)
	newModel, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p = newModel.(Picker)
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0 (only 1 item), got %d", p.cursor)
	}
}

func TestPicker_SelectItem(t *testing.T) {
	p := New(gitResults(), "git")
	p.cursor = 1 // Select GitLab

	newModel, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p = newModel.(Picker)

	if cmd == nil {
		t.Error("expected quit command after selection")
	}
	got := p.SelectedBookmark()
	if got == nil || got.ID != "b2" {
		t.Errorf("expected b2 to be selected, got %+v", got)
	}
}

func TestPicker_Cancel(t *testing.T) {
	p := New(gitResults(), "git")

	newModel, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	p = newModel.(Picker)

	if !p.Cancelled() {
		t.Error("expected cancelled to be true after Esc")
	}
	if cmd == nil {
		t.Error("expected quit command after cancel")
	}
	if p.SelectedBookmark() != nil {
		t.Error("expected nil when cancelled")
	}
}

func TestPicker_ViewShowsMeta(t *testing.T) {
	view := New(gitResults(), "git").View()

	for _, want := range []string{"Search: git (2 results)", "@mayat", "git, ci"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestPicker_TopBottom(t *testing.T) {
	p := New(gitResults(), "git")

	newModel, _ := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	p = newModel.(Picker)
	if p.cursor != 1 {
		t.Errorf("expected cursor at 1 after G, got %d", p.cursor)
	}

	newModel, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	p = newModel.(Picker)
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0 after g, got %d", p.cursor)
	}
}

func TestPicker_ScrollsToCursor(t *testing.T) {
	var results []search.SearchResult
	for i := 0; i < 30; i++ {
		results = append(results, search.SearchResult{Bookmark: model.Bookmark{
			ID:    fmt.Sprintf("b%d", i),
			Title: fmt.Sprintf("Result %02d", i),
			URL:   "https://example.com",
		}})
	}

	newModel, _ := New(results, "result").Update(tea.WindowSizeMsg{Width: 60, Height: 14})
	p := newModel.(Picker)
	for i := 0; i < 25; i++ {
		newModel, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
		p = newModel.(Picker)
	}

	view := p.View()
	if !strings.Contains(view, "Result 25") {
		t.Error("expected the cursor row to be visible")
	}
	if strings.Contains(view, "Result 00") {
		t.Error("expected the first rows to scroll out of view")
	}
}

func TestPicker_EnterWithoutResults(t *testing.T) {
	newModel, _ := New(nil, "none").Update(tea.KeyMsg{Type: tea.KeyEnter})
	if newModel.(Picker).SelectedBookmark() != nil {
		t.Error("expected no selection when there are no results")
	}
}
