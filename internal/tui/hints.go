package tui

import (
	"strings"

	"github.com/nikbrunner/studio/internal/state"
)

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "open")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for bottom bar: "j/k:move h/l:tab /:filter"
func (a App) renderHints(hints HintSet) string {
	allHints := hints.All()
	if len(allHints) == 0 {
		return ""
	}

	parts := make([]string, len(allHints))
	for i, h := range allHints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals: "Enter confirm  Esc cancel"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, h/l, etc.)
	Edit   []Hint // Edit hints (a, e, d, etc.)
	Action []Hint // Action hints (Enter, Tab, etc.)
	System []Hint // System hints (?, q, Esc)
}

// All returns all hints flattened in display order: Nav + Action + Edit + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeNormal:
		return a.getNormalModeHints()
	case ModeFilter:
		return a.getFilterModeHints()
	case ModeComposer:
		return a.getComposerHints()
	case ModeLogin, ModePrompt:
		return a.getPromptHints()
	case ModeConfirmDelete:
		// Hints are shown inside the modal itself
		return HintSet{}
	case ModeHelp:
		return HintSet{
			System: []Hint{{Key: "?/q/Esc", Desc: "close"}},
		}
	default:
		return HintSet{}
	}
}

// getNormalModeHints returns hints for ModeNormal, depending on the tab and session.
func (a App) getNormalModeHints() HintSet {
	hints := HintSet{
		Nav: []Hint{
			{Key: "j/k", Desc: "move"},
			{Key: "h/l", Desc: "tab"},
		},
		Action: []Hint{
			{Key: "/", Desc: "filter"},
			{Key: "r", Desc: "refresh"},
			{Key: "u", Desc: "author"},
		},
		System: []Hint{
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}

	if a.tab == state.Feed {
		hints.Action = append(hints.Action, Hint{Key: "t", Desc: "tag"})
	}

	if !a.snap.Session.Active() {
		hints.Edit = []Hint{{Key: "L", Desc: "sign in"}}
		return hints
	}

	hints.Edit = []Hint{
		{Key: "a", Desc: "publish"},
		{Key: "s", Desc: "save"},
		{Key: "y", Desc: "share"},
	}
	if item := a.selectedItem(); item != nil && item.Own {
		hints.Edit = append(hints.Edit, Hint{Key: "e", Desc: "edit"}, Hint{Key: "d", Desc: "del"})
	}
	return hints
}

// getFilterModeHints returns hints for ModeFilter (local filter active).
func (a App) getFilterModeHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "type", Desc: "filter"},
		},
		Action: []Hint{
			{Key: "Enter", Desc: "apply"},
		},
		System: []Hint{
			{Key: "Esc", Desc: "cancel"},
		},
	}
}

// getComposerHints returns hints for ModeComposer.
func (a App) getComposerHints() HintSet {
	hints := HintSet{
		Nav: []Hint{
			{Key: "Tab", Desc: "next"},
		},
		Action: []Hint{
			{Key: "Enter", Desc: "publish"},
		},
		System: []Hint{
			{Key: "Esc", Desc: "cancel"},
		},
	}
	if a.composer.EditID != "" {
		hints.Action[0].Desc = "save"
	}
	if a.composer.Focus == FieldVisibility {
		hints.Edit = []Hint{{Key: "Space", Desc: "visibility"}}
	}
	return hints
}

// getPromptHints returns hints for the sign-in and single-line prompts.
func (a App) getPromptHints() HintSet {
	hints := HintSet{
		Action: []Hint{
			{Key: "Enter", Desc: "confirm"},
		},
		System: []Hint{
			{Key: "Esc", Desc: "cancel"},
		},
	}
	if a.mode == ModeLogin {
		hints.Nav = []Hint{{Key: "Tab", Desc: "next"}}
	}
	return hints
}
