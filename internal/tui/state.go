package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/nikbrunner/studio/internal/model"
	"github.com/nikbrunner/studio/internal/tui/layout"
)

// Composer field indexes. FieldVisibility is a toggle, not an input.
const (
	FieldTitle = iota
	FieldURL
	FieldDescription
	FieldTags
	FieldVisibility
	fieldCount
)

// ComposerState holds state for the publish/edit modal.
type ComposerState struct {
	Inputs  [FieldVisibility]textinput.Model
	Private bool
	Focus   int
	EditID  string // empty when publishing a new bookmark
	Err     string // inline validation or server error
}

// NewComposerState creates a ComposerState with initialized inputs.
func NewComposerState(cfg layout.LayoutConfig) ComposerState {
	newInput := func(placeholder string, limit int) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = limit
		in.Width = cfg.Input.StandardWidth
		return in
	}

	return ComposerState{
		Inputs: [FieldVisibility]textinput.Model{
			FieldTitle:       newInput("Title", cfg.Input.TitleCharLimit),
			FieldURL:         newInput("https://...", cfg.Input.URLCharLimit),
			FieldDescription: newInput("Why is it worth reading?", cfg.Input.DescriptionCharLimit),
			FieldTags:        newInput("tag1, tag2, tag3", cfg.Input.TagsCharLimit),
		},
	}
}

// Open resets the composer for a new session, pre-filled from draft.
func (c *ComposerState) Open(draft model.Draft, editID string) {
	c.Inputs[FieldTitle].SetValue(draft.Title)
	c.Inputs[FieldURL].SetValue(draft.URL)
	c.Inputs[FieldDescription].SetValue(draft.Description)
	c.Inputs[FieldTags].SetValue(model.FormatTags(draft.Tags))
	c.Private = draft.Visibility == model.Private
	c.EditID = editID
	c.Err = ""
	c.focus(FieldTitle)
}

// Reset clears the composer.
func (c *ComposerState) Reset() {
	for i := range c.Inputs {
		c.Inputs[i].Reset()
		c.Inputs[i].Blur()
	}
	c.Private = false
	c.Focus = FieldTitle
	c.EditID = ""
	c.Err = ""
}

// Draft builds the draft from the current input values.
func (c ComposerState) Draft() model.Draft {
	return model.NewDraft(model.NewDraftParams{
		Title:       c.Inputs[FieldTitle].Value(),
		URL:         c.Inputs[FieldURL].Value(),
		Description: c.Inputs[FieldDescription].Value(),
		Tags:        c.Inputs[FieldTags].Value(),
		Private:     c.Private,
	})
}

// Next moves focus to the following field, wrapping around.
func (c *ComposerState) Next() {
	c.focus((c.Focus + 1) % fieldCount)
}

// Prev moves focus to the previous field, wrapping around.
func (c *ComposerState) Prev() {
	c.focus((c.Focus + fieldCount - 1) % fieldCount)
}

func (c *ComposerState) focus(field int) {
	for i := range c.Inputs {
		if i == field {
			c.Inputs[i].Focus()
		} else {
			c.Inputs[i].Blur()
		}
	}
	c.Focus = field
}

// LoginState holds state for the sign-in modal.
type LoginState struct {
	Username textinput.Model
	Token    textinput.Model // identity provider credential
	Focus    int             // 0 = username, 1 = token
}

// NewLoginState creates a LoginState with initialized inputs.
func NewLoginState(cfg layout.LayoutConfig) LoginState {
	username := textinput.New()
	username.Placeholder = "yourname"
	username.CharLimit = cfg.Input.TitleCharLimit
	username.Width = cfg.Input.StandardWidth

	token := textinput.New()
	token.Placeholder = "ID token"
	token.CharLimit = cfg.Input.TokenCharLimit
	token.Width = cfg.Input.StandardWidth
	token.EchoMode = textinput.EchoPassword

	return LoginState{Username: username, Token: token}
}

// Open prepares the modal with the draft username.
func (l *LoginState) Open(draftUsername string) {
	l.Username.SetValue(draftUsername)
	l.Token.Reset()
	l.Focus = 0
	l.Username.Focus()
	l.Token.Blur()
}

// Toggle switches focus between the two inputs.
func (l *LoginState) Toggle() {
	l.Focus = 1 - l.Focus
	if l.Focus == 0 {
		l.Username.Focus()
		l.Token.Blur()
	} else {
		l.Token.Focus()
		l.Username.Blur()
	}
}

// PromptKind selects what a single-line prompt is for.
type PromptKind int

const (
	PromptTag PromptKind = iota
	PromptUser
)

// PromptState holds state for single-line prompts (feed tag, profile username).
type PromptState struct {
	Kind  PromptKind
	Input textinput.Model
}

// NewPromptState creates a PromptState with an initialized input.
func NewPromptState(cfg layout.LayoutConfig) PromptState {
	input := textinput.New()
	input.CharLimit = cfg.Input.TitleCharLimit
	input.Width = cfg.Input.StandardWidth
	return PromptState{Input: input}
}

// Open prepares the prompt for kind with an initial value.
func (p *PromptState) Open(kind PromptKind, value string) {
	p.Kind = kind
	p.Input.SetValue(value)
	p.Input.CursorEnd()
	switch kind {
	case PromptTag:
		p.Input.Placeholder = "tag (empty for all)"
	case PromptUser:
		p.Input.Placeholder = "username"
	}
	p.Input.Focus()
}

// FilterState holds state for filtering the visible list.
type FilterState struct {
	Input textinput.Model
	Query string // active query, persists after closing the input
}

// NewFilterState creates a FilterState with an initialized input.
func NewFilterState(cfg layout.LayoutConfig) FilterState {
	input := textinput.New()
	input.Placeholder = "Filter... (#tag for tags)"
	input.CharLimit = cfg.Input.FilterCharLimit
	input.Width = cfg.Input.FilterWidth
	return FilterState{Input: input}
}

// Reset clears the filter.
func (f *FilterState) Reset() {
	f.Input.Reset()
	f.Input.Blur()
	f.Query = ""
}
