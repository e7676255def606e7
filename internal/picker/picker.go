// Package picker is the one-shot result list behind `studio search`.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/studio/internal/model"
	"github.com/nikbrunner/studio/internal/search"
	"github.com/nikbrunner/studio/internal/tui/layout"
)

var (
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	matchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Underline(true)
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// chromeLines is the header, its gap, the footer gap and the footer.
const chromeLines = 4

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Open   key.Binding
	Cancel key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("k", "up", "ctrl+p")),
	Down:   key.NewBinding(key.WithKeys("j", "down", "ctrl+n")),
	Top:    key.NewBinding(key.WithKeys("g", "home")),
	Bottom: key.NewBinding(key.WithKeys("G", "end")),
	Open:   key.NewBinding(key.WithKeys("enter")),
	Cancel: key.NewBinding(key.WithKeys("esc", "q", "ctrl+c")),
}

// Picker lets the user choose one search result. Each result takes two
// lines; the list scrolls to keep the cursor visible.
type Picker struct {
	results   []search.SearchResult
	query     string
	cursor    int
	selected  bool
	cancelled bool
	width     int
	height    int
	textCfg   layout.TextConfig
}

// New creates a new Picker with the given search results.
func New(results []search.SearchResult, query string) Picker {
	return Picker{
		results: results,
		query:   query,
		width:   80,
		height:  24,
		textCfg: layout.DefaultConfig().Text,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Cancel):
			p.cancelled = true
			return p, tea.Quit
		case key.Matches(msg, keys.Open):
			p.selected = len(p.results) > 0
			return p, tea.Quit
		case key.Matches(msg, keys.Down):
			p.cursor = min(p.cursor+1, max(len(p.results)-1, 0))
		case key.Matches(msg, keys.Up):
			p.cursor = max(p.cursor-1, 0)
		case key.Matches(msg, keys.Top):
			p.cursor = 0
		case key.Matches(msg, keys.Bottom):
			p.cursor = max(len(p.results)-1, 0)
		}
	}

	return p, nil
}

// visibleRows is how many results fit on screen.
func (p Picker) visibleRows() int {
	return max((p.height-chromeLines)/2, 1)
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Search: %s (%d results)", p.query, len(p.results))))
	b.WriteString("\n\n")

	rows := p.visibleRows()
	offset := layout.CalculateViewportOffset(p.cursor, len(p.results), rows)
	end := min(offset+rows, len(p.results))
	textWidth := max(p.width-3, 10)

	for i := offset; i < end; i++ {
		result := p.results[i]
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		title := highlight(result.Bookmark.Title, result.MatchedIndexes, style)
		b.WriteString(cursor + layout.Truncate(title, textWidth, p.textCfg) + "\n")
		b.WriteString("   " + metaStyle.Render(p.meta(result.Bookmark, textWidth)) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("j/k: move  g/G: top/bottom  Enter: open  q/Esc: cancel"))

	return b.String()
}

// meta is the second line of a row: short URL, author and tags.
func (p Picker) meta(bm model.Bookmark, width int) string {
	parts := []string{layout.DisplayURL(bm.URL, width/2, p.textCfg)}
	if bm.Author.Username != "" {
		parts = append(parts, "@"+bm.Author.Username)
	}
	if tags := model.FormatTags(bm.Tags); tags != "" {
		parts = append(parts, tags)
	}
	return layout.Truncate(strings.Join(parts, "  "), width, p.textCfg)
}

// SelectedBookmark returns the selected bookmark, or nil if cancelled.
func (p Picker) SelectedBookmark() *model.Bookmark {
	if p.cancelled || !p.selected || p.cursor >= len(p.results) {
		return nil
	}
	b := p.results[p.cursor].Bookmark
	return &b
}

// highlight renders title with the fuzzy-matched runes emphasized.
// matched holds byte offsets into title.
func highlight(title string, matched []int, style lipgloss.Style) string {
	if len(matched) == 0 {
		return style.Render(title)
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var b strings.Builder
	for i, r := range title {
		if hit[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteString(style.Render(string(r)))
		}
	}
	return b.String()
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
