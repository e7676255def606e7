package layout

import (
	"strings"
	"testing"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Bubble Tea", "Bubble Tea"},
		{"highlighted match", "B\x1b[1mubble\x1b[0m Tea", "Bubble Tea"},
		{"colored tag", "\x1b[38;5;39m#go\x1b[0m", "#go"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripANSI(tt.input); got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestVisibleLength(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain", "#design", 7},
		{"styled", "\x1b[1m#design\x1b[0m", 7},
		{"wide runes take two cells", "ブックマーク", 12},
		{"badge", "[saved]", 7},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VisibleLength(tt.input); got != tt.want {
				t.Errorf("VisibleLength(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name     string
		text     string
		maxWidth int
		want     string
	}{
		{"fits", "Lip Gloss", 20, "Lip Gloss"},
		{"exact fit", "Lip Gloss", 9, "Lip Gloss"},
		{"cut with ellipsis", "API design checklist for microservices", 14, "API design ..."},
		{"room for ellipsis only", "Lip Gloss", 3, "..."},
		{"narrower than ellipsis", "Lip Gloss", 2, ".."},
		{"zero width", "Lip Gloss", 0, ""},
		{"wide runes", "ブックマーク", 7, "ブッ..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.text, tt.maxWidth, cfg); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.text, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestTruncate_KeepsHighlight(t *testing.T) {
	cfg := DefaultConfig().Text
	styled := "\x1b[1mBubble\x1b[0m Tea for terminals"

	got := Truncate(styled, 12, cfg)

	if StripANSI(got) != "Bubble Te..." {
		t.Errorf("visible text = %q, want %q", StripANSI(got), "Bubble Te...")
	}
	if !strings.HasPrefix(got, "\x1b[1m") {
		t.Errorf("highlight lost: %q", got)
	}
	if VisibleLength(got) != 12 {
		t.Errorf("visible length = %d, want 12", VisibleLength(got))
	}
}

func TestDisplayURL(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name     string
		url      string
		maxWidth int
		want     string
	}{
		{"strips https and www", "https://www.go.dev/doc/", 20, "go.dev/doc"},
		{"strips http", "http://example.com", 20, "example.com"},
		{"keeps path", "https://github.com/charmbracelet/bubbletea", 50, "github.com/charmbracelet/bubbletea"},
		{"truncates", "https://github.com/charmbracelet/bubbletea", 16, "github.com/ch..."},
		{"not a url", "notes", 10, "notes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DisplayURL(tt.url, tt.maxWidth, cfg)
			if got != tt.want {
				t.Errorf("DisplayURL(%q, %d) = %q, want %q", tt.url, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		width   int
		wantLen int
	}{
		{"pads plain", "abc", 6, 6},
		{"pads styled by visible width", "\x1b[1mabc\x1b[0m", 6, 6},
		{"leaves long text", "abcdef", 3, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PadRight(tt.input, tt.width)
			if VisibleLength(got) != tt.wantLen {
				t.Errorf("PadRight(%q, %d) visible length = %d, want %d",
					tt.input, tt.width, VisibleLength(got), tt.wantLen)
			}
		})
	}
}
