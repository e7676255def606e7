package layout

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestModalWidth(t *testing.T) {
	cfg := DefaultConfig().Modal

	tests := []struct {
		name          string
		terminalWidth int
		size          ModalSize
		want          int
	}{
		{"login on wide terminal uses min", 120, ModalDefault, 50}, // 48 -> min 50
		{"composer percent applies", 140, ModalLarge, 84},          // 140*60/100
		{"composer clamped to max", 200, ModalLarge, 90},           // 120 -> max 90
		{"narrow terminal keeps margin", 50, ModalDefault, 46},     // min 50 exceeds 50-4
		{"tiny terminal clamps to 1", 3, ModalDefault, 1},
		{"standard terminal composer", 80, ModalLarge, 50}, // 48 -> min 50
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ModalWidth(tt.terminalWidth, tt.size, cfg)
			if got != tt.want {
				t.Errorf("ModalWidth(%d, %d) = %d, want %d", tt.terminalWidth, tt.size, got, tt.want)
			}
		})
	}
}

func TestModalInputWidth(t *testing.T) {
	tests := []struct {
		modalWidth, want, expected int
	}{
		{90, 48, 48},
		{50, 48, 43},
		{5, 48, 1},
	}

	for _, tt := range tests {
		if got := ModalInputWidth(tt.modalWidth, tt.want); got != tt.expected {
			t.Errorf("ModalInputWidth(%d, %d) = %d, want %d", tt.modalWidth, tt.want, got, tt.expected)
		}
	}
}

func TestFitTokens(t *testing.T) {
	tags := []string{"#go", "#tui", "#design"}

	tests := []struct {
		name  string
		width int
		want  string
	}{
		{"all fit", 40, "#go #tui #design"},
		{"exact fit", 16, "#go #tui #design"},
		{"drops trailing tag", 15, "#go #tui"},
		{"first only", 4, "#go"},
		{"none fit", 2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.Join(FitTokens(tags, tt.width), " ")
			if got != tt.want {
				t.Errorf("FitTokens(width=%d) = %q, want %q", tt.width, got, tt.want)
			}
		})
	}
}

func TestFitTokens_IgnoresStyling(t *testing.T) {
	style := lipgloss.NewStyle().Bold(true)
	tags := []string{style.Render("#go"), style.Render("#tui")}

	if got := FitTokens(tags, 8); len(got) != 2 {
		t.Errorf("styled tags should be measured by visible width, got %d tokens", len(got))
	}
}
