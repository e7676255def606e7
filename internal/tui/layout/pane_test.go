package layout

import "testing"

func TestCalculatePaneHeight(t *testing.T) {
	cfg := DefaultConfig().Pane

	tests := []struct {
		name           string
		terminalHeight int
		want           int
	}{
		{"normal terminal", 24, 15},               // 24 - 9 = 15
		{"large terminal", 50, 41},                // 50 - 9 = 41
		{"small terminal enforces min", 10, 5},    // 10 - 9 = 1, min is 5
		{"terminal smaller than reduction", 4, 5}, // negative clamps to min
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePaneHeight(tt.terminalHeight, cfg)
			if got != tt.want {
				t.Errorf("CalculatePaneHeight(%d) = %d, want %d",
					tt.terminalHeight, got, tt.want)
			}
		})
	}
}

func TestCalculatePaneWidths(t *testing.T) {
	cfg := DefaultConfig().Pane

	tests := []struct {
		name          string
		terminalWidth int
		wantList      int
		wantPreview   int
	}{
		{"standard terminal", 80, 39, 33},  // (80-8)*55/100 = 39, 72-39 = 33
		{"wide terminal", 120, 61, 51},     // (120-8)*55/100 = 61, 112-61 = 51
		{"narrow clamps both", 50, 30, 20}, // 23 -> min 30, 12 -> min 20
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePaneWidths(tt.terminalWidth, cfg)
			if got.ListWidth != tt.wantList || got.PreviewWidth != tt.wantPreview {
				t.Errorf("CalculatePaneWidths(%d) = {%d, %d}, want {%d, %d}",
					tt.terminalWidth, got.ListWidth, got.PreviewWidth, tt.wantList, tt.wantPreview)
			}
		})
	}
}

func TestCalculateItemWidth(t *testing.T) {
	cfg := DefaultConfig().Pane

	if got := CalculateItemWidth(39, cfg); got != 35 {
		t.Errorf("CalculateItemWidth(39) = %d, want 35", got)
	}
}

func TestCalculateVisibleHeight(t *testing.T) {
	tests := []struct {
		name         string
		paneHeight   int
		headerLines  int
		linesPerItem int
		want         int
	}{
		{"two-line rows", 15, 2, 2, 6},
		{"no header single line", 15, 0, 1, 15},
		{"header fills pane", 10, 10, 2, 1}, // clamps to 1
		{"zero lines per item", 3, 0, 0, 3}, // treated as 1
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateVisibleHeight(tt.paneHeight, tt.headerLines, tt.linesPerItem)
			if got != tt.want {
				t.Errorf("CalculateVisibleHeight(%d, %d, %d) = %d, want %d",
					tt.paneHeight, tt.headerLines, tt.linesPerItem, got, tt.want)
			}
		})
	}
}

func TestCalculateViewportOffset(t *testing.T) {
	tests := []struct {
		name           string
		selected       int
		total          int
		viewportHeight int
		want           int
	}{
		{"no scroll needed", 2, 5, 10, 0},
		{"selection near start", 1, 20, 10, 0},
		{"selection in middle", 10, 20, 10, 5}, // 10 - 10/2 = 5
		{"selection near end", 18, 20, 10, 10}, // max offset = 20-10 = 10
		{"selection at end", 19, 20, 10, 10},
		{"all items visible", 5, 8, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateViewportOffset(tt.selected, tt.total, tt.viewportHeight)
			if got != tt.want {
				t.Errorf("CalculateViewportOffset(%d, %d, %d) = %d, want %d",
					tt.selected, tt.total, tt.viewportHeight, got, tt.want)
			}
		})
	}
}
