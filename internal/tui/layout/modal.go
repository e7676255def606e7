package layout

// ModalSize selects one of the configured modal widths.
type ModalSize int

const (
	ModalDefault ModalSize = iota // login, prompts, confirmations
	ModalLarge                    // bookmark composer
)

// modalChrome is the horizontal space a modal spends on padding plus a
// text input's prompt and cursor.
const modalChrome = 7

// ModalWidth returns the width of a modal of the given size. It is a
// percentage of the terminal clamped to [MinWidth, MaxWidth], and never wider
// than the terminal minus a 4 column margin.
func ModalWidth(terminalWidth int, size ModalSize, cfg ModalConfig) int {
	percent := cfg.DefaultWidthPercent
	if size == ModalLarge {
		percent = cfg.LargeWidthPercent
	}

	width := min(max(terminalWidth*percent/100, cfg.MinWidth), cfg.MaxWidth)
	width = min(width, terminalWidth-4)
	return max(width, 1)
}

// ModalInputWidth returns how wide a text input inside a modal of modalWidth
// may be, capped at want.
func ModalInputWidth(modalWidth, want int) int {
	return max(min(want, modalWidth-modalChrome), 1)
}

// FitTokens returns the leading tokens that fit in width when joined with
// single spaces. Tokens may carry ANSI styling.
func FitTokens(tokens []string, width int) []string {
	used := 0
	for i, tok := range tokens {
		w := VisibleLength(tok)
		if i > 0 {
			w++
		}
		if used+w > width {
			return tokens[:i]
		}
		used += w
	}
	return tokens
}
