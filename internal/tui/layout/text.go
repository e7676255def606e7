package layout

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// VisibleLength returns the number of terminal cells s occupies, ignoring
// escape codes. Wide runes count as two.
func VisibleLength(s string) int {
	return ansi.StringWidth(s)
}

// Truncate shortens s to maxWidth cells, ending with cfg.Ellipsis when it was
// cut. Escape codes in s are kept, so highlighted titles stay highlighted.
func Truncate(s string, maxWidth int, cfg TextConfig) string {
	if maxWidth <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	if ansi.StringWidth(cfg.Ellipsis) >= maxWidth {
		return ansi.Truncate(cfg.Ellipsis, maxWidth, "")
	}
	return ansi.Truncate(s, maxWidth, cfg.Ellipsis)
}

// DisplayURL shortens a URL for list rows: the scheme, a leading "www." and a
// trailing slash are dropped before truncating.
// Example: DisplayURL("https://www.go.dev/doc/", 20, cfg) -> "go.dev/doc"
func DisplayURL(rawURL string, maxWidth int, cfg TextConfig) string {
	s := strings.TrimPrefix(rawURL, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	s = strings.TrimSuffix(s, "/")
	return Truncate(s, maxWidth, cfg)
}

// PadRight pads styled text with spaces up to width visible columns.
func PadRight(styled string, width int) string {
	n := VisibleLength(styled)
	if n >= width {
		return styled
	}
	return styled + strings.Repeat(" ", width-n)
}
