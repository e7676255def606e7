package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Pane  PaneConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// PaneConfig holds pane dimension configuration.
type PaneConfig struct {
	// HeightReduction is subtracted from terminal height for pane content.
	// Accounts for: app padding (1) + header (1) + tabs (2) + pane borders (2) + notice (1) + help bar (2) = 9
	HeightReduction int

	// MinHeight is the minimum pane height.
	MinHeight int

	// WidthOffset is subtracted before splitting the width between list and preview.
	// Accounts for app padding and both pane borders.
	WidthOffset int

	// ListWidthPercent is the share of the width given to the bookmark list.
	ListWidthPercent int

	// MinListWidth and MinPreviewWidth clamp the two panes.
	MinListWidth    int
	MinPreviewWidth int

	// ContentPadding is subtracted from pane width for item rendering.
	// Accounts for pane border/padding on each side.
	ContentPadding int

	// ListHeaderLines is the number of lines above the items (tag filter, trending tags).
	ListHeaderLines int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// LargeWidthPercent is used by the composer.
	LargeWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// HelpKeyColumnWidth: width of the key column in the help overlay.
	HelpKeyColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	// Character limits
	TitleCharLimit       int
	URLCharLimit         int
	DescriptionCharLimit int
	TagsCharLimit        int
	FilterCharLimit      int
	TokenCharLimit       int

	// Display widths
	StandardWidth int // composer fields, prompts
	FilterWidth   int // filter input (narrower)
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Pane: PaneConfig{
			HeightReduction:  9,
			MinHeight:        5,
			WidthOffset:      8,
			ListWidthPercent: 55,
			MinListWidth:     30,
			MinPreviewWidth:  20,
			ContentPadding:   4,
			ListHeaderLines:  2,
		},
		Modal: ModalConfig{
			DefaultWidthPercent: 40,
			LargeWidthPercent:   60,
			MinWidth:            50,
			MaxWidth:            90,
			HelpKeyColumnWidth:  14,
		},
		Input: InputConfig{
			TitleCharLimit:       200,
			URLCharLimit:         2000,
			DescriptionCharLimit: 1000,
			TagsCharLimit:        200,
			FilterCharLimit:      100,
			TokenCharLimit:       4096,
			StandardWidth:        48,
			FilterWidth:          30,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
