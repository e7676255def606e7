package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/studio/internal/model"
	"github.com/nikbrunner/studio/internal/state"
	"github.com/nikbrunner/studio/internal/tui/layout"
)

// linesPerItem is the height of one bookmark row in the list pane.
const linesPerItem = 2

var tabLabels = map[state.List]string{
	state.Feed:    "Feed",
	state.Mine:    "Mine",
	state.Saved:   "Saved",
	state.Profile: "Profile",
}

// renderView creates the complete view: header, tabs, list and preview panes,
// notice line and hints. Modals replace the panes.
func (a App) renderView() string {
	if a.mode == ModeHelp {
		return a.renderHelpOverlay()
	}
	if a.mode != ModeNormal && a.mode != ModeFilter {
		return a.renderModal()
	}

	paneHeight := layout.CalculatePaneHeight(a.height, a.layoutConfig.Pane)
	panes := layout.CalculatePaneWidths(a.width, a.layoutConfig.Pane)

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		a.renderListPane(panes.ListWidth, paneHeight),
		a.renderPreviewPane(panes.PreviewWidth, paneHeight),
	)

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			a.renderHeader(),
			a.renderTabs(),
			columns,
			a.renderHelpBar(),
		),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderHeader renders the app name and the session line.
func (a App) renderHeader() string {
	session := a.snap.Session
	var right strings.Builder

	if session.User != nil {
		right.WriteString(a.renderAvatar(*session.User) + " ")
		right.WriteString("@" + session.User.Username + "  ")
	}
	right.WriteString(a.styles.Status.Render(session.StatusText()))
	if session.Err != "" {
		right.WriteString("  " + a.styles.Error.Render(session.Err))
	}

	return a.styles.Title.Render("studio") + "  " + right.String()
}

// renderAvatar renders the user's initials on their palette colour.
func (a App) renderAvatar(u model.User) string {
	initials := model.Initials(u.Name, strings.ToUpper(firstRune(u.Username)))
	return a.styles.Avatar.
		Background(lipgloss.Color(model.AvatarColor(u.Username))).
		Render(initials)
}

// renderTabs renders the tab bar with item counts.
func (a App) renderTabs() string {
	parts := make([]string, len(state.Lists))
	for i, name := range state.Lists {
		label := tabLabels[name]
		if name == state.Profile && a.snap.ProfileUser != "" {
			label = "@" + a.snap.ProfileUser
		}
		if n := a.snap.Collection(name).Len(); n > 0 {
			label += " " + strconv.Itoa(n)
		}

		if name == a.tab {
			parts[i] = a.styles.TabActive.Render(label)
		} else {
			parts[i] = a.styles.Tab.Render(label)
		}
	}
	return "\n" + strings.Join(parts, " ")
}

// renderListHeader renders the lines above the items: the filter input or
// indicator, and on the feed the active tag and trending tags.
func (a App) renderListHeader(itemWidth int) []string {
	var lines []string

	if a.mode == ModeFilter {
		lines = append(lines, "/"+a.filter.Input.View())
	} else if a.filter.Query != "" {
		lines = append(lines, a.styles.Tag.Render("/"+a.filter.Query))
	}

	if a.tab == state.Feed {
		trending := model.TrendingTags(a.snap.Feed.Items(), a.trendingN)
		tags := make([]string, 0, len(trending)+1)
		if a.snap.FeedTag != "" {
			tags = append(tags, a.styles.TagActive.Render("#"+a.snap.FeedTag))
		}
		for _, tag := range trending {
			if tag == a.snap.FeedTag {
				continue
			}
			tags = append(tags, a.styles.Tag.Render("#"+tag))
		}
		if tags = layout.FitTokens(tags, itemWidth); len(tags) > 0 {
			lines = append(lines, strings.Join(tags, " "))
		}
	}

	return lines
}

func (a App) renderListPane(width, height int) string {
	var content strings.Builder

	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)
	header := a.renderListHeader(itemWidth)
	for _, line := range header {
		content.WriteString(line + "\n")
	}
	visibleHeight := layout.CalculateVisibleHeight(height, len(header), linesPerItem)

	collection := a.snap.Collection(a.tab)
	switch {
	case len(a.items) > 0:
		cursor := a.Cursor()
		offset := layout.CalculateViewportOffset(cursor, len(a.items), visibleHeight)
		for i, item := range a.items {
			if i < offset {
				continue
			}
			if i >= offset+visibleHeight {
				break
			}
			content.WriteString(a.renderItem(item, i == cursor, itemWidth) + "\n")
		}
	case a.isLoading():
		content.WriteString(a.styles.Empty.Render("Loading..."))
	case collection.Err != "":
		content.WriteString(a.styles.Error.Render(collection.Err))
	case a.filterQuery() != "":
		content.WriteString(a.styles.Empty.Render("(no matches)"))
	default:
		content.WriteString(a.styles.Empty.Render(a.emptyText()))
	}

	return a.styles.PaneActive.
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

// emptyText explains why the current tab has nothing to show.
func (a App) emptyText() string {
	signedIn := a.snap.Session.Token != ""
	switch a.tab {
	case state.Mine:
		if !signedIn {
			return "Sign in to see your bookmarks. (L)"
		}
		return "You haven't published anything yet. (a)"
	case state.Saved:
		if !signedIn {
			return "Sign in to see your saved bookmarks. (L)"
		}
		return "Nothing saved yet. (s on any bookmark)"
	case state.Profile:
		if a.snap.ProfileUser == "" {
			return "Open a profile with u or U."
		}
		return "@" + a.snap.ProfileUser + " has no public bookmarks."
	default:
		if a.snap.FeedTag != "" {
			return "No bookmarks tagged #" + a.snap.FeedTag + "."
		}
		return "The feed is empty."
	}
}

// renderItem renders a two-line row: badges and title, then the URL and author.
func (a App) renderItem(item Item, isCursor bool, maxWidth int) string {
	b := item.Bookmark

	badges := a.itemBadges(item)
	titleWidth := maxWidth - layout.VisibleLength(badges)
	title := a.highlightTitle(b.Title, item.Matched, isCursor)
	title = layout.Truncate(title, titleWidth, a.layoutConfig.Text)
	first := title + badges

	meta := layout.DisplayURL(b.URL, maxWidth/2, a.layoutConfig.Text)
	if b.Author.Username != "" {
		meta += "  @" + b.Author.Username
	}
	meta = layout.Truncate(meta, maxWidth, a.layoutConfig.Text)

	if isCursor {
		return a.styles.ItemSelected.Render(layout.PadRight(first, maxWidth)) + "\n" +
			a.styles.Item.Render(a.styles.URL.Render(meta))
	}
	return a.styles.Item.Render(first) + "\n" + a.styles.Item.Render(a.styles.URL.Render(meta))
}

// itemBadges renders the membership markers shown after a title.
func (a App) itemBadges(item Item) string {
	var marks []string
	if item.Pending {
		marks = append(marks, "…")
	}
	if item.Bookmark.Visibility == model.Private {
		marks = append(marks, "private")
	}
	if item.Saved {
		marks = append(marks, "saved")
	}
	if item.Shared {
		marks = append(marks, "shared")
	}
	if len(marks) == 0 {
		return ""
	}
	return " " + a.styles.Badge.Render("["+strings.Join(marks, " ")+"]")
}

// highlightTitle styles the matched byte offsets of title.
func (a App) highlightTitle(title string, matched []int, isCursor bool) string {
	if len(matched) == 0 || isCursor {
		return title
	}

	set := make(map[int]bool, len(matched))
	for _, idx := range matched {
		set[idx] = true
	}

	var out strings.Builder
	for i, r := range title {
		if set[i] {
			out.WriteString(a.styles.Match.Render(string(r)))
		} else {
			out.WriteRune(r)
		}
	}
	return out.String()
}

func (a App) renderPreviewPane(width, height int) string {
	var content strings.Builder
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)

	item := a.selectedItem()
	if item == nil {
		return a.styles.Pane.Width(width).Height(height).Render("")
	}
	b := item.Bookmark

	content.WriteString(a.styles.Title.Render(b.Title) + "\n\n")

	url := layout.Truncate(b.URL, itemWidth, a.layoutConfig.Text)
	content.WriteString(a.styles.URL.Render(url) + "\n\n")

	if b.Description != "" {
		content.WriteString(lipgloss.NewStyle().Width(itemWidth).Render(b.Description) + "\n\n")
	}

	if len(b.Tags) > 0 {
		tags := make([]string, len(b.Tags))
		for i, tag := range b.Tags {
			tags[i] = "#" + tag
		}
		content.WriteString(a.styles.Tag.Render(strings.Join(tags, " ")) + "\n\n")
	}

	author := b.Author.Name
	if b.Author.Username != "" {
		author += " @" + b.Author.Username
	}
	if strings.TrimSpace(author) != "" {
		content.WriteString(a.styles.Meta.Render("by "+strings.TrimSpace(author)) + "\n")
	}

	content.WriteString(a.styles.Meta.Render(
		fmt.Sprintf("%d saves  %d shares  %s", b.SavedCount, b.SharedCount, strings.ToLower(string(b.Visibility))),
	) + "\n")

	if !b.CreatedAt.IsZero() {
		content.WriteString(a.styles.Meta.Render(
			fmt.Sprintf("Published: %s", b.CreatedAt.Format("2006-01-02")),
		) + "\n")
	}
	if !b.UpdatedAt.IsZero() && !b.UpdatedAt.Equal(b.CreatedAt) {
		content.WriteString(a.styles.Meta.Render(
			fmt.Sprintf("Updated: %s", b.UpdatedAt.Format("2006-01-02")),
		))
	}

	return a.styles.Pane.
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

func (a App) renderHelpBar() string {
	var lines []string

	// Notice line, or an empty gap
	lines = append(lines, a.renderNoticeLine())

	if hints := a.renderHints(a.getContextualHints()); hints != "" {
		lines = append(lines, hints)
	}

	return strings.Join(lines, "\n")
}

// renderNoticeLine renders the current notice with a prefix per kind.
func (a App) renderNoticeLine() string {
	n := a.snap.Notice
	if n == nil {
		return ""
	}

	switch n.Kind {
	case state.NoticeError:
		return a.styles.NoticeError.Render("✗ " + n.Text)
	case state.NoticeSuccess:
		return a.styles.NoticeSuccess.Render("✓ " + n.Text)
	default:
		return a.styles.NoticeInfo.Render(n.Text)
	}
}

func (a App) renderModal() string {
	var title, content strings.Builder

	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	size := layout.ModalDefault
	if a.mode == ModeComposer {
		size = layout.ModalLarge
	}
	modalWidth := layout.ModalWidth(a.width, size, a.layoutConfig.Modal)
	inputWidth := layout.ModalInputWidth(modalWidth, a.layoutConfig.Input.StandardWidth)
	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Width(modalWidth)

	switch a.mode {
	case ModeComposer:
		if a.composer.EditID != "" {
			title.WriteString("Edit Bookmark\n\n")
		} else {
			title.WriteString("Publish Bookmark\n\n")
		}
		labels := [FieldVisibility]string{"Title:", "URL:", "Description:", "Tags (comma-separated):"}
		for i, label := range labels {
			in := a.composer.Inputs[i]
			in.Width = inputWidth
			content.WriteString(label + "\n")
			content.WriteString(in.View())
			content.WriteString("\n\n")
		}

		visibility := "( ) private  (•) public"
		if a.composer.Private {
			visibility = "(•) private  ( ) public"
		}
		if a.composer.Focus == FieldVisibility {
			visibility = a.styles.ItemSelected.Render(visibility)
		}
		content.WriteString("Visibility:\n" + visibility)

		switch {
		case a.busy == "composer":
			content.WriteString("\n\n" + a.styles.Empty.Render("Saving..."))
		case a.composer.Err != "":
			content.WriteString("\n\n" + a.styles.Error.Render(a.composer.Err))
		}

	case ModeLogin:
		title.WriteString("Sign In\n\n")
		username, token := a.login.Username, a.login.Token
		username.Width, token.Width = inputWidth, inputWidth
		content.WriteString("Username:\n")
		content.WriteString(username.View())
		content.WriteString("\n\n")
		content.WriteString("ID token:\n")
		content.WriteString(token.View())
		content.WriteString("\n\n")
		content.WriteString(a.styles.Help.Render("The username is requested on first sign-in only."))

	case ModePrompt:
		switch a.prompt.Kind {
		case PromptTag:
			title.WriteString("Filter Feed by Tag\n\n")
		case PromptUser:
			title.WriteString("Open Profile\n\n")
		}
		in := a.prompt.Input
		in.Width = inputWidth
		content.WriteString(in.View())

	case ModeConfirmDelete:
		itemName := "this bookmark"
		if b := a.snap.Find(a.deleteID); b != nil {
			itemName = "\"" + b.Title + "\""
		}
		title.WriteString("Delete Bookmark?\n\n")
		content.WriteString(itemName + "\n\n")
		content.WriteString(a.styles.Help.Render("It is removed for everyone who saved it.") + "\n\n")
		content.WriteString(a.renderHintsInline([]Hint{
			{Key: "Enter", Desc: "confirm"},
			{Key: "Esc", Desc: "cancel"},
		}))
	}

	modalContent := a.styles.Title.Render(title.String()) + content.String()

	// Place modal in center, then add help bar at bottom
	modal := lipgloss.Place(
		a.width,
		a.height-3, // Leave room for help bar
		lipgloss.Center,
		lipgloss.Center,
		modalStyle.Render(modalContent),
	)

	return lipgloss.JoinVertical(lipgloss.Left, modal, a.renderHelpBar())
}

func (a App) renderHelpOverlay() string {
	modalStyle := lipgloss.NewStyle().
		Padding(1, 2)

	section := func(b *strings.Builder, name string, bindings ...Hint) {
		b.WriteString(a.styles.Title.Render(name) + "\n")
		keyCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpKeyColumnWidth)
		for _, h := range bindings {
			b.WriteString(keyCol.Render(h.Key) + h.Desc + "\n")
		}
		b.WriteString("\n")
	}

	var left strings.Builder
	section(&left, "nav",
		Hint{Key: "j/k", Desc: "move"},
		Hint{Key: "gg/G", Desc: "top/bottom"},
		Hint{Key: "h/l, tab", Desc: "switch tab"},
		Hint{Key: "/", Desc: "filter (#tag)"},
		Hint{Key: "t", Desc: "feed tag"},
		Hint{Key: "u", Desc: "author profile"},
		Hint{Key: "U", Desc: "profile by name"},
		Hint{Key: "r", Desc: "refresh"},
	)

	var right strings.Builder
	section(&right, "act",
		Hint{Key: "a", Desc: "publish"},
		Hint{Key: "e", Desc: "edit own"},
		Hint{Key: "d", Desc: "delete own"},
		Hint{Key: "s", Desc: "save/unsave"},
		Hint{Key: "y", Desc: "share (copies link)"},
	)
	section(&right, "session",
		Hint{Key: "L", Desc: "sign in"},
		Hint{Key: "X", Desc: "sign out"},
	)
	right.WriteString(a.styles.Help.Render("[?/esc] close  [q] quit"))

	cols := lipgloss.JoinHorizontal(lipgloss.Top, left.String(), "    ", right.String())

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		modalStyle.Render(cols),
	)
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return "?"
}
