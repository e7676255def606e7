package tui

import (
	"strings"

	"github.com/nikbrunner/studio/internal/model"
	"github.com/nikbrunner/studio/internal/search"
	"github.com/nikbrunner/studio/internal/state"
)

// Item is one row of the bookmark list with the membership flags it is drawn with.
type Item struct {
	Bookmark model.Bookmark
	Matched  []int // byte offsets into the title matched by the filter

	Saved   bool
	Shared  bool
	Pending bool
	Own     bool // authored by the signed-in user
}

// ID returns the bookmark's ID.
func (i Item) ID() string {
	return i.Bookmark.ID
}

// Title returns a display title for the item.
func (i Item) Title() string {
	return i.Bookmark.Title
}

// buildItems turns the collection shown on tab into rows, applying the
// filter query when one is set.
func buildItems(snap state.State, tab state.List, query string) []Item {
	bookmarks := snap.Collection(tab).Items()

	var results []search.SearchResult
	if strings.TrimSpace(query) == "" {
		results = make([]search.SearchResult, len(bookmarks))
		for i, b := range bookmarks {
			results[i] = search.SearchResult{Bookmark: b}
		}
	} else {
		results = search.Search(bookmarks, query)
	}

	var userID string
	if snap.Session.User != nil {
		userID = snap.Session.User.ID
	}

	items := make([]Item, len(results))
	for i, r := range results {
		items[i] = Item{
			Bookmark: r.Bookmark,
			Matched:  r.MatchedIndexes,
			Saved:    snap.IsSaved(r.Bookmark.ID),
			Shared:   snap.IsShared(r.Bookmark.ID),
			Pending:  snap.IsPending(r.Bookmark.ID),
			Own:      userID != "" && r.Bookmark.Author.ID == userID,
		}
	}
	return items
}
