package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/nikbrunner/studio/internal/model"
)

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Bookmark       model.Bookmark
	MatchedIndexes []int // byte offsets into Bookmark.Title
	Score          int
}

// bookmarkTitles implements fuzzy.Source for a bookmark slice.
type bookmarkTitles []model.Bookmark

func (bt bookmarkTitles) String(i int) string {
	return bt[i].Title
}

func (bt bookmarkTitles) Len() int {
	return len(bt)
}

// FuzzySearchBookmarks searches bookmarks by title using fuzzy matching.
// Returns results sorted by match score (best first).
func FuzzySearchBookmarks(items []model.Bookmark, query string) []SearchResult {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, bookmarkTitles(items))

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			Bookmark:       items[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}

// Search runs a fuzzy title search, or an exact tag filter when the query
// starts with '#'.
func Search(items []model.Bookmark, query string) []SearchResult {
	query = strings.TrimSpace(query)
	if tag, ok := strings.CutPrefix(query, "#"); ok {
		tagged := model.FilterByTag(items, model.CleanTag(tag))
		results := make([]SearchResult, len(tagged))
		for i, b := range tagged {
			results[i] = SearchResult{Bookmark: b}
		}
		return results
	}
	return FuzzySearchBookmarks(items, query)
}
