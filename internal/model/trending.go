package model

import "sort"

// TrendingTags returns the n most frequent tags across items.
// Ties keep the order in which tags first appear.
func TrendingTags(items []Bookmark, n int) []string {
	counts := make(map[string]int)
	var order []string
	for _, b := range items {
		for _, tag := range b.Tags {
			if counts[tag] == 0 {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return order
}

// FilterByTag returns the bookmarks carrying tag. An empty tag returns items unchanged.
func FilterByTag(items []Bookmark, tag string) []Bookmark {
	if tag == "" {
		return items
	}
	var result []Bookmark
	for _, b := range items {
		for _, t := range b.Tags {
			if t == tag {
				result = append(result, b)
				break
			}
		}
	}
	return result
}
