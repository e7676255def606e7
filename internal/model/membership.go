package model

import "sort"

// IDSet is a set of bookmark IDs.
type IDSet map[string]struct{}

// NewIDSet builds a set from ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is a member.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the member count.
func (s IDSet) Len() int {
	return len(s)
}

// Sorted returns the members in lexical order, for stable persistence.
func (s IDSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SavedIDs projects the saved collection into a membership set.
// It is recomputed on every call and never stored.
func SavedIDs(saved Collection) IDSet {
	return NewIDSet(saved.IDs()...)
}

// SharedIDs is the locally cached set of bookmarks the current user has shared.
// The server only reports aggregate share counts, so this cache is best-effort
// and may drift from what the server knows.
type SharedIDs struct {
	ids IDSet
}

// NewSharedIDs creates the cache from persisted ids.
func NewSharedIDs(ids []string) SharedIDs {
	return SharedIDs{ids: NewIDSet(ids...)}
}

// Has reports whether id is marked as shared.
func (s SharedIDs) Has(id string) bool {
	return s.ids.Has(id)
}

// Len returns the number of shared ids.
func (s SharedIDs) Len() int {
	return len(s.ids)
}

// Toggle returns a new cache with id added if absent, removed if present.
func (s SharedIDs) Toggle(id string) SharedIDs {
	next := make(IDSet, len(s.ids)+1)
	for k := range s.ids {
		next[k] = struct{}{}
	}
	if next.Has(id) {
		delete(next, id)
	} else {
		next[id] = struct{}{}
	}
	return SharedIDs{ids: next}
}

// List returns the ids in lexical order.
func (s SharedIDs) List() []string {
	return s.ids.Sorted()
}
