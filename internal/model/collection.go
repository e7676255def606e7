package model

// Collection is an ordered list of bookmarks keyed by ID, plus its load status.
// All methods return a new Collection and never modify the receiver, so a
// snapshot handed to the UI stays valid while the next state is built.
type Collection struct {
	items   []Bookmark
	Loading bool
	Err     string
}

// NewCollection creates a Collection holding items in the given order.
// Later duplicates of an ID are dropped.
func NewCollection(items []Bookmark) Collection {
	return Collection{}.Replace(items)
}

// Items returns a copy of the bookmarks in display order.
func (c Collection) Items() []Bookmark {
	out := make([]Bookmark, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of bookmarks.
func (c Collection) Len() int {
	return len(c.items)
}

// Index returns the position of id, or -1 if absent.
func (c Collection) Index(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether id is present.
func (c Collection) Contains(id string) bool {
	return c.Index(id) >= 0
}

// Get finds a bookmark by ID, returns nil if not found.
func (c Collection) Get(id string) *Bookmark {
	if i := c.Index(id); i >= 0 {
		b := c.items[i]
		return &b
	}
	return nil
}

// IDs returns the bookmark IDs in display order.
func (c Collection) IDs() []string {
	ids := make([]string, len(c.items))
	for i := range c.items {
		ids[i] = c.items[i].ID
	}
	return ids
}

// Replace swaps the whole content, as done after a full fetch.
func (c Collection) Replace(items []Bookmark) Collection {
	seen := make(map[string]bool, len(items))
	next := make([]Bookmark, 0, len(items))
	for _, b := range items {
		if seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		next = append(next, b)
	}
	c.items = next
	return c
}

// Prepend inserts b at the front. An existing entry with the same ID is removed first.
func (c Collection) Prepend(b Bookmark) Collection {
	next := make([]Bookmark, 0, len(c.items)+1)
	next = append(next, b)
	for _, item := range c.items {
		if item.ID != b.ID {
			next = append(next, item)
		}
	}
	c.items = next
	return c
}

// ReplaceByID swaps the entry with b's ID in place. Absent IDs are ignored.
func (c Collection) ReplaceByID(b Bookmark) Collection {
	i := c.Index(b.ID)
	if i < 0 {
		return c
	}
	next := make([]Bookmark, len(c.items))
	copy(next, c.items)
	next[i] = b
	c.items = next
	return c
}

// UpsertFront replaces the entry in place if present, otherwise prepends it.
func (c Collection) UpsertFront(b Bookmark) Collection {
	if c.Contains(b.ID) {
		return c.ReplaceByID(b)
	}
	return c.Prepend(b)
}

// RemoveByID drops the entry with the given ID. Absent IDs are ignored.
func (c Collection) RemoveByID(id string) Collection {
	if !c.Contains(id) {
		return c
	}
	next := make([]Bookmark, 0, len(c.items)-1)
	for _, item := range c.items {
		if item.ID != id {
			next = append(next, item)
		}
	}
	c.items = next
	return c
}
