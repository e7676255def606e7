package state

import "github.com/nikbrunner/studio/internal/model"

// The functions below are the only way collections change. Each takes the
// current state and the canonical result of a remote call and returns the
// next state.

// Created adds a new bookmark to mine and, when public and matching the
// feed's tag filter, to the feed.
func Created(s State, b model.Bookmark) State {
	s.Mine = s.Mine.Prepend(b)
	if inFeed(s, b) {
		s.Feed = s.Feed.Prepend(b)
	}
	return s
}

// Updated applies an edited bookmark. The feed gains or loses it depending on
// its new visibility and tags; mine and saved only replace in place.
func Updated(s State, b model.Bookmark) State {
	if inFeed(s, b) {
		s.Feed = s.Feed.UpsertFront(b)
	} else {
		s.Feed = s.Feed.RemoveByID(b.ID)
	}
	if b.IsPublic() {
		s.Profile = s.Profile.ReplaceByID(b)
	} else {
		s.Profile = s.Profile.RemoveByID(b.ID)
	}
	s.Mine = s.Mine.ReplaceByID(b)
	s.Saved = s.Saved.ReplaceByID(b)
	return s
}

// Deleted removes id everywhere.
func Deleted(s State, id string) State {
	s.Feed = s.Feed.RemoveByID(id)
	s.Mine = s.Mine.RemoveByID(id)
	s.Saved = s.Saved.RemoveByID(id)
	s.Profile = s.Profile.RemoveByID(id)
	return s
}

// SaveToggled applies a save (saved=true) or unsave confirmed by the server.
func SaveToggled(s State, b model.Bookmark, saved bool) State {
	s.Feed = s.Feed.ReplaceByID(b)
	s.Mine = s.Mine.ReplaceByID(b)
	s.Profile = s.Profile.ReplaceByID(b)
	switch {
	case !saved:
		s.Saved = s.Saved.RemoveByID(b.ID)
	case !s.Saved.Contains(b.ID):
		s.Saved = s.Saved.Prepend(b)
	}
	return s
}

// ShareToggled applies a share or unshare confirmed by the server and flips
// the id in the local share cache.
func ShareToggled(s State, b model.Bookmark) State {
	s.Feed = s.Feed.ReplaceByID(b)
	s.Mine = s.Mine.ReplaceByID(b)
	s.Profile = s.Profile.ReplaceByID(b)
	s.Shared = s.Shared.Toggle(b.ID)
	return s
}

// Loading marks a collection as fetching and clears its error.
func Loading(s State, name List) State {
	c := s.Collection(name)
	c.Loading = true
	c.Err = ""
	return s.withCollection(name, c)
}

// Loaded replaces a collection after a full fetch. Public listings drop
// anything that is not PUBLIC.
func Loaded(s State, name List, items []model.Bookmark) State {
	if name == Feed || name == Profile {
		items = publicOnly(items)
	}
	c := s.Collection(name).Replace(items)
	c.Loading = false
	c.Err = ""
	return s.withCollection(name, c)
}

// LoadFailed empties a collection and records msg on it.
func LoadFailed(s State, name List, msg string) State {
	c := s.Collection(name).Replace(nil)
	c.Loading = false
	c.Err = msg
	return s.withCollection(name, c)
}

// SignedOutState drops everything that belongs to the session. The feed, the
// profile listing and the draft username are kept.
func SignedOutState(s State) State {
	s.Session = Session{Status: SignedOut}
	s.Mine = model.Collection{}
	s.Saved = model.Collection{}
	s.Shared = model.NewSharedIDs(nil)
	s.Pending = model.NewIDSet()
	return s
}

// WithNotice replaces the current notice.
func WithNotice(s State, n Notice) State {
	s.Notice = &n
	return s
}

// WithPending marks or clears id as having a toggle in flight.
func WithPending(s State, id string, pending bool) State {
	next := make(model.IDSet, len(s.Pending)+1)
	for k := range s.Pending {
		next[k] = struct{}{}
	}
	if pending {
		next[id] = struct{}{}
	} else {
		delete(next, id)
	}
	s.Pending = next
	return s
}

// inFeed reports whether b belongs in the feed as last requested.
func inFeed(s State, b model.Bookmark) bool {
	if !b.IsPublic() {
		return false
	}
	if s.FeedTag == "" {
		return true
	}
	for _, tag := range b.Tags {
		if model.CleanTag(tag) == s.FeedTag {
			return true
		}
	}
	return false
}

func publicOnly(items []model.Bookmark) []model.Bookmark {
	out := make([]model.Bookmark, 0, len(items))
	for _, b := range items {
		if b.IsPublic() {
			out = append(out, b)
		}
	}
	return out
}
