// Package state owns the client's bookmark collections and session, and
// applies the result of every remote call to all of them in one step.
package state

import "github.com/nikbrunner/studio/internal/model"

// List names one of the collections held in State.
type List string

const (
	Feed    List = "feed"    // public bookmarks, optionally filtered by tag
	Mine    List = "mine"    // bookmarks owned by the signed-in user
	Saved   List = "saved"   // bookmarks the signed-in user saved
	Profile List = "profile" // another user's public bookmarks, read-only
)

// Lists is every collection in display order.
var Lists = []List{Feed, Mine, Saved, Profile}

// State is an immutable snapshot of everything the UI renders.
// Reducers return a modified copy; the receiver is never changed.
type State struct {
	Feed    model.Collection
	Mine    model.Collection
	Saved   model.Collection
	Profile model.Collection

	FeedTag     string // tag the feed was last requested with
	ProfileUser string // username shown in Profile

	Shared  model.SharedIDs
	Pending model.IDSet // ids with a save or share in flight

	Session       Session
	DraftUsername string
	Notice        *Notice
}

// Collection returns the collection for name.
func (s State) Collection(name List) model.Collection {
	switch name {
	case Mine:
		return s.Mine
	case Saved:
		return s.Saved
	case Profile:
		return s.Profile
	default:
		return s.Feed
	}
}

func (s State) withCollection(name List, c model.Collection) State {
	switch name {
	case Mine:
		s.Mine = c
	case Saved:
		s.Saved = c
	case Profile:
		s.Profile = c
	default:
		s.Feed = c
	}
	return s
}

// SavedIDs is derived from the saved collection on every call.
func (s State) SavedIDs() model.IDSet {
	return model.SavedIDs(s.Saved)
}

// IsSaved reports whether id is in the saved collection.
func (s State) IsSaved(id string) bool {
	return s.Saved.Contains(id)
}

// IsShared reports whether id is in the local share cache.
func (s State) IsShared(id string) bool {
	return s.Shared.Has(id)
}

// IsPending reports whether a toggle for id is in flight.
func (s State) IsPending(id string) bool {
	return s.Pending.Has(id)
}

// Find looks id up in every collection, feed first.
func (s State) Find(id string) *model.Bookmark {
	for _, name := range Lists {
		if b := s.Collection(name).Get(id); b != nil {
			return b
		}
	}
	return nil
}
