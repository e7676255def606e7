package state_test

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/studio/internal/model"
	"github.com/nikbrunner/studio/internal/state"
)

func bm(id string, v model.Visibility) model.Bookmark {
	return model.Bookmark{ID: id, Title: id, URL: "https://" + id + ".example", Visibility: v}
}

func TestLoaded_PublicListsDropPrivate(t *testing.T) {
	items := []model.Bookmark{bm("a", model.Public), bm("b", model.Private), bm("c", model.Public)}

	s := state.Loaded(state.State{}, state.Feed, items)
	assert.DeepEqual(t, s.Feed.IDs(), []string{"a", "c"})

	s = state.Loaded(s, state.Mine, items)
	assert.DeepEqual(t, s.Mine.IDs(), []string{"a", "b", "c"})
}

func TestLoading_ThenFailed(t *testing.T) {
	s := state.Loaded(state.State{}, state.Saved, []model.Bookmark{bm("a", model.Public)})
	s = state.Loading(s, state.Saved)
	assert.Assert(t, s.Saved.Loading)
	assert.Equal(t, s.Saved.Len(), 1, "items stay visible while loading")

	s = state.LoadFailed(s, state.Saved, "Failed to load saved bookmarks")
	assert.Assert(t, !s.Saved.Loading)
	assert.Equal(t, s.Saved.Err, "Failed to load saved bookmarks")
	assert.Equal(t, s.Saved.Len(), 0)
}

func TestSaveToggled_DoesNotDuplicate(t *testing.T) {
	b := bm("a", model.Public)
	s := state.Loaded(state.State{}, state.Saved, []model.Bookmark{bm("z", model.Public), b})

	b.SavedCount = 3
	s = state.SaveToggled(s, b, true)
	assert.Check(t, is.DeepEqual(s.Saved.IDs(), []string{"z", "a"}), "already saved entries keep their position")
}

func TestSaveToggled_UpdatesCountsEverywhere(t *testing.T) {
	b := bm("a", model.Public)
	s := state.Loaded(state.State{}, state.Feed, []model.Bookmark{b})
	s = state.Loaded(s, state.Mine, []model.Bookmark{b})

	b.SavedCount = 7
	s = state.SaveToggled(s, b, true)

	assert.Equal(t, s.Feed.Get("a").SavedCount, 7)
	assert.Equal(t, s.Mine.Get("a").SavedCount, 7)
	assert.Equal(t, s.Saved.Index("a"), 0)

	s = state.SaveToggled(s, b, false)
	assert.Assert(t, !s.Saved.Contains("a"))
	assert.Assert(t, s.Feed.Contains("a"))
}

func TestUpdated_DoesNotInsertIntoMineOrSaved(t *testing.T) {
	s := state.Updated(state.State{}, bm("a", model.Public))

	assert.DeepEqual(t, s.Feed.IDs(), []string{"a"})
	assert.Equal(t, s.Mine.Len(), 0)
	assert.Equal(t, s.Saved.Len(), 0)
}

func TestUpdated_PublicReplacesInPlace(t *testing.T) {
	s := state.Loaded(state.State{}, state.Feed, []model.Bookmark{bm("a", model.Public), bm("b", model.Public)})

	changed := bm("b", model.Public)
	changed.Title = "renamed"
	s = state.Updated(s, changed)

	assert.DeepEqual(t, s.Feed.IDs(), []string{"a", "b"})
	assert.Equal(t, s.Feed.Get("b").Title, "renamed")
}

func TestCreated_RespectsFeedTag(t *testing.T) {
	s := state.State{FeedTag: "api"}

	untagged := bm("plain", model.Public)
	s = state.Created(s, untagged)
	assert.Assert(t, !s.Feed.Contains("plain"))
	assert.Equal(t, s.Mine.Index("plain"), 0)

	tagged := bm("tagged", model.Public)
	tagged.Tags = []string{"API"}
	s = state.Created(s, tagged)
	assert.DeepEqual(t, s.Feed.IDs(), []string{"tagged"})
}

func TestUpdated_LeavesFilteredFeedWhenTagRemoved(t *testing.T) {
	b := bm("a", model.Public)
	b.Tags = []string{"api"}
	s := state.Loaded(state.State{FeedTag: "api"}, state.Feed, []model.Bookmark{b})
	s = state.Loaded(s, state.Mine, []model.Bookmark{b})

	b.Tags = []string{"design"}
	s = state.Updated(s, b)
	assert.Assert(t, !s.Feed.Contains("a"))
	assert.DeepEqual(t, s.Mine.Get("a").Tags, []string{"design"})

	b.Tags = []string{"design", "api"}
	s = state.Updated(s, b)
	assert.Equal(t, s.Feed.Index("a"), 0)
}

func TestShareToggled_FlipsCache(t *testing.T) {
	s := state.State{Shared: model.NewSharedIDs(nil)}

	s = state.ShareToggled(s, bm("a", model.Public))
	assert.Assert(t, s.IsShared("a"))

	s = state.ShareToggled(s, bm("a", model.Public))
	assert.Assert(t, !s.IsShared("a"))
}

func TestReducers_DoNotModifyInput(t *testing.T) {
	before := state.Loaded(state.State{}, state.Feed, []model.Bookmark{bm("a", model.Public)})
	before = state.Loaded(before, state.Mine, []model.Bookmark{bm("a", model.Public)})

	_ = state.Deleted(before, "a")
	_ = state.Created(before, bm("n", model.Public))
	_ = state.WithPending(before, "a", true)

	assert.DeepEqual(t, before.Feed.IDs(), []string{"a"})
	assert.DeepEqual(t, before.Mine.IDs(), []string{"a"})
	assert.Assert(t, !before.IsPending("a"))
}

func TestSignedOutState(t *testing.T) {
	s := state.Loaded(state.State{}, state.Feed, []model.Bookmark{bm("a", model.Public)})
	s = state.Loaded(s, state.Mine, []model.Bookmark{bm("a", model.Public)})
	s.Shared = model.NewSharedIDs([]string{"a"})
	s.Session = state.Session{Token: "tok", Status: state.SignedIn}
	s.DraftUsername = "mayat"

	s = state.SignedOutState(s)

	assert.Equal(t, s.Session.Token, "")
	assert.Equal(t, s.Mine.Len(), 0)
	assert.Equal(t, s.Shared.Len(), 0)
	assert.Equal(t, s.Feed.Len(), 1)
	assert.Equal(t, s.DraftUsername, "mayat")
}

func TestStatusText(t *testing.T) {
	tests := []struct {
		session state.Session
		want    string
	}{
		{state.Session{}, "Signed out"},
		{state.Session{Status: state.Authenticating}, "Signing you in..."},
		{state.Session{Status: state.LoadingProfile}, "Loading your profile..."},
		{state.Session{Status: state.SignedIn}, "Signed in"},
		{state.Session{Status: state.SignedIn, Refreshing: true}, "Refreshing profile..."},
		{state.Session{Status: state.Failed}, "Failed"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.session.StatusText(), tt.want)
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, state.Message(state.ErrAuthRequired, "Failed to save"), "Failed to save")
	assert.Equal(t, state.Message(&model.ValidationError{Field: "url", Message: "bad"}, "x"), "bad")
}
