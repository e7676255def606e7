package model_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/nikbrunner/studio/internal/model"
)

func bm(id string, visibility model.Visibility, tags ...string) model.Bookmark {
	return model.Bookmark{
		ID:         id,
		Title:      "Title " + id,
		URL:        "https://example.com/" + id,
		Tags:       tags,
		Visibility: visibility,
	}
}

func TestBookmark_JSONShape(t *testing.T) {
	avatar := "https://img.example.com/a.png"
	b := model.Bookmark{
		ID:          "bm-1",
		Title:       "Design notes",
		URL:         "https://example.com/x",
		Description: "notes",
		Tags:        []string{"api", "design"},
		Visibility:  model.Public,
		SavedCount:  3,
		SharedCount: 1,
		CreatedAt:   time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2025, 1, 16, 10, 30, 0, 0, time.UTC),
		Author:      model.Author{ID: "u1", Name: "Maya Torres", Username: "mayat", AvatarURL: &avatar},
	}

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	for _, key := range []string{"id", "title", "url", "description", "tags", "visibility", "savedCount", "sharedCount", "createdAt", "updatedAt", "author"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing JSON key %q", key)
		}
	}
	if raw["visibility"] != "PUBLIC" {
		t.Errorf("visibility = %v, want PUBLIC", raw["visibility"])
	}
}

func TestDraft_VisibilityOmittedWhenEmpty(t *testing.T) {
	data, err := json.Marshal(model.Draft{Title: "t", URL: "https://x.dev"})
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	var raw map[string]any
	_ = json.Unmarshal(data, &raw)
	if _, ok := raw["visibility"]; ok {
		t.Error("expected visibility to be omitted for an empty draft value")
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"api, design", []string{"api", "design"}},
		{"API, design, api", []string{"api", "design"}},
		{"  Go ,, ,rust", []string{"go", "rust"}},
		{"", []string{}},
		{"   ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := model.ParseTags(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTags(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMergeTags(t *testing.T) {
	got := model.MergeTags([]string{"api"}, "Design, api,ux")
	want := []string{"api", "design", "ux"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeTags = %v, want %v", got, want)
	}
}

func TestNewDraft_DefaultsAndNormalizes(t *testing.T) {
	d := model.NewDraft(model.NewDraftParams{
		Title: "  Design notes ",
		URL:   " https://example.com/x",
		Tags:  "api, design",
	})

	if d.Title != "Design notes" {
		t.Errorf("Title = %q", d.Title)
	}
	if d.URL != "https://example.com/x" {
		t.Errorf("URL = %q", d.URL)
	}
	if d.Visibility != model.Public {
		t.Errorf("Visibility = %q, want PUBLIC", d.Visibility)
	}
	if !reflect.DeepEqual(d.Tags, []string{"api", "design"}) {
		t.Errorf("Tags = %v", d.Tags)
	}

	private := model.NewDraft(model.NewDraftParams{Title: "x", URL: "https://x.dev", Private: true})
	if private.Visibility != model.Private {
		t.Errorf("expected PRIVATE, got %q", private.Visibility)
	}
}

func TestDraft_Validate(t *testing.T) {
	tests := []struct {
		name      string
		draft     model.Draft
		wantField string
	}{
		{"valid", model.Draft{Title: "Go", URL: "https://go.dev"}, ""},
		{"missing title", model.Draft{URL: "https://go.dev"}, "title"},
		{"blank title", model.Draft{Title: "   ", URL: "https://go.dev"}, "title"},
		{"missing url", model.Draft{Title: "Go"}, "url"},
		{"relative url", model.Draft{Title: "Go", URL: "go.dev/doc"}, "url"},
		{"no host", model.Draft{Title: "Go", URL: "https://"}, "url"},
		{"bad visibility", model.Draft{Title: "Go", URL: "https://go.dev", Visibility: "FRIENDS"}, "visibility"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verr *model.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestCollection_PrependAndOrder(t *testing.T) {
	c := model.NewCollection([]model.Bookmark{bm("a", model.Public), bm("b", model.Public)})
	c = c.Prepend(bm("c", model.Public))

	want := []string{"c", "a", "b"}
	if !reflect.DeepEqual(c.IDs(), want) {
		t.Errorf("IDs = %v, want %v", c.IDs(), want)
	}

	// Prepending an existing id moves it to the front without duplicating it
	c = c.Prepend(bm("b", model.Public))
	want = []string{"b", "c", "a"}
	if !reflect.DeepEqual(c.IDs(), want) {
		t.Errorf("IDs = %v, want %v", c.IDs(), want)
	}
}

func TestCollection_ReplaceByID(t *testing.T) {
	c := model.NewCollection([]model.Bookmark{bm("a", model.Public), bm("b", model.Public)})

	updated := bm("b", model.Public)
	updated.SavedCount = 9
	c = c.ReplaceByID(updated)

	if got := c.Get("b"); got == nil || got.SavedCount != 9 {
		t.Errorf("expected b to be replaced, got %+v", got)
	}
	if c.Index("b") != 1 {
		t.Errorf("replace must keep position, got index %d", c.Index("b"))
	}

	// Absent ids are never inserted
	c = c.ReplaceByID(bm("z", model.Public))
	if c.Contains("z") {
		t.Error("ReplaceByID must not insert missing ids")
	}
}

func TestCollection_UpsertFront(t *testing.T) {
	c := model.NewCollection([]model.Bookmark{bm("a", model.Public), bm("b", model.Public)})

	c = c.UpsertFront(bm("z", model.Public))
	if c.Index("z") != 0 {
		t.Errorf("missing id should be prepended, got index %d", c.Index("z"))
	}

	changed := bm("b", model.Public)
	changed.Title = "changed"
	c = c.UpsertFront(changed)
	if c.Index("b") != 2 || c.Get("b").Title != "changed" {
		t.Errorf("present id should be replaced in place, ids=%v", c.IDs())
	}
}

func TestCollection_RemoveByID(t *testing.T) {
	c := model.NewCollection([]model.Bookmark{bm("a", model.Public), bm("b", model.Public)})
	c = c.RemoveByID("a").RemoveByID("missing")

	if !reflect.DeepEqual(c.IDs(), []string{"b"}) {
		t.Errorf("IDs = %v", c.IDs())
	}
}

func TestCollection_DoesNotMutateReceiver(t *testing.T) {
	original := model.NewCollection([]model.Bookmark{bm("a", model.Public), bm("b", model.Public)})

	changed := bm("a", model.Public)
	changed.Title = "changed"
	_ = original.ReplaceByID(changed)
	_ = original.RemoveByID("b")
	_ = original.Prepend(bm("c", model.Public))

	if original.Get("a").Title != "Title a" || original.Len() != 2 {
		t.Errorf("receiver was mutated: %+v", original.Items())
	}
}

func TestCollection_ReplaceDropsDuplicates(t *testing.T) {
	c := model.NewCollection([]model.Bookmark{bm("a", model.Public), bm("a", model.Public), bm("b", model.Public)})
	if c.Len() != 2 {
		t.Errorf("expected 2 items, got %d", c.Len())
	}
}

func TestSavedIDs_IsProjection(t *testing.T) {
	saved := model.NewCollection([]model.Bookmark{bm("a", model.Public)})
	if !model.SavedIDs(saved).Has("a") {
		t.Error("expected a in saved ids")
	}

	saved = saved.RemoveByID("a")
	if model.SavedIDs(saved).Has("a") {
		t.Error("saved ids must follow the collection")
	}
}

func TestSharedIDs_Toggle(t *testing.T) {
	shared := model.NewSharedIDs([]string{"b", "a"})

	next := shared.Toggle("a")
	if next.Has("a") {
		t.Error("expected a to be removed")
	}
	if !shared.Has("a") {
		t.Error("Toggle must not modify the receiver")
	}

	next = next.Toggle("c")
	if !reflect.DeepEqual(next.List(), []string{"b", "c"}) {
		t.Errorf("List = %v", next.List())
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Maya Torres", "MT"},
		{"ella", "E"},
		{"  jon   van patel ", "JP"},
		{"", "U"},
	}
	for _, tt := range tests {
		if got := model.Initials(tt.name, "U"); got != tt.want {
			t.Errorf("Initials(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestAvatarColor_Stable(t *testing.T) {
	if model.AvatarColor("") != "#1d7874" {
		t.Errorf("empty seed should use first colour")
	}
	if model.AvatarColor("mayat") != model.AvatarColor("mayat") {
		t.Error("colour must be stable for a seed")
	}
	// "a" = 97 -> 97 % 6 = 1
	if got := model.AvatarColor("a"); got != "#ff8552" {
		t.Errorf("AvatarColor(a) = %q", got)
	}
}

func TestTrendingTags(t *testing.T) {
	items := []model.Bookmark{
		bm("1", model.Public, "go", "api"),
		bm("2", model.Public, "api", "design"),
		bm("3", model.Public, "api", "go"),
		bm("4", model.Public, "ux"),
	}

	got := model.TrendingTags(items, 3)
	want := []string{"api", "go", "design"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TrendingTags = %v, want %v", got, want)
	}
}

func TestFilterByTag(t *testing.T) {
	items := []model.Bookmark{
		bm("1", model.Public, "go"),
		bm("2", model.Public, "api"),
	}
	if got := model.FilterByTag(items, "go"); len(got) != 1 || got[0].ID != "1" {
		t.Errorf("FilterByTag(go) = %+v", got)
	}
	if got := model.FilterByTag(items, ""); len(got) != 2 {
		t.Errorf("empty tag should return all items, got %d", len(got))
	}
}
