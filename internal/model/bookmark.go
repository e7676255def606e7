package model

import (
	"strings"
	"time"
)

// Visibility controls where a bookmark is listed.
type Visibility string

const (
	Public  Visibility = "PUBLIC"  // listed in the feed and on the author's profile
	Private Visibility = "PRIVATE" // visible only to its author
)

// Valid reports whether v is one of the known visibilities.
func (v Visibility) Valid() bool {
	return v == Public || v == Private
}

// Author is the denormalized snapshot of a bookmark's creator.
type Author struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// Bookmark is the canonical, server-issued representation of a published link.
// SavedCount, SharedCount and the timestamps are owned by the server.
type Bookmark struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	Visibility  Visibility `json:"visibility"`
	SavedCount  int        `json:"savedCount"`
	SharedCount int        `json:"sharedCount"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Author      Author     `json:"author"`
}

// IsPublic reports whether the bookmark may appear in the feed.
func (b Bookmark) IsPublic() bool {
	return b.Visibility == Public
}

// Draft is the user-authored input for creating or updating a bookmark.
// It is never stored locally; the server turns it into a Bookmark.
type Draft struct {
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	Visibility  Visibility `json:"visibility,omitempty"`
}

// NewDraftParams holds parameters for building a Draft from raw form input.
type NewDraftParams struct {
	Title       string
	URL         string
	Description string
	Tags        string // comma separated, as typed
	Private     bool
}

// NewDraft creates a normalized Draft from raw input.
func NewDraft(params NewDraftParams) Draft {
	visibility := Public
	if params.Private {
		visibility = Private
	}

	return Draft{
		Title:       params.Title,
		URL:         params.URL,
		Description: params.Description,
		Tags:        ParseTags(params.Tags),
		Visibility:  visibility,
	}.Normalize()
}

// DraftFrom returns a Draft pre-filled from an existing bookmark, for editing.
func DraftFrom(b Bookmark) Draft {
	tags := make([]string, len(b.Tags))
	copy(tags, b.Tags)
	return Draft{
		Title:       b.Title,
		URL:         b.URL,
		Description: b.Description,
		Tags:        tags,
		Visibility:  b.Visibility,
	}
}

// Normalize trims text fields, cleans tags and defaults visibility to PUBLIC.
func (d Draft) Normalize() Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.URL = strings.TrimSpace(d.URL)
	d.Description = strings.TrimSpace(d.Description)
	d.Tags = NormalizeTags(d.Tags)
	if d.Visibility == "" {
		d.Visibility = Public
	}
	return d
}

// ListResponse is one page of bookmarks returned by a list endpoint.
type ListResponse struct {
	Items []Bookmark `json:"items"`
	Page  int        `json:"page"`
	Size  int        `json:"size"`
	Total int64      `json:"total"`
}
