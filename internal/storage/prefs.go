package storage

import (
	"context"
	"encoding/json"
	"strings"
)

// Preference keys.
const (
	KeyDraftUsername = "draftUsername"
	KeySharedIDs     = "sharedBookmarkIds"
	KeyAccessToken   = "accessToken"
)

// DefaultUsername is used until the user types one.
const DefaultUsername = "yourname"

// Prefs is a typed view over a Store holding the client's durable state.
type Prefs struct {
	store Store
}

// NewPrefs wraps store.
func NewPrefs(store Store) *Prefs {
	return &Prefs{store: store}
}

// DraftUsername returns the username requested at sign-in.
func (p *Prefs) DraftUsername(ctx context.Context) (string, error) {
	v, ok, err := p.store.Get(ctx, KeyDraftUsername)
	if err != nil {
		return "", err
	}
	if !ok || v == "" {
		return DefaultUsername, nil
	}
	return v, nil
}

// SetDraftUsername persists the username typed by the user.
func (p *Prefs) SetDraftUsername(ctx context.Context, username string) error {
	return p.store.Set(ctx, KeyDraftUsername, username)
}

// SharedIDs returns the locally cached shared bookmark ids.
// A missing or malformed value yields an empty list.
func (p *Prefs) SharedIDs(ctx context.Context) ([]string, error) {
	v, ok, err := p.store.Get(ctx, KeySharedIDs)
	if err != nil {
		return nil, err
	}
	if !ok || strings.TrimSpace(v) == "" {
		return []string{}, nil
	}

	var ids []string
	if err := json.Unmarshal([]byte(v), &ids); err != nil {
		return []string{}, nil
	}
	return ids, nil
}

// SetSharedIDs persists ids as a JSON array.
func (p *Prefs) SetSharedIDs(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return p.store.Set(ctx, KeySharedIDs, string(data))
}

// AccessToken returns the persisted session token, or "" when signed out.
func (p *Prefs) AccessToken(ctx context.Context) (string, error) {
	v, _, err := p.store.Get(ctx, KeyAccessToken)
	return v, err
}

// SetAccessToken persists the session token.
func (p *Prefs) SetAccessToken(ctx context.Context, token string) error {
	return p.store.Set(ctx, KeyAccessToken, token)
}

// ClearSession forgets the token and the shared-id cache. The draft username survives.
func (p *Prefs) ClearSession(ctx context.Context) error {
	return p.store.Delete(ctx, KeyAccessToken, KeySharedIDs)
}
