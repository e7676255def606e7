package storage_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/nikbrunner/studio/internal/storage"
)

func TestPrefs_DraftUsernameDefault(t *testing.T) {
	ctx := context.Background()
	p := storage.NewPrefs(storage.NewMemoryStorage())

	name, err := p.DraftUsername(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != storage.DefaultUsername {
		t.Errorf("expected default %q, got %q", storage.DefaultUsername, name)
	}

	if err := p.SetDraftUsername(ctx, "mayat"); err != nil {
		t.Fatal(err)
	}
	if name, _ := p.DraftUsername(ctx); name != "mayat" {
		t.Errorf("expected mayat, got %q", name)
	}
}

func TestPrefs_SharedIDsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()
	p := storage.NewPrefs(store)

	ids, err := p.SharedIDs(ctx)
	if err != nil || len(ids) != 0 {
		t.Fatalf("expected empty ids, got %v %v", ids, err)
	}

	if err := p.SetSharedIDs(ctx, []string{"bm-1", "bm-2"}); err != nil {
		t.Fatal(err)
	}
	raw, _, _ := store.Get(ctx, storage.KeySharedIDs)
	if raw != `["bm-1","bm-2"]` {
		t.Errorf("shared ids must be stored as a JSON array, got %s", raw)
	}

	ids, _ = p.SharedIDs(ctx)
	if !reflect.DeepEqual(ids, []string{"bm-1", "bm-2"}) {
		t.Errorf("SharedIDs = %v", ids)
	}
}

func TestPrefs_SharedIDsMalformed(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()
	_ = store.Set(ctx, storage.KeySharedIDs, `{"not":"an array"}`)

	ids, err := storage.NewPrefs(store).SharedIDs(ctx)
	if err != nil {
		t.Fatalf("malformed value should not error: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected empty ids, got %v", ids)
	}
}

func TestPrefs_ClearSessionKeepsUsername(t *testing.T) {
	ctx := context.Background()
	p := storage.NewPrefs(storage.NewMemoryStorage())

	_ = p.SetDraftUsername(ctx, "jonp")
	_ = p.SetAccessToken(ctx, "tok")
	_ = p.SetSharedIDs(ctx, []string{"bm-1"})

	if err := p.ClearSession(ctx); err != nil {
		t.Fatal(err)
	}

	if tok, _ := p.AccessToken(ctx); tok != "" {
		t.Errorf("token should be cleared, got %q", tok)
	}
	if ids, _ := p.SharedIDs(ctx); len(ids) != 0 {
		t.Errorf("shared ids should be cleared, got %v", ids)
	}
	if name, _ := p.DraftUsername(ctx); name != "jonp" {
		t.Errorf("username should survive sign-out, got %q", name)
	}
}
