package state_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/studio/internal/clipboard"
	"github.com/nikbrunner/studio/internal/model"
	"github.com/nikbrunner/studio/internal/remote"
	"github.com/nikbrunner/studio/internal/remote/fakeserver"
	"github.com/nikbrunner/studio/internal/state"
	"github.com/nikbrunner/studio/internal/storage"
)

// fixture wires a Synchronizer to an in-memory API server seeded with:
//
//	bm-1  public, owned by mayat, tag api
//	bm-2  public, owned by "me", tag design, saved by "me"
type fixture struct {
	syncer *state.Synchronizer
	server *fakeserver.Server
	prefs  *storage.Prefs
	clip   *clipboard.Memory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	fs := fakeserver.New(nil)
	fs.AddUser("maya-sub", model.User{ID: "u-maya", Name: "Maya Torres", Username: "mayat"})
	fs.AddUser("me-sub", model.User{ID: "u-me", Name: "Me", Username: "me"})
	fs.Seed("u-maya", model.Bookmark{ID: "bm-1", Title: "One", URL: "https://one.example", Tags: []string{"api"}})
	fs.Seed("u-me", model.Bookmark{ID: "bm-2", Title: "Two", URL: "https://two.example", Tags: []string{"design"}})
	fs.SetSaved("u-me", "bm-2")

	srv := httptest.NewServer(fs.Handler())
	t.Cleanup(srv.Close)

	prefs := storage.NewPrefs(storage.NewMemoryStorage())
	clip := &clipboard.Memory{}

	return &fixture{
		syncer: state.New(state.Options{
			Service:   remote.NewClient(srv.URL+fakeserver.Prefix, 5*time.Second),
			Prefs:     prefs,
			Clipboard: clip,
		}),
		server: fs,
		prefs:  prefs,
		clip:   clip,
	}
}

// signIn signs in as "me" and loads the feed.
func (f *fixture) signIn(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	assert.NilError(t, f.syncer.SetDraftUsername(ctx, "me"))
	assert.NilError(t, f.syncer.SignIn(ctx, "me-sub"))
	assert.NilError(t, f.syncer.LoadFeed(ctx, ""))
}

func (f *fixture) lastCall() string {
	calls := f.server.Calls()
	if len(calls) == 0 {
		return ""
	}
	return calls[len(calls)-1]
}

func noticeText(s state.State) string {
	if s.Notice == nil {
		return ""
	}
	return s.Notice.Text
}

var errNotStubbed = errors.New("not stubbed")

// stubService implements state.Service with overridable funcs. Calls that
// are not stubbed fail.
type stubService struct {
	listBookmarks func(ctx context.Context, page remote.Page) (model.ListResponse, error)
	listMine      func(ctx context.Context, token string, page remote.Page) (model.ListResponse, error)
	signIn        func(ctx context.Context, idToken, username string) (model.AuthResponse, error)
	me            func(ctx context.Context, token string) (model.User, error)
	save          func(ctx context.Context, token, id string) (model.Bookmark, error)
	share         func(ctx context.Context, token, id string) (model.Bookmark, error)
	update        func(ctx context.Context, token, id string, draft model.Draft) (model.Bookmark, error)
}

func (s *stubService) ListBookmarks(ctx context.Context, page remote.Page) (model.ListResponse, error) {
	if s.listBookmarks == nil {
		return model.ListResponse{}, errNotStubbed
	}
	return s.listBookmarks(ctx, page)
}

func (s *stubService) ListUserBookmarks(context.Context, string, remote.Page) (model.ListResponse, error) {
	return model.ListResponse{}, errNotStubbed
}

func (s *stubService) ListMine(ctx context.Context, token string, page remote.Page) (model.ListResponse, error) {
	if s.listMine == nil {
		return model.ListResponse{}, errNotStubbed
	}
	return s.listMine(ctx, token, page)
}

func (s *stubService) ListSaved(context.Context, string, remote.Page) (model.ListResponse, error) {
	return model.ListResponse{Items: []model.Bookmark{}}, nil
}

func (s *stubService) CreateBookmark(context.Context, string, model.Draft) (model.Bookmark, error) {
	return model.Bookmark{}, errNotStubbed
}

func (s *stubService) UpdateBookmark(ctx context.Context, token, id string, draft model.Draft) (model.Bookmark, error) {
	if s.update == nil {
		return model.Bookmark{}, errNotStubbed
	}
	return s.update(ctx, token, id, draft)
}

func (s *stubService) DeleteBookmark(context.Context, string, string) error {
	return errNotStubbed
}

func (s *stubService) SaveBookmark(ctx context.Context, token, id string) (model.Bookmark, error) {
	if s.save == nil {
		return model.Bookmark{}, errNotStubbed
	}
	return s.save(ctx, token, id)
}

func (s *stubService) UnsaveBookmark(context.Context, string, string) (model.Bookmark, error) {
	return model.Bookmark{}, errNotStubbed
}

func (s *stubService) ShareBookmark(ctx context.Context, token, id string) (model.Bookmark, error) {
	if s.share == nil {
		return model.Bookmark{}, errNotStubbed
	}
	return s.share(ctx, token, id)
}

func (s *stubService) UnshareBookmark(context.Context, string, string) (model.Bookmark, error) {
	return model.Bookmark{}, errNotStubbed
}

func (s *stubService) SignIn(ctx context.Context, idToken, username string) (model.AuthResponse, error) {
	if s.signIn == nil {
		return model.AuthResponse{AccessToken: "tok", User: model.User{ID: "u1", Username: username}}, nil
	}
	return s.signIn(ctx, idToken, username)
}

func (s *stubService) Me(ctx context.Context, token string) (model.User, error) {
	if s.me == nil {
		return model.User{ID: "u1", Username: "me"}, nil
	}
	return s.me(ctx, token)
}
