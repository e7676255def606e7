package state

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/nikbrunner/studio/internal/clipboard"
	"github.com/nikbrunner/studio/internal/logger"
	"github.com/nikbrunner/studio/internal/model"
	"github.com/nikbrunner/studio/internal/remote"
	"github.com/nikbrunner/studio/internal/storage"
)

// DefaultPageSize is the page size of full-replace fetches.
const DefaultPageSize = 50

// Service is the remote bookmark and identity API. *remote.Client implements it.
type Service interface {
	ListBookmarks(ctx context.Context, page remote.Page) (model.ListResponse, error)
	ListUserBookmarks(ctx context.Context, username string, page remote.Page) (model.ListResponse, error)
	ListMine(ctx context.Context, token string, page remote.Page) (model.ListResponse, error)
	ListSaved(ctx context.Context, token string, page remote.Page) (model.ListResponse, error)

	CreateBookmark(ctx context.Context, token string, draft model.Draft) (model.Bookmark, error)
	UpdateBookmark(ctx context.Context, token, id string, draft model.Draft) (model.Bookmark, error)
	DeleteBookmark(ctx context.Context, token, id string) error
	SaveBookmark(ctx context.Context, token, id string) (model.Bookmark, error)
	UnsaveBookmark(ctx context.Context, token, id string) (model.Bookmark, error)
	ShareBookmark(ctx context.Context, token, id string) (model.Bookmark, error)
	UnshareBookmark(ctx context.Context, token, id string) (model.Bookmark, error)

	SignIn(ctx context.Context, idToken, username string) (model.AuthResponse, error)
	Me(ctx context.Context, token string) (model.User, error)
}

// Options holds parameters for New.
type Options struct {
	Service   Service
	Prefs     *storage.Prefs
	Clipboard clipboard.Writer // optional, defaults to Unsupported
	Logger    logger.Logger    // optional
	PageSize  int              // optional, defaults to DefaultPageSize
}

// Synchronizer is the single owner of State. Every remote call runs outside
// the lock; its result is applied under the lock through a reducer, and only
// if the request is still current.
type Synchronizer struct {
	mu    sync.Mutex
	state State

	// gen is bumped each time a collection fetch starts; sessionGen each time
	// the session changes. A completion carrying an older value is stale.
	gen        map[List]uint64
	sessionGen uint64

	// persistMu orders writes of the share cache.
	persistMu sync.Mutex

	svc      Service
	prefs    *storage.Prefs
	clip     clipboard.Writer
	log      logger.Logger
	pageSize int
}

// New creates a signed-out Synchronizer. Call Restore to load persisted state.
func New(opts Options) *Synchronizer {
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.Unsupported{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Prefs == nil {
		opts.Prefs = storage.NewPrefs(storage.NewMemoryStorage())
	}

	return &Synchronizer{
		state: State{
			Shared:        model.NewSharedIDs(nil),
			Pending:       model.NewIDSet(),
			DraftUsername: storage.DefaultUsername,
		},
		gen:      make(map[List]uint64),
		svc:      opts.Service,
		prefs:    opts.Prefs,
		clip:     opts.Clipboard,
		log:      opts.Logger,
		pageSize: opts.PageSize,
	}
}

// Snapshot returns the current state. The value is safe to keep.
func (s *Synchronizer) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LoadFeed replaces the feed with the first page of public bookmarks,
// filtered by tag when tag is not empty.
func (s *Synchronizer) LoadFeed(ctx context.Context, tag string) error {
	tag = model.CleanTag(tag)
	s.mu.Lock()
	s.state.FeedTag = tag
	s.mu.Unlock()

	return s.load(ctx, Feed, false, "Failed to load feed", func(ctx context.Context, _ string) (model.ListResponse, error) {
		return s.svc.ListBookmarks(ctx, remote.Page{Page: 0, Size: s.pageSize, Tag: tag})
	})
}

// LoadMine replaces mine with the signed-in user's bookmarks.
func (s *Synchronizer) LoadMine(ctx context.Context) error {
	return s.load(ctx, Mine, true, "Failed to load bookmarks", func(ctx context.Context, token string) (model.ListResponse, error) {
		return s.svc.ListMine(ctx, token, remote.Page{Page: 0, Size: s.pageSize})
	})
}

// LoadSaved replaces saved with the signed-in user's saved bookmarks.
func (s *Synchronizer) LoadSaved(ctx context.Context) error {
	return s.load(ctx, Saved, true, "Failed to load saved bookmarks", func(ctx context.Context, token string) (model.ListResponse, error) {
		return s.svc.ListSaved(ctx, token, remote.Page{Page: 0, Size: s.pageSize})
	})
}

// LoadUser replaces the profile listing with username's public bookmarks.
// A load for a different username started later wins.
func (s *Synchronizer) LoadUser(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	s.mu.Lock()
	s.state.ProfileUser = username
	s.mu.Unlock()

	return s.load(ctx, Profile, false, "Failed to load", func(ctx context.Context, _ string) (model.ListResponse, error) {
		return s.svc.ListUserBookmarks(ctx, username, remote.Page{Page: 0, Size: s.pageSize})
	})
}

// Refresh reloads the feed and, with a session, mine and saved, concurrently.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	s.mu.Lock()
	tag := s.state.FeedTag
	signedIn := s.state.Session.Token != ""
	s.mu.Unlock()

	loads := []func(context.Context) error{
		func(ctx context.Context) error { return s.LoadFeed(ctx, tag) },
	}
	if signedIn {
		loads = append(loads, s.LoadMine, s.LoadSaved)
	}

	errs := make([]error, len(loads))
	var wg sync.WaitGroup
	for i, load := range loads {
		i, load := i, load
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := load(ctx); err != nil && !errors.Is(err, ErrStaleContext) {
				errs[i] = err
			}
		}()
	}
	wg.Wait()

	return errors.Join(errs...)
}

type fetchFunc func(ctx context.Context, token string) (model.ListResponse, error)

func (s *Synchronizer) load(ctx context.Context, name List, authed bool, fallback string, fetch fetchFunc) error {
	s.mu.Lock()
	token := s.state.Session.Token
	if authed && token == "" {
		s.state = s.state.withCollection(name, model.Collection{})
		s.mu.Unlock()
		return ErrAuthRequired
	}
	s.gen[name]++
	gen, sessionGen := s.gen[name], s.sessionGen
	s.state = Loading(s.state, name)
	s.mu.Unlock()

	resp, err := fetch(ctx, token)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen[name] != gen || (authed && s.sessionGen != sessionGen) {
		s.log.Debug("discarding stale load", logger.String("list", string(name)))
		return ErrStaleContext
	}
	if err != nil {
		s.log.Warn("load failed", logger.String("list", string(name)), logger.Error(err))
		s.state = LoadFailed(s.state, name, Message(err, fallback))
		return err
	}
	s.state = Loaded(s.state, name, resp.Items)
	return nil
}
