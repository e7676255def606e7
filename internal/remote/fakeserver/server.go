// Package fakeserver is an in-memory implementation of the bookmark and
// identity HTTP API. It backs the client tests and the offline fake-server command.
package fakeserver

import (
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nikbrunner/studio/internal/logger"
	"github.com/nikbrunner/studio/internal/model"
)

// Prefix is the path the API is mounted under.
const Prefix = "/api"

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type record struct {
	seq      int64
	ownerID  string
	bookmark model.Bookmark
}

// Server holds all users, tokens and bookmarks in memory.
type Server struct {
	mu       sync.Mutex
	log      logger.Logger
	now      func() time.Time
	seq      int64
	users    map[string]*model.User // by user ID
	subjects map[string]string      // credential subject -> user ID
	tokens   map[string]string      // access token -> user ID
	records  map[string]*record     // by bookmark ID
	saves    map[string]map[string]bool
	shares   map[string]map[string]bool

	requests atomic.Int64
	callsMu  sync.Mutex
	calls    []string
}

// New creates an empty server.
func New(log logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
		users:    make(map[string]*model.User),
		subjects: make(map[string]string),
		tokens:   make(map[string]string),
		records:  make(map[string]*record),
		saves:    make(map[string]map[string]bool),
		shares:   make(map[string]map[string]bool),
	}
}

// Handler returns the router with the API mounted under Prefix.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.count)
	r.Use(Log(s.log))

	r.Route(Prefix, func(r chi.Router) {
		r.Post("/auth/google", s.handleSignIn)
		r.Get("/users/me", s.authed(s.handleMe))

		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", s.handleListPublic)
			r.Post("/", s.authed(s.handleCreate))
			r.Get("/me", s.authed(s.handleListMine))
			r.Get("/saved", s.authed(s.handleListSaved))
			r.Get("/users/{username}", s.handleListUser)
			r.Put("/{id}", s.authed(s.handleUpdate))
			r.Delete("/{id}", s.authed(s.handleDelete))
			r.Post("/{id}/save", s.authed(s.handleSave))
			r.Delete("/{id}/save", s.authed(s.handleUnsave))
			r.Post("/{id}/share", s.authed(s.handleShare))
			r.Delete("/{id}/share", s.authed(s.handleUnshare))
		})
	})

	return r
}

// Requests returns how many HTTP requests the server has received.
func (s *Server) Requests() int {
	return int(s.requests.Load())
}

// Calls returns "METHOD /path" for every request received, oldest first.
func (s *Server) Calls() []string {
	s.callsMu.Lock()
	defer s.callsMu.Unlock()
	out := make([]string, len(s.calls))
	copy(out, s.calls)
	return out
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		s.callsMu.Lock()
		s.calls = append(s.calls, r.Method+" "+r.URL.Path)
		s.callsMu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// AddUser registers a user reachable through credential subject and returns
// an access token for it.
func (s *Server) AddUser(subject string, u model.User) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == "" {
		u.ID = model.GenerateUUID()
	}
	user := u
	s.users[u.ID] = &user
	s.subjects[subject] = u.ID
	return s.issueToken(u.ID)
}

// Seed inserts a bookmark owned by ownerID as if it had been created through
// the API. Bookmarks seeded later are listed first.
func (s *Server) Seed(ownerID string, b model.Bookmark) model.Bookmark {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.ID == "" {
		b.ID = model.GenerateUUID()
	}
	if b.Visibility == "" {
		b.Visibility = model.Public
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = s.now()
		b.UpdatedAt = b.CreatedAt
	}
	b.Tags = model.NormalizeTags(b.Tags)
	if owner, ok := s.users[ownerID]; ok {
		b.Author = owner.AsAuthor()
	}

	s.seq++
	s.records[b.ID] = &record{seq: s.seq, ownerID: ownerID, bookmark: b}
	return b
}

// SetSaved marks a bookmark as saved by userID without changing its counts.
func (s *Server) SetSaved(userID, bookmarkID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mark(s.saves, userID, bookmarkID)
}

func (s *Server) issueToken(userID string) string {
	token := model.GenerateUUID()
	s.tokens[token] = userID
	return token
}

// sorted returns records matching keep, newest first. Caller holds s.mu.
func (s *Server) sorted(keep func(*record) bool) []*record {
	var out []*record
	for _, rec := range s.records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq > out[j].seq })
	return out
}

func mark(set map[string]map[string]bool, userID, bookmarkID string) bool {
	ids, ok := set[userID]
	if !ok {
		ids = make(map[string]bool)
		set[userID] = ids
	}
	if ids[bookmarkID] {
		return false
	}
	ids[bookmarkID] = true
	return true
}

func unmark(set map[string]map[string]bool, userID, bookmarkID string) bool {
	if !set[userID][bookmarkID] {
		return false
	}
	delete(set[userID], bookmarkID)
	return true
}

func hasTag(b model.Bookmark, tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
