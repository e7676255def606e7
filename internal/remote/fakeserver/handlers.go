package fakeserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nikbrunner/studio/internal/model"
)

type ctxKey struct{}

// authed rejects requests without a known bearer token.
func (s *Server) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

		s.mu.Lock()
		userID, ok := s.tokens[token]
		s.mu.Unlock()

		if token == "" || !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, userID)))
	}
}

func currentUser(r *http.Request) string {
	id, _ := r.Context().Value(ctxKey{}).(string)
	return id
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDToken  string `json:"idToken"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.IDToken) == "" {
		writeError(w, http.StatusUnauthorized, "Invalid Google token")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.subjects[req.IDToken]
	if !ok {
		userID = model.GenerateUUID()
		now := s.now()
		s.users[userID] = &model.User{
			ID:        userID,
			Email:     req.IDToken + "@example.com",
			Name:      req.IDToken,
			CreatedAt: &now,
			UpdatedAt: &now,
		}
		s.subjects[req.IDToken] = userID
	}

	user := s.users[userID]
	if name := strings.TrimSpace(req.Username); name != "" && name != user.Username {
		user.Username = s.resolveUsername(name, userID)
	}
	if user.Username == "" {
		user.Username = s.resolveUsername("user", userID)
	}

	writeJSON(w, http.StatusOK, model.AuthResponse{
		AccessToken: s.issueToken(userID),
		TokenType:   "Bearer",
		ExpiresIn:   3600,
		User:        *user,
	})
}

// resolveUsername keeps requested usernames unique. Caller holds s.mu.
func (s *Server) resolveUsername(name, userID string) string {
	name = strings.ToLower(name)
	for id, u := range s.users {
		if id != userID && strings.EqualFold(u.Username, name) {
			suffix := userID
			if len(suffix) > 4 {
				suffix = suffix[:4]
			}
			return name + "-" + suffix
		}
	}
	return name
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	u, ok := s.users[currentUser(r)]
	var user model.User
	if ok {
		user = *u
	}
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleListPublic(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("tag")
	s.list(w, r, func(rec *record) bool {
		if !rec.bookmark.IsPublic() {
			return false
		}
		return strings.TrimSpace(tag) == "" || hasTag(rec.bookmark, tag)
	})
}

func (s *Server) handleListUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	s.list(w, r, func(rec *record) bool {
		return rec.bookmark.IsPublic() && strings.EqualFold(rec.bookmark.Author.Username, username)
	})
}

func (s *Server) handleListMine(w http.ResponseWriter, r *http.Request) {
	userID := currentUser(r)
	s.list(w, r, func(rec *record) bool { return rec.ownerID == userID })
}

func (s *Server) handleListSaved(w http.ResponseWriter, r *http.Request) {
	userID := currentUser(r)
	s.list(w, r, func(rec *record) bool {
		if !s.saves[userID][rec.bookmark.ID] {
			return false
		}
		return rec.bookmark.IsPublic() || rec.ownerID == userID
	})
}

func (s *Server) list(w http.ResponseWriter, r *http.Request, keep func(*record) bool) {
	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", defaultPageSize)
	if size <= 0 || size > maxPageSize {
		size = defaultPageSize
	}
	if page < 0 {
		page = 0
	}

	s.mu.Lock()
	matches := s.sorted(keep)
	s.mu.Unlock()

	resp := model.ListResponse{Items: []model.Bookmark{}, Page: page, Size: size, Total: int64(len(matches))}
	start := page * size
	for i := start; i < len(matches) && i < start+size; i++ {
		resp.Items = append(resp.Items, matches[i].bookmark)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	if draft.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if draft.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	b := s.Seed(currentUser(r), model.Bookmark{
		Title:       draft.Title,
		URL:         draft.URL,
		Description: draft.Description,
		Tags:        draft.Tags,
		Visibility:  draft.Visibility,
	})
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, status, msg := s.owned(r)
	if rec == nil {
		writeError(w, status, msg)
		return
	}

	b := rec.bookmark
	if draft.Title != "" {
		b.Title = draft.Title
	}
	if draft.URL != "" {
		b.URL = draft.URL
	}
	b.Description = draft.Description
	if draft.Tags != nil {
		b.Tags = draft.Tags
	}
	if draft.Visibility != "" {
		b.Visibility = draft.Visibility
	}
	b.UpdatedAt = s.now()
	rec.bookmark = b

	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, status, msg := s.owned(r)
	if rec == nil {
		writeError(w, status, msg)
		return
	}

	delete(s.records, rec.bookmark.ID)
	for _, ids := range s.saves {
		delete(ids, rec.bookmark.ID)
	}
	for _, ids := range s.shares {
		delete(ids, rec.bookmark.ID)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	s.toggle(w, r, s.saves, true, func(b *model.Bookmark, delta int) { b.SavedCount = max(0, b.SavedCount+delta) })
}

func (s *Server) handleUnsave(w http.ResponseWriter, r *http.Request) {
	s.toggle(w, r, s.saves, false, func(b *model.Bookmark, delta int) { b.SavedCount = max(0, b.SavedCount+delta) })
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	s.toggle(w, r, s.shares, true, func(b *model.Bookmark, delta int) { b.SharedCount = max(0, b.SharedCount+delta) })
}

func (s *Server) handleUnshare(w http.ResponseWriter, r *http.Request) {
	s.toggle(w, r, s.shares, false, func(b *model.Bookmark, delta int) { b.SharedCount = max(0, b.SharedCount+delta) })
}

// toggle records or removes a save/share. Repeated calls are idempotent and
// leave the counts unchanged.
func (s *Server) toggle(w http.ResponseWriter, r *http.Request, set map[string]map[string]bool, on bool, bump func(*model.Bookmark, int)) {
	userID := currentUser(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Bookmark not found")
		return
	}
	if !rec.bookmark.IsPublic() && rec.ownerID != userID {
		writeError(w, http.StatusForbidden, "Not allowed")
		return
	}

	if on && mark(set, userID, rec.bookmark.ID) {
		bump(&rec.bookmark, 1)
	}
	if !on && unmark(set, userID, rec.bookmark.ID) {
		bump(&rec.bookmark, -1)
	}

	writeJSON(w, http.StatusOK, rec.bookmark)
}

// owned returns the addressed record when the caller owns it. Caller holds s.mu.
func (s *Server) owned(r *http.Request) (*record, int, string) {
	rec, ok := s.records[chi.URLParam(r, "id")]
	if !ok {
		return nil, http.StatusNotFound, "Bookmark not found"
	}
	if rec.ownerID != currentUser(r) {
		return nil, http.StatusForbidden, "Not allowed"
	}
	return rec, 0, ""
}

func decodeDraft(w http.ResponseWriter, r *http.Request) (model.Draft, bool) {
	var draft model.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body")
		return draft, false
	}
	visibility := draft.Visibility
	draft = draft.Normalize()
	if visibility == "" {
		draft.Visibility = ""
	}
	if draft.Visibility != "" && !draft.Visibility.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid visibility")
		return draft, false
	}
	return draft, true
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}
