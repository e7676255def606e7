package state

import (
	"context"

	"github.com/nikbrunner/studio/internal/logger"
	"github.com/nikbrunner/studio/internal/model"
)

// Create publishes draft. The new bookmark goes to the front of mine and,
// when public, of the feed.
func (s *Synchronizer) Create(ctx context.Context, draft model.Draft) (model.Bookmark, error) {
	token, gen, err := s.requireSession("Please sign in to publish.")
	if err != nil {
		return model.Bookmark{}, err
	}
	if err := draft.Validate(); err != nil {
		return model.Bookmark{}, err
	}

	b, err := s.svc.CreateBookmark(ctx, token, draft.Normalize())

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessionGen != gen {
		return model.Bookmark{}, ErrStaleContext
	}
	if err != nil {
		s.failLocked("create", err, "Failed to publish")
		return model.Bookmark{}, err
	}
	s.state = Created(s.state, b)
	s.state = WithNotice(s.state, NewNotice(NoticeSuccess, "Bookmark published."))
	return b, nil
}

// Update replaces the bookmark id with draft and applies the server's copy.
func (s *Synchronizer) Update(ctx context.Context, id string, draft model.Draft) (model.Bookmark, error) {
	token, gen, err := s.requireSession("Please sign in to edit.")
	if err != nil {
		return model.Bookmark{}, err
	}
	if err := draft.Validate(); err != nil {
		return model.Bookmark{}, err
	}

	b, err := s.svc.UpdateBookmark(ctx, token, id, draft.Normalize())

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessionGen != gen {
		return model.Bookmark{}, ErrStaleContext
	}
	if err != nil {
		s.failLocked("update", err, "Failed to update")
		return model.Bookmark{}, err
	}
	s.state = Updated(s.state, b)
	s.state = WithNotice(s.state, NewNotice(NoticeSuccess, "Bookmark updated."))
	return b, nil
}

// Delete removes id on the server and from every collection.
func (s *Synchronizer) Delete(ctx context.Context, id string) error {
	token, gen, err := s.requireSession("Please sign in to delete.")
	if err != nil {
		return err
	}

	err = s.svc.DeleteBookmark(ctx, token, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessionGen != gen {
		return ErrStaleContext
	}
	if err != nil {
		s.failLocked("delete", err, "Failed to delete")
		return err
	}
	s.state = Deleted(s.state, id)
	s.state = WithNotice(s.state, NewNotice(NoticeSuccess, "Bookmark deleted."))
	return nil
}

// ToggleSave saves id when it is not in the saved collection, unsaves it otherwise.
func (s *Synchronizer) ToggleSave(ctx context.Context, id string) error {
	token, gen, err := s.requireSession("Please sign in to save.")
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.state.IsPending(id) {
		s.mu.Unlock()
		return ErrInFlight
	}
	wasSaved := s.state.SavedIDs().Has(id)
	s.state = WithPending(s.state, id, true)
	s.mu.Unlock()

	var b model.Bookmark
	if wasSaved {
		b, err = s.svc.UnsaveBookmark(ctx, token, id)
	} else {
		b, err = s.svc.SaveBookmark(ctx, token, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = WithPending(s.state, id, false)
	if s.sessionGen != gen {
		return ErrStaleContext
	}
	if err != nil {
		s.failLocked("save", err, "Failed to save")
		return err
	}

	if b.ID == "" {
		b.ID = id
	}
	s.state = SaveToggled(s.state, b, !wasSaved)
	text := "Saved to your list."
	if wasSaved {
		text = "Removed from saved."
	}
	s.state = WithNotice(s.state, NewNotice(NoticeSuccess, text))
	return nil
}

// ToggleShare shares id when it is not in the share cache, unshares it
// otherwise. A new share copies "title\nurl" to the clipboard; a clipboard
// failure only changes the notice.
func (s *Synchronizer) ToggleShare(ctx context.Context, id string) error {
	token, gen, err := s.requireSession("Please sign in to share.")
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.state.IsPending(id) {
		s.mu.Unlock()
		return ErrInFlight
	}
	wasShared := s.state.IsShared(id)
	s.state = WithPending(s.state, id, true)
	s.mu.Unlock()

	var b model.Bookmark
	if wasShared {
		b, err = s.svc.UnshareBookmark(ctx, token, id)
	} else {
		b, err = s.svc.ShareBookmark(ctx, token, id)
	}

	s.mu.Lock()
	s.state = WithPending(s.state, id, false)
	if s.sessionGen != gen {
		s.mu.Unlock()
		return ErrStaleContext
	}
	if err != nil {
		s.failLocked("share", err, "Failed to share")
		s.mu.Unlock()
		return err
	}
	if b.ID == "" {
		b.ID = id
	}
	s.state = ShareToggled(s.state, b)
	s.mu.Unlock()

	s.persistShared(ctx)

	text := "Share removed."
	if !wasShared {
		text = "Share link copied."
		if err := s.clip.WriteText(b.Title + "\n" + b.URL); err != nil {
			s.log.Debug("clipboard unavailable", logger.Error(err))
			text = "Share recorded."
		}
	}

	s.mu.Lock()
	s.state = WithNotice(s.state, NewNotice(NoticeSuccess, text))
	s.mu.Unlock()
	return nil
}

// persistShared writes the current share cache. Writes are serialized so the
// last one always carries the newest set.
func (s *Synchronizer) persistShared(ctx context.Context) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.Lock()
	ids := s.state.Shared.List()
	s.mu.Unlock()

	if err := s.prefs.SetSharedIDs(ctx, ids); err != nil {
		s.log.Warn("persist shared ids failed", logger.Error(err))
	}
}

// requireSession returns the token and session generation, or records the
// sign-in notice and ErrAuthRequired.
func (s *Synchronizer) requireSession(notice string) (string, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Session.Active() {
		s.state = WithNotice(s.state, NewNotice(NoticeInfo, notice))
		return "", 0, ErrAuthRequired
	}
	return s.state.Session.Token, s.sessionGen, nil
}

// failLocked records an error notice. Caller holds s.mu.
func (s *Synchronizer) failLocked(op string, err error, fallback string) {
	s.log.Warn("remote call failed", logger.String("op", op), logger.Error(err))
	s.state = WithNotice(s.state, NewNotice(NoticeError, Message(err, fallback)))
}
