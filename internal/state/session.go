package state

import (
	"context"
	"strings"

	"github.com/nikbrunner/studio/internal/logger"
	"github.com/nikbrunner/studio/internal/model"
)

// Status is the session lifecycle state.
type Status int

const (
	SignedOut Status = iota
	Authenticating
	LoadingProfile
	SignedIn
	Failed
)

func (s Status) String() string {
	switch s {
	case Authenticating:
		return "Signing you in..."
	case LoadingProfile:
		return "Loading your profile..."
	case SignedIn:
		return "Signed in"
	case Failed:
		return "Failed"
	default:
		return "Signed out"
	}
}

// Session is the current authentication state.
type Session struct {
	Token      string
	User       *model.User
	Status     Status
	Refreshing bool
	Err        string // last sign-in or profile error, shown next to the status
}

// Active reports whether writes may be attempted.
func (s Session) Active() bool {
	return s.Token != "" && s.Status == SignedIn
}

// StatusText is the line shown in the session indicator.
func (s Session) StatusText() string {
	if s.Refreshing {
		return "Refreshing profile..."
	}
	return s.Status.String()
}

// Username returns the signed-in username, or "".
func (s Session) Username() string {
	if s.User == nil {
		return ""
	}
	return s.User.Username
}

// Restore loads persisted preferences and, when a token was kept from a
// previous run, fetches the profile it belongs to.
func (s *Synchronizer) Restore(ctx context.Context) error {
	username, err := s.prefs.DraftUsername(ctx)
	if err != nil {
		return err
	}
	shared, err := s.prefs.SharedIDs(ctx)
	if err != nil {
		return err
	}
	token, err := s.prefs.AccessToken(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.state.DraftUsername = username
	s.state.Shared = model.NewSharedIDs(shared)
	if token == "" || s.state.Session.User != nil {
		s.mu.Unlock()
		return nil
	}
	s.state.Session = Session{Token: token, Status: LoadingProfile}
	gen := s.sessionGen
	s.mu.Unlock()

	user, err := s.svc.Me(ctx, token)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessionGen != gen {
		return ErrStaleContext
	}
	if err != nil {
		s.log.Warn("restore session failed", logger.Error(err))
		s.state.Session.Status = Failed
		s.state.Session.Err = Message(err, "Failed to load profile")
		return err
	}
	s.state.Session.User = &user
	s.state.Session.Status = SignedIn
	return nil
}

// SignIn exchanges credential for a session using the draft username, then
// loads the user's own and saved bookmarks.
func (s *Synchronizer) SignIn(ctx context.Context, credential string) error {
	s.mu.Lock()
	s.sessionGen++
	gen := s.sessionGen
	username := strings.TrimSpace(s.state.DraftUsername)
	s.state.Session = Session{Status: Authenticating}
	s.mu.Unlock()

	auth, err := s.svc.SignIn(ctx, credential, username)
	if err != nil {
		return s.signInFailed(gen, err)
	}

	// The token is written under persistMu so it cannot land after a
	// concurrent SignOut has cleared the stored session.
	s.persistMu.Lock()
	s.mu.Lock()
	if s.sessionGen != gen {
		s.mu.Unlock()
		s.persistMu.Unlock()
		return ErrStaleContext
	}
	s.state.Session.Token = auth.AccessToken
	s.state.Session.Status = LoadingProfile
	s.mu.Unlock()
	if err := s.prefs.SetAccessToken(ctx, auth.AccessToken); err != nil {
		s.log.Warn("persist access token failed", logger.Error(err))
	}
	s.persistMu.Unlock()

	user, err := s.svc.Me(ctx, auth.AccessToken)
	if err != nil {
		return s.signInFailed(gen, err)
	}

	s.mu.Lock()
	if s.sessionGen != gen {
		s.mu.Unlock()
		return ErrStaleContext
	}
	s.state.Session.User = &user
	s.state.Session.Status = SignedIn
	s.mu.Unlock()

	s.log.Info("signed in", logger.String("username", user.Username))

	// Load failures are recorded on the collections; the session stays valid.
	_ = s.LoadMine(ctx)
	_ = s.LoadSaved(ctx)
	return nil
}

func (s *Synchronizer) signInFailed(gen uint64, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessionGen != gen {
		return ErrStaleContext
	}
	s.log.Warn("sign in failed", logger.Error(err))
	s.state.Session.Status = Failed
	s.state.Session.Err = Message(err, "Login failed")
	return err
}

// RefreshProfile fetches the profile for the current token again.
func (s *Synchronizer) RefreshProfile(ctx context.Context) error {
	s.mu.Lock()
	token := s.state.Session.Token
	if token == "" {
		s.state.Session.Err = "Please sign in first."
		s.mu.Unlock()
		return ErrAuthRequired
	}
	s.state.Session.Err = ""
	s.state.Session.Refreshing = true
	gen := s.sessionGen
	s.mu.Unlock()

	user, err := s.svc.Me(ctx, token)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessionGen != gen {
		return ErrStaleContext
	}
	s.state.Session.Refreshing = false
	if err != nil {
		s.log.Warn("refresh profile failed", logger.Error(err))
		s.state.Session.Status = Failed
		s.state.Session.Err = Message(err, "Request failed")
		return err
	}
	s.state.Session.User = &user
	s.state.Session.Status = SignedIn
	return nil
}

// SignOut ends the session from any state. In-flight completions that
// belong to the old session are discarded.
func (s *Synchronizer) SignOut(ctx context.Context) error {
	s.mu.Lock()
	s.sessionGen++
	s.gen[Mine]++
	s.gen[Saved]++
	s.state = SignedOutState(s.state)
	s.mu.Unlock()

	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	if err := s.prefs.ClearSession(ctx); err != nil {
		s.log.Warn("clear session failed", logger.Error(err))
		return err
	}
	return nil
}

// SetDraftUsername stores the username requested at the next sign-in.
func (s *Synchronizer) SetDraftUsername(ctx context.Context, username string) error {
	s.mu.Lock()
	s.state.DraftUsername = username
	s.mu.Unlock()
	return s.prefs.SetDraftUsername(ctx, username)
}
