package state

import (
	"errors"

	"github.com/nikbrunner/studio/internal/model"
	"github.com/nikbrunner/studio/internal/remote"
)

var (
	// ErrAuthRequired is returned when a write is attempted without a session.
	ErrAuthRequired = errors.New("sign in required")
	// ErrStaleContext is returned when a completion was discarded because the
	// session or the request it belonged to has been superseded.
	ErrStaleContext = errors.New("stale completion discarded")
	// ErrInFlight is returned when a toggle for the same bookmark is still running.
	ErrInFlight = errors.New("action already in progress")
)

// Message returns the text to show for err: the server's message when there
// is one, otherwise fallback.
func Message(err error, fallback string) string {
	var remoteErr *remote.Error
	if errors.As(err, &remoteErr) && remoteErr.Message != "" {
		return remoteErr.Message
	}
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	return fallback
}
