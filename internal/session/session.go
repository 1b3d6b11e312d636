package session

import (
	"context"
	"errors"
	"time"
	"unicode"

	"github.com/paperdesk/paperdesk/internal/domain"
)

// Session is a lightweight, locally chosen identity: a display name plus
// a generated id. It is not authenticated and lives only as long as the
// backend keeps it; the one-vote-per-paper guard is scoped to it, so a
// fresh session may vote again. That reset is intentional.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// MaxUsernameLen caps display names.
const MaxUsernameLen = 23

// Store keeps sessions and their vote guards.
type Store interface {
	// Create validates the display name and mints a new session.
	Create(ctx context.Context, username string) (*Session, error)

	// Get resolves a session id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// HasVoted reports whether this session already cast the given vote
	// kind on the paper.
	HasVoted(ctx context.Context, sessionID, paperID string, kind domain.VoteKind) (bool, error)

	// MarkVoted records that this session cast the given vote kind on
	// the paper.
	MarkVoted(ctx context.Context, sessionID, paperID string, kind domain.VoteKind) error

	// Delete ends a session.
	Delete(ctx context.Context, id string) error
}

// ValidateUsername enforces the display-name rules: non-empty, letters
// and digits only, at most MaxUsernameLen runes.
func ValidateUsername(username string) error {
	if username == "" {
		return domain.ErrNoUsername
	}
	runes := []rune(username)
	if len(runes) > MaxUsernameLen {
		return domain.ErrInvalidUsername
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return domain.ErrInvalidUsername
		}
	}
	return nil
}
