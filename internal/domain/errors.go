package domain

import "errors"

// Error kinds surfaced by the core. Callers match them with errors.Is;
// every failed mutation leaves the store untouched.
var (
	// ErrNotFound is returned when a mutation targets an unknown paper id.
	ErrNotFound = errors.New("paper not found")

	// ErrDuplicateID is returned when an insert collides with an existing id.
	ErrDuplicateID = errors.New("paper id already exists")

	// ErrAlreadyVoted is returned when a session re-votes on a paper.
	// The guard is per running session, not per identity: restarting the
	// session allows voting again. Intentional product limitation.
	ErrAlreadyVoted = errors.New("already voted in this session")

	// ErrEmptyText is returned when a comment has no body.
	ErrEmptyText = errors.New("comment text is empty")

	// ErrNoUsername is returned when a vote or comment arrives without a
	// named session.
	ErrNoUsername = errors.New("no username set")

	// ErrInvalidUsername is returned when a display name fails validation.
	ErrInvalidUsername = errors.New("invalid username")

	// ErrSourceUnavailable is returned when the paper source cannot be
	// reached. Propagated as-is; retrying is the source's business.
	ErrSourceUnavailable = errors.New("paper source unavailable")
)
