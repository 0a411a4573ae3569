package chat

import "context"

// Repository persists chat transcripts.
type Repository interface {
	Insert(ctx context.Context, entry *Entry) error

	// ListSession returns one session's entries in chronological order,
	// capped at limit, for rebuilding conversation context.
	ListSession(ctx context.Context, userID, sessionID string, limit int) ([]Entry, error)

	// ListRecent returns the caller's most recent entries across all
	// sessions, newest first.
	ListRecent(ctx context.Context, userID string, limit int) ([]Entry, error)
}
