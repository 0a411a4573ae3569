package chat

import (
	"context"
	"errors"
)

var (
	// ErrQuotaExceeded surfaces generation-service rate limiting; callers
	// should wait and retry rather than resubmit immediately.
	ErrQuotaExceeded = errors.New("generation service quota exceeded")

	ErrGenerationFailed = errors.New("generation service error")
)

// ImagePart is an inline image attached to a prompt.
type ImagePart struct {
	MimeType string
	Data     []byte
}

// Prompt carries everything the generation service needs for one turn.
type Prompt struct {
	System  string
	History []Entry
	Message string
	Image   *ImagePart
}

// Generator abstracts the external text generation service so the chat
// service can be exercised without network access.
type Generator interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}
