package chat

import "time"

// Entry is one persisted exchange: the user's message (optionally with a
// base64 image) and the assistant's reply, keyed by user and session.
type Entry struct {
	UserID      string    `json:"user_id"`
	SessionID   string    `json:"session_id"`
	UserMessage string    `json:"user_message"`
	Image       *string   `json:"image,omitempty"`
	BotResponse string    `json:"bot_response"`
	Timestamp   time.Time `json:"timestamp"`
}

// Exchange is the response returned to the caller after a round trip to
// the generation service.
type Exchange struct {
	Response  string  `json:"response"`
	SessionID string  `json:"session_id"`
	Image     *string `json:"image,omitempty"`
}
