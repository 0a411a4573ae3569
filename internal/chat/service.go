package chat

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const systemInstruction = "You are a helpful healthcare assistant. Provide medical information, " +
	"answer health-related questions, and help users understand symptoms. Always remind users " +
	"to consult with healthcare professionals for serious concerns."

const (
	historyContextLimit = 100
	recentHistoryLimit  = 50
)

type SendMessageInput struct {
	Message   string
	Image     *string // optional base64 payload, data-URL header allowed
	SessionID *string // nil starts a new session
}

type Service struct {
	repo      Repository
	generator Generator
	log       *zap.Logger
}

func NewService(repo Repository, generator Generator, log *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		generator: generator,
		log:       log,
	}
}

// SendMessage forwards one turn to the generation service with the
// session's prior context and persists the exchange. A broken image
// attachment is dropped rather than failing the whole turn.
func (s *Service) SendMessage(ctx context.Context, userID string, in SendMessageInput) (*Exchange, error) {
	sessionID := uuid.NewString()
	if in.SessionID != nil && *in.SessionID != "" {
		sessionID = *in.SessionID
	}

	history, err := s.repo.ListSession(ctx, userID, sessionID, historyContextLimit)
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}

	prompt := Prompt{
		System:  systemInstruction,
		History: history,
		Message: in.Message,
	}

	if in.Image != nil && *in.Image != "" {
		part, err := decodeImage(*in.Image)
		if err != nil {
			s.log.Warn("dropping undecodable chat image", zap.String("user_id", userID), zap.Error(err))
		} else {
			prompt.Image = part
		}
	}

	response, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	entry := &Entry{
		UserID:      userID,
		SessionID:   sessionID,
		UserMessage: in.Message,
		Image:       in.Image,
		BotResponse: response,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		return nil, fmt.Errorf("persist chat entry: %w", err)
	}

	return &Exchange{
		Response:  response,
		SessionID: sessionID,
		Image:     in.Image,
	}, nil
}

func (s *Service) History(ctx context.Context, userID string) ([]Entry, error) {
	entries, err := s.repo.ListRecent(ctx, userID, recentHistoryLimit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// decodeImage accepts either a bare base64 string or a data URL like
// "data:image/png;base64,....", defaulting the MIME type to JPEG.
func decodeImage(raw string) (*ImagePart, error) {
	mimeType := "image/jpeg"
	payload := raw

	if header, rest, ok := strings.Cut(raw, ","); ok && strings.Contains(header, ";base64") {
		if strings.HasPrefix(header, "data:") {
			mimeType = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		}
		payload = rest
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	return &ImagePart{MimeType: mimeType, Data: data}, nil
}
