package chat

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memRepo struct {
	entries []Entry
}

func (r *memRepo) Insert(_ context.Context, entry *Entry) error {
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memRepo) ListSession(_ context.Context, userID, sessionID string, limit int) ([]Entry, error) {
	var out []Entry
	for _, e := range r.entries {
		if e.UserID == userID && e.SessionID == sessionID && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memRepo) ListRecent(_ context.Context, userID string, limit int) ([]Entry, error) {
	var out []Entry
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].UserID == userID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

type stubGenerator struct {
	lastPrompt Prompt
	response   string
	err        error
}

func (g *stubGenerator) Generate(_ context.Context, prompt Prompt) (string, error) {
	g.lastPrompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("new session gets generated id and persists entry", func(t *testing.T) {
		repo := &memRepo{}
		gen := &stubGenerator{response: "hello"}
		svc := NewService(repo, gen, zap.NewNop())

		exchange, err := svc.SendMessage(ctx, "user-1", SendMessageInput{Message: "hi"})
		require.NoError(t, err)
		assert.Equal(t, "hello", exchange.Response)
		_, parseErr := uuid.Parse(exchange.SessionID)
		assert.NoError(t, parseErr)

		require.Len(t, repo.entries, 1)
		assert.Equal(t, "hi", repo.entries[0].UserMessage)
		assert.Equal(t, exchange.SessionID, repo.entries[0].SessionID)
	})

	t.Run("existing session feeds history to the generator", func(t *testing.T) {
		repo := &memRepo{}
		gen := &stubGenerator{response: "second answer"}
		svc := NewService(repo, gen, zap.NewNop())

		first, err := svc.SendMessage(ctx, "user-1", SendMessageInput{Message: "first"})
		require.NoError(t, err)

		_, err = svc.SendMessage(ctx, "user-1", SendMessageInput{
			Message:   "second",
			SessionID: &first.SessionID,
		})
		require.NoError(t, err)

		require.Len(t, gen.lastPrompt.History, 1)
		assert.Equal(t, "first", gen.lastPrompt.History[0].UserMessage)
		assert.Equal(t, systemInstruction, gen.lastPrompt.System)
	})

	t.Run("valid image is decoded and attached", func(t *testing.T) {
		repo := &memRepo{}
		gen := &stubGenerator{response: "looks healthy"}
		svc := NewService(repo, gen, zap.NewNop())

		payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("pngbytes"))
		_, err := svc.SendMessage(ctx, "user-1", SendMessageInput{Message: "check this", Image: &payload})
		require.NoError(t, err)

		require.NotNil(t, gen.lastPrompt.Image)
		assert.Equal(t, "image/png", gen.lastPrompt.Image.MimeType)
		assert.Equal(t, []byte("pngbytes"), gen.lastPrompt.Image.Data)
	})

	t.Run("undecodable image is dropped not fatal", func(t *testing.T) {
		repo := &memRepo{}
		gen := &stubGenerator{response: "ok"}
		svc := NewService(repo, gen, zap.NewNop())

		bad := "%%%not-base64%%%"
		exchange, err := svc.SendMessage(ctx, "user-1", SendMessageInput{Message: "hi", Image: &bad})
		require.NoError(t, err)
		assert.Nil(t, gen.lastPrompt.Image)
		assert.Equal(t, "ok", exchange.Response)
	})

	t.Run("generator failure persists nothing", func(t *testing.T) {
		repo := &memRepo{}
		gen := &stubGenerator{err: ErrQuotaExceeded}
		svc := NewService(repo, gen, zap.NewNop())

		_, err := svc.SendMessage(ctx, "user-1", SendMessageInput{Message: "hi"})
		assert.ErrorIs(t, err, ErrQuotaExceeded)
		assert.Empty(t, repo.entries)
	})
}

func TestDecodeImage(t *testing.T) {
	t.Run("bare base64 defaults to jpeg", func(t *testing.T) {
		part, err := decodeImage(base64.StdEncoding.EncodeToString([]byte("raw")))
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", part.MimeType)
		assert.Equal(t, []byte("raw"), part.Data)
	})

	t.Run("data url keeps declared mime type", func(t *testing.T) {
		part, err := decodeImage("data:image/webp;base64," + base64.StdEncoding.EncodeToString([]byte("raw")))
		require.NoError(t, err)
		assert.Equal(t, "image/webp", part.MimeType)
	})

	t.Run("invalid payload errors", func(t *testing.T) {
		_, err := decodeImage("!!!")
		assert.Error(t, err)
	})
}
