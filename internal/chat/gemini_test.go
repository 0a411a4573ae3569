package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiStub(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGeminiClientWithBaseURL("test-key", "test-model", srv.URL)
}

func TestGeminiGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns candidate text", func(t *testing.T) {
		client := geminiStub(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1beta/models/test-model:generateContent", r.URL.Path)
			assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

			var req geminiRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Len(t, req.Contents, 1)
			require.Len(t, req.Contents[0].Parts, 1)
			assert.Contains(t, req.Contents[0].Parts[0].Text, "User: what is a fever?")

			_ = json.NewEncoder(w).Encode(map[string]any{
				"candidates": []map[string]any{
					{"content": map[string]any{"parts": []map[string]string{
						{"text": "A fever is "},
						{"text": "an elevated body temperature."},
					}}},
				},
			})
		})

		got, err := client.Generate(ctx, Prompt{
			System:  "You are a helpful healthcare assistant.",
			Message: "what is a fever?",
		})
		require.NoError(t, err)
		assert.Equal(t, "A fever is an elevated body temperature.", got)
	})

	t.Run("image part precedes text part", func(t *testing.T) {
		client := geminiStub(t, func(w http.ResponseWriter, r *http.Request) {
			var req geminiRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Len(t, req.Contents[0].Parts, 2)

			first := req.Contents[0].Parts[0]
			require.NotNil(t, first.InlineData)
			assert.Equal(t, "image/png", first.InlineData.MimeType)
			assert.Empty(t, first.Text)

			second := req.Contents[0].Parts[1]
			assert.Nil(t, second.InlineData)
			assert.NotEmpty(t, second.Text)

			_ = json.NewEncoder(w).Encode(map[string]any{
				"candidates": []map[string]any{
					{"content": map[string]any{"parts": []map[string]string{{"text": "ok"}}}},
				},
			})
		})

		_, err := client.Generate(ctx, Prompt{
			Message: "what is in this image?",
			Image:   &ImagePart{MimeType: "image/png", Data: []byte{0x89, 0x50}},
		})
		require.NoError(t, err)
	})

	t.Run("http 429 maps to quota error", func(t *testing.T) {
		client := geminiStub(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := client.Generate(ctx, Prompt{Message: "hi"})
		assert.ErrorIs(t, err, ErrQuotaExceeded)
	})

	t.Run("resource exhausted body maps to quota error", func(t *testing.T) {
		client := geminiStub(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"code": 429, "status": "RESOURCE_EXHAUSTED", "message": "quota"},
			})
		})

		_, err := client.Generate(ctx, Prompt{Message: "hi"})
		assert.ErrorIs(t, err, ErrQuotaExceeded)
	})

	t.Run("server error maps to generation failure", func(t *testing.T) {
		client := geminiStub(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := client.Generate(ctx, Prompt{Message: "hi"})
		assert.ErrorIs(t, err, ErrGenerationFailed)
	})

	t.Run("empty candidates maps to generation failure", func(t *testing.T) {
		client := geminiStub(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
		})

		_, err := client.Generate(ctx, Prompt{Message: "hi"})
		assert.ErrorIs(t, err, ErrGenerationFailed)
	})
}

func TestFlattenPrompt(t *testing.T) {
	img := "base64data"
	out := flattenPrompt(Prompt{
		System: "system text",
		History: []Entry{
			{UserMessage: "first question", BotResponse: "first answer"},
			{UserMessage: "look at this", Image: &img, BotResponse: "looks fine"},
		},
		Message: "follow up",
	})

	assert.Equal(t, "system text\n\n"+
		"User: first question\nAssistant: first answer\n"+
		"User: look at this\n[User sent an image]\nAssistant: looks fine\n"+
		"User: follow up", out)
}
