package chat

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// GeminiClient calls the Gemini generateContent REST endpoint. It keeps to
// plain HTTP+JSON so the only moving part is the request shape.
type GeminiClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

func NewGeminiClient(apiKey, model string) *GeminiClient {
	return &GeminiClient{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    defaultGeminiBaseURL,
		apiKey:     apiKey,
		model:      model,
	}
}

// NewGeminiClientWithBaseURL exists for tests pointed at a stub server.
func NewGeminiClientWithBaseURL(apiKey, model, baseURL string) *GeminiClient {
	c := NewGeminiClient(apiKey, model)
	c.baseURL = baseURL
	return c
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (c *GeminiClient) Generate(ctx context.Context, prompt Prompt) (string, error) {
	// With a single image the model wants the image part ahead of the text.
	var parts []geminiPart
	if prompt.Image != nil {
		parts = append(parts, geminiPart{
			InlineData: &geminiInlineData{
				MimeType: prompt.Image.MimeType,
				Data:     base64.StdEncoding.EncodeToString(prompt.Image.Data),
			},
		})
	}
	parts = append(parts, geminiPart{Text: flattenPrompt(prompt)})

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: parts}},
	})
	if err != nil {
		return "", fmt.Errorf("encode generation request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call generation service: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("read generation response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", ErrQuotaExceeded
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", ErrGenerationFailed, resp.StatusCode, truncate(string(raw), 200))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode generation response: %w", err)
	}
	if parsed.Error != nil {
		if parsed.Error.Status == "RESOURCE_EXHAUSTED" {
			return "", ErrQuotaExceeded
		}
		return "", fmt.Errorf("%w: %s", ErrGenerationFailed, parsed.Error.Message)
	}
	if len(parsed.Candidates) == 0 {
		return "", fmt.Errorf("%w: empty candidate list", ErrGenerationFailed)
	}

	var sb strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}

	return sb.String(), nil
}

// flattenPrompt folds the system instruction and prior turns into a single
// text block, the same transcript format the conversation was started with.
func flattenPrompt(prompt Prompt) string {
	var sb strings.Builder
	sb.WriteString(prompt.System)
	sb.WriteString("\n\n")

	for _, e := range prompt.History {
		sb.WriteString("User: ")
		sb.WriteString(e.UserMessage)
		sb.WriteString("\n")
		if e.Image != nil {
			sb.WriteString("[User sent an image]\n")
		}
		sb.WriteString("Assistant: ")
		sb.WriteString(e.BotResponse)
		sb.WriteString("\n")
	}

	sb.WriteString("User: ")
	sb.WriteString(prompt.Message)

	return sb.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
