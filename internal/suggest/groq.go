package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	groqAPIURL       = "https://api.groq.com/openai/v1/chat/completions"
	defaultGroqModel = "llama-3.3-70b-versatile"
)

// Groq talks to Groq's OpenAI-compatible chat completions endpoint.
type Groq struct {
	APIKey     string
	Model      string
	Endpoint   string
	HTTPClient *http.Client
}

func NewGroq(apiKey, model string) *Groq {
	if strings.TrimSpace(model) == "" || strings.HasPrefix(model, "gemini") {
		model = defaultGroqModel
	}
	return &Groq{
		APIKey:     apiKey,
		Model:      model,
		Endpoint:   groqAPIURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Groq) Name() string { return "groq" }

func (c *Groq) Suggest(ctx context.Context, req Request) ([]string, error) {
	text, err := c.complete(ctx, suggestPrompt(req), true)
	if err != nil {
		return nil, err
	}
	return parseSuggestions(text)
}

func (c *Groq) Categorize(ctx context.Context, item, language string) (string, error) {
	return c.complete(ctx, categorizePrompt(item, language), false)
}

func (c *Groq) complete(ctx context.Context, prompt string, jsonMode bool) (string, error) {
	reqBody := map[string]any{
		"model": c.Model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": 0.3,
	}
	if jsonMode {
		reqBody["response_format"] = map[string]string{"type": "json_object"}
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = groqAPIURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("groq api error: status=%d body=%s", resp.StatusCode, string(b))
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("no content generated")
	}
	return out.Choices[0].Message.Content, nil
}
