// Package client implements the HTTP client for Ollama-compatible chat
// backends.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/parlance-ai/parlance/internal/schema"
)

const defaultBaseURL = "http://localhost:11434"

// Ollama talks to an Ollama server's /api/chat endpoint, non-streaming.
// It satisfies schema.ChatClient.
type Ollama struct {
	baseURL    string
	httpClient *http.Client
}

// NewOllama creates a client. baseURL empty defaults to the local server;
// timeout zero defaults to 120s (local models can be slow to first token).
func NewOllama(baseURL string, timeout time.Duration) *Ollama {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Ollama{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Model    string           `json:"model"`
	Messages []schema.Message `json:"messages"`
	Stream   bool             `json:"stream"`
}

type chatResponse struct {
	Model   string         `json:"model"`
	Message schema.Message `json:"message"`
	Done    bool           `json:"done"`
	Error   string         `json:"error,omitempty"`
}

// Chat sends the full history and returns the assistant's raw text.
func (c *Ollama) Chat(ctx context.Context, model string, history schema.Messages) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    model,
		Messages: history.Messages,
		Stream:   false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("chat request failed: %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if cr.Error != "" {
		return "", fmt.Errorf("chat backend: %s", cr.Error)
	}
	return cr.Message.Content, nil
}
