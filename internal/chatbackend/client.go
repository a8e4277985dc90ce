// Package chatbackend is the dojo's only component that does I/O against a
// language-model backend (spec §4.1). Every other component routes through
// the Backend interface here; failures always surface as ErrBackend and are
// tolerated by the caller (the mutator falls back to the parent prompt, the
// arena records an error string as the guardian's response).
package chatbackend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ErrBackend is the single error kind a Backend call can surface.
var ErrBackend = errors.New("chat backend call failed")

// Role is the speaker of one turn in a chat completion request.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a chat-completion conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Backend is the chat-completion interface every other component routes
// through. Implementations do I/O; spec §5 treats it as a suspension point.
type Backend interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// Config configures an HTTPBackend pointed at a locally-hosted,
// OpenAI-chat-completion-shaped model server.
type Config struct {
	URL        string
	Model      string
	APIKey     string
	MaxRetries int
	Timeout    time.Duration
}

// HTTPBackend calls a local chat-completion endpoint over HTTP, retrying
// transient failures before surfacing ErrBackend.
type HTTPBackend struct {
	url        string
	model      string
	apiKey     string
	maxRetries int
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPBackend creates a Backend backed by a local HTTP chat-completion
// server (e.g. Ollama or vLLM's OpenAI-compatible endpoint).
func NewHTTPBackend(cfg Config, logger *zap.Logger) *HTTPBackend {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &HTTPBackend{
		url:        cfg.URL,
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		maxRetries: cfg.MaxRetries,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Chat sends the turn list to the backend and returns the assistant's
// text, making up to maxRetries attempts in total on transport, status or
// parse failure.
func (b *HTTPBackend) Chat(ctx context.Context, messages []Message) (string, error) {
	body, err := json.Marshal(chatRequest{Model: b.model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrBackend, err)
	}

	var lastErr error
	for attempt := 0; attempt < b.maxRetries; attempt++ {
		if attempt > 0 {
			b.logger.Warn("retrying chat backend request",
				zap.Int("attempt", attempt+1),
				zap.Int("max_retries", b.maxRetries))
			select {
			case <-time.After(time.Duration(attempt) * time.Second):
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", ErrBackend, ctx.Err())
			}
		}

		text, err := b.doRequest(ctx, body)
		if err == nil {
			return text, nil
		}
		lastErr = err
		b.logger.Error("chat backend request failed", zap.Error(err), zap.Int("attempt", attempt+1))
	}

	return "", fmt.Errorf("%w: after %d attempts: %v", ErrBackend, b.maxRetries, lastErr)
}

func (b *HTTPBackend) doRequest(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if b.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+b.apiKey)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("backend returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty choices in backend response")
	}

	return parsed.Choices[0].Message.Content, nil
}
