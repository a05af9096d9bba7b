package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nanitex-official/chatbot/internal/types"
)

const maxResponseSize = 1 << 20 // 1 MB

// Sender delivers one message to the gateway and returns the reply text.
type Sender interface {
	Send(ctx context.Context, text string) (string, error)
}

// StatusError is a non-2xx answer from the gateway.
type StatusError struct {
	StatusCode int
	// Text is the most descriptive message the gateway supplied.
	Text string
}

func (e *StatusError) Error() string {
	return e.Text
}

// Client talks to the gateway's /api/chat endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewClient creates a Client for the gateway rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return nil, errors.New("bridge: gateway url must not be empty")
	}
	c := &Client{
		endpoint:   base + "/api/chat",
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the full chat URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send posts {"message": text} unchanged; the gateway does the trimming.
func (c *Client) Send(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(types.ChatRequest{Message: text})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", statusError(res.StatusCode, raw)
	}

	var payload types.ChatResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	return payload.Content(), nil
}

// statusError prefers the gateway's human-readable message over its terse
// error code.
func statusError(code int, raw []byte) *StatusError {
	var payload types.ChatResponse
	if json.Unmarshal(raw, &payload) == nil {
		if payload.Message != "" {
			return &StatusError{StatusCode: code, Text: payload.Message}
		}
		if payload.Error != "" {
			return &StatusError{StatusCode: code, Text: payload.Error}
		}
	}
	return &StatusError{StatusCode: code, Text: fmt.Sprintf("Request failed with status %d", code)}
}
