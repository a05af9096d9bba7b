package webhook

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

	"github.com/nanitex-official/chatbot/internal/types"
)

const (
	maxResponseSize = 1 << 20 // 1 MB
	maxDetailSize   = 4096
)

// ErrNoURL is returned by NewHTTPClient when the webhook address is empty.
var ErrNoURL = errors.New("webhook: url must not be empty")

// HTTPClient posts queries to a webhook URL as JSON.
type HTTPClient struct {
	url        string
	httpClient *http.Client
}

type Option func(*HTTPClient)

// WithTimeout bounds each outbound call. Zero leaves the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		c.httpClient = &http.Client{Timeout: d}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *HTTPClient) {
		c.httpClient = httpClient
	}
}

// NewHTTPClient creates an HTTPClient for the given webhook URL.
func NewHTTPClient(url string, opts ...Option) (*HTTPClient, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, ErrNoURL
	}
	c := &HTTPClient{
		url:        url,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	return c, nil
}

// URL returns the configured webhook address.
func (c *HTTPClient) URL() string {
	return c.url
}

// Forward sends {"query": query} in a single attempt and decodes the reply.
func (c *HTTPClient) Forward(ctx context.Context, query string) (Result, error) {
	body, err := json.Marshal(types.UpstreamPayload{Query: query})
	if err != nil {
		return Result{}, fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("webhook request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, maxDetailSize))
		return Result{}, &UpstreamError{
			StatusCode: res.StatusCode,
			Status:     statusText(res),
			Detail:     string(buf),
		}
	}

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseSize))
	if err != nil {
		return Result{}, fmt.Errorf("read webhook response: %w", err)
	}

	var payload types.ChatResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Result{}, fmt.Errorf("decode webhook response: %w", err)
	}

	if !payload.HasContent() {
		return Result{}, nil
	}
	return Result{Content: payload.Content()}, nil
}

// statusText strips the numeric prefix net/http puts on Response.Status.
func statusText(res *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(res.Status, fmt.Sprintf("%d", res.StatusCode)))
	if text == "" {
		return http.StatusText(res.StatusCode)
	}
	return text
}
