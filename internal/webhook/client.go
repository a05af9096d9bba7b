package webhook

import (
	"context"
	"fmt"
	"net/http"
)

// Result is a successfully decoded webhook reply.
type Result struct {
	// Content is the reply text picked from the webhook body. Empty when the
	// body carried neither "reply" nor "message".
	Content string
}

// UpstreamError reports a webhook that answered with a non-2xx status.
type UpstreamError struct {
	StatusCode int
	Status     string
	Detail     string
}

func (e *UpstreamError) Error() string {
	text := e.Status
	if text == "" {
		text = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("webhook responded with status %d: %s", e.StatusCode, text)
}

// HTTPStatusCode returns the upstream status code.
func (e *UpstreamError) HTTPStatusCode() int {
	return e.StatusCode
}

// Client forwards a single query to the external webhook.
// Failures are either *UpstreamError or transport/decoding errors.
type Client interface {
	Forward(ctx context.Context, query string) (Result, error)
}
