package webhook

import (
	"context"
	"log/slog"
)

// StubClient is a Client that logs the query and echoes it back.
// Useful for local development without a real webhook.
type StubClient struct {
	Logger *slog.Logger
}

// Forward logs the query and returns it as the reply.
func (s *StubClient) Forward(_ context.Context, query string) (Result, error) {
	s.Logger.Info("stub webhook", "query_len", len(query))

	return Result{Content: "echo: " + query}, nil
}
