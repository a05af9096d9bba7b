package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nanitex-official/chatbot/internal/types"
	"github.com/nanitex-official/chatbot/internal/webhook"
)

const (
	errMessageRequired = "Message is required"
	errNotConfigured   = "Webhook URL is not configured"
	errBodyTooLarge    = "Request body too large"
	unavailableMessage = "Unable to reach the chat service. Please try again later."
)

// Server is the HTTP gateway that accepts chat messages, forwards them to
// the configured webhook, and relays a normalized reply.
type Server struct {
	webhook webhook.Client
	router  chi.Router
	logger  *slog.Logger
}

// NewServer creates a Server wired with the given webhook client.
// A nil client is allowed; every chat request then fails with a
// configuration error and no outbound call is made.
func NewServer(client webhook.Client, logger *slog.Logger) *Server {
	s := &Server{
		webhook: client,
		logger:  logger,
	}

	if client == nil {
		logger.Warn("webhook client not configured, chat requests will fail")
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logging(logger))
	r.Use(Recovery(logger))

	r.Post("/api/chat", s.handleChat)
	r.Get("/health", s.handleHealth)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// handleChat processes POST /api/chat.
// Pipeline: validate → check config → forward → respond.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	query, err := decodeChatRequest(r)
	if err != nil {
		status, msg := http.StatusBadRequest, errMessageRequired
		if errors.Is(err, errTooLarge) {
			status, msg = http.StatusRequestEntityTooLarge, errBodyTooLarge
		}
		writeJSON(w, status, types.ChatResponse{Error: msg})
		return
	}

	if s.webhook == nil {
		s.logger.Error("chat request rejected", "error", errNotConfigured,
			"request_id", RequestIDFromContext(r.Context()))
		writeJSON(w, http.StatusInternalServerError, types.ChatResponse{Error: errNotConfigured})
		return
	}

	res, err := s.webhook.Forward(r.Context(), query)
	if err != nil {
		attrs := []any{
			"error", err,
			"request_id", RequestIDFromContext(r.Context()),
		}
		var upErr *webhook.UpstreamError
		if errors.As(err, &upErr) {
			attrs = append(attrs, "upstream_status", upErr.StatusCode, "upstream_detail", upErr.Detail)
		}
		s.logger.Error("webhook forward failed", attrs...)

		writeJSON(w, http.StatusInternalServerError, types.ChatResponse{
			Error:   err.Error(),
			Message: unavailableMessage,
		})
		return
	}

	writeJSON(w, http.StatusOK, types.ChatResponse{Reply: res.Content})
}

// handleHealth responds to GET /health with a simple liveness check.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
