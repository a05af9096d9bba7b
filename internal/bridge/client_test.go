package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nanitex-official/chatbot/internal/server"
	"github.com/nanitex-official/chatbot/internal/types"
	"github.com/nanitex-official/chatbot/internal/webhook"
)

// newGateway starts a real gateway in front of a fake webhook that answers
// with status and body.
func newGateway(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(upstream.Close)

	hook, err := webhook.NewHTTPClient(upstream.URL)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gw := httptest.NewServer(server.NewServer(hook, logger))
	t.Cleanup(gw.Close)
	return gw
}

func TestNewClient_EmptyURL(t *testing.T) {
	_, err := NewClient("  ")
	require.Error(t, err)
}

func TestNewClient_Endpoint(t *testing.T) {
	cases := []struct {
		base string
		want string
	}{
		{"http://localhost:8080", "http://localhost:8080/api/chat"},
		{"http://localhost:8080/", "http://localhost:8080/api/chat"},
		{" https://chat.example.com/root ", "https://chat.example.com/root/api/chat"},
	}
	for _, tc := range cases {
		c, err := NewClient(tc.base)
		require.NoError(t, err)
		require.Equal(t, tc.want, c.Endpoint(), "base=%q", tc.base)
	}
}

func TestSend_PostsRawMessage(t *testing.T) {
	type seen struct {
		method, path, contentType string
		body                      types.ChatRequest
	}
	reqs := make(chan seen, 1)
	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := seen{method: r.Method, path: r.URL.Path, contentType: r.Header.Get("Content-Type")}
		_ = json.NewDecoder(r.Body).Decode(&s.body)
		reqs <- s
		_, _ = io.WriteString(w, `{"reply":"ok"}`)
	}))
	defer gw.Close()

	c, err := NewClient(gw.URL)
	require.NoError(t, err)

	reply, err := c.Send(context.Background(), "  Hello  ")
	require.NoError(t, err)
	require.Equal(t, "ok", reply)

	got := <-reqs
	require.Equal(t, http.MethodPost, got.method)
	require.Equal(t, "/api/chat", got.path)
	require.Equal(t, "application/json", got.contentType)
	require.Equal(t, "  Hello  ", got.body.Message)
}

func TestSend_ReplyThroughGateway(t *testing.T) {
	gw := newGateway(t, http.StatusOK, `{"reply":"Hi there"}`)
	c, err := NewClient(gw.URL)
	require.NoError(t, err)

	reply, err := c.Send(context.Background(), "Hello")
	require.NoError(t, err)
	require.Equal(t, "Hi there", reply)
}

func TestSend_MessageFieldThroughGateway(t *testing.T) {
	gw := newGateway(t, http.StatusOK, `{"message":"Hi"}`)
	c, err := NewClient(gw.URL)
	require.NoError(t, err)

	reply, err := c.Send(context.Background(), "Hello")
	require.NoError(t, err)
	require.Equal(t, "Hi", reply)
}

func TestSend_FallbackText(t *testing.T) {
	gw := newGateway(t, http.StatusOK, `{}`)
	c, err := NewClient(gw.URL)
	require.NoError(t, err)

	reply, err := c.Send(context.Background(), "Hello")
	require.NoError(t, err)
	require.Equal(t, types.NoResponseText, reply)
}

func TestSend_FieldPrecedenceFromLegacyGateway(t *testing.T) {
	// A gateway that passes the webhook body through unchanged.
	cases := map[string]string{
		`{"reply":"a","message":"b"}`: "a",
		`{"message":"b"}`:             "b",
		`{"other":"c"}`:               types.NoResponseText,
	}
	for body, want := range cases {
		gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, body)
		}))
		c, err := NewClient(gw.URL)
		require.NoError(t, err)

		reply, err := c.Send(context.Background(), "Hello")
		require.NoError(t, err)
		require.Equal(t, want, reply, "body=%s", body)
		gw.Close()
	}
}

func TestSend_UpstreamFailureThroughGateway(t *testing.T) {
	gw := newGateway(t, http.StatusServiceUnavailable, `{"error":"down"}`)
	c, err := NewClient(gw.URL)
	require.NoError(t, err)

	_, err = c.Send(context.Background(), "Hello")
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	require.Equal(t, "Unable to reach the chat service. Please try again later.", statusErr.Error())
}

func TestSend_BadRequestUsesErrorField(t *testing.T) {
	gw := newGateway(t, http.StatusOK, `{"reply":"unused"}`)
	c, err := NewClient(gw.URL)
	require.NoError(t, err)

	// The bridge never sends blank input, but the client itself does not guard.
	_, err = c.Send(context.Background(), "   ")
	require.Error(t, err)
	require.Equal(t, "Message is required", err.Error())
}

func TestSend_StatusWithoutJSONBody(t *testing.T) {
	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer gw.Close()

	c, err := NewClient(gw.URL)
	require.NoError(t, err)

	_, err = c.Send(context.Background(), "Hello")
	require.Error(t, err)
	require.Equal(t, "Request failed with status 502", err.Error())
}

func TestSend_MalformedSuccessBody(t *testing.T) {
	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>")
	}))
	defer gw.Close()

	c, err := NewClient(gw.URL)
	require.NoError(t, err)

	_, err = c.Send(context.Background(), "Hello")
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode chat response")
}

func TestSend_TransportError(t *testing.T) {
	gw := httptest.NewServer(http.NotFoundHandler())
	url := gw.URL
	gw.Close()

	c, err := NewClient(url)
	require.NoError(t, err)

	_, err = c.Send(context.Background(), "Hello")
	require.Error(t, err)
	require.Contains(t, err.Error(), "chat request failed")
}
