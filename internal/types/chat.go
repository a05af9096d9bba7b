package types

import "strings"

// NoResponseText is shown when a successful reply carries no content.
const NoResponseText = "No response from bot"

// ChatRequest is the body a client posts to /api/chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// UpstreamPayload is the body forwarded to the external webhook.
type UpstreamPayload struct {
	Query string `json:"query"`
}

// ChatResponse is the normalized response shape shared by the gateway and
// the client bridge. A webhook may answer with either Reply or Message; the
// gateway itself fills Error (and a human-readable Message) on failure.
type ChatResponse struct {
	Reply   string `json:"reply,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Content returns the reply text: Reply first, then Message, then
// NoResponseText.
func (r ChatResponse) Content() string {
	if text, ok := r.content(); ok {
		return text
	}
	return NoResponseText
}

// HasContent reports whether Reply or Message is set.
func (r ChatResponse) HasContent() bool {
	_, ok := r.content()
	return ok
}

func (r ChatResponse) content() (string, bool) {
	if r.Reply != "" {
		return r.Reply, true
	}
	if r.Message != "" {
		return r.Message, true
	}
	return "", false
}

// NormalizeMessage trims surrounding whitespace. The second result is false
// when nothing is left.
func NormalizeMessage(msg string) (string, bool) {
	trimmed := strings.TrimSpace(msg)
	return trimmed, trimmed != ""
}
