package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/nanitex-official/chatbot/internal/types"
)

const maxBodySize = 1 << 20 // 1 MB

var (
	errTooLarge     = errors.New("request body exceeds 1MB limit")
	errNoMessage    = errors.New("message is missing")
	errNotAString   = errors.New("message must be a string")
	errBlankMessage = errors.New("message is empty")
)

// decodeChatRequest reads {"message": string} from the request body and
// returns the trimmed message.
func decodeChatRequest(r *http.Request) (string, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize+1))
	if err != nil {
		return "", fmt.Errorf("reading request body: %w", err)
	}
	if len(body) > maxBodySize {
		return "", errTooLarge
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", fmt.Errorf("request body is not a JSON object: %w", err)
	}

	raw, ok := fields["message"]
	if !ok {
		return "", errNoMessage
	}

	var msg string
	if err := json.Unmarshal(raw, &msg); err != nil {
		return "", errNotAString
	}

	trimmed, ok := types.NormalizeMessage(msg)
	if !ok {
		return "", errBlankMessage
	}
	return trimmed, nil
}
