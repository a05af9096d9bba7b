package types

import (
	"time"

	"github.com/google/uuid"
)

// Author identifies who wrote a transcript entry.
type Author string

const (
	AuthorUser Author = "user"
	AuthorBot  Author = "bot"
)

// Entry is a single line of a chat transcript.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	Author    Author    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEntry stamps text with a fresh ID and the current time.
func NewEntry(author Author, text string) Entry {
	return Entry{
		ID:        uuid.New(),
		Author:    author,
		Text:      text,
		CreatedAt: time.Now(),
	}
}
