package transcript

import (
	"github.com/google/uuid"
	"github.com/nanitex-official/chatbot/internal/types"
)

// Store holds the entries of a single chat session.
type Store interface {
	// Append adds an entry, evicting the oldest when the store is full.
	Append(entry types.Entry) error

	// Get retrieves an entry by ID. Returns ErrNotFound if it was never
	// stored or has been evicted.
	Get(id uuid.UUID) (types.Entry, error)

	// List returns every retained entry, oldest first.
	List() []types.Entry

	// Count returns the number of entries currently retained.
	Count() int
}
