package transcript

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/nanitex-official/chatbot/internal/types"
)

var (
	ErrNotFound        = errors.New("transcript entry not found")
	ErrInvalidCapacity = errors.New("capacity must be greater than zero")
)

// MemoryStore is a bounded transcript backed by a ring buffer.
// It is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	buf   []types.Entry
	index map[uuid.UUID]int // entry ID → position in buf
	cap   int
	count int
	head  int // next write position
}

// NewMemoryStore creates a MemoryStore retaining at most capacity entries.
func NewMemoryStore(capacity int) (*MemoryStore, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &MemoryStore{
		buf:   make([]types.Entry, capacity),
		index: make(map[uuid.UUID]int, capacity),
		cap:   capacity,
	}, nil
}

// Append adds an entry. If the store is at capacity, the oldest entry is evicted.
func (s *MemoryStore) Append(entry types.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.count == s.cap {
		delete(s.index, s.buf[s.head].ID)
	}

	s.buf[s.head] = entry
	s.index[entry.ID] = s.head

	s.head = (s.head + 1) % s.cap
	if s.count < s.cap {
		s.count++
	}
	return nil
}

// Get retrieves an entry by ID.
func (s *MemoryStore) Get(id uuid.UUID) (types.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[id]
	if !ok {
		return types.Entry{}, ErrNotFound
	}
	return s.buf[pos], nil
}

// List returns the retained entries in the order they were appended.
func (s *MemoryStore) List() []types.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]types.Entry, 0, s.count)
	start := (s.head - s.count + s.cap) % s.cap
	for i := 0; i < s.count; i++ {
		result = append(result, s.buf[(start+i)%s.cap])
	}
	return result
}

// Count returns the number of entries currently retained.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}
