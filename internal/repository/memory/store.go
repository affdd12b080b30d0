package memory

import (
	"context"
	"sync"

	"github.com/medflow-hq/medflow/internal/repository/slots"
)

// Store is an in-memory slots.Store. It backs the offline storage mode and
// the unit tests; values are copied on the way in and out so callers never
// share buffers.
type Store struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{items: make(map[string][]byte)}
}

// Read returns the slot value or slots.ErrSlotNotFound.
func (s *Store) Read(_ context.Context, slot string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.items[slot]
	if !ok {
		return nil, slots.ErrSlotNotFound
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Write replaces the slot value.
func (s *Store) Write(_ context.Context, slot string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.items[slot] = stored
	return nil
}

// Delete removes the slot; removing an absent slot is a no-op.
func (s *Store) Delete(_ context.Context, slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, slot)
	return nil
}
