package cart

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps carts in process memory. Used by tests and as a
// fallback when redis is not configured; carts then last only as long as
// the process.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[uuid.UUID]Cart)}
}

func (s *MemoryStore) Load(_ context.Context, userID uuid.UUID) (*Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[userID]
	if !ok {
		return &Cart{}, nil
	}
	// Copy the lines so callers cannot mutate the stored cart in place.
	out := Cart{Lines: make([]Line, len(c.Lines))}
	copy(out.Lines, c.Lines)
	return &out, nil
}

func (s *MemoryStore) Save(_ context.Context, userID uuid.UUID, c *Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := Cart{Lines: make([]Line, len(c.Lines))}
	copy(stored.Lines, c.Lines)
	s.carts[userID] = stored
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
	return nil
}
