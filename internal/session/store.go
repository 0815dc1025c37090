package session

import (
	"context"
	"sync"

	"github.com/example/agent-assist/internal/booking"
)

// MemoryStore keeps snapshots in-process; the zero-setup default and the
// test double. Copies in and out so callers never share the stored value.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]booking.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]booking.Session)}
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*booking.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, booking.ErrSessionNotFound
	}
	cp := s
	return &cp, nil
}

func (m *MemoryStore) Put(ctx context.Context, s *booking.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
