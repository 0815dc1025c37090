package storage

import (
	"sync"

	"github.com/example/agent-assist/internal/models"
)

// OrderStore defines persistence operations for submitted orders. The
// booking flow itself is never persisted here; only requests the customer
// accepted and successfully submitted.
type OrderStore interface {
	SaveOrder(o *models.Order) error
	UpdateOrder(o *models.Order) error
}

type MemoryStore struct {
	mu     sync.RWMutex
	orders map[string]*models.Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{orders: make(map[string]*models.Order)}
}

func (m *MemoryStore) SaveOrder(o *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = o
	return nil
}

func (m *MemoryStore) UpdateOrder(o *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = o
	return nil
}

func (m *MemoryStore) Get(id string) (*models.Order, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	return o, ok
}
