package payments

import (
	"sync"

	"github.com/watoukuang/demochain/models"
)

// Store is the in-process registry of orders keyed by id. Orders survive for
// the lifetime of the process; expiry is a status, not removal.
type Store struct {
	mu     sync.RWMutex
	orders map[string]models.Order
}

func NewStore() *Store {
	return &Store{
		orders: make(map[string]models.Order),
	}
}

func (s *Store) Insert(order models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[order.ID]; exists {
		return ErrDuplicateOrderID
	}
	s.orders[order.ID] = order

	return nil
}

func (s *Store) Get(id string) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return models.Order{}, ErrOrderNotFound
	}
	return order, nil
}

// Update applies mutate to the stored order under the lock, so the
// read-modify-write is atomic with respect to concurrent updates on the
// same id. It returns the new snapshot.
func (s *Store) Update(id string, mutate func(*models.Order)) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return models.Order{}, ErrOrderNotFound
	}
	mutate(&order)
	s.orders[id] = order

	return order, nil
}
