package repository

import (
	"context"
	"sync"

	"github.com/paylane/payment-service/internal/models"
)

// MemoryStore is the in-process TransactionStore. The store owns the durable
// copy of every record: values are copied on the way in and out, so callers
// can never mutate stored state through a retained pointer.
type MemoryStore struct {
	mu           sync.RWMutex
	transactions map[string]models.Transaction
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{transactions: make(map[string]models.Transaction)}
}

func (s *MemoryStore) Save(_ context.Context, transaction *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[transaction.ID] = *transaction
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	transaction, ok := s.transactions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &transaction, nil
}

func (s *MemoryStore) Exists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.transactions[id]
	return ok, nil
}
