package memory

import (
	"context"
	"sync"

	"govledger/contexts/ledger-apps/counter/ports"
)

type Store struct {
	mu    sync.RWMutex
	count uint64
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) GetCount(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count, nil
}

func (s *Store) SetCount(_ context.Context, value uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count = value
	return nil
}

var _ ports.Repository = (*Store)(nil)
