package chain

import (
	"context"
	"sync"
)

// MemoryRegister keeps the height in process memory for tests and local
// runs.
type MemoryRegister struct {
	mu     sync.RWMutex
	height uint64
}

func NewMemoryRegister() *MemoryRegister {
	return &MemoryRegister{}
}

func (r *MemoryRegister) CurrentHeight(_ context.Context) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.height, nil
}

func (r *MemoryRegister) SetHeight(_ context.Context, height uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.height = height
	return nil
}

var _ Register = (*MemoryRegister)(nil)
