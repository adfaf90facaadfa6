package repo

import (
	"context"
	"fmt"
	"sync"

	"github.com/naminara/ferry-logbook/internal/domain"
)

// memSlotRepo is an in-memory SlotRepo. It backs tests and DATABASE_URL-less
// development runs; nothing survives a process restart.
type memSlotRepo struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemorySlotRepo returns an empty in-memory SlotRepo.
func NewMemorySlotRepo() SlotRepo {
	return &memSlotRepo{slots: make(map[string][]byte)}
}

func (r *memSlotRepo) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.slots[key]
	if !ok {
		return nil, fmt.Errorf("repo.SlotRepo.Get %q: %w", key, domain.ErrNotFound)
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (r *memSlotRepo) Put(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	r.slots[key] = stored
	return nil
}

func (r *memSlotRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.slots, key)
	return nil
}
