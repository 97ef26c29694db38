package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/specdock/specdock/internal/spec"
)

var (
	ErrNotFound = errors.New("spec not found")
)

// MemoryRepo is an in-memory repository used for unit tests and for running
// the service without a database. Records are copied on the way in and out so
// callers cannot mutate the stored state.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*spec.Record
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*spec.Record)}
}

func (m *MemoryRepo) Create(ctx context.Context, rec *spec.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	cp := *rec
	m.store[rec.ID] = &cp
	return nil
}

func (m *MemoryRepo) Get(ctx context.Context, id string) (*spec.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.store[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) List(ctx context.Context) ([]*spec.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*spec.Record, 0, len(m.store))
	for _, r := range m.store {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *MemoryRepo) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.store)), nil
}
