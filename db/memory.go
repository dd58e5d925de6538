package db

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an in-process Store. Contents are lost on restart.
type Memory[V any] struct {
	mu      sync.RWMutex
	records map[string]V
}

func NewMemory[V any]() *Memory[V] {
	return &Memory[V]{records: make(map[string]V)}
}

func (m *Memory[V]) Get(ctx context.Context, id string) (V, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.records[id]
	if !ok {
		var zero V
		return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return value, nil
}

func (m *Memory[V]) Set(ctx context.Context, id string, value V) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[id] = value
	return nil
}

func (m *Memory[V]) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(m.records, id)
	return nil
}

// Len reports the number of stored records.
func (m *Memory[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
