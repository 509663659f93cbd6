package store

import (
	"context"
	"sync"
)

// MemoryMedium is a concurrency-safe in-memory Medium. It does not survive a
// restart and is meant for tests and ephemeral deployments.
type MemoryMedium struct {
	mu sync.RWMutex

	// key: storage key, value: encoded payload
	data map[string][]byte
}

// NewMemoryMedium creates an empty MemoryMedium.
func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{
		data: make(map[string][]byte),
	}
}

// Get returns a copy of the bytes stored under key.
func (m *MemoryMedium) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Put replaces the bytes stored under key.
func (m *MemoryMedium) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Len returns the number of stored keys.
func (m *MemoryMedium) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func (m *MemoryMedium) Close() error {
	return nil
}
