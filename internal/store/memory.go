// internal/store/memory.go
//
// Key-value persistence for the challenge's JSON blobs, plus the in-memory
// implementation.
//
// Characteristics of the memory store:
//   - Values are kept in a map keyed by blob name.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts; used in tests and with STORE=memory.

package store

import (
	"context"
	"sync"
)

// Well-known keys.
const (
	KeyVehicles = "vehicles"
	KeyScores   = "scores"
)

// Store persists string blobs by key.
// Implementations may be backed by memory (this file) or SQLite.
type Store interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set persists or replaces the value for key.
	Set(ctx context.Context, key, value string) error

	// Delete removes the given keys; missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error

	// Close releases resources.
	Close() error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu   sync.RWMutex      // guards data
	data map[string]string // keyed by blob name
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{data: make(map[string]string)}
}

func (m *memory) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memory) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memory) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memory) Close() error { return nil }
