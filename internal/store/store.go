package store

import (
	"context"
	"sync"
)

// KV is the abstraction over different durable key-value backends. The
// record layer above it only ever touches two keys, so the surface stays
// minimal: read a slot, overwrite a slot, drop a slot.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
	Healthy(ctx context.Context) bool
	Close() error
}

// Memory is a map-backed KV for dev/testing.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get returns the value for key and whether it was present.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set overwrites the value for key.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Del removes key if present.
func (m *Memory) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Healthy always reports true for the in-memory backend.
func (m *Memory) Healthy(_ context.Context) bool { return true }

// Close is a no-op.
func (m *Memory) Close() error { return nil }
