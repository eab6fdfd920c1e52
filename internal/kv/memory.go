package kv

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an in-memory Store used for tests and ephemeral sessions. A
// positive byte limit makes Save reject oversized payloads, which lets tests
// exercise the quota-exceeded persistence path.
type Memory struct {
	mu    sync.RWMutex
	data  map[string][]byte
	limit int
}

// NewMemory constructs an unbounded in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// NewMemoryWithLimit constructs an in-memory store that rejects any payload
// larger than limit bytes.
func NewMemoryWithLimit(limit int) *Memory {
	return &Memory{data: make(map[string][]byte), limit: limit}
}

// Driver reports the memory driver identifier.
func (m *Memory) Driver() Driver { return DriverMemory }

// Load returns a copy of the payload stored under key.
func (m *Memory) Load(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payload, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), payload...), true, nil
}

// Save stores a copy of payload under key.
func (m *Memory) Save(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.limit > 0 && len(payload) > m.limit {
		return fmt.Errorf("%w: %d bytes over %d byte limit", ErrCapacityExceeded, len(payload), m.limit)
	}
	m.data[key] = append([]byte(nil), payload...)
	return nil
}
