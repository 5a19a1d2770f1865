package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/patwell/ipgate/pkg/errors"
)

type memoryEntry struct {
	data      []byte
	createdAt time.Time
	ttl       time.Duration
}

// Memory is the in-process Cache backend: a map with lazy expiry.  Entries
// are never swept; a stale entry is simply ignored on read until the next Set
// overwrites it.  Unbounded growth within a process lifetime is accepted.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// MemoryOption configures a Memory cache.
type MemoryOption func(*Memory)

// WithClock replaces the time source, letting tests advance a virtual clock
// past the TTL.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

// NewMemory returns an empty in-process cache.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || m.now().Sub(entry.createdAt) >= entry.ttl {
		return ErrMiss
	}
	if err := json.Unmarshal(entry.data, dest); err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "failed to decode cached value")
	}
	return nil
}

func (m *Memory) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "failed to encode value for cache")
	}

	m.mu.Lock()
	m.entries[key] = memoryEntry{data: data, createdAt: m.now(), ttl: ttl}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Size(_ context.Context) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries), true
}

func (m *Memory) Ping(_ context.Context) error { return nil }
