package store

import (
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt int64
}

// Memory keeps entries in process memory.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	closed  bool
	now     func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry), now: time.Now}
}

func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, false, ErrClosed
	}

	e, ok := m.entries[key]
	if !ok || expired(m.now(), e.expiresAt) {
		return nil, false, nil
	}

	return append([]byte(nil), e.value...), true, nil
}

func (m *Memory) Set(key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return ErrUnknownKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.entries[key] = memoryEntry{
		value:     append([]byte(nil), value...),
		expiresAt: expiresAt(m.now(), ttl),
	}

	return nil
}

func (m *Memory) Drop(prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			delete(m.entries, k)
		}
	}

	return nil
}

// Len returns the number of entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.entries = nil

	return nil
}
