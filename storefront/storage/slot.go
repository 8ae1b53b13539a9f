// Package storage provides durable string-keyed slots for client-side state.
package storage

import (
	"fmt"
	"sync"
)

// Slot is a string-keyed store of string values.
type Slot interface {
	// Get returns the value under key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// Kinds accepted by Open.
const (
	KindFile   = "file"
	KindSQLite = "sqlite"
	KindMemory = "memory"
)

// Open returns the slot implementation for kind rooted at path. The caller
// closes the returned closer when done; it is a no-op for memory slots.
func Open(kind, path string) (Slot, func() error, error) {
	switch kind {
	case KindFile, "":
		slot, err := NewFile(path)
		if err != nil {
			return nil, nil, err
		}
		return slot, func() error { return nil }, nil
	case KindSQLite:
		slot, err := NewSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return slot, slot.Close, nil
	case KindMemory:
		return NewMemory(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage kind %q", kind)
	}
}

// Memory is an in-process Slot.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
