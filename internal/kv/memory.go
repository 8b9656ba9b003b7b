package kv

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Memory is an in-process Store. Fail lets tests simulate a broken backend.
type Memory struct {
	mu     sync.RWMutex
	data   map[string][]byte
	fail   error
	failOn map[string]bool // ops that fail; empty means all
	closed bool
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Fail makes the named operations ("get", "set", "delete") return err
// wrapped in ErrUnavailable. With no ops, every operation fails.
// Fail(nil) restores normal behavior.
func (m *Memory) Fail(err error, ops ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = err
	m.failOn = make(map[string]bool, len(ops))
	for _, op := range ops {
		m.failOn[op] = true
	}
}

func (m *Memory) check(op, key string) error {
	if m.closed {
		return fmt.Errorf("%w: %s %s: store closed", ErrUnavailable, op, key)
	}
	if m.fail == nil {
		return nil
	}
	if len(m.failOn) > 0 && !m.failOn[op] {
		return nil
	}
	return fmt.Errorf("%w: %s %s: %w", ErrUnavailable, op, key, m.fail)
}

// Get returns a copy of the value stored under key.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.check("get", key); err != nil {
		return nil, err
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value under key.
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("set", key); err != nil {
		return err
	}
	m.data[key] = append([]byte{}, value...)
	return nil
}

// Delete removes the keys.
func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("delete", strings.Join(keys, ",")); err != nil {
		return err
	}
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

// Keys lists stored keys with the given prefix, sorted.
func (m *Memory) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.check("get", prefix); err != nil {
		return nil, err
	}
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Close marks the store closed; later calls fail with ErrUnavailable.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
