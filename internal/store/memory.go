// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"sync"
)

// NewMemoryPrefs returns a process-local [Prefs]. Nothing survives a restart.
func NewMemoryPrefs() Prefs {
	return &prefs{backend: &memoryPrefs{values: make(map[string]string)}}
}

type memoryPrefs struct {
	mu     sync.RWMutex
	values map[string]string
}

func (m *memoryPrefs) get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryPrefs) set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memoryPrefs) remove(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

// MemoryKeychain is a process-local [Keychain].
type MemoryKeychain struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemoryKeychain returns an empty [MemoryKeychain].
func NewMemoryKeychain() *MemoryKeychain {
	return &MemoryKeychain{items: make(map[string][]byte)}
}

func (m *MemoryKeychain) Get(_ context.Context, label string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	blob, ok := m.items[label]
	if !ok {
		return nil, ErrKeychainItemNotFound
	}
	return append([]byte(nil), blob...), nil
}

func (m *MemoryKeychain) Set(_ context.Context, label string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[label] = append([]byte(nil), blob...)
	return nil
}

func (m *MemoryKeychain) Delete(_ context.Context, label string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, label)
	return nil
}

// Len returns the number of stored items.
func (m *MemoryKeychain) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
