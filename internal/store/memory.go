// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package store

import (
	"sort"
	"sync"

	"github.com/zetaloop/DSProject2-Calculator/internal/session"
)

// Memory is an in-memory store for tests and throwaway sessions.
type Memory struct {
	mu       sync.RWMutex
	data     map[string]session.Snapshot
	metadata map[string]string
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{
		data:     make(map[string]session.Snapshot),
		metadata: make(map[string]string),
	}
}

// Get retrieves a snapshot by session id.
func (m *Memory) Get(id string) (*session.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if snap, ok := m.data[id]; ok {
		snap.Expression = append([]string(nil), snap.Expression...)
		return &snap, nil
	}
	return nil, nil
}

// Put stores a snapshot.
func (m *Memory) Put(snap session.Snapshot) error {
	if snap.ID == "" {
		return ErrEmptyID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	snap.Expression = append([]string(nil), snap.Expression...)
	m.data[snap.ID] = snap
	return nil
}

// Delete removes a snapshot by session id.
func (m *Memory) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

// List returns the stored session ids.
func (m *Memory) List() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.data))
	for id := range m.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Close is a no-op for memory store.
func (m *Memory) Close() error {
	return nil
}

// GetMetadata retrieves a metadata value by key.
func (m *Memory) GetMetadata(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.metadata[key], nil
}

// SetMetadata stores a metadata value by key.
func (m *Memory) SetMetadata(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metadata[key] = value
	return nil
}
