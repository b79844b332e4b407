// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package kv

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
)

// MemoryStore is a thread-safe in-memory store.
// It is the backend used by tests and by the "memory" storage type.
type MemoryStore struct {
	data   sync.Map
	closed atomic.Bool
}

// NewMemoryStore creates an empty memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get retrieves a value from the store.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	val, ok := s.data.Load(key)
	if !ok {
		return nil, ErrNotFound
	}

	// Return a copy to prevent mutation
	stored := val.([]byte)
	result := make([]byte, len(stored))
	copy(result, stored)
	return result, nil
}

// Set stores a value under key.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	if s.closed.Load() {
		return ErrClosed
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	s.data.Store(key, valueCopy)
	return nil
}

// Delete removes a key from the store.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	if s.closed.Load() {
		return ErrClosed
	}

	s.data.Delete(key)
	return nil
}

// Has checks if a key exists in the store.
func (s *MemoryStore) Has(_ context.Context, key string) (bool, error) {
	if s.closed.Load() {
		return false, ErrClosed
	}

	_, ok := s.data.Load(key)
	return ok, nil
}

// keys returns all keys in the store, sorted.
func (s *MemoryStore) keys() []string {
	var keys []string
	s.data.Range(func(key, _ any) bool {
		keys = append(keys, key.(string))
		return true
	})
	sort.Strings(keys)
	return keys
}

// Close marks the store closed. Further operations return ErrClosed.
func (s *MemoryStore) Close() error {
	s.closed.Store(true)
	return nil
}

var _ Store = (*MemoryStore)(nil)
