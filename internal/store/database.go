// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store implements the helpdesk database: every collection is a JSON
// array kept under one key of a kv.Store, read and rewritten as a whole.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/olegiv/psyhelp/internal/kv"
)

// ErrNotFound is returned by lookups when no record matches.
var ErrNotFound = errors.New("record not found")

// Database exposes the helpdesk collections over a key/value store.
type Database struct {
	kv     kv.Store
	logger *slog.Logger
	now    func() time.Time
	intn   func(n int) int

	// mu serialises read-modify-write cycles within this process.
	mu sync.Mutex
}

// Option configures a Database.
type Option func(*Database)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Database) { d.now = now }
}

// WithRand overrides the random source used by IncrementVisitorCount.
// intn must return a value in [0, n).
func WithRand(intn func(n int) int) Option {
	return func(d *Database) { d.intn = intn }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Database) { d.logger = logger }
}

// New creates a Database on top of the given store.
func New(store kv.Store, opts ...Option) *Database {
	d := &Database{
		kv:     store,
		logger: slog.Default(),
		now:    func() time.Time { return time.Now().UTC() },
		intn:   rand.IntN,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// KV returns the underlying store.
func (d *Database) KV() kv.Store {
	return d.kv
}

// loadCollection decodes the JSON array under key. An absent key is an empty collection.
func loadCollection[T any](ctx context.Context, store kv.Store, key string) ([]T, error) {
	raw, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// saveCollection encodes items and rewrites the whole key.
func saveCollection[T any](ctx context.Context, store kv.Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// nextID returns max(existing ids)+1, or 1 for an empty collection.
func nextID[T any](items []T, id func(T) int64) int64 {
	var maxID int64
	for _, item := range items {
		if v := id(item); v > maxID {
			maxID = v
		}
	}
	return maxID + 1
}

// ReplaceCollection overwrites one collection with raw JSON as-is.
// No validation is performed against the data model.
func (d *Database) ReplaceCollection(ctx context.Context, key string, raw []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
