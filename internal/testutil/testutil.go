// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the psyhelp project.
package testutil

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/olegiv/psyhelp/internal/kv"
	"github.com/olegiv/psyhelp/internal/store"
)

// TestLogger creates a logger that discards everything.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestSQLDB creates a temporary SQLite database with migrations applied.
// It is closed when the test ends.
func TestSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "psyhelp-test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

// TestDatabase returns a seeded Database over a fresh memory store.
func TestDatabase(t *testing.T, opts ...store.Option) (*store.Database, *kv.MemoryStore) {
	t.Helper()

	mem := kv.NewMemoryStore()
	t.Cleanup(func() { _ = mem.Close() })

	opts = append([]store.Option{store.WithLogger(TestLogger())}, opts...)
	db := store.New(mem, opts...)
	if err := db.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return db, mem
}
