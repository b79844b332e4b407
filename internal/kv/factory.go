// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// Backend types.
const (
	TypeMemory = "memory"
	TypeSQLite = "sqlite"
	TypeRedis  = "redis"
)

// Config holds configuration for store creation.
type Config struct {
	// Type is the backend type: "memory", "sqlite" or "redis"
	Type string

	// RedisURL is the Redis connection URL (only for redis type)
	// Example: redis://localhost:6379/0
	RedisURL string

	// Prefix is the key prefix for Redis (only for redis type)
	Prefix string

	// FallbackToMemory returns a memory store when Redis cannot be reached.
	FallbackToMemory bool
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() Config {
	return Config{
		Type:   TypeSQLite,
		Prefix: "psyhelp:",
	}
}

// New creates a store based on the provided configuration.
// db is required for the sqlite type and ignored otherwise.
func New(ctx context.Context, cfg Config, db *sql.DB, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Type {
	case TypeMemory, "":
		return NewMemoryStore(), nil

	case TypeSQLite:
		if db == nil {
			return nil, errors.New("sqlite store requires a database")
		}
		return NewSQLiteStore(db), nil

	case TypeRedis:
		opts := DefaultRedisOptions()
		opts.URL = cfg.RedisURL
		if cfg.Prefix != "" {
			opts.Prefix = cfg.Prefix
		}

		store, err := NewRedisStore(ctx, opts)
		if err != nil {
			if !cfg.FallbackToMemory {
				return nil, fmt.Errorf("connecting to redis: %w", err)
			}
			logger.Warn("redis unavailable, using memory store",
				"url", SanitizeRedisURL(cfg.RedisURL),
				"error", err,
			)
			return NewMemoryStore(), nil
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}
