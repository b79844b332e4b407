// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package kv provides the key/value storage that backs every psyhelp collection.
// Values are opaque text blobs (JSON documents); the store never interprets them.
package kv

import "context"

// Store defines the interface for storage backends.
// All implementations must be safe for concurrent use.
type Store interface {
	// Get retrieves the value stored under key.
	// Returns nil and ErrNotFound if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Has reports whether key is present.
	Has(ctx context.Context, key string) (bool, error)

	// Close releases any resources held by the store.
	Close() error
}

// Pinger is an optional interface for backends with a remote connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Error represents an error type for storage operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrNotFound indicates the key is not present in the store.
	ErrNotFound Error = "key not found"

	// ErrClosed indicates the store has been closed.
	ErrClosed Error = "store closed"
)

// Storage keys used by the application.
const (
	KeyUsers         = "users"
	KeyCategories    = "categories"
	KeyRequests      = "requests"
	KeyNews          = "news"
	KeyVisitorCount  = "visitorCount"
	KeyCurrentUser   = "currentUser"
	KeyDBInitialized = "db_initialized"
)
