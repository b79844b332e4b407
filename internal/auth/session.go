// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/olegiv/psyhelp/internal/kv"
	"github.com/olegiv/psyhelp/internal/model"
)

// SessionStore holds the logged-in user snapshot.
// Load returns nil, nil when nobody is logged in.
type SessionStore interface {
	Load(ctx context.Context) (*model.SessionUser, error)
	Save(ctx context.Context, user model.SessionUser) error
	Clear(ctx context.Context) error
}

// KVSession keeps a single snapshot under the currentUser key of a kv.Store.
// It models one logged-in user per storage and is the single-user backend
// used by tests. The HTTP server always uses ScsSession, which keeps one
// snapshot per browser session.
type KVSession struct {
	store kv.Store
}

// NewKVSession creates a KVSession backed by store.
func NewKVSession(store kv.Store) *KVSession {
	return &KVSession{store: store}
}

// Load implements SessionStore.
func (s *KVSession) Load(ctx context.Context) (*model.SessionUser, error) {
	raw, err := s.store.Get(ctx, kv.KeyCurrentUser)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var user model.SessionUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return &user, nil
}

// Save implements SessionStore.
func (s *KVSession) Save(ctx context.Context, user model.SessionUser) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	return s.store.Set(ctx, kv.KeyCurrentUser, raw)
}

// Clear implements SessionStore.
func (s *KVSession) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, kv.KeyCurrentUser)
}
