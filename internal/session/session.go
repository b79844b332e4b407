// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the HTTP session manager and adapts it to the
// auth.SessionStore interface.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"

	"github.com/olegiv/psyhelp/internal/kv"
	"github.com/olegiv/psyhelp/internal/model"
)

// Lifetime is the absolute session lifetime.
const Lifetime = 24 * time.Hour

// New creates a session manager. Sessions are kept in SQLite when db is
// non-nil and in process memory otherwise.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()

	if db != nil {
		sm.Store = sqlite3store.New(db)
	} else {
		sm.Store = memstore.New()
	}

	sm.Lifetime = Lifetime
	sm.Cookie.Name = "psyhelp_session"
	sm.Cookie.Path = "/"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev
	if !isDev {
		sm.Cookie.Name = "__Host-session"
	}

	return sm
}

// ScsSession stores the logged-in snapshot in the per-browser session.
// The context passed to its methods must come from a request wrapped by
// the manager's LoadAndSave.
type ScsSession struct {
	sm *scs.SessionManager
}

// NewScsSession wraps sm.
func NewScsSession(sm *scs.SessionManager) *ScsSession {
	return &ScsSession{sm: sm}
}

// Load returns the snapshot or nil when the session is anonymous.
func (s *ScsSession) Load(ctx context.Context) (*model.SessionUser, error) {
	raw := s.sm.GetBytes(ctx, kv.KeyCurrentUser)
	if len(raw) == 0 {
		return nil, nil
	}

	var user model.SessionUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return &user, nil
}

// Save renews the session token and stores the snapshot.
func (s *ScsSession) Save(ctx context.Context, user model.SessionUser) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := s.sm.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}
	s.sm.Put(ctx, kv.KeyCurrentUser, raw)
	return nil
}

// Clear destroys the session.
func (s *ScsSession) Clear(ctx context.Context) error {
	return s.sm.Destroy(ctx)
}
