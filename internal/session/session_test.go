// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/olegiv/psyhelp/internal/auth"
	"github.com/olegiv/psyhelp/internal/model"
	"github.com/olegiv/psyhelp/internal/testutil"
)

var _ auth.SessionStore = (*ScsSession)(nil)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return testutil.TestSQLDB(t)
}

func TestNew_DevMode(t *testing.T) {
	sm := New(setupTestDB(t), true)

	if sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = false in dev mode")
	}
	if sm.Cookie.Name != "psyhelp_session" {
		t.Errorf("Cookie.Name = %q, want psyhelp_session", sm.Cookie.Name)
	}
	if sm.Lifetime != 24*time.Hour {
		t.Errorf("Lifetime = %v, want 24h", sm.Lifetime)
	}
	if !sm.Cookie.HttpOnly {
		t.Error("expected Cookie.HttpOnly = true")
	}
	if sm.Cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("expected SameSite = Lax, got %v", sm.Cookie.SameSite)
	}
}

func TestNew_ProductionMode(t *testing.T) {
	sm := New(setupTestDB(t), false)

	if !sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = true in production mode")
	}
	if sm.Cookie.Name != "__Host-session" {
		t.Errorf("expected __Host-session cookie name, got %q", sm.Cookie.Name)
	}
}

func TestNew_MemoryStore(t *testing.T) {
	sm := New(nil, true)
	if sm.Store == nil {
		t.Fatal("expected Store to be initialized")
	}
}

func TestScsSession_RoundTrip(t *testing.T) {
	sm := New(nil, true)
	sess := NewScsSession(sm)
	want := model.SessionUser{ID: 2, FullName: "Иван", Login: "user", Email: "user@example.com", Role: model.RoleUser}

	var cookie *http.Cookie

	login := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := sess.Save(r.Context(), want); err != nil {
			t.Errorf("Save: %v", err)
		}
	}))
	rec := httptest.NewRecorder()
	login.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
	for _, c := range rec.Result().Cookies() {
		if c.Name == sm.Cookie.Name {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("session cookie not set")
	}

	var got *model.SessionUser
	me := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		got, err = sess.Load(r.Context())
		if err != nil {
			t.Errorf("Load: %v", err)
		}
	}))
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookie)
	me.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil || *got != want {
		t.Fatalf("Load = %+v, want %+v", got, want)
	}
}

func TestScsSession_Anonymous(t *testing.T) {
	sm := New(nil, true)
	sess := NewScsSession(sm)

	h := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := sess.Load(r.Context())
		if err != nil {
			t.Errorf("Load: %v", err)
		}
		if user != nil {
			t.Errorf("expected nil user, got %+v", user)
		}
		if err := sess.Clear(r.Context()); err != nil {
			t.Errorf("Clear: %v", err)
		}
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestScsSession_SQLiteStore(t *testing.T) {
	sm := New(setupTestDB(t), true)
	ctx, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	sess := NewScsSession(sm)
	if err := sess.Save(ctx, model.SessionUser{ID: 1, Login: "admin", Role: model.RoleAdmin}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	token, _, err := sm.Commit(ctx)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	ctx2, err := sm.Load(context.Background(), token)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	user, err := sess.Load(ctx2)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !user.IsAdmin() {
		t.Errorf("expected admin snapshot, got %+v", user)
	}
}
