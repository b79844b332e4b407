// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, and request protection.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/olegiv/psyhelp/internal/auth"
	"github.com/olegiv/psyhelp/internal/model"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyUser holds the *model.SessionUser of the request.
const ContextKeyUser ContextKey = "user"

// LoadUser creates middleware that loads the session snapshot into the
// request context. Anonymous requests pass through unchanged.
func LoadUser(sessions auth.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := sessions.Load(r.Context())
			if err != nil {
				slog.Warn("discarding unreadable session", "error", err, "path", r.URL.Path)
				_ = sessions.Clear(r.Context())
				next.ServeHTTP(w, r)
				return
			}
			if user == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser retrieves the current user from the request context.
// Returns nil if no user is in context.
func GetUser(r *http.Request) *model.SessionUser {
	user, _ := r.Context().Value(ContextKeyUser).(*model.SessionUser)
	return user
}

// GetUserID returns the current user's ID from context, or 0 if not found.
func GetUserID(r *http.Request) int64 {
	if user := GetUser(r); user != nil {
		return user.ID
	}
	return 0
}

// PageGuard creates middleware enforcing auth.Guard for page. Browsers
// navigating with GET are redirected; other clients get a JSON error that
// names the redirect target.
func PageGuard(page string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := auth.Guard(page, GetUser(r))
			if decision.Allow {
				next.ServeHTTP(w, r)
				return
			}

			if wantsHTML(r) {
				http.Redirect(w, r, decision.Redirect, http.StatusSeeOther)
				return
			}

			if decision.Redirect == auth.LoginPath {
				writeJSONError(w, r, http.StatusUnauthorized, "login required", decision.Redirect)
				return
			}

			slog.Warn("access denied", "page", page, "user_id", GetUserID(r), "path", r.URL.Path)
			writeJSONError(w, r, http.StatusForbidden, "admin access required", decision.Redirect)
		})
	}
}
