// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/psyhelp/internal/auth"
	"github.com/olegiv/psyhelp/internal/middleware"
)

// AuthHandler handles login, registration and logout.
type AuthHandler struct {
	auth            *auth.Service
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler. loginProtection may be nil.
func NewAuthHandler(svc *auth.Service, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{auth: svc, loginProtection: lp}
}

// LoginInput is the body of POST /login.
type LoginInput struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in LoginInput
	if !decodeJSON(w, r, &in) {
		return
	}
	login := strings.TrimSpace(in.Login)

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(login); locked {
			slog.Warn("login attempt on locked account", "login", login)
			writeJSONError(w, r, http.StatusTooManyRequests,
				"too many failed attempts, try again in %s", remaining.Round(time.Second))
			return
		}
	}

	res, err := h.auth.Login(r.Context(), login, in.Password)
	if err != nil {
		logAndInternalError(w, r, "login failed", err, "login", login)
		return
	}

	if !res.Success {
		slog.Info("failed login", "login", login)
		if h.loginProtection == nil {
			writeJSONError(w, r, http.StatusUnauthorized, res.Message)
			return
		}
		h.loginProtection.RecordFailedAttempt(login)
		writeJSONErrorWith(w, r, http.StatusUnauthorized,
			map[string]any{"remainingAttempts": h.loginProtection.RemainingAttempts(login)}, res.Message)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(login)
	}
	writeJSONSuccess(w, map[string]any{"user": res.User})
}

// Register handles POST /register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in auth.RegisterInput
	if !decodeJSON(w, r, &in) {
		return
	}

	res, err := h.auth.Register(r.Context(), in)
	if err != nil {
		logAndInternalError(w, r, "registration failed", err)
		return
	}

	if !res.Success {
		code := http.StatusBadRequest
		if res.Message == auth.MsgLoginTaken {
			code = http.StatusConflict
		}
		writeJSONError(w, r, code, res.Message)
		return
	}

	writeJSONSuccessStatus(w, http.StatusCreated, map[string]any{"user": res.User})
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context()); err != nil {
		logAndInternalError(w, r, "logout failed", err)
		return
	}
	writeJSONSuccess(w, nil)
}

// Me handles GET /me. Anonymous callers get a null user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSONSuccess(w, map[string]any{"user": middleware.GetUser(r)})
}
