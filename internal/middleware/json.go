// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/olegiv/psyhelp/internal/i18n"
)

// errorBody is the JSON reply written when a middleware rejects a request.
type errorBody struct {
	Success  bool   `json:"success"`
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

// writeJSONError writes errorBody with message translated for r.
func writeJSONError(w http.ResponseWriter, r *http.Request, status int, message, redirect string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: i18n.T(i18n.FromRequest(r), message), Redirect: redirect})
}

// wantsHTML reports whether the client is a browser navigating to a page.
func wantsHTML(r *http.Request) bool {
	return r.Method == http.MethodGet && strings.Contains(r.Header.Get("Accept"), "text/html")
}
