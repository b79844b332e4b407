// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"

	"github.com/olegiv/psyhelp/internal/store"
)

// PublicHandler serves the anonymous API: news, visitor counter and categories.
type PublicHandler struct {
	db *store.Database
}

// NewPublicHandler creates a new PublicHandler.
func NewPublicHandler(db *store.Database) *PublicHandler {
	return &PublicHandler{db: db}
}

// News handles GET /api/news?limit=.
func (h *PublicHandler) News(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSONError(w, r, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	news, err := h.db.News(r.Context(), limit)
	if err != nil {
		logAndInternalError(w, r, "failed to load news", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"news": news})
}

// Visitors handles GET /api/visitors.
func (h *PublicHandler) Visitors(w http.ResponseWriter, r *http.Request) {
	count, err := h.db.VisitorCount(r.Context())
	if err != nil {
		logAndInternalError(w, r, "failed to read visitor count", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"count": count})
}

// IncrementVisitors handles POST /api/visitors.
func (h *PublicHandler) IncrementVisitors(w http.ResponseWriter, r *http.Request) {
	count, err := h.db.IncrementVisitorCount(r.Context())
	if err != nil {
		logAndInternalError(w, r, "failed to increment visitor count", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"count": count})
}

// Categories handles GET /api/categories.
func (h *PublicHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.db.Categories(r.Context())
	if err != nil {
		logAndInternalError(w, r, "failed to load categories", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"categories": categories})
}
