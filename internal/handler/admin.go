// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"

	"github.com/olegiv/psyhelp/internal/model"
	"github.com/olegiv/psyhelp/internal/service"
)

// AdminHandler serves the administration API.
type AdminHandler struct {
	requests *service.RequestService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(requests *service.RequestService) *AdminHandler {
	return &AdminHandler{requests: requests}
}

// Requests handles GET /admin/requests?q=&status=&category=.
func (h *AdminHandler) Requests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := service.Filters{Status: q.Get("status")}
	if filters.Status != "" && filters.Status != model.StatusAll && !model.RequestStatus(filters.Status).Valid() {
		writeJSONError(w, r, http.StatusBadRequest, "invalid status")
		return
	}
	if raw := q.Get("category"); raw != "" && raw != model.StatusAll {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeJSONError(w, r, http.StatusBadRequest, "invalid category")
			return
		}
		filters.CategoryID = id
	}

	views, err := h.requests.Search(r.Context(), q.Get("q"), filters)
	if err != nil {
		logAndInternalError(w, r, "failed to search requests", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"requests": views, "total": len(views)})
}

// StatusInput is the body of the status update route.
type StatusInput struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// UpdateStatus handles POST/PUT /admin/requests/{id}/status.
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	var in StatusInput
	if !decodeJSON(w, r, &in) {
		return
	}

	updated, err := h.requests.UpdateStatus(r.Context(), id, model.RequestStatus(in.Status), in.Reason)
	if err != nil {
		if writeValidationError(w, r, err) {
			return
		}
		logAndInternalError(w, r, "failed to update request status", err, "request_id", id)
		return
	}
	if !updated {
		writeJSONError(w, r, http.StatusNotFound, "request not found")
		return
	}
	writeJSONSuccess(w, nil)
}

// DeleteRequest handles DELETE /admin/requests/{id}.
func (h *AdminHandler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	deleted, err := h.requests.DeleteRequest(r.Context(), id)
	if err != nil {
		logAndInternalError(w, r, "failed to delete request", err, "request_id", id)
		return
	}
	if !deleted {
		writeJSONError(w, r, http.StatusNotFound, "request not found")
		return
	}
	writeJSONSuccess(w, nil)
}

// Categories handles GET /admin/categories.
func (h *AdminHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.requests.Categories(r.Context())
	if err != nil {
		logAndInternalError(w, r, "failed to load categories", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"categories": categories})
}

// CategoryInput is the body of POST /admin/categories.
type CategoryInput struct {
	Name string `json:"name"`
}

// AddCategory handles POST /admin/categories.
func (h *AdminHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var in CategoryInput
	if !decodeJSON(w, r, &in) {
		return
	}

	c, err := h.requests.AddCategory(r.Context(), in.Name)
	if err != nil {
		if writeValidationError(w, r, err) {
			return
		}
		logAndInternalError(w, r, "failed to add category", err)
		return
	}
	writeJSONSuccessStatus(w, http.StatusCreated, map[string]any{"category": c})
}

// DeleteCategory handles DELETE /admin/categories/{id}.
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	deleted, err := h.requests.DeleteCategory(r.Context(), id)
	if err != nil {
		logAndInternalError(w, r, "failed to delete category", err, "category_id", id)
		return
	}
	if !deleted {
		writeJSONError(w, r, http.StatusNotFound, "category not found")
		return
	}
	writeJSONSuccess(w, nil)
}

// Stats handles GET /admin/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.requests.Statistics(r.Context())
	if err != nil {
		logAndInternalError(w, r, "failed to compute statistics", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"stats": stats})
}
