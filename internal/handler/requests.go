// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"

	"github.com/olegiv/psyhelp/internal/middleware"
	"github.com/olegiv/psyhelp/internal/service"
	"github.com/olegiv/psyhelp/internal/store"
)

// CabinetHandler serves a user's own requests.
type CabinetHandler struct {
	requests *service.RequestService
}

// NewCabinetHandler creates a new CabinetHandler.
func NewCabinetHandler(requests *service.RequestService) *CabinetHandler {
	return &CabinetHandler{requests: requests}
}

// List handles GET /cabinet/requests?status=.
func (h *CabinetHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	views, err := h.requests.UserRequests(r.Context(), userID, r.URL.Query().Get("status"))
	if err != nil {
		logAndInternalError(w, r, "failed to load user requests", err, "user_id", userID)
		return
	}
	writeJSONSuccess(w, map[string]any{"requests": views})
}

// Get handles GET /cabinet/requests/{id}.
func (h *CabinetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	view, err := h.requests.OwnRequest(r.Context(), middleware.GetUserID(r), id)
	if err != nil {
		h.writeOwnershipError(w, r, err, id)
		return
	}
	writeJSONSuccess(w, map[string]any{"request": view})
}

// Delete handles DELETE /cabinet/requests/{id}.
func (h *CabinetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.requests.DeleteOwnRequest(r.Context(), middleware.GetUserID(r), id); err != nil {
		h.writeOwnershipError(w, r, err, id)
		return
	}
	writeJSONSuccess(w, nil)
}

// Create handles POST /create-request.
func (h *CabinetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateRequestInput
	if !decodeJSON(w, r, &in) {
		return
	}

	created, err := h.requests.CreateRequest(r.Context(), middleware.GetUserID(r), in)
	if err != nil {
		if writeValidationError(w, r, err) {
			return
		}
		logAndInternalError(w, r, "failed to create request", err)
		return
	}
	writeJSONSuccessStatus(w, http.StatusCreated, map[string]any{"request": created})
}

// writeOwnershipError maps lookup errors on someone's own request. Requests
// of other users are reported as missing.
func (h *CabinetHandler) writeOwnershipError(w http.ResponseWriter, r *http.Request, err error, id int64) {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, service.ErrNotOwner):
		writeJSONError(w, r, http.StatusNotFound, "request not found")
	case errors.Is(err, service.ErrNotDeletable):
		writeJSONError(w, r, http.StatusConflict, err.Error())
	default:
		logAndInternalError(w, r, "failed to access request", err, "request_id", id)
	}
}

// writeValidationError writes a 400 reply for *service.ValidationError and
// reports whether it did.
func writeValidationError(w http.ResponseWriter, r *http.Request, err error) bool {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		writeJSONError(w, r, http.StatusBadRequest, verr.Message)
		return true
	}
	return false
}
