// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/psyhelp/internal/i18n"
)

// maxJSONBody limits request bodies decoded by decodeJSON.
const maxJSONBody = 1 << 20

// writeJSONError writes a JSON error response. message is a catalog id,
// translated to the client's language and formatted with args.
func writeJSONError(w http.ResponseWriter, r *http.Request, statusCode int, message string, args ...any) {
	writeJSONErrorWith(w, r, statusCode, nil, message, args...)
}

// writeJSONErrorWith is writeJSONError with extra fields in the body.
func writeJSONErrorWith(w http.ResponseWriter, r *http.Request, statusCode int, extra map[string]any, message string, args ...any) {
	body := map[string]any{
		"success": false,
		"error":   i18n.T(i18n.FromRequest(r), message, args...),
	}
	for k, v := range extra {
		body[k] = v
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// writeJSONSuccess writes a JSON success response.
func writeJSONSuccess(w http.ResponseWriter, data map[string]any) {
	writeJSONSuccessStatus(w, http.StatusOK, data)
}

// writeJSONSuccessStatus writes a JSON success response with the given status.
func writeJSONSuccessStatus(w http.ResponseWriter, statusCode int, data map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	if data == nil {
		data = make(map[string]any)
	}
	data["success"] = true
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// logAndInternalError logs an error and writes a 500 JSON response.
func logAndInternalError(w http.ResponseWriter, r *http.Request, logMsg string, err error, args ...any) {
	args = append(args, "error", err, "path", r.URL.Path)
	slog.Error(logMsg, args...)
	writeJSONError(w, r, http.StatusInternalServerError, "internal server error")
}

// decodeJSON decodes the request body into dst. It writes an error reply
// and returns false when the body cannot be decoded.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSONError(w, r, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeJSONError(w, r, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// parseIDParam reads the {id} URL parameter. It writes a 400 reply and
// returns false when the value is not a positive integer.
func parseIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSONError(w, r, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
