// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/olegiv/psyhelp/internal/kv"
	"github.com/olegiv/psyhelp/internal/version"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	store     kv.Store
	version   version.Info
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(store kv.Store, info version.Info) *HealthHandler {
	return &HealthHandler{store: store, version: info, startTime: time.Now()}
}

// HealthStatus is the /health reply.
type HealthStatus struct {
	Status  string           `json:"status"`
	Uptime  string           `json:"uptime"`
	Version version.Info     `json:"version"`
	Checks  map[string]Check `json:"checks"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	storage := h.checkStorage(r.Context())

	status := HealthStatus{
		Status:  "healthy",
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
		Version: h.version,
		Checks:  map[string]Check{"storage": storage},
	}

	code := http.StatusOK
	if storage.Status != "healthy" {
		status.Status = "degraded"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(status)
}

// checkStorage pings backends that hold a connection and probes the rest
// with a read of the init flag.
func (h *HealthHandler) checkStorage(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	var err error
	if p, ok := h.store.(kv.Pinger); ok {
		err = p.Ping(ctx)
	} else {
		_, err = h.store.Has(ctx, kv.KeyDBInitialized)
	}
	latency := time.Since(start)

	if err != nil {
		return Check{Status: "unhealthy", Message: err.Error()}
	}
	return Check{Status: "healthy", Latency: latency.String()}
}
