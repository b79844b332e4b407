// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP handlers and route table of the
// helpdesk JSON API.
package handler

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/psyhelp/internal/auth"
	"github.com/olegiv/psyhelp/internal/kv"
	"github.com/olegiv/psyhelp/internal/middleware"
	"github.com/olegiv/psyhelp/internal/service"
	"github.com/olegiv/psyhelp/internal/store"
	"github.com/olegiv/psyhelp/internal/transfer"
	"github.com/olegiv/psyhelp/internal/version"
)

// DefaultRequestTimeout bounds every request.
const DefaultRequestTimeout = 30 * time.Second

// Deps holds everything the router needs.
type Deps struct {
	DB              *store.Database
	Store           kv.Store
	SessionManager  *scs.SessionManager
	Sessions        auth.SessionStore
	Auth            *auth.Service
	Requests        *service.RequestService
	Exporter        *transfer.Exporter
	Importer        *transfer.Importer
	LoginProtection *middleware.LoginProtection
	CSRF            middleware.CSRFConfig
	Version         version.Info
	RequestTimeout  time.Duration
	// RequestLogger enables chi's request logger.
	RequestLogger bool
}

// NewRouter builds the chi router with the full middleware stack.
func NewRouter(d Deps) http.Handler {
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = DefaultRequestTimeout
	}

	healthHandler := NewHealthHandler(d.Store, d.Version)
	publicHandler := NewPublicHandler(d.DB)
	authHandler := NewAuthHandler(d.Auth, d.LoginProtection)
	cabinetHandler := NewCabinetHandler(d.Requests)
	adminHandler := NewAdminHandler(d.Requests)
	importExportHandler := NewImportExportHandler(d.Exporter, d.Importer)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if d.RequestLogger {
		r.Use(chimw.Logger)
	}
	r.Use(middleware.Timeout(d.RequestTimeout))
	r.Use(chimw.Recoverer) // inside Timeout so panics in the handler goroutine are caught

	r.Get(RouteHealth, healthHandler.Health)

	r.Group(func(r chi.Router) {
		r.Use(d.SessionManager.LoadAndSave)
		r.Use(middleware.CSRF(d.CSRF))
		r.Use(middleware.LoadUser(d.Sessions))

		r.Route(RouteAPI, func(r chi.Router) {
			r.Get(RouteNews, publicHandler.News)
			r.Get(RouteVisitors, publicHandler.Visitors)
			r.Post(RouteVisitors, publicHandler.IncrementVisitors)
			r.Get(RouteCategories, publicHandler.Categories)
		})

		r.Group(func(r chi.Router) {
			if d.LoginProtection != nil {
				r.Use(d.LoginProtection.Middleware())
			}
			r.Post(RouteLogin, authHandler.Login)
			r.Post(RouteRegister, authHandler.Register)
		})
		r.Post(RouteLogout, authHandler.Logout)
		r.Get(RouteMe, authHandler.Me)

		r.Route(RouteCabinet, func(r chi.Router) {
			r.Use(middleware.PageGuard(auth.PageCabinet))
			r.Get(RouteRequests, cabinetHandler.List)
			r.Get(RouteRequestsID, cabinetHandler.Get)
			r.Delete(RouteRequestsID, cabinetHandler.Delete)
		})

		r.With(middleware.PageGuard(auth.PageCreateRequest)).Post(RouteCreateRequest, cabinetHandler.Create)

		r.Route(RouteAdmin, func(r chi.Router) {
			r.Use(middleware.PageGuard(auth.PageAdmin))
			r.Get(RouteRequests, adminHandler.Requests)
			r.Post(RouteRequestStatus, adminHandler.UpdateStatus)
			r.Put(RouteRequestStatus, adminHandler.UpdateStatus)
			r.Delete(RouteRequestsID, adminHandler.DeleteRequest)
			r.Get(RouteCategories, adminHandler.Categories)
			r.Post(RouteCategories, adminHandler.AddCategory)
			r.Delete(RouteCategoriesID, adminHandler.DeleteCategory)
			r.Get(RouteStats, adminHandler.Stats)
			r.Get(RouteExport, importExportHandler.Export)
			r.Post(RouteImport, importExportHandler.Import)
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeJSONError(w, req, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeJSONError(w, req, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}
