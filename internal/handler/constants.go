// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	RouteHealth = "/health"

	RouteAPI        = "/api"
	RouteNews       = "/news"
	RouteVisitors   = "/visitors"
	RouteCategories = "/categories"

	RouteLogin    = "/login"
	RouteRegister = "/register"
	RouteLogout   = "/logout"
	RouteMe       = "/me"

	RouteCabinet       = "/cabinet"
	RouteCreateRequest = "/create-request"
	RouteAdmin         = "/admin"

	RouteRequests = "/requests"
	RouteStats    = "/stats"
	RouteExport   = "/export"
	RouteImport   = "/import"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RouteRequestsID is the single request route pattern.
	RouteRequestsID = RouteRequests + RouteParamID
	// RouteRequestStatus is the request status route pattern.
	RouteRequestStatus = RouteRequestsID + "/status"
	// RouteCategoriesID is the single category route pattern.
	RouteCategoriesID = RouteCategories + RouteParamID
)
