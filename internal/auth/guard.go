// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import "github.com/olegiv/psyhelp/internal/model"

// Pages that require a session.
const (
	PageCabinet       = "cabinet"
	PageCreateRequest = "create-request"
	PageAdmin         = "admin"
)

// Redirect targets.
const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Decision is the result of Guard. Redirect is empty when access is allowed.
type Decision struct {
	Allow    bool
	Redirect string
}

var protectedPages = map[string]bool{
	PageCabinet:       true,
	PageCreateRequest: true,
	PageAdmin:         true,
}

// IsProtected reports whether page requires a session.
func IsProtected(page string) bool {
	return protectedPages[page]
}

// Guard decides whether user may open page.
func Guard(page string, user *model.SessionUser) Decision {
	if !IsProtected(page) {
		return Decision{Allow: true}
	}
	if user == nil {
		return Decision{Redirect: LoginPath}
	}
	if page == PageAdmin && !user.IsAdmin() {
		return Decision{Redirect: HomePath}
	}
	return Decision{Allow: true}
}
