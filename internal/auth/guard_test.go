// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"testing"

	"github.com/olegiv/psyhelp/internal/model"
)

func TestGuard(t *testing.T) {
	user := &model.SessionUser{ID: 2, Login: "user", Role: model.RoleUser}
	admin := &model.SessionUser{ID: 1, Login: "admin", Role: model.RoleAdmin}

	tests := []struct {
		name string
		page string
		user *model.SessionUser
		want Decision
	}{
		{"public page anonymous", "home", nil, Decision{Allow: true}},
		{"login page anonymous", "login", nil, Decision{Allow: true}},
		{"cabinet anonymous", PageCabinet, nil, Decision{Redirect: LoginPath}},
		{"create anonymous", PageCreateRequest, nil, Decision{Redirect: LoginPath}},
		{"admin anonymous", PageAdmin, nil, Decision{Redirect: LoginPath}},
		{"cabinet user", PageCabinet, user, Decision{Allow: true}},
		{"create user", PageCreateRequest, user, Decision{Allow: true}},
		{"admin user", PageAdmin, user, Decision{Redirect: HomePath}},
		{"admin admin", PageAdmin, admin, Decision{Allow: true}},
		{"cabinet admin", PageCabinet, admin, Decision{Allow: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Guard(tt.page, tt.user); got != tt.want {
				t.Errorf("Guard(%q) = %+v, want %+v", tt.page, got, tt.want)
			}
		})
	}
}
