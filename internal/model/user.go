// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the application
// including User, Category, Request and News.
package model

import "time"

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a registered helpdesk user.
// Password holds either an argon2id hash or, for seeded and imported
// accounts, the legacy plaintext value.
type User struct {
	ID               int64     `json:"id"`
	FullName         string    `json:"fullName"`
	Login            string    `json:"login"`
	Email            string    `json:"email"`
	Password         string    `json:"password"`
	Role             string    `json:"role"`
	RegistrationDate time.Time `json:"registrationDate"`
}

// IsAdmin returns true if the user has admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Public returns the session snapshot of the user. The password is never included.
func (u *User) Public() SessionUser {
	return SessionUser{
		ID:       u.ID,
		FullName: u.FullName,
		Login:    u.Login,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// SessionUser is the subset of a User kept for the logged-in session.
type SessionUser struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Login    string `json:"login"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// IsAdmin returns true if the session belongs to an admin.
func (s *SessionUser) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}
