// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth provides login, registration and logout for helpdesk users,
// argon2id password hashing, and the page access guard.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/olegiv/psyhelp/internal/model"
	"github.com/olegiv/psyhelp/internal/store"
)

// User-facing failure messages.
const (
	MsgInvalidCredentials = "invalid login or password"
	MsgLoginTaken         = "login already taken"
	MsgMissingFields      = "login and password are required"
)

// Result is the outcome of Login and Register.
type Result struct {
	Success bool               `json:"success"`
	User    *model.SessionUser `json:"user,omitempty"`
	Message string             `json:"message,omitempty"`
}

// RegisterInput holds the fields of a registration form.
type RegisterInput struct {
	FullName string `json:"fullName"`
	Login    string `json:"login"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Service implements the authentication workflows.
type Service struct {
	db       *store.Database
	sessions SessionStore
	logger   *slog.Logger
}

// NewService creates an auth Service. sessions decides where the logged-in
// snapshot lives.
func NewService(db *store.Database, sessions SessionStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{db: db, sessions: sessions, logger: logger}
}

// Login checks the credentials and, on success, stores the public snapshot.
// Unknown login and wrong password produce the same message.
func (s *Service) Login(ctx context.Context, login, password string) (Result, error) {
	user, err := s.db.UserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Result{Message: MsgInvalidCredentials}, nil
		}
		return Result{}, fmt.Errorf("looking up user: %w", err)
	}

	ok, err := CheckPassword(password, user.Password)
	if err != nil {
		s.logger.Warn("stored password unreadable", "user_id", user.ID, "error", err)
		return Result{Message: MsgInvalidCredentials}, nil
	}
	if !ok {
		return Result{Message: MsgInvalidCredentials}, nil
	}

	snapshot := user.Public()
	if err := s.sessions.Save(ctx, snapshot); err != nil {
		return Result{}, fmt.Errorf("saving session: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID, "login", user.Login)
	return Result{Success: true, User: &snapshot}, nil
}

// Register creates a user with role user and logs them in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Result, error) {
	in.Login = strings.TrimSpace(in.Login)
	if in.Login == "" || in.Password == "" {
		return Result{Message: MsgMissingFields}, nil
	}

	_, err := s.db.UserByLogin(ctx, in.Login)
	switch {
	case err == nil:
		return Result{Message: MsgLoginTaken}, nil
	case !errors.Is(err, store.ErrNotFound):
		return Result{}, fmt.Errorf("looking up user: %w", err)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return Result{}, err
	}

	created, err := s.db.AddUser(ctx, model.User{
		FullName: strings.TrimSpace(in.FullName),
		Login:    in.Login,
		Email:    strings.TrimSpace(in.Email),
		Password: hash,
	})
	if err != nil {
		return Result{}, fmt.Errorf("creating user: %w", err)
	}

	snapshot := created.Public()
	if err := s.sessions.Save(ctx, snapshot); err != nil {
		return Result{}, fmt.Errorf("saving session: %w", err)
	}

	s.logger.Info("user registered", "user_id", created.ID, "login", created.Login, "email", created.Email)
	return Result{Success: true, User: &snapshot}, nil
}

// Logout clears the session snapshot.
func (s *Service) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

// Current returns the logged-in snapshot or nil.
func (s *Service) Current(ctx context.Context) (*model.SessionUser, error) {
	return s.sessions.Load(ctx)
}

// IsLoggedIn reports whether a session snapshot exists.
func (s *Service) IsLoggedIn(ctx context.Context) (bool, error) {
	user, err := s.sessions.Load(ctx)
	return user != nil, err
}

// IsAdmin reports whether the logged-in user is an admin.
func (s *Service) IsAdmin(ctx context.Context) (bool, error) {
	user, err := s.sessions.Load(ctx)
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}
