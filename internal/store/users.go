// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/olegiv/psyhelp/internal/kv"
	"github.com/olegiv/psyhelp/internal/model"
)

// Users returns every user in stored order.
func (d *Database) Users(ctx context.Context) ([]model.User, error) {
	return loadCollection[model.User](ctx, d.kv, kv.KeyUsers)
}

// UserByID returns the first user with the given id.
func (d *Database) UserByID(ctx context.Context, id int64) (model.User, error) {
	users, err := d.Users(ctx)
	if err != nil {
		return model.User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

// UserByLogin returns the first user with the given login.
func (d *Database) UserByLogin(ctx context.Context, login string) (model.User, error) {
	users, err := d.Users(ctx)
	if err != nil {
		return model.User{}, err
	}
	for _, u := range users {
		if u.Login == login {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

// AddUser appends a new user. The id and registration date are assigned here
// and the role is always forced to "user": callers cannot create admins.
func (d *Database) AddUser(ctx context.Context, user model.User) (model.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.Users(ctx)
	if err != nil {
		return model.User{}, err
	}

	user.ID = nextID(users, func(u model.User) int64 { return u.ID })
	user.RegistrationDate = d.now()
	user.Role = model.RoleUser

	users = append(users, user)
	if err := saveCollection(ctx, d.kv, kv.KeyUsers, users); err != nil {
		return model.User{}, err
	}

	d.logger.Info("user added", "user_id", user.ID, "login", user.Login)
	return user, nil
}
