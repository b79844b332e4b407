// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/olegiv/psyhelp/internal/kv"
	"github.com/olegiv/psyhelp/internal/model"
)

// Categories returns every category in stored order.
func (d *Database) Categories(ctx context.Context) ([]model.Category, error) {
	return loadCollection[model.Category](ctx, d.kv, kv.KeyCategories)
}

// AddCategory appends a category with the next id.
func (d *Database) AddCategory(ctx context.Context, name string) (model.Category, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	categories, err := d.Categories(ctx)
	if err != nil {
		return model.Category{}, err
	}

	category := model.Category{
		ID:   nextID(categories, func(c model.Category) int64 { return c.ID }),
		Name: name,
	}

	categories = append(categories, category)
	if err := saveCollection(ctx, d.kv, kv.KeyCategories, categories); err != nil {
		return model.Category{}, err
	}
	return category, nil
}

// DeleteCategory removes the category with the given id and reports whether
// anything was removed. Requests keep their dangling categoryId.
func (d *Database) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	categories, err := d.Categories(ctx)
	if err != nil {
		return false, err
	}

	filtered := make([]model.Category, 0, len(categories))
	for _, c := range categories {
		if c.ID != id {
			filtered = append(filtered, c)
		}
	}

	if err := saveCollection(ctx, d.kv, kv.KeyCategories, filtered); err != nil {
		return false, err
	}
	return len(filtered) != len(categories), nil
}
