// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/olegiv/psyhelp/internal/kv"
	"github.com/olegiv/psyhelp/internal/model"
)

// DefaultNewsLimit is the number of news items returned when no limit is given.
const DefaultNewsLimit = 4

// DefaultVisitorCount is the counter value used when none is stored.
const DefaultVisitorCount = 1250

// News returns the first limit news items in stored order.
// A limit of zero or less means DefaultNewsLimit.
func (d *Database) News(ctx context.Context, limit int) ([]model.News, error) {
	news, err := loadCollection[model.News](ctx, d.kv, kv.KeyNews)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultNewsLimit
	}
	if len(news) > limit {
		news = news[:limit]
	}
	return news, nil
}

// AllNews returns every news item in stored order.
func (d *Database) AllNews(ctx context.Context) ([]model.News, error) {
	return loadCollection[model.News](ctx, d.kv, kv.KeyNews)
}

// VisitorCount returns the stored visitor counter.
func (d *Database) VisitorCount(ctx context.Context) (int, error) {
	raw, err := d.kv.Get(ctx, kv.KeyVisitorCount)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return DefaultVisitorCount, nil
		}
		return 0, fmt.Errorf("reading %s: %w", kv.KeyVisitorCount, err)
	}

	count, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0, fmt.Errorf("decoding %s: %w", kv.KeyVisitorCount, err)
	}
	return count, nil
}

// IncrementVisitorCount adds a pseudo-random step of 1 to 3 to the counter,
// persists it and returns the new value.
func (d *Database) IncrementVisitorCount(ctx context.Context) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	count, err := d.VisitorCount(ctx)
	if err != nil {
		return 0, err
	}

	count += d.intn(3) + 1
	if err := d.kv.Set(ctx, kv.KeyVisitorCount, []byte(strconv.Itoa(count))); err != nil {
		return 0, fmt.Errorf("writing %s: %w", kv.KeyVisitorCount, err)
	}
	return count, nil
}
