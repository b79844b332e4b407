// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/olegiv/psyhelp/internal/store"
)

// Exporter builds export documents from the database.
type Exporter struct {
	db     *store.Database
	logger *slog.Logger
	now    func() time.Time
}

// NewExporter creates a new Exporter instance.
func NewExporter(db *store.Database, logger *slog.Logger) *Exporter {
	return &Exporter{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Export collects every request, user, category and news item.
func (e *Exporter) Export(ctx context.Context) (*ExportData, error) {
	requests, err := e.db.Requests(ctx)
	if err != nil {
		return nil, fmt.Errorf("exporting requests: %w", err)
	}
	users, err := e.db.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("exporting users: %w", err)
	}
	categories, err := e.db.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("exporting categories: %w", err)
	}
	news, err := e.db.AllNews(ctx)
	if err != nil {
		return nil, fmt.Errorf("exporting news: %w", err)
	}

	data := &ExportData{
		Requests:   requests,
		Users:      users,
		Categories: categories,
		News:       news,
		ExportDate: e.now(),
	}

	e.logger.Info("export built",
		"requests", len(requests),
		"users", len(users),
		"categories", len(categories),
		"news", len(news))

	return data, nil
}

// ExportToWriter writes the export as JSON indented by two spaces.
func (e *Exporter) ExportToWriter(ctx context.Context, w io.Writer) error {
	data, err := e.Export(ctx)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
