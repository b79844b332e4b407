// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/olegiv/psyhelp/internal/store"
)

// ParseError reports an import document that is not valid JSON or does not
// have the expected shape.
type ParseError struct {
	Msg    string
	Offset int64
}

func (e *ParseError) Error() string {
	return "invalid import file: " + e.Msg
}

// ImportResult lists which collections were overwritten.
type ImportResult struct {
	Imported []string       `json:"imported"`
	Skipped  []string       `json:"skipped"`
	Counts   map[string]int `json:"counts"`
}

// Importer overwrites collections from an export document.
type Importer struct {
	db     *store.Database
	logger *slog.Logger
}

// NewImporter creates a new Importer instance.
func NewImporter(db *store.Database, logger *slog.Logger) *Importer {
	return &Importer{db: db, logger: logger}
}

// Import parses raw and replaces every collection present and non-null in
// it. Records are stored as given; nothing is merged.
func (i *Importer) Import(ctx context.Context, raw []byte) (*ImportResult, error) {
	var doc importDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, toParseError(err)
	}

	cols := doc.collections()

	// Check every collection before writing any of them.
	counts := make(map[string]int, len(cols))
	for _, c := range cols {
		if isAbsent(c.raw) {
			continue
		}
		var items []json.RawMessage
		if err := json.Unmarshal(c.raw, &items); err != nil {
			return nil, &ParseError{Msg: fmt.Sprintf("%s must be an array", c.key)}
		}
		counts[c.key] = len(items)
	}

	result := &ImportResult{
		Imported: []string{},
		Skipped:  []string{},
		Counts:   counts,
	}
	for _, c := range cols {
		if isAbsent(c.raw) {
			result.Skipped = append(result.Skipped, c.key)
			continue
		}
		if err := i.db.ReplaceCollection(ctx, c.key, c.raw); err != nil {
			return result, fmt.Errorf("importing %s: %w", c.key, err)
		}
		result.Imported = append(result.Imported, c.key)
	}

	i.logger.Info("import completed", "imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}

// ImportFromReader reads the whole document from r and imports it.
func (i *Importer) ImportFromReader(ctx context.Context, r io.Reader) (*ImportResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading import: %w", err)
	}
	return i.Import(ctx, raw)
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func toParseError(err error) *ParseError {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ParseError{Msg: syntaxErr.Error(), Offset: syntaxErr.Offset}
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &ParseError{Msg: "document must be a JSON object", Offset: typeErr.Offset}
	}
	return &ParseError{Msg: err.Error()}
}
