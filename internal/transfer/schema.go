// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package transfer provides export and import of the helpdesk data as a
// single JSON document.
package transfer

import (
	"encoding/json"
	"time"

	"github.com/olegiv/psyhelp/internal/kv"
	"github.com/olegiv/psyhelp/internal/model"
)

// DownloadFilename is the file name offered for HTTP downloads.
const DownloadFilename = "psychology-service-data.json"

// ExportData is the root structure of an export document.
type ExportData struct {
	Requests   []model.Request  `json:"requests"`
	Users      []model.User     `json:"users"`
	Categories []model.Category `json:"categories"`
	News       []model.News     `json:"news"`
	ExportDate time.Time        `json:"exportDate"`
}

// importDocument keeps each collection raw so that absent or null fields
// can be told apart from empty arrays.
type importDocument struct {
	Requests   json.RawMessage `json:"requests"`
	Users      json.RawMessage `json:"users"`
	Categories json.RawMessage `json:"categories"`
	News       json.RawMessage `json:"news"`
}

// collections lists the importable collections in write order.
func (d *importDocument) collections() []collection {
	return []collection{
		{key: kv.KeyRequests, raw: d.Requests},
		{key: kv.KeyUsers, raw: d.Users},
		{key: kv.KeyCategories, raw: d.Categories},
		{key: kv.KeyNews, raw: d.News},
	}
}

type collection struct {
	key string
	raw json.RawMessage
}
