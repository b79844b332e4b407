// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/olegiv/psyhelp/internal/transfer"
)

// maxImportSize limits uploaded import documents.
const maxImportSize = 10 << 20

// ImportExportHandler handles data export and import.
type ImportExportHandler struct {
	exporter *transfer.Exporter
	importer *transfer.Importer
}

// NewImportExportHandler creates a new ImportExportHandler.
func NewImportExportHandler(exporter *transfer.Exporter, importer *transfer.Importer) *ImportExportHandler {
	return &ImportExportHandler{exporter: exporter, importer: importer}
}

// Export handles GET /admin/export and streams the document as a download.
func (h *ImportExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", transfer.DownloadFilename))

	if err := h.exporter.ExportToWriter(r.Context(), w); err != nil {
		w.Header().Del("Content-Disposition")
		logAndInternalError(w, r, "export failed", err)
	}
}

// Import handles POST /admin/import. The document is read from the
// multipart field "file" or, for other content types, from the raw body.
func (h *ImportExportHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)

	raw, err := readImportBody(r)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSONError(w, r, http.StatusRequestEntityTooLarge, "import file too large")
			return
		}
		if errors.Is(err, errMissingImportFile) {
			writeJSONError(w, r, http.StatusBadRequest, "missing import file")
			return
		}
		writeJSONError(w, r, http.StatusBadRequest, "invalid import upload")
		return
	}

	result, err := h.importer.Import(r.Context(), raw)
	if err != nil {
		var perr *transfer.ParseError
		if errors.As(err, &perr) {
			writeJSONError(w, r, http.StatusBadRequest, "invalid import file: %s", perr.Msg)
			return
		}
		logAndInternalError(w, r, "import failed", err)
		return
	}

	writeJSONSuccess(w, map[string]any{"result": result})
}

var errMissingImportFile = errors.New("missing import file")

func readImportBody(r *http.Request) ([]byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return io.ReadAll(r.Body)
	}

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		return nil, err
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, errMissingImportFile
	}
	defer func() { _ = file.Close() }()

	return io.ReadAll(file)
}
