// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/olegiv/psyhelp/internal/kv"
	"github.com/olegiv/psyhelp/internal/model"
)

// Requests returns every request in stored order.
func (d *Database) Requests(ctx context.Context) ([]model.Request, error) {
	return loadCollection[model.Request](ctx, d.kv, kv.KeyRequests)
}

// RequestByID returns the request with the given id.
func (d *Database) RequestByID(ctx context.Context, id int64) (model.Request, error) {
	requests, err := d.Requests(ctx)
	if err != nil {
		return model.Request{}, err
	}
	for _, r := range requests {
		if r.ID == id {
			return r, nil
		}
	}
	return model.Request{}, ErrNotFound
}

// UserRequests returns the requests submitted by userID, in stored order.
func (d *Database) UserRequests(ctx context.Context, userID int64) ([]model.Request, error) {
	requests, err := d.Requests(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.Request, 0, len(requests))
	for _, r := range requests {
		if r.UserID == userID {
			result = append(result, r)
		}
	}
	return result, nil
}

// AddRequest appends a new request with the next id, the current time as
// creation date and status "new".
func (d *Database) AddRequest(ctx context.Context, req model.Request) (model.Request, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	requests, err := d.Requests(ctx)
	if err != nil {
		return model.Request{}, err
	}

	req.ID = nextID(requests, func(r model.Request) int64 { return r.ID })
	req.CreatedAt = d.now()
	req.Status = model.StatusNew
	req.SolvedAt = nil
	req.RejectReason = ""

	requests = append(requests, req)
	if err := saveCollection(ctx, d.kv, kv.KeyRequests, requests); err != nil {
		return model.Request{}, err
	}

	d.logger.Info("request added", "request_id", req.ID, "user_id", req.UserID)
	return req, nil
}

// UpdateRequestStatus sets the status of a request. It returns false, and
// writes nothing, when no request has the given id.
//
// Moving to "solved" stamps SolvedAt. A non-empty reason is stored as
// RejectReason whatever the status; an existing reason is never cleared.
func (d *Database) UpdateRequestStatus(ctx context.Context, id int64, status model.RequestStatus, reason string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	requests, err := d.Requests(ctx)
	if err != nil {
		return false, err
	}

	index := -1
	for i := range requests {
		if requests[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return false, nil
	}

	requests[index].Status = status
	if status == model.StatusSolved {
		solvedAt := d.now()
		requests[index].SolvedAt = &solvedAt
	}
	if reason != "" {
		requests[index].RejectReason = reason
	}

	if err := saveCollection(ctx, d.kv, kv.KeyRequests, requests); err != nil {
		return false, err
	}

	d.logger.Info("request status updated", "request_id", id, "status", status)
	return true, nil
}

// DeleteRequest removes the request with the given id and reports whether
// anything was removed.
func (d *Database) DeleteRequest(ctx context.Context, id int64) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	requests, err := d.Requests(ctx)
	if err != nil {
		return false, err
	}

	filtered := make([]model.Request, 0, len(requests))
	for _, r := range requests {
		if r.ID != id {
			filtered = append(filtered, r)
		}
	}

	if err := saveCollection(ctx, d.kv, kv.KeyRequests, filtered); err != nil {
		return false, err
	}
	return len(filtered) != len(requests), nil
}
