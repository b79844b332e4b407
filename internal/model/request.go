// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// RequestStatus is the triage state of a request.
type RequestStatus string

// Request statuses.
const (
	StatusNew      RequestStatus = "new"
	StatusSolved   RequestStatus = "solved"
	StatusRejected RequestStatus = "rejected"
)

// StatusAll is the filter sentinel that matches every status or category.
const StatusAll = "all"

// UnknownLabel is rendered for dangling category or user references in
// admin views.
const UnknownLabel = "unknown"

// NoCategoryLabel is rendered for a dangling category in the user's cabinet.
const NoCategoryLabel = "Без категории"

// Valid reports whether s is one of the known statuses.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusNew, StatusSolved, StatusRejected:
		return true
	}
	return false
}

// Request is a user-submitted help request.
type Request struct {
	ID           int64         `json:"id"`
	UserID       int64         `json:"userId"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	CategoryID   int64         `json:"categoryId"`
	Status       RequestStatus `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
	SolvedAt     *time.Time    `json:"solvedAt,omitempty"`
	RejectReason string        `json:"rejectReason,omitempty"`
}

// RequestView is a request joined with its category and submitter for display.
type RequestView struct {
	Request
	CategoryName string `json:"categoryName"`
	UserName     string `json:"userName"`
	UserEmail    string `json:"userEmail"`
}
