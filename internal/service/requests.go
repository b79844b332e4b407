// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides the helpdesk business logic on top of the store:
// joined request views, search, statistics and validated mutations.
package service

import (
	"context"
	"errors"
	"html"
	"log/slog"
	"slices"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"

	"github.com/olegiv/psyhelp/internal/model"
	"github.com/olegiv/psyhelp/internal/store"
)

// Errors returned by RequestService.
var (
	ErrNotOwner     = errors.New("request belongs to another user")
	ErrNotDeletable = errors.New("only new requests can be deleted")
)

// ValidationError reports invalid input for a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Filters narrows Search results. Empty Status or "all" and a zero
// CategoryID match everything.
type Filters struct {
	Status     string
	CategoryID int64
}

// CreateRequestInput holds the fields a user submits for a new request.
type CreateRequestInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CategoryID  int64  `json:"categoryId"`
}

// RequestService implements request administration.
type RequestService struct {
	db       *store.Database
	logger   *slog.Logger
	sanitize *bluemonday.Policy
}

// NewRequestService creates a RequestService.
func NewRequestService(db *store.Database, logger *slog.Logger) *RequestService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RequestService{
		db:       db,
		logger:   logger,
		sanitize: bluemonday.StrictPolicy(),
	}
}

// LoadAll returns every request joined with its category name and submitter.
// Dangling references render as model.UnknownLabel.
func (s *RequestService) LoadAll(ctx context.Context) ([]model.RequestView, error) {
	requests, err := s.db.Requests(ctx)
	if err != nil {
		return nil, err
	}
	return s.join(ctx, requests, model.UnknownLabel)
}

// join resolves category and submitter names. A dangling category renders as
// missingCategory.
func (s *RequestService) join(ctx context.Context, requests []model.Request, missingCategory string) ([]model.RequestView, error) {
	categories, err := s.db.Categories(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.db.Users(ctx)
	if err != nil {
		return nil, err
	}

	categoryNames := make(map[int64]string, len(categories))
	for _, c := range categories {
		if _, seen := categoryNames[c.ID]; !seen {
			categoryNames[c.ID] = c.Name
		}
	}
	usersByID := make(map[int64]model.User, len(users))
	for _, u := range users {
		if _, seen := usersByID[u.ID]; !seen {
			usersByID[u.ID] = u
		}
	}

	views := make([]model.RequestView, 0, len(requests))
	for _, r := range requests {
		v := model.RequestView{
			Request:      r,
			CategoryName: missingCategory,
			UserName:     model.UnknownLabel,
			UserEmail:    model.UnknownLabel,
		}
		if name, ok := categoryNames[r.CategoryID]; ok {
			v.CategoryName = name
		}
		if u, ok := usersByID[r.UserID]; ok {
			v.UserName = u.FullName
			v.UserEmail = u.Email
		}
		views = append(views, v)
	}
	return views, nil
}

// Search filters the joined requests by status, category and a
// case-insensitive query over title, description, submitter name and email.
// Results are ordered newest first; ties keep stored order.
func (s *RequestService) Search(ctx context.Context, query string, f Filters) ([]model.RequestView, error) {
	views, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(query))

	result := make([]model.RequestView, 0, len(views))
	for _, v := range views {
		if f.Status != "" && f.Status != model.StatusAll && string(v.Status) != f.Status {
			continue
		}
		if f.CategoryID != 0 && v.CategoryID != f.CategoryID {
			continue
		}
		if needle != "" && !matches(fold, needle, v.Title, v.Description, v.UserName, v.UserEmail) {
			continue
		}
		result = append(result, v)
	}

	slices.SortStableFunc(result, func(a, b model.RequestView) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return result, nil
}

func matches(fold cases.Caser, needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(fold.String(f), needle) {
			return true
		}
	}
	return false
}

// Statistics counts requests by status, users and categories.
func (s *RequestService) Statistics(ctx context.Context) (model.Statistics, error) {
	requests, err := s.db.Requests(ctx)
	if err != nil {
		return model.Statistics{}, err
	}
	users, err := s.db.Users(ctx)
	if err != nil {
		return model.Statistics{}, err
	}
	categories, err := s.db.Categories(ctx)
	if err != nil {
		return model.Statistics{}, err
	}

	stats := model.Statistics{
		TotalRequests: len(requests),
		TotalUsers:    len(users),
		Categories:    len(categories),
	}
	for _, r := range requests {
		switch r.Status {
		case model.StatusNew:
			stats.NewRequests++
		case model.StatusSolved:
			stats.SolvedRequests++
		case model.StatusRejected:
			stats.RejectedRequests++
		}
	}
	for _, u := range users {
		if u.Role != model.RoleAdmin {
			stats.ActiveUsers++
		}
	}
	return stats, nil
}

// UpdateStatus moves a request to status. It returns false when the request
// does not exist.
func (s *RequestService) UpdateStatus(ctx context.Context, id int64, status model.RequestStatus, reason string) (bool, error) {
	if !status.Valid() {
		return false, &ValidationError{Field: "status", Message: "invalid status"}
	}

	ok, err := s.db.UpdateRequestStatus(ctx, id, status, strings.TrimSpace(reason))
	if err != nil {
		return false, err
	}
	if ok {
		s.logger.Info("request status updated", "request_id", id, "status", status)
	}
	return ok, nil
}

// CreateRequest stores a new request for userID. Markup is stripped from
// the title and description.
func (s *RequestService) CreateRequest(ctx context.Context, userID int64, in CreateRequestInput) (model.Request, error) {
	title := s.plainText(in.Title)
	if title == "" {
		return model.Request{}, &ValidationError{Field: "title", Message: "title is required"}
	}

	created, err := s.db.AddRequest(ctx, model.Request{
		UserID:      userID,
		Title:       title,
		Description: s.plainText(in.Description),
		CategoryID:  in.CategoryID,
	})
	if err != nil {
		return model.Request{}, err
	}

	s.logger.Info("request created", "request_id", created.ID, "user_id", userID)
	return created, nil
}

// plainText strips markup from user input. The policy escapes what it keeps,
// so entities are decoded again: the API stores text, not HTML.
func (s *RequestService) plainText(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.sanitize.Sanitize(text)))
}

// UserRequests returns the requests owned by userID, optionally filtered by
// status, newest first.
func (s *RequestService) UserRequests(ctx context.Context, userID int64, status string) ([]model.RequestView, error) {
	requests, err := s.db.UserRequests(ctx, userID)
	if err != nil {
		return nil, err
	}
	if status != "" && status != model.StatusAll {
		requests = slices.DeleteFunc(requests, func(r model.Request) bool {
			return string(r.Status) != status
		})
	}

	views, err := s.join(ctx, requests, model.NoCategoryLabel)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(views, func(a, b model.RequestView) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return views, nil
}

// OwnRequest returns the joined view of request id if userID owns it.
func (s *RequestService) OwnRequest(ctx context.Context, userID, id int64) (model.RequestView, error) {
	req, err := s.db.RequestByID(ctx, id)
	if err != nil {
		return model.RequestView{}, err
	}
	if req.UserID != userID {
		return model.RequestView{}, ErrNotOwner
	}

	views, err := s.join(ctx, []model.Request{req}, model.NoCategoryLabel)
	if err != nil {
		return model.RequestView{}, err
	}
	return views[0], nil
}

// DeleteOwnRequest removes a request owned by userID while it is still new.
func (s *RequestService) DeleteOwnRequest(ctx context.Context, userID, id int64) error {
	req, err := s.db.RequestByID(ctx, id)
	if err != nil {
		return err
	}
	if req.UserID != userID {
		return ErrNotOwner
	}
	if req.Status != model.StatusNew {
		return ErrNotDeletable
	}

	ok, err := s.db.DeleteRequest(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return store.ErrNotFound
	}
	s.logger.Info("request withdrawn", "request_id", id, "user_id", userID)
	return nil
}

// DeleteRequest removes any request. It returns false when it did not exist.
func (s *RequestService) DeleteRequest(ctx context.Context, id int64) (bool, error) {
	ok, err := s.db.DeleteRequest(ctx, id)
	if err == nil && ok {
		s.logger.Info("request deleted", "request_id", id)
	}
	return ok, err
}

// Categories lists all categories.
func (s *RequestService) Categories(ctx context.Context) ([]model.Category, error) {
	return s.db.Categories(ctx)
}

// AddCategory creates a category. Blank names are rejected.
func (s *RequestService) AddCategory(ctx context.Context, name string) (model.Category, error) {
	name = s.plainText(name)
	if name == "" {
		return model.Category{}, &ValidationError{Field: "name", Message: "category name is required"}
	}

	c, err := s.db.AddCategory(ctx, name)
	if err != nil {
		return model.Category{}, err
	}
	s.logger.Info("category added", "category_id", c.ID, "name", c.Name)
	return c, nil
}

// DeleteCategory removes a category. Requests referencing it keep the id.
func (s *RequestService) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	ok, err := s.db.DeleteCategory(ctx, id)
	if err == nil && ok {
		s.logger.Info("category deleted", "category_id", id)
	}
	return ok, err
}
