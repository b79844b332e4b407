// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Category labels requests. Unrelated to the News category label.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// News is an announcement shown on the home page.
// Category is a free-text label and Date a plain calendar date.
type News struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content"`
	Image    string `json:"image"`
	Date     string `json:"date"`
}

// Statistics holds aggregate counts for the admin dashboard.
type Statistics struct {
	TotalRequests    int `json:"totalRequests"`
	NewRequests      int `json:"newRequests"`
	SolvedRequests   int `json:"solvedRequests"`
	RejectedRequests int `json:"rejectedRequests"`
	TotalUsers       int `json:"totalUsers"`
	ActiveUsers      int `json:"activeUsers"`
	Categories       int `json:"categories"`
}
