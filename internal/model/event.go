// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"time"
)

// Event levels
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories
const (
	EventCategoryAuth    = "auth"
	EventCategoryBlog    = "blog"
	EventCategoryContact = "contact"
	EventCategoryUser    = "user"
	EventCategoryConfig  = "config"
	EventCategorySystem  = "system"
)

// Event is an entry in the server-side event log.
type Event struct {
	ID        int64           `json:"id"`
	Level     string          `json:"level"`
	Category  string          `json:"category"`
	Message   string          `json:"message"`
	Metadata  json.RawMessage `json:"metadata"`
	CreatedAt time.Time       `json:"createdAt"`
}

// DashboardStats aggregates the per-resource counts for the admin dashboard.
type DashboardStats struct {
	Blogs          BlogStats    `json:"blogs"`
	Contacts       ContactStats `json:"contacts"`
	Users          UserStats    `json:"users"`
	ActiveServices int64        `json:"activeServices"`
	Testimonials   int64        `json:"testimonials"`
}
