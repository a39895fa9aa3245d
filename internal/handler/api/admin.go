// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/auditsite/internal/cache"
	"github.com/olegiv/auditsite/internal/model"
	"github.com/olegiv/auditsite/internal/version"
)

// healthPingTimeout bounds the database check in Health.
const healthPingTimeout = 2 * time.Second

// HealthStatus is the body of GET /api/health.
type HealthStatus struct {
	Status    string       `json:"status"`
	Database  string       `json:"database"`
	Timestamp time.Time    `json:"timestamp"`
	Uptime    string       `json:"uptime"`
	Version   version.Info `json:"version"`
	Cache     *cache.Stats `json:"cache,omitempty"`
}

// Health handles GET /api/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	status := HealthStatus{
		Status:    "ok",
		Database:  "ok",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
	}
	if sp, ok := h.cache.(cache.StatsProvider); ok {
		stats := sp.Stats()
		status.Cache = &stats
	}

	if err := h.db.PingContext(ctx); err != nil {
		slog.Error("health check: database unreachable", "error", err, "category", model.EventCategorySystem)
		status.Status = "degraded"
		status.Database = "unreachable"
		WriteJSON(w, http.StatusServiceUnavailable, Response{Success: false, Data: status, Message: "Database unreachable"})
		return
	}
	WriteSuccess(w, status)
}

// DashboardStats handles GET /api/admin/stats.
func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var (
		stats model.DashboardStats
		err   error
	)

	if stats.Blogs, err = h.queries.GetBlogStats(ctx); err != nil {
		writeStoreError(w, err, "blog stats", "load")
		return
	}
	if stats.Contacts, err = h.queries.GetContactStats(ctx); err != nil {
		writeStoreError(w, err, "contact stats", "load")
		return
	}
	if stats.Users, err = h.queries.GetUserStats(ctx); err != nil {
		writeStoreError(w, err, "user stats", "load")
		return
	}
	if stats.ActiveServices, err = h.queries.CountActiveServices(ctx); err != nil {
		writeStoreError(w, err, "service stats", "load")
		return
	}
	if stats.Testimonials, err = h.queries.CountActiveTestimonials(ctx); err != nil {
		writeStoreError(w, err, "testimonial stats", "load")
		return
	}

	WriteSuccess(w, stats)
}

// ListEvents handles GET /api/admin/events.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	page, err := h.queries.ListEvents(r.Context(), h.listParams(r))
	if err != nil {
		writeStoreError(w, err, "events", "list")
		return
	}
	WriteSuccess(w, page)
}
