// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"
	"testing"

	"github.com/olegiv/auditsite/internal/model"
	"github.com/olegiv/auditsite/internal/query"
	"github.com/olegiv/auditsite/internal/store"
	"github.com/olegiv/auditsite/internal/testutil"
)

// discardHandler is a slog.Handler that discards all logs.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

// recordingWriter captures events in memory.
type recordingWriter struct {
	events []store.CreateEventParams
}

func (w *recordingWriter) CreateEvent(_ context.Context, arg store.CreateEventParams) error {
	w.events = append(w.events, arg)
	return nil
}

func newTestHandler(level slog.Level) (*EventLogHandler, *recordingWriter) {
	w := &recordingWriter{}
	return &EventLogHandler{inner: discardHandler{}, events: w, level: level}, w
}

func decodeMetadata(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("metadata is not valid JSON: %v (%s)", err, raw)
	}
	return m
}

func TestEventLogHandler_Levels(t *testing.T) {
	tests := []struct {
		name      string
		threshold slog.Level
		log       func(*slog.Logger)
		wantLevel string // empty means not captured
	}{
		{"error captured", slog.LevelWarn, func(l *slog.Logger) { l.Error("database connection failed") }, model.EventLevelError},
		{"warn captured", slog.LevelWarn, func(l *slog.Logger) { l.Warn("slow query detected") }, model.EventLevelWarning},
		{"info skipped", slog.LevelWarn, func(l *slog.Logger) { l.Info("server started") }, ""},
		{"debug skipped", slog.LevelWarn, func(l *slog.Logger) { l.Debug("processing request") }, ""},
		{"info with custom threshold", slog.LevelInfo, func(l *slog.Logger) { l.Info("server started") }, model.EventLevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, w := newTestHandler(tt.threshold)
			tt.log(slog.New(h))

			if tt.wantLevel == "" {
				if len(w.events) != 0 {
					t.Errorf("expected no events, got %d", len(w.events))
				}
				return
			}
			if len(w.events) != 1 {
				t.Fatalf("expected 1 event, got %d", len(w.events))
			}
			if w.events[0].Level != tt.wantLevel {
				t.Errorf("Level = %q, want %q", w.events[0].Level, tt.wantLevel)
			}
		})
	}
}

func TestEventLogHandler_CategoryInference(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"login failed", model.EventCategoryAuth},
		{"invalid token presented", model.EventCategoryAuth},
		{"failed to update blog", model.EventCategoryBlog},
		{"contact inquiry dropped", model.EventCategoryContact},
		{"primary admin modification rejected", model.EventCategoryUser},
		{"config validation failed", model.EventCategoryConfig},
		{"unknown error occurred", model.EventCategorySystem},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			h, w := newTestHandler(slog.LevelWarn)
			slog.New(h).Error(tt.message)

			if len(w.events) != 1 {
				t.Fatalf("expected 1 event, got %d", len(w.events))
			}
			if w.events[0].Category != tt.want {
				t.Errorf("Category = %q, want %q", w.events[0].Category, tt.want)
			}
		})
	}
}

func TestEventLogHandler_ExplicitCategory(t *testing.T) {
	h, w := newTestHandler(slog.LevelWarn)
	slog.New(h).Error("something happened", "category", model.EventCategoryContact)

	if w.events[0].Category != model.EventCategoryContact {
		t.Errorf("Category = %q, want %q", w.events[0].Category, model.EventCategoryContact)
	}
	if meta := decodeMetadata(t, w.events[0].Metadata); len(meta) != 0 {
		t.Errorf("category should not be repeated in metadata: %v", meta)
	}
}

func TestEventLogHandler_Metadata(t *testing.T) {
	h, w := newTestHandler(slog.LevelWarn)
	slog.New(h).Error("request failed",
		"status_code", 500,
		"path", `/api/users?q="x"`,
		"error", errors.New("disk full"),
		slog.Group("client", "ip", "10.0.0.1"),
	)

	meta := decodeMetadata(t, w.events[0].Metadata)
	if meta["status_code"] != float64(500) {
		t.Errorf("status_code = %v, want 500", meta["status_code"])
	}
	if meta["path"] != `/api/users?q="x"` {
		t.Errorf("path = %v", meta["path"])
	}
	if meta["error"] != "disk full" {
		t.Errorf("error = %v, want %q", meta["error"], "disk full")
	}
	client, ok := meta["client"].(map[string]any)
	if !ok || client["ip"] != "10.0.0.1" {
		t.Errorf("client group = %v", meta["client"])
	}
}

func TestEventLogHandler_EmptyMetadata(t *testing.T) {
	h, w := newTestHandler(slog.LevelWarn)
	slog.New(h).Warn("bare warning")

	if w.events[0].Metadata != "{}" {
		t.Errorf("Metadata = %q, want {}", w.events[0].Metadata)
	}
}

func TestEventLogHandler_WithAttrsAndGroup(t *testing.T) {
	h, w := newTestHandler(slog.LevelWarn)
	logger := slog.New(h).With("service", "api", "category", model.EventCategoryBlog).WithGroup("req")
	logger.Warn("slow handler", "ms", 1500)

	ev := w.events[0]
	if ev.Category != model.EventCategoryBlog {
		t.Errorf("Category = %q, want %q", ev.Category, model.EventCategoryBlog)
	}
	meta := decodeMetadata(t, ev.Metadata)
	if meta["service"] != "api" {
		t.Errorf("service = %v, want api", meta["service"])
	}
	if meta["req.ms"] != float64(1500) {
		t.Errorf("req.ms = %v, want 1500 (metadata %v)", meta["req.ms"], meta)
	}
}

func TestEventLogHandler_WritesToDatabase(t *testing.T) {
	db := testutil.TestDB(t)
	logger := slog.New(NewEventLogHandler(discardHandler{}, db))

	logger.Warn("login failed", "email", "a@b.com")
	logger.Info("not recorded")

	q := store.New(db)
	page, err := q.ListEvents(context.Background(), query.ParseParams(url.Values{}, query.DefaultLimits))
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("expected 1 event, got %d", len(page.Items))
	}

	ev := page.Items[0]
	if ev.Category != model.EventCategoryAuth || ev.Level != model.EventLevelWarning {
		t.Errorf("event = %+v", ev)
	}
	if !json.Valid(ev.Metadata) {
		t.Errorf("stored metadata is not JSON: %s", ev.Metadata)
	}
}
