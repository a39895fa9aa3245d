// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/olegiv/auditsite/internal/model"
	"github.com/olegiv/auditsite/internal/query"
)

const eventColumns = "id, level, category, message, metadata, created_at"

func scanEvent(s scanner) (model.Event, error) {
	var (
		e        model.Event
		metadata string
	)
	err := s.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &metadata, &e.CreatedAt)
	if metadata == "" {
		metadata = "{}"
	}
	e.Metadata = json.RawMessage(metadata)
	return e, err
}

// CreateEventParams holds the columns of a new event log entry.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

// CreateEvent appends an entry to the event log.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) error {
	if arg.Metadata == "" {
		arg.Metadata = "{}"
	}
	if arg.CreatedAt.IsZero() {
		arg.CreatedAt = time.Now()
	}
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO event_log (level, category, message, metadata, created_at) VALUES (?, ?, ?, ?, ?)",
		arg.Level, arg.Category, arg.Message, arg.Metadata, arg.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("creating event: %w", err)
	}
	return nil
}

// ListEvents returns one window of the event log plus the filtered total.
func (q *Queries) ListEvents(ctx context.Context, p query.Params) (query.Page[model.Event], error) {
	page, err := listPage(ctx, q.db, EventResource, p, eventColumns, scanEvent)
	if err != nil {
		return page, fmt.Errorf("listing events: %w", err)
	}
	return page, nil
}

// DeleteEventsBefore prunes entries older than cutoff and returns how many were removed.
func (q *Queries) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, "DELETE FROM event_log WHERE created_at < ?", cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("pruning events: %w", err)
	}
	return res.RowsAffected()
}
