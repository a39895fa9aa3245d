// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic housekeeping jobs.
package scheduler

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/auditsite/internal/model"
	"github.com/olegiv/auditsite/internal/store"
)

// PruneSchedule runs the event log cleanup once a day at 03:00.
const PruneSchedule = "0 3 * * *"

// Scheduler handles scheduled tasks like pruning the event log.
type Scheduler struct {
	db        *sql.DB
	cron      *cron.Cron
	logger    *slog.Logger
	retention time.Duration
	now       func() time.Time
}

// New creates a new scheduler instance. A zero retention disables pruning.
func New(db *sql.DB, logger *slog.Logger, retention time.Duration) *Scheduler {
	return &Scheduler{
		db:        db,
		cron:      cron.New(),
		logger:    logger,
		retention: retention,
		now:       time.Now,
	}
}

// Start registers the jobs and starts the cron runner.
func (s *Scheduler) Start() error {
	if s.retention > 0 {
		_, err := s.cron.AddFunc(PruneSchedule, func() {
			if _, err := s.pruneEvents(context.Background()); err != nil {
				s.logger.Error("failed to prune event log", "error", err, "category", model.EventCategorySystem)
			}
		})
		if err != nil {
			return err
		}
	} else {
		s.logger.Info("event log pruning disabled")
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// pruneEvents deletes events older than the retention window and records the
// cleanup itself as an info event.
func (s *Scheduler) pruneEvents(ctx context.Context) (int64, error) {
	queries := store.New(s.db)
	now := s.now().UTC()
	cutoff := now.Add(-s.retention)

	deleted, err := queries.DeleteEventsBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, nil
	}

	s.logger.Info("pruned event log", "deleted", deleted, "cutoff", cutoff)

	metadata, _ := json.Marshal(map[string]any{
		"deleted": deleted,
		"cutoff":  cutoff.Format(time.RFC3339),
	})
	err = queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     model.EventLevelInfo,
		Category:  model.EventCategorySystem,
		Message:   "Event log pruned by scheduler",
		Metadata:  string(metadata),
		CreatedAt: now,
	})
	if err != nil {
		s.logger.Warn("failed to log prune event", "error", err)
	}
	return deleted, nil
}
