// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/olegiv/auditsite/internal/model"
	"github.com/olegiv/auditsite/internal/query"
	"github.com/olegiv/auditsite/internal/util"
)

const testimonialColumns = `id, client_name, client_company, client_position, content, rating, project_type,
	is_active, is_featured, date_of_service, created_at, updated_at`

func scanTestimonial(s scanner) (model.Testimonial, error) {
	var (
		t      model.Testimonial
		served sql.NullTime
	)
	err := s.Scan(&t.ID, &t.ClientName, &t.ClientCompany, &t.ClientPosition, &t.Content, &t.Rating,
		&t.ProjectType, &t.IsActive, &t.IsFeatured, &served, &t.CreatedAt, &t.UpdatedAt)
	t.DateOfService = util.TimePtrFromNull(served)
	return t, err
}

// ListTestimonials returns one window of testimonials plus the filtered total.
func (q *Queries) ListTestimonials(ctx context.Context, p query.Params) (query.Page[model.Testimonial], error) {
	page, err := listPage(ctx, q.db, TestimonialResource, p, testimonialColumns, scanTestimonial)
	if err != nil {
		return page, fmt.Errorf("listing testimonials: %w", err)
	}
	return page, nil
}

// GetTestimonialByID returns the testimonial or ErrNotFound.
func (q *Queries) GetTestimonialByID(ctx context.Context, id int64) (model.Testimonial, error) {
	row := q.db.QueryRowContext(ctx, "SELECT "+testimonialColumns+" FROM testimonials WHERE id = ?", id)
	t, err := scanTestimonial(row)
	return t, mapError(err)
}

// CreateTestimonial inserts t, filling its ID and timestamps.
func (q *Queries) CreateTestimonial(ctx context.Context, t *model.Testimonial) error {
	now := time.Now().UTC()
	t.CreatedAt, t.UpdatedAt = now, now

	err := q.db.QueryRowContext(ctx,
		`INSERT INTO testimonials (client_name, client_company, client_position, content, rating,
		                           project_type, is_active, is_featured, date_of_service, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		t.ClientName, t.ClientCompany, t.ClientPosition, t.Content, t.Rating, t.ProjectType,
		boolToInt(t.IsActive), boolToInt(t.IsFeatured), util.NullTimeFromPtr(t.DateOfService), now, now,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("creating testimonial: %w", mapError(err))
	}
	return nil
}

// UpdateTestimonial writes all editable columns of t.
func (q *Queries) UpdateTestimonial(ctx context.Context, t *model.Testimonial) error {
	t.UpdatedAt = time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		`UPDATE testimonials SET client_name = ?, client_company = ?, client_position = ?, content = ?,
		                         rating = ?, project_type = ?, is_active = ?, is_featured = ?,
		                         date_of_service = ?, updated_at = ?
		 WHERE id = ?`,
		t.ClientName, t.ClientCompany, t.ClientPosition, t.Content, t.Rating, t.ProjectType,
		boolToInt(t.IsActive), boolToInt(t.IsFeatured), util.NullTimeFromPtr(t.DateOfService),
		t.UpdatedAt, t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating testimonial %d: %w", t.ID, mapError(err))
	}
	return requireAffected(res)
}

// DeleteTestimonial removes a testimonial. Deleting a missing one yields ErrNotFound.
func (q *Queries) DeleteTestimonial(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM testimonials WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting testimonial %d: %w", id, err)
	}
	return requireAffected(res)
}

// CountActiveTestimonials counts testimonials shown publicly.
func (q *Queries) CountActiveTestimonials(ctx context.Context) (int64, error) {
	var n int64
	if err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM testimonials WHERE is_active = 1").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting testimonials: %w", err)
	}
	return n, nil
}
