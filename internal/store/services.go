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

const serviceColumns = `id, title, description, short_description, category, features, starting_price,
	currency, price_type, is_active, display_order, created_at, updated_at`

func scanService(s scanner) (model.Service, error) {
	var (
		svc      model.Service
		features string
		price    sql.NullFloat64
	)
	err := s.Scan(&svc.ID, &svc.Title, &svc.Description, &svc.ShortDescription, &svc.Category, &features,
		&price, &svc.Pricing.Currency, &svc.Pricing.PriceType, &svc.IsActive, &svc.DisplayOrder,
		&svc.CreatedAt, &svc.UpdatedAt)
	if err != nil {
		return svc, err
	}
	if svc.Features, err = decodeStrings(features); err != nil {
		return svc, fmt.Errorf("decoding features of service %d: %w", svc.ID, err)
	}
	svc.Pricing.StartingPrice = util.Float64PtrFromNull(price)
	return svc, nil
}

// ListServices returns one window of services plus the filtered total.
func (q *Queries) ListServices(ctx context.Context, p query.Params) (query.Page[model.Service], error) {
	page, err := listPage(ctx, q.db, ServiceResource, p, serviceColumns, scanService)
	if err != nil {
		return page, fmt.Errorf("listing services: %w", err)
	}
	return page, nil
}

// GetServiceByID returns the service or ErrNotFound.
func (q *Queries) GetServiceByID(ctx context.Context, id int64) (model.Service, error) {
	row := q.db.QueryRowContext(ctx, "SELECT "+serviceColumns+" FROM services WHERE id = ?", id)
	svc, err := scanService(row)
	return svc, mapError(err)
}

// CreateService inserts svc, filling its ID and timestamps.
func (q *Queries) CreateService(ctx context.Context, svc *model.Service) error {
	features, err := encodeStrings(svc.Features)
	if err != nil {
		return fmt.Errorf("encoding features: %w", err)
	}
	now := time.Now().UTC()
	svc.CreatedAt, svc.UpdatedAt = now, now

	err = q.db.QueryRowContext(ctx,
		`INSERT INTO services (title, description, short_description, category, features, starting_price,
		                       currency, price_type, is_active, display_order, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		svc.Title, svc.Description, svc.ShortDescription, svc.Category, features,
		util.NullFloat64FromPtr(svc.Pricing.StartingPrice), svc.Pricing.Currency, svc.Pricing.PriceType,
		boolToInt(svc.IsActive), svc.DisplayOrder, now, now,
	).Scan(&svc.ID)
	if err != nil {
		return fmt.Errorf("creating service: %w", mapError(err))
	}
	return nil
}

// UpdateService writes all editable columns of svc.
func (q *Queries) UpdateService(ctx context.Context, svc *model.Service) error {
	features, err := encodeStrings(svc.Features)
	if err != nil {
		return fmt.Errorf("encoding features: %w", err)
	}
	svc.UpdatedAt = time.Now().UTC()

	res, err := q.db.ExecContext(ctx,
		`UPDATE services SET title = ?, description = ?, short_description = ?, category = ?, features = ?,
		                     starting_price = ?, currency = ?, price_type = ?, is_active = ?,
		                     display_order = ?, updated_at = ?
		 WHERE id = ?`,
		svc.Title, svc.Description, svc.ShortDescription, svc.Category, features,
		util.NullFloat64FromPtr(svc.Pricing.StartingPrice), svc.Pricing.Currency, svc.Pricing.PriceType,
		boolToInt(svc.IsActive), svc.DisplayOrder, svc.UpdatedAt, svc.ID,
	)
	if err != nil {
		return fmt.Errorf("updating service %d: %w", svc.ID, mapError(err))
	}
	return requireAffected(res)
}

// DeleteService removes a service. Deleting a missing service yields ErrNotFound.
func (q *Queries) DeleteService(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM services WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting service %d: %w", id, err)
	}
	return requireAffected(res)
}

// CountActiveServices counts services shown publicly.
func (q *Queries) CountActiveServices(ctx context.Context) (int64, error) {
	var n int64
	if err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM services WHERE is_active = 1").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting services: %w", err)
	}
	return n, nil
}
