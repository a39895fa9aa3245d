// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/olegiv/auditsite/internal/model"
	"github.com/olegiv/auditsite/internal/query"
)

const contactColumns = `id, first_name, last_name, email, phone, company, service_interest, subject, message,
	newsletter, status, submitted_at, updated_at`

func scanContact(s scanner) (model.Contact, error) {
	var c model.Contact
	err := s.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Company, &c.ServiceInterest,
		&c.Subject, &c.Message, &c.Newsletter, &c.Status, &c.SubmittedAt, &c.UpdatedAt)
	return c, err
}

// ListContacts returns one window of inquiries plus the filtered total.
func (q *Queries) ListContacts(ctx context.Context, p query.Params) (query.Page[model.Contact], error) {
	page, err := listPage(ctx, q.db, ContactResource, p, contactColumns, scanContact)
	if err != nil {
		return page, fmt.Errorf("listing contacts: %w", err)
	}
	return page, nil
}

// GetContactByID returns the inquiry or ErrNotFound.
func (q *Queries) GetContactByID(ctx context.Context, id int64) (model.Contact, error) {
	row := q.db.QueryRowContext(ctx, "SELECT "+contactColumns+" FROM contacts WHERE id = ?", id)
	c, err := scanContact(row)
	return c, mapError(err)
}

// CreateContact inserts c with status new, filling its ID and submission time.
func (q *Queries) CreateContact(ctx context.Context, c *model.Contact) error {
	now := time.Now().UTC()
	c.SubmittedAt, c.UpdatedAt, c.Status = now, now, model.ContactStatusNew

	err := q.db.QueryRowContext(ctx,
		`INSERT INTO contacts (first_name, last_name, email, phone, company, service_interest, subject,
		                       message, newsletter, status, submitted_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		c.FirstName, c.LastName, c.Email, c.Phone, c.Company, c.ServiceInterest, c.Subject,
		c.Message, boolToInt(c.Newsletter), c.Status, now, now,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("creating contact: %w", mapError(err))
	}
	return nil
}

// UpdateContactStatus sets the status of an inquiry. Any status may follow any other.
func (q *Queries) UpdateContactStatus(ctx context.Context, id int64, status string) (model.Contact, error) {
	row := q.db.QueryRowContext(ctx,
		"UPDATE contacts SET status = ?, updated_at = ? WHERE id = ? RETURNING "+contactColumns,
		status, time.Now().UTC(), id,
	)
	c, err := scanContact(row)
	return c, mapError(err)
}

// DeleteContact removes an inquiry. Deleting a missing inquiry yields ErrNotFound.
func (q *Queries) DeleteContact(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM contacts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting contact %d: %w", id, err)
	}
	return requireAffected(res)
}

// GetContactStats counts inquiries per status.
func (q *Queries) GetContactStats(ctx context.Context) (model.ContactStats, error) {
	var s model.ContactStats
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN status = 'new' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN status = 'in-progress' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN status = 'resolved' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN status = 'closed' THEN 1 ELSE 0 END), 0)
		 FROM contacts`,
	).Scan(&s.Total, &s.New, &s.InProgress, &s.Resolved, &s.Closed)
	if err != nil {
		return s, fmt.Errorf("contact stats: %w", err)
	}
	return s, nil
}
