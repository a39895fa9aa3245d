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

const userColumns = "id, name, email, password_hash, role, is_active, last_login, created_at, updated_at"

func scanUser(s scanner) (model.User, error) {
	var (
		u         model.User
		lastLogin sql.NullTime
	)
	err := s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &lastLogin, &u.CreatedAt, &u.UpdatedAt)
	u.LastLogin = util.TimePtrFromNull(lastLogin)
	return u, err
}

// ListUsers returns one window of users plus the filtered total.
func (q *Queries) ListUsers(ctx context.Context, p query.Params) (query.Page[model.User], error) {
	page, err := listPage(ctx, q.db, UserResource, p, userColumns, scanUser)
	if err != nil {
		return page, fmt.Errorf("listing users: %w", err)
	}
	return page, nil
}

// GetUserByID returns the user or ErrNotFound.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	row := q.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	u, err := scanUser(row)
	return u, mapError(err)
}

// GetUserByEmail looks a user up by normalized email.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	row := q.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", model.NormalizeEmail(email))
	u, err := scanUser(row)
	return u, mapError(err)
}

// CreateUser inserts u, filling its ID and timestamps. A duplicate email yields ErrConflict.
func (q *Queries) CreateUser(ctx context.Context, u *model.User) error {
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now

	err := q.db.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password_hash, role, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		u.Name, u.Email, u.PasswordHash, u.Role, boolToInt(u.IsActive), now, now,
	).Scan(&u.ID)
	if err != nil {
		return fmt.Errorf("creating user: %w", mapError(err))
	}
	return nil
}

// UpdateUser writes the mutable columns of u.
func (q *Queries) UpdateUser(ctx context.Context, u *model.User) error {
	u.UpdatedAt = time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		`UPDATE users SET name = ?, email = ?, password_hash = ?, role = ?, is_active = ?, updated_at = ?
		 WHERE id = ?`,
		u.Name, u.Email, u.PasswordHash, u.Role, boolToInt(u.IsActive), u.UpdatedAt, u.ID,
	)
	if err != nil {
		return fmt.Errorf("updating user %d: %w", u.ID, mapError(err))
	}
	return requireAffected(res)
}

// UpdateUserLastLogin stamps the login time.
func (q *Queries) UpdateUserLastLogin(ctx context.Context, id int64, at time.Time) error {
	res, err := q.db.ExecContext(ctx, "UPDATE users SET last_login = ? WHERE id = ?", at.UTC(), id)
	if err != nil {
		return fmt.Errorf("updating last login: %w", err)
	}
	return requireAffected(res)
}

// DeleteUser removes a user. Deleting a missing user yields ErrNotFound.
func (q *Queries) DeleteUser(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting user %d: %w", id, err)
	}
	return requireAffected(res)
}

// GetUserStats counts all, active and admin users.
func (q *Queries) GetUserStats(ctx context.Context) (model.UserStats, error) {
	var s model.UserStats
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN is_active = 1 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN role = 'admin' THEN 1 ELSE 0 END), 0)
		 FROM users`,
	).Scan(&s.Total, &s.Active, &s.Admins)
	if err != nil {
		return s, fmt.Errorf("user stats: %w", err)
	}
	return s, nil
}
