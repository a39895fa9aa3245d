// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/olegiv/auditsite/internal/auth"
	"github.com/olegiv/auditsite/internal/model"
)

// PrimaryAdmin describes the protected account ensured at startup.
type PrimaryAdmin struct {
	Email    string
	Name     string
	Password string
}

// seedOutcome records what SeedPrimaryAdmin did, for logging after commit.
type seedOutcome int

const (
	seedUnchanged seedOutcome = iota
	seedRestored
	seedCreated
)

// SeedPrimaryAdmin creates the primary admin when missing. An existing account
// keeps its password but is restored to an active admin. The lookup and the
// write run in one transaction.
func SeedPrimaryAdmin(ctx context.Context, db *sql.DB, admin PrimaryAdmin) error {
	email := model.NormalizeEmail(admin.Email)

	password := admin.Password
	generated := password == ""
	if generated {
		var err error
		if password, err = auth.GeneratePassword(18); err != nil {
			return err
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	user, outcome, err := seedPrimaryAdminTx(ctx, New(db).WithTx(tx), email, admin.Name, password)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}

	switch outcome {
	case seedUnchanged:
		slog.Info("primary admin already exists, skipping seed", "email", email)
	case seedRestored:
		slog.Warn("primary admin was demoted or deactivated, restored", "email", email, "category", model.EventCategoryUser)
	case seedCreated:
		if generated {
			slog.Info("created primary admin with generated password, change it after first login",
				"id", user.ID,
				"email", user.Email,
				"password", password,
			)
		} else {
			slog.Info("created primary admin", "id", user.ID, "email", user.Email)
		}
	}
	return nil
}

func seedPrimaryAdminTx(ctx context.Context, q *Queries, email, name, password string) (model.User, seedOutcome, error) {
	existing, err := q.GetUserByEmail(ctx, email)
	if err == nil {
		if existing.IsAdmin() && existing.IsActive {
			return existing, seedUnchanged, nil
		}
		existing.Role = model.RoleAdmin
		existing.IsActive = true
		if err := q.UpdateUser(ctx, &existing); err != nil {
			return model.User{}, 0, fmt.Errorf("restoring primary admin: %w", err)
		}
		return existing, seedRestored, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return model.User{}, 0, fmt.Errorf("checking for primary admin: %w", err)
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return model.User{}, 0, fmt.Errorf("hashing password: %w", err)
	}

	user := model.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := q.CreateUser(ctx, &user); err != nil {
		return model.User{}, 0, fmt.Errorf("creating primary admin: %w", err)
	}
	return user, seedCreated, nil
}
