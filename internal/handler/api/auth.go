// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/auditsite/internal/auth"
	"github.com/olegiv/auditsite/internal/middleware"
	"github.com/olegiv/auditsite/internal/model"
	"github.com/olegiv/auditsite/internal/store"
)

const msgInvalidCredentials = "Invalid email or password"

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      model.User `json:"user"`
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !bindRequest(w, r, &req) {
		return
	}

	ctx := r.Context()
	user, err := h.queries.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			writeStoreError(w, err, "user", "retrieve")
			return
		}
		// Keep the timing of unknown emails in line with wrong passwords.
		auth.CheckPasswordDummy(req.Password)
		h.loginFailed(w, r, req.Email, "unknown email", msgInvalidCredentials)
		return
	}

	valid, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil {
		slog.Error("failed to check password", "error", err, "user_id", user.ID)
	}
	if !valid {
		h.loginFailed(w, r, req.Email, "wrong password", msgInvalidCredentials)
		return
	}
	if !user.IsActive {
		h.loginFailed(w, r, req.Email, "account deactivated", "Account is deactivated")
		return
	}

	if auth.NeedsRehash(user.PasswordHash) {
		if hash, err := auth.HashPassword(req.Password); err == nil {
			user.PasswordHash = hash
			if err := h.queries.UpdateUser(ctx, &user); err != nil {
				slog.Warn("failed to upgrade password hash", "error", err, "user_id", user.ID)
			}
		}
	}

	now := time.Now().UTC()
	if err := h.queries.UpdateUserLastLogin(ctx, user.ID, now); err != nil {
		slog.Warn("failed to record last login", "error", err, "user_id", user.ID)
	} else {
		user.LastLogin = &now
	}

	token, expiresAt, err := h.tokens.Issue(user)
	if err != nil {
		slog.Error("failed to issue token", "error", err, "user_id", user.ID)
		WriteInternalError(w, "Failed to sign in")
		return
	}

	slog.Info("user logged in", "user_id", user.ID, "email", user.Email)
	WriteMessage(w, "Login successful", LoginResponse{Token: token, ExpiresAt: expiresAt, User: user})
}

// loginFailed answers 401 with message. The reason only goes to the event log.
func (h *Handler) loginFailed(w http.ResponseWriter, r *http.Request, email, reason, message string) {
	slog.Warn("login failed",
		"category", model.EventCategoryAuth,
		"email", email,
		"reason", reason,
		"ip", r.RemoteAddr,
	)
	WriteUnauthorized(w, message)
}

// Me handles GET /api/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r)
	if !ok {
		WriteUnauthorized(w, "Authentication required")
		return
	}

	user, err := h.queries.GetUserByID(r.Context(), id.UserID)
	if err != nil {
		writeStoreError(w, err, "user", "retrieve", "id", id.UserID)
		return
	}
	WriteSuccess(w, user)
}
