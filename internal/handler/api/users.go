// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/auditsite/internal/auth"
	"github.com/olegiv/auditsite/internal/middleware"
	"github.com/olegiv/auditsite/internal/model"
	"github.com/olegiv/auditsite/internal/store"
)

// Primary admin rejection messages.
const (
	msgPrimaryAdminRole   = "The primary admin's role cannot be changed"
	msgPrimaryAdminStatus = "The primary admin cannot be deactivated"
	msgPrimaryAdminEmail  = "The primary admin's email cannot be changed"
	msgPrimaryAdminDelete = "The primary admin cannot be deleted"
)

// ListUsers handles GET /api/users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, err := h.queries.ListUsers(r.Context(), h.listParams(r))
	if err != nil {
		writeStoreError(w, err, "users", "list")
		return
	}

	stats, err := h.queries.GetUserStats(r.Context())
	if err != nil {
		writeStoreError(w, err, "user stats", "load")
		return
	}
	page.Stats = stats

	WriteSuccess(w, page)
}

// GetUser handles GET /api/users/{id}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, ok := requireEntityByID(w, r, "user", h.queries.GetUserByID)
	if !ok {
		return
	}
	WriteSuccess(w, user)
}

// CreateUser handles POST /api/users.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if !bindRequest(w, r, &req) {
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		WriteInternalError(w, "Failed to create user")
		return
	}

	user := model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     req.IsActive == nil || *req.IsActive,
	}
	if err := h.queries.CreateUser(r.Context(), &user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeEmailConflict(w)
			return
		}
		writeStoreError(w, err, "user", "create")
		return
	}

	slog.Info("user created", "user_id", user.ID, "email", user.Email, "role", user.Role,
		"created_by", actorID(r))
	WriteCreated(w, user, "User created successfully")
}

// UpdateUser handles PUT /api/users/{id}.
// The primary admin keeps its email, its admin role and its active status.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	user, ok := requireEntityByID(w, r, "user", h.queries.GetUserByID)
	if !ok {
		return
	}

	var req model.UpdateUserRequest
	if !bindRequest(w, r, &req) {
		return
	}

	if user.IsPrimaryAdmin(h.primaryAdminEmail) {
		switch {
		case req.Role != nil && *req.Role != model.RoleAdmin:
			h.rejectPrimaryAdmin(w, r, user, msgPrimaryAdminRole)
			return
		case req.IsActive != nil && !*req.IsActive:
			h.rejectPrimaryAdmin(w, r, user, msgPrimaryAdminStatus)
			return
		case req.Email != nil && !strings.EqualFold(*req.Email, user.Email):
			h.rejectPrimaryAdmin(w, r, user, msgPrimaryAdminEmail)
			return
		}
	}

	req.Apply(&user)
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			slog.Error("failed to hash password", "error", err, "user_id", user.ID)
			WriteInternalError(w, "Failed to update user")
			return
		}
		user.PasswordHash = hash
	}

	h.saveUser(w, r, user, "User updated successfully")
}

// UpdateUserRole handles PUT /api/users/{id}/role.
func (h *Handler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	user, ok := requireEntityByID(w, r, "user", h.queries.GetUserByID)
	if !ok {
		return
	}

	var req model.UpdateRoleRequest
	if !bindRequest(w, r, &req) {
		return
	}

	if user.IsPrimaryAdmin(h.primaryAdminEmail) && req.Role != model.RoleAdmin {
		h.rejectPrimaryAdmin(w, r, user, msgPrimaryAdminRole)
		return
	}

	user.Role = req.Role
	h.saveUser(w, r, user, "User role updated successfully")
}

// UpdateUserStatus handles PUT /api/users/{id}/status.
func (h *Handler) UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := requireEntityByID(w, r, "user", h.queries.GetUserByID)
	if !ok {
		return
	}

	var req model.UpdateStatusRequest
	if !bindRequest(w, r, &req) {
		return
	}

	if user.IsPrimaryAdmin(h.primaryAdminEmail) && !*req.IsActive {
		h.rejectPrimaryAdmin(w, r, user, msgPrimaryAdminStatus)
		return
	}

	user.IsActive = *req.IsActive
	h.saveUser(w, r, user, "User status updated successfully")
}

// DeleteUser handles DELETE /api/users/{id}.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user, ok := requireEntityByID(w, r, "user", h.queries.GetUserByID)
	if !ok {
		return
	}

	if user.IsPrimaryAdmin(h.primaryAdminEmail) {
		h.rejectPrimaryAdmin(w, r, user, msgPrimaryAdminDelete)
		return
	}

	if err := h.queries.DeleteUser(r.Context(), user.ID); err != nil {
		writeStoreError(w, err, "user", "delete", "id", user.ID)
		return
	}

	slog.Info("user deleted", "user_id", user.ID, "email", user.Email, "deleted_by", actorID(r))
	WriteMessage(w, "User deleted successfully", nil)
}

// saveUser persists user and writes it back with message.
func (h *Handler) saveUser(w http.ResponseWriter, r *http.Request, user model.User, message string) {
	if err := h.queries.UpdateUser(r.Context(), &user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeEmailConflict(w)
			return
		}
		writeStoreError(w, err, "user", "update", "id", user.ID)
		return
	}
	WriteMessage(w, message, user)
}

// rejectPrimaryAdmin answers 403 and records the attempt in the event log.
func (h *Handler) rejectPrimaryAdmin(w http.ResponseWriter, r *http.Request, user model.User, message string) {
	slog.Warn("primary admin modification rejected",
		"category", model.EventCategoryUser,
		"user_id", user.ID,
		"attempted_by", actorID(r),
		"path", r.URL.Path,
	)
	WriteForbidden(w, message)
}

func writeEmailConflict(w http.ResponseWriter) {
	WriteConflict(w, "Email already in use", map[string]string{"email": "Email already in use"})
}

// actorID returns the caller's user ID, or 0 for anonymous requests.
func actorID(r *http.Request) int64 {
	id, _ := middleware.GetIdentity(r)
	return id.UserID
}
