// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON REST handlers for the site's resources.
package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/olegiv/auditsite/internal/auth"
	"github.com/olegiv/auditsite/internal/cache"
	"github.com/olegiv/auditsite/internal/model"
	"github.com/olegiv/auditsite/internal/query"
	"github.com/olegiv/auditsite/internal/store"
	"github.com/olegiv/auditsite/internal/version"
)

// Config carries the handler's collaborators.
type Config struct {
	Tokens            *auth.TokenManager
	Limits            query.Limits
	PrimaryAdminEmail string
	Version           version.Info

	// Cache holds public read responses; nil disables response caching.
	Cache    cache.Cache
	CacheTTL time.Duration
}

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db                *sql.DB
	queries           *store.Queries
	tokens            *auth.TokenManager
	limits            query.Limits
	primaryAdminEmail string
	version           version.Info
	cache             cache.Cache
	cacheTTL          time.Duration
	startTime         time.Time
}

// NewHandler creates a new API handler.
func NewHandler(db *sql.DB, cfg Config) *Handler {
	return &Handler{
		db:                db,
		queries:           store.New(db),
		tokens:            cfg.Tokens,
		limits:            cfg.Limits,
		primaryAdminEmail: cfg.PrimaryAdminEmail,
		version:           cfg.Version,
		cache:             cfg.Cache,
		cacheTTL:          cfg.CacheTTL,
		startTime:         time.Now(),
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a 200 response carrying data.
func WriteSuccess(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

// WriteCreated writes a 201 Created response.
func WriteCreated(w http.ResponseWriter, data any, message string) {
	WriteJSON(w, http.StatusCreated, Response{Success: true, Data: data, Message: message})
}

// WriteMessage writes a 200 response with a message and optional data.
func WriteMessage(w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusOK, Response{Success: true, Data: data, Message: message})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, message string, errs map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{Message: message, Errors: errs})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message, nil)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message, nil)
}

// WriteForbidden writes a 403 Forbidden response.
func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, message, nil)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message, nil)
}

// WriteConflict writes a 409 Conflict response, optionally naming the clashing field.
func WriteConflict(w http.ResponseWriter, message string, errs map[string]string) {
	WriteError(w, http.StatusConflict, message, errs)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message, nil)
}

// WriteValidationError writes a 422 Unprocessable Entity response with field errors.
func WriteValidationError(w http.ResponseWriter, fieldErrors model.FieldErrors) {
	WriteError(w, http.StatusUnprocessableEntity, "Validation failed", fieldErrors)
}
