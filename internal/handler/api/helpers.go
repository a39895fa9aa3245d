// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/auditsite/internal/model"
	"github.com/olegiv/auditsite/internal/query"
	"github.com/olegiv/auditsite/internal/store"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// normalizer is implemented by request payloads that trim and default their fields.
type normalizer interface {
	Normalize()
}

// parseID reads the {id} URL parameter.
func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// decodeJSON reads the request body into dst. Unknown fields are ignored.
// Returns false if the body is malformed (response already written).
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WriteError(w, http.StatusRequestEntityTooLarge, "Request body too large", nil)
			return false
		}
		WriteBadRequest(w, "Invalid JSON body")
		return false
	}
	return true
}

// bindRequest decodes, normalizes and validates a request payload.
// Returns false if the payload was rejected (response already written).
func bindRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !decodeJSON(w, r, dst) {
		return false
	}
	if n, ok := dst.(normalizer); ok {
		n.Normalize()
	}
	if errs := model.Validate(dst); errs != nil {
		WriteValidationError(w, errs)
		return false
	}
	return true
}

// listParams parses the common list query parameters using the handler's limits.
func (h *Handler) listParams(r *http.Request) query.Params {
	return query.ParseParams(r.URL.Query(), h.limits)
}

// EntityFetcher is a function that fetches an entity by ID.
type EntityFetcher[T any] func(ctx context.Context, id int64) (T, error)

// requireEntityByID parses an ID from the URL and fetches the entity.
// Returns the entity and true if successful, or zero value and false if error (response written).
// The entityName is used for error messages (e.g., "blog", "user", "contact").
func requireEntityByID[T any](w http.ResponseWriter, r *http.Request, entityName string, fetch EntityFetcher[T]) (T, bool) {
	var zero T

	id, err := parseID(r)
	if err != nil {
		WriteBadRequest(w, "Invalid "+entityName+" ID")
		return zero, false
	}

	entity, err := fetch(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, entityName, "retrieve", "id", id)
		return zero, false
	}
	return entity, true
}

// writeStoreError converts a store error into the matching envelope.
// Unexpected errors are logged with the entity and the extra attributes.
func writeStoreError(w http.ResponseWriter, err error, entityName, action string, args ...any) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		WriteNotFound(w, capitalizeFirst(entityName)+" not found")
	case errors.Is(err, store.ErrConflict):
		WriteConflict(w, capitalizeFirst(entityName)+" already exists", nil)
	default:
		slog.Error("failed to "+action+" "+entityName, append([]any{"error", err}, args...)...)
		WriteInternalError(w, "Failed to "+action+" "+entityName)
	}
}

// capitalizeFirst returns the string with its first letter capitalized.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
