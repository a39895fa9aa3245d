// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/auditsite/internal/auth"
	"github.com/olegiv/auditsite/internal/model"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyIdentity holds the verified auth.Identity of the caller.
const ContextKeyIdentity ContextKey = "identity"

// GetIdentity returns the verified caller, if any.
func GetIdentity(r *http.Request) (auth.Identity, bool) {
	id, ok := r.Context().Value(ContextKeyIdentity).(auth.Identity)
	return id, ok
}

// WithIdentity stores id in ctx.
func WithIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, ContextKeyIdentity, id)
}

// bearerToken extracts the credential from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// RequireAuth rejects requests without a valid bearer credential with 401.
// The verified identity is stored in the request context.
func RequireAuth(v auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				WriteError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			id, err := v.Verify(r.Context(), token)
			if err != nil {
				message := "Invalid or expired token"
				if errors.Is(err, auth.ErrInactiveUser) {
					message = "Account is deactivated"
				}
				slog.Debug("bearer verification failed", "error", err, "path", r.URL.Path)
				WriteError(w, http.StatusUnauthorized, message)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireAdmin allows only callers whose current role is admin. It must run
// after RequireAuth; without an identity it answers 401.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetIdentity(r)
		if !ok {
			WriteError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !id.IsAdmin() {
			slog.Warn("admin access denied",
				"user_id", id.UserID,
				"path", r.URL.Path,
				"category", model.EventCategoryAuth,
			)
			WriteError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
