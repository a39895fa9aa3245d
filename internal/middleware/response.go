// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides the HTTP middleware around the JSON API: the
// bearer-token access guard, per-IP rate limiting, CORS, security headers and
// request metrics.
package middleware

import (
	"encoding/json"
	"net/http"
)

// errorBody mirrors the failure envelope written by the API handlers.
type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WriteError writes a {success:false, message} JSON response.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorBody{Success: false, Message: message})
}
