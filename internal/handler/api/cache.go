// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Cache key namespaces for public read endpoints.
const (
	cacheBlogs        = "blogs:"
	cacheServices     = "services:"
	cacheTestimonials = "testimonials:"
)

const headerCache = "X-Cache"

// cachedResponse serves successful GET responses under namespace from the
// response cache. It is a no-op when no cache is configured.
func (h *Handler) cachedResponse(namespace string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if h.cache == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := namespace + r.URL.Path + "?" + r.URL.RawQuery

			if body, err := h.cache.Get(r.Context(), key); err == nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set(headerCache, "HIT")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write(body)
				return
			}

			var buf bytes.Buffer
			w.Header().Set(headerCache, "MISS")
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Tee(&buf)
			next.ServeHTTP(ww, r)

			if ww.Status() == http.StatusOK {
				if err := h.cache.Set(r.Context(), key, buf.Bytes(), h.cacheTTL); err != nil {
					slog.Warn("failed to cache response", "key", key, "error", err)
				}
			}
		})
	}
}

// invalidates drops the given cache namespaces after any successful write.
func (h *Handler) invalidates(namespaces ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if h.cache == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			if r.Method == http.MethodGet || ww.Status() >= http.StatusBadRequest {
				return
			}
			h.purge(namespaces...)
		})
	}
}

// purge removes every cached entry under the given namespaces.
func (h *Handler) purge(namespaces ...string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for _, ns := range namespaces {
		if err := h.cache.DeleteByPrefix(ctx, ns); err != nil {
			slog.Warn("failed to invalidate response cache", "namespace", ns, "error", err)
		}
	}
}
