// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/olegiv/auditsite/internal/middleware"
	"github.com/olegiv/auditsite/internal/model"
	"github.com/olegiv/auditsite/internal/store"
	"github.com/olegiv/auditsite/internal/util"
)

// maxSlugAttempts bounds the numbered-suffix search before falling back to a random suffix.
const maxSlugAttempts = 100

// CategoryCount is one entry of the blog categories listing.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// ListPublishedBlogs handles GET /api/blogs.
// Only published posts are visible regardless of the status parameter.
func (h *Handler) ListPublishedBlogs(w http.ResponseWriter, r *http.Request) {
	p := h.listParams(r).Force("status", model.BlogStatusPublished)

	page, err := h.queries.ListBlogs(r.Context(), p)
	if err != nil {
		writeStoreError(w, err, "blogs", "list")
		return
	}
	WriteSuccess(w, page)
}

// ListBlogCategories handles GET /api/blogs/categories.
// Every known category is listed with its published post count, in enum order.
func (h *Handler) ListBlogCategories(w http.ResponseWriter, r *http.Request) {
	counts, err := h.queries.ListBlogCategoryCounts(r.Context())
	if err != nil {
		writeStoreError(w, err, "blog categories", "list")
		return
	}

	out := make([]CategoryCount, 0, len(model.BlogCategories))
	for _, c := range model.BlogCategories {
		out = append(out, CategoryCount{Name: c, Count: counts[c]})
	}
	WriteSuccess(w, out)
}

// GetBlogBySlug handles GET /api/blogs/{slug}.
// A successful read of a published post increments its view counter.
func (h *Handler) GetBlogBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if !util.IsValidSlug(slug) {
		WriteNotFound(w, "Blog not found")
		return
	}

	blog, err := h.queries.ViewPublishedBlog(r.Context(), slug)
	if err != nil {
		writeStoreError(w, err, "blog", "retrieve", "slug", slug)
		return
	}
	WriteSuccess(w, blog)
}

// ListAllBlogs handles GET /api/blogs/admin/all.
func (h *Handler) ListAllBlogs(w http.ResponseWriter, r *http.Request) {
	page, err := h.queries.ListBlogs(r.Context(), h.listParams(r))
	if err != nil {
		writeStoreError(w, err, "blogs", "list")
		return
	}

	stats, err := h.queries.GetBlogStats(r.Context())
	if err != nil {
		writeStoreError(w, err, "blog stats", "load")
		return
	}
	page.Stats = stats

	WriteSuccess(w, page)
}

// GetBlogStats handles GET /api/blogs/admin/stats.
func (h *Handler) GetBlogStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.queries.GetBlogStats(r.Context())
	if err != nil {
		writeStoreError(w, err, "blog stats", "load")
		return
	}
	WriteSuccess(w, stats)
}

// GetBlog handles GET /api/blogs/admin/{id}.
func (h *Handler) GetBlog(w http.ResponseWriter, r *http.Request) {
	blog, ok := requireEntityByID(w, r, "blog", h.queries.GetBlogByID)
	if !ok {
		return
	}
	WriteSuccess(w, blog)
}

// CreateBlog handles POST /api/blogs.
func (h *Handler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBlogRequest
	if !bindRequest(w, r, &req) {
		return
	}

	id, _ := middleware.GetIdentity(r)
	ctx := r.Context()

	slug, ok := h.resolveSlug(ctx, w, req.Slug, req.Title, 0)
	if !ok {
		return
	}

	content := util.SanitizeHTML(req.Content)
	excerpt := req.Excerpt
	if excerpt == "" {
		excerpt = util.Excerpt(content)
	}

	blog := model.Blog{
		Title:    req.Title,
		Slug:     slug,
		Content:  content,
		Excerpt:  excerpt,
		Category: req.Category,
		Tags:     req.Tags,
		Status:   req.Status,
	}
	if id.UserID != 0 {
		authorID := id.UserID
		blog.AuthorID = &authorID
	}
	if blog.IsPublished() {
		now := time.Now().UTC()
		blog.PublishedDate = &now
	}

	if err := h.queries.CreateBlog(ctx, &blog); err != nil {
		if errors.Is(err, store.ErrConflict) {
			WriteConflict(w, "Slug already exists", map[string]string{"slug": "Slug already exists"})
			return
		}
		writeStoreError(w, err, "blog", "create")
		return
	}

	created, err := h.queries.GetBlogByID(ctx, blog.ID)
	if err != nil {
		writeStoreError(w, err, "blog", "retrieve", "id", blog.ID)
		return
	}

	slog.Info("blog created", "blog_id", created.ID, "slug", created.Slug, "user_id", id.UserID)
	WriteCreated(w, created, "Blog created successfully")
}

// UpdateBlog handles PUT /api/blogs/{id}.
func (h *Handler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	blog, ok := requireEntityByID(w, r, "blog", h.queries.GetBlogByID)
	if !ok {
		return
	}

	var req model.UpdateBlogRequest
	if !bindRequest(w, r, &req) {
		return
	}

	ctx := r.Context()
	wasPublished := blog.IsPublished()
	req.Apply(&blog)

	if req.Slug != nil {
		slug, ok := h.resolveSlug(ctx, w, *req.Slug, blog.Title, blog.ID)
		if !ok {
			return
		}
		blog.Slug = slug
	}
	if req.Content != nil {
		blog.Content = util.SanitizeHTML(blog.Content)
		if req.Excerpt == nil {
			blog.Excerpt = util.Excerpt(blog.Content)
		}
	}
	if blog.IsPublished() && !wasPublished && blog.PublishedDate == nil {
		now := time.Now().UTC()
		blog.PublishedDate = &now
	}

	if err := h.queries.UpdateBlog(ctx, &blog); err != nil {
		if errors.Is(err, store.ErrConflict) {
			WriteConflict(w, "Slug already exists", map[string]string{"slug": "Slug already exists"})
			return
		}
		writeStoreError(w, err, "blog", "update", "id", blog.ID)
		return
	}

	updated, err := h.queries.GetBlogByID(ctx, blog.ID)
	if err != nil {
		writeStoreError(w, err, "blog", "retrieve", "id", blog.ID)
		return
	}
	WriteMessage(w, "Blog updated successfully", updated)
}

// DeleteBlog handles DELETE /api/blogs/{id}.
func (h *Handler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteBadRequest(w, "Invalid blog ID")
		return
	}

	if err := h.queries.DeleteBlog(r.Context(), id); err != nil {
		writeStoreError(w, err, "blog", "delete", "id", id)
		return
	}

	slog.Info("blog deleted", "blog_id", id)
	WriteMessage(w, "Blog deleted successfully", nil)
}

// resolveSlug returns the slug to store for a blog. An explicit slug must be free
// (409 otherwise); an empty one is derived from the title and numbered until unique.
// Returns false if a response has been written.
func (h *Handler) resolveSlug(ctx context.Context, w http.ResponseWriter, explicit, title string, excludeID int64) (string, bool) {
	if explicit != "" {
		exists, err := h.queries.BlogSlugExists(ctx, explicit, excludeID)
		if err != nil {
			writeStoreError(w, err, "slug", "check")
			return "", false
		}
		if exists {
			WriteConflict(w, "Slug already exists", map[string]string{"slug": "Slug already exists"})
			return "", false
		}
		return explicit, true
	}

	slug, err := h.uniqueSlug(ctx, util.Slugify(title), excludeID)
	if err != nil {
		writeStoreError(w, err, "slug", "generate")
		return "", false
	}
	return slug, true
}

// uniqueSlug tries base, base-2, base-3... and returns the first unused candidate.
func (h *Handler) uniqueSlug(ctx context.Context, base string, excludeID int64) (string, error) {
	if base == "" {
		base = "post"
	}
	for n := 1; n <= maxSlugAttempts; n++ {
		candidate := util.SlugCandidate(base, n)
		exists, err := h.queries.BlogSlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("checking slug %q: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
	}
	suffix := "-" + uuid.NewString()[:8]
	if limit := util.MaxSlugLength - len(suffix); len(base) > limit {
		base = strings.TrimRight(base[:limit], "-")
	}
	return base + suffix, nil
}
