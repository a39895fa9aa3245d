// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"
	"time"
)

// Blog statuses.
const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"
	BlogStatusArchived  = "archived"
)

// BlogCategories lists the accepted blog categories.
var BlogCategories = []string{
	"audit",
	"tax",
	"compliance",
	"advisory",
	"industry-news",
	"firm-news",
}

// Blog is an article shown on the public insights pages.
type Blog struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Content       string     `json:"content"`
	Excerpt       string     `json:"excerpt"`
	Category      string     `json:"category"`
	Tags          []string   `json:"tags"`
	AuthorID      *int64     `json:"authorId,omitempty"`
	Author        *Author    `json:"author,omitempty"`
	Status        string     `json:"status"`
	Views         int64      `json:"views"`
	PublishedDate *time.Time `json:"publishedDate,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Author is the public projection of a blog's author.
type Author struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// IsPublished returns true if the blog is visible to the public.
func (b *Blog) IsPublished() bool {
	return b.Status == BlogStatusPublished
}

// BlogStats holds the aggregate counts for the blog admin views.
type BlogStats struct {
	Total      int64 `json:"total"`
	Published  int64 `json:"published"`
	Draft      int64 `json:"draft"`
	Archived   int64 `json:"archived"`
	TotalViews int64 `json:"totalViews"`
}

// CreateBlogRequest is the body of POST /blogs. Views, author and timestamps are
// server-owned and deliberately absent.
type CreateBlogRequest struct {
	Title    string   `json:"title" validate:"required,max=200"`
	Slug     string   `json:"slug" validate:"omitempty,slug,max=200"`
	Content  string   `json:"content" validate:"required"`
	Excerpt  string   `json:"excerpt" validate:"max=500"`
	Category string   `json:"category" validate:"required,oneof=audit tax compliance advisory industry-news firm-news"`
	Tags     []string `json:"tags" validate:"max=20,dive,min=1,max=50"`
	Status   string   `json:"status" validate:"omitempty,oneof=draft published archived"`
}

// Normalize trims text fields, deduplicates tags and applies the default status.
func (r *CreateBlogRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Slug = strings.TrimSpace(r.Slug)
	r.Excerpt = strings.TrimSpace(r.Excerpt)
	r.Tags = NormalizeTags(r.Tags)
	if r.Status == "" {
		r.Status = BlogStatusDraft
	}
}

// UpdateBlogRequest is the body of PUT /blogs/{id}. Nil fields are left unchanged.
type UpdateBlogRequest struct {
	Title    *string   `json:"title" validate:"omitnil,min=1,max=200"`
	Slug     *string   `json:"slug" validate:"omitnil,slug,max=200"`
	Content  *string   `json:"content" validate:"omitnil,min=1"`
	Excerpt  *string   `json:"excerpt" validate:"omitnil,max=500"`
	Category *string   `json:"category" validate:"omitnil,oneof=audit tax compliance advisory industry-news firm-news"`
	Tags     *[]string `json:"tags" validate:"omitnil,max=20,dive,min=1,max=50"`
	Status   *string   `json:"status" validate:"omitnil,oneof=draft published archived"`
}

// Normalize trims text fields and deduplicates tags.
func (r *UpdateBlogRequest) Normalize() {
	trimPtr(r.Title)
	trimPtr(r.Slug)
	trimPtr(r.Excerpt)
	if r.Tags != nil {
		tags := NormalizeTags(*r.Tags)
		r.Tags = &tags
	}
}

// Apply copies the whitelisted mutable fields onto b.
func (r *UpdateBlogRequest) Apply(b *Blog) {
	if r.Title != nil {
		b.Title = *r.Title
	}
	if r.Slug != nil {
		b.Slug = *r.Slug
	}
	if r.Content != nil {
		b.Content = *r.Content
	}
	if r.Excerpt != nil {
		b.Excerpt = *r.Excerpt
	}
	if r.Category != nil {
		b.Category = *r.Category
	}
	if r.Tags != nil {
		b.Tags = *r.Tags
	}
	if r.Status != nil {
		b.Status = *r.Status
	}
}

// NormalizeTags lower-cases and trims tags, dropping empties and duplicates while
// preserving first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
