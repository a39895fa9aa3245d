// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/olegiv/auditsite/internal/model"
	"github.com/olegiv/auditsite/internal/query"
	"github.com/olegiv/auditsite/internal/util"
)

const blogColumns = `b.id, b.title, b.slug, b.content, b.excerpt, b.category, b.tags, b.author_id,
	b.status, b.views, b.published_date, b.created_at, b.updated_at, u.name, u.email`

const blogFrom = "blogs b LEFT JOIN users u ON u.id = b.author_id"

func scanBlog(s scanner) (model.Blog, error) {
	var (
		b           model.Blog
		tags        string
		authorID    sql.NullInt64
		published   sql.NullTime
		authorName  sql.NullString
		authorEmail sql.NullString
	)
	err := s.Scan(&b.ID, &b.Title, &b.Slug, &b.Content, &b.Excerpt, &b.Category, &tags, &authorID,
		&b.Status, &b.Views, &published, &b.CreatedAt, &b.UpdatedAt, &authorName, &authorEmail)
	if err != nil {
		return b, err
	}
	if b.Tags, err = decodeStrings(tags); err != nil {
		return b, fmt.Errorf("decoding tags of blog %d: %w", b.ID, err)
	}
	b.AuthorID = util.Int64PtrFromNull(authorID)
	b.PublishedDate = util.TimePtrFromNull(published)
	if authorID.Valid && authorName.Valid {
		b.Author = &model.Author{ID: authorID.Int64, Name: authorName.String, Email: authorEmail.String}
	}
	return b, nil
}

// ListBlogs returns one window of blogs plus the filtered total.
func (q *Queries) ListBlogs(ctx context.Context, p query.Params) (query.Page[model.Blog], error) {
	page, err := listPage(ctx, q.db, BlogResource, p, blogColumns, scanBlog)
	if err != nil {
		return page, fmt.Errorf("listing blogs: %w", err)
	}
	return page, nil
}

// GetBlogByID returns the blog with its author, or ErrNotFound.
func (q *Queries) GetBlogByID(ctx context.Context, id int64) (model.Blog, error) {
	row := q.db.QueryRowContext(ctx, "SELECT "+blogColumns+" FROM "+blogFrom+" WHERE b.id = ?", id)
	b, err := scanBlog(row)
	return b, mapError(err)
}

// GetBlogBySlug returns the blog with the given slug regardless of status.
func (q *Queries) GetBlogBySlug(ctx context.Context, slug string) (model.Blog, error) {
	row := q.db.QueryRowContext(ctx, "SELECT "+blogColumns+" FROM "+blogFrom+" WHERE b.slug = ?", slug)
	b, err := scanBlog(row)
	return b, mapError(err)
}

// ViewPublishedBlog atomically increments the view counter of a published
// blog and returns it with the new count. Unpublished or missing slugs yield
// ErrNotFound and are never counted.
func (q *Queries) ViewPublishedBlog(ctx context.Context, slug string) (model.Blog, error) {
	var id int64
	err := q.db.QueryRowContext(ctx,
		"UPDATE blogs SET views = views + 1 WHERE slug = ? AND status = ? RETURNING id",
		slug, model.BlogStatusPublished,
	).Scan(&id)
	if err != nil {
		return model.Blog{}, mapError(err)
	}
	return q.GetBlogByID(ctx, id)
}

// BlogSlugExists reports whether slug is taken by a blog other than excludeID.
func (q *Queries) BlogSlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM blogs WHERE slug = ? AND id != ?", slug, excludeID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking slug: %w", err)
	}
	return n > 0, nil
}

// CreateBlog inserts b with a zero view count, filling its ID and timestamps.
func (q *Queries) CreateBlog(ctx context.Context, b *model.Blog) error {
	tags, err := encodeStrings(b.Tags)
	if err != nil {
		return fmt.Errorf("encoding tags: %w", err)
	}
	now := time.Now().UTC()
	b.CreatedAt, b.UpdatedAt, b.Views = now, now, 0

	err = q.db.QueryRowContext(ctx,
		`INSERT INTO blogs (title, slug, content, content_text, excerpt, category, tags, author_id, status, views,
		                    published_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?) RETURNING id`,
		b.Title, b.Slug, b.Content, util.PlainText(b.Content), b.Excerpt, b.Category, tags, util.NullInt64FromPtr(b.AuthorID),
		b.Status, util.NullTimeFromPtr(b.PublishedDate), now, now,
	).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("creating blog: %w", mapError(err))
	}
	return nil
}

// UpdateBlog writes the editable columns of b. Views and author are not touched.
func (q *Queries) UpdateBlog(ctx context.Context, b *model.Blog) error {
	tags, err := encodeStrings(b.Tags)
	if err != nil {
		return fmt.Errorf("encoding tags: %w", err)
	}
	b.UpdatedAt = time.Now().UTC()

	res, err := q.db.ExecContext(ctx,
		`UPDATE blogs SET title = ?, slug = ?, content = ?, content_text = ?, excerpt = ?, category = ?,
		                  tags = ?, status = ?, published_date = ?, updated_at = ?
		 WHERE id = ?`,
		b.Title, b.Slug, b.Content, util.PlainText(b.Content), b.Excerpt, b.Category, tags,
		b.Status, util.NullTimeFromPtr(b.PublishedDate), b.UpdatedAt, b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating blog %d: %w", b.ID, mapError(err))
	}
	return requireAffected(res)
}

// DeleteBlog removes a blog. Deleting a missing blog yields ErrNotFound.
func (q *Queries) DeleteBlog(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM blogs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting blog %d: %w", id, err)
	}
	return requireAffected(res)
}

// GetBlogStats counts blogs per status and sums views.
func (q *Queries) GetBlogStats(ctx context.Context) (model.BlogStats, error) {
	var s model.BlogStats
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN status = 'published' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN status = 'draft' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN status = 'archived' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(views), 0)
		 FROM blogs`,
	).Scan(&s.Total, &s.Published, &s.Draft, &s.Archived, &s.TotalViews)
	if err != nil {
		return s, fmt.Errorf("blog stats: %w", err)
	}
	return s, nil
}

// ListBlogCategoryCounts returns the number of published blogs per category.
func (q *Queries) ListBlogCategoryCounts(ctx context.Context) (map[string]int64, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT category, COUNT(*) FROM blogs WHERE status = ? GROUP BY category", model.BlogStatusPublished)
	if err != nil {
		return nil, fmt.Errorf("blog categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			cat string
			n   int64
		)
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, err
		}
		counts[cat] = n
	}
	return counts, rows.Err()
}
