// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "github.com/olegiv/auditsite/internal/query"

// BlogResource is the listable shape of blogs. Columns are qualified because
// the author is joined in.
var BlogResource = query.Resource{
	From:     blogFrom,
	IDColumn: "b.id",
	Filters: []query.Filter{
		{Param: "category", Column: "b.category"},
		{Param: "status", Column: "b.status"},
		{Param: "tag", Column: "b.tags", Kind: query.JSONArray},
		{Param: "author", Column: "b.author_id", Kind: query.Int},
	},
	SearchColumns: []string{"b.title", "b.excerpt", "b.content_text"},
	Sorts: map[string]string{
		"createdAt":     "b.created_at",
		"publishedDate": "b.published_date",
		"title":         "b.title",
		"views":         "b.views",
	},
	DefaultSort: query.Sort{Column: "b.created_at", Desc: true},
}

// ContactResource is the listable shape of contact inquiries.
var ContactResource = query.Resource{
	From:     "contacts",
	IDColumn: "id",
	Filters: []query.Filter{
		{Param: "status", Column: "status"},
		{Param: "serviceInterest", Column: "service_interest"},
	},
	SearchColumns: []string{"first_name", "last_name", "email", "company", "subject", "message"},
	Sorts: map[string]string{
		"submittedAt": "submitted_at",
		"lastName":    "last_name",
		"status":      "status",
	},
	DefaultSort: query.Sort{Column: "submitted_at", Desc: true},
}

// UserResource is the listable shape of users.
var UserResource = query.Resource{
	From:     "users",
	IDColumn: "id",
	Filters: []query.Filter{
		{Param: "role", Column: "role"},
		{Param: "isActive", Column: "is_active", Kind: query.Bool},
	},
	SearchColumns: []string{"name", "email"},
	Sorts: map[string]string{
		"createdAt": "created_at",
		"name":      "name",
		"email":     "email",
		"lastLogin": "last_login",
	},
	DefaultSort: query.Sort{Column: "created_at", Desc: true},
}

// ServiceResource is the listable shape of services.
var ServiceResource = query.Resource{
	From:     "services",
	IDColumn: "id",
	Filters: []query.Filter{
		{Param: "category", Column: "category"},
		{Param: "isActive", Column: "is_active", Kind: query.Bool},
	},
	SearchColumns: []string{"title", "description", "short_description"},
	Sorts: map[string]string{
		"displayOrder": "display_order",
		"title":        "title",
		"createdAt":    "created_at",
	},
	DefaultSort: query.Sort{Column: "display_order"},
}

// TestimonialResource is the listable shape of testimonials.
var TestimonialResource = query.Resource{
	From:     "testimonials",
	IDColumn: "id",
	Filters: []query.Filter{
		{Param: "projectType", Column: "project_type"},
		{Param: "isActive", Column: "is_active", Kind: query.Bool},
		{Param: "isFeatured", Column: "is_featured", Kind: query.Bool},
		{Param: "featured", Column: "is_featured", Kind: query.Bool},
		{Param: "rating", Column: "rating", Kind: query.Int},
	},
	SearchColumns: []string{"client_name", "client_company", "content"},
	Sorts: map[string]string{
		"createdAt":     "created_at",
		"rating":        "rating",
		"dateOfService": "date_of_service",
	},
	DefaultSort: query.Sort{Column: "created_at", Desc: true},
}

// EventResource is the listable shape of the event log.
var EventResource = query.Resource{
	From:     "event_log",
	IDColumn: "id",
	Filters: []query.Filter{
		{Param: "level", Column: "level", Kind: query.Lower},
		{Param: "category", Column: "category", Kind: query.Lower},
	},
	SearchColumns: []string{"message"},
	Sorts: map[string]string{
		"createdAt": "created_at",
	},
	DefaultSort: query.Sort{Column: "created_at", Desc: true},
}
