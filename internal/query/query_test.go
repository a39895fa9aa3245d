// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package query

import (
	"math"
	"net/url"
	"reflect"
	"strings"
	"testing"
)

var blogResource = Resource{
	From:     "blogs",
	IDColumn: "id",
	Filters: []Filter{
		{Param: "category", Column: "category"},
		{Param: "status", Column: "status"},
		{Param: "tag", Column: "tags", Kind: JSONArray},
		{Param: "author", Column: "author_id", Kind: Int},
		{Param: "featured", Column: "is_featured", Kind: Bool},
	},
	SearchColumns: []string{"title", "excerpt"},
	Sorts: map[string]string{
		"createdAt": "created_at",
		"title":     "title",
	},
	DefaultSort: Sort{Column: "created_at", Desc: true},
}

func TestParseParams_Lenient(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 10},
		{"valid", "page=3&limit=25", 3, 25},
		{"non-numeric", "page=abc&limit=xyz", 1, 10},
		{"zero and negative", "page=0&limit=-5", 1, 10},
		{"limit clamped", "limit=1000", 1, 100},
		{"padded", "page=%202%20", 2, 10},
		{"page beyond offset range", "page=9223372036854775807&limit=10", math.MaxInt/10 + 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			p := ParseParams(values, Limits{})
			if p.Offset() < 0 {
				t.Errorf("Offset() = %d, must not be negative", p.Offset())
			}
			if p.Page != tt.wantPage || p.Limit != tt.wantLimit {
				t.Errorf("got page=%d limit=%d, want page=%d limit=%d",
					p.Page, p.Limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestParseParams_CustomLimits(t *testing.T) {
	values := url.Values{"limit": {"30"}}
	p := ParseParams(values, Limits{Default: 5, Max: 20})
	if p.Limit != 20 {
		t.Errorf("Limit = %d, want 20", p.Limit)
	}
	if p := ParseParams(url.Values{}, Limits{Default: 5, Max: 20}); p.Limit != 5 {
		t.Errorf("default Limit = %d, want 5", p.Limit)
	}
}

func TestParseParams_SeparatesFilters(t *testing.T) {
	values, _ := url.ParseQuery("page=2&search=+Tax+&sortBy=title&sortOrder=ASC&category=tax&status=all")
	p := ParseParams(values, Limits{})

	if p.Search != "Tax" {
		t.Errorf("Search = %q, want %q", p.Search, "Tax")
	}
	if p.SortBy != "title" || p.SortOrder != "asc" {
		t.Errorf("sort = %q %q", p.SortBy, p.SortOrder)
	}
	want := map[string]string{"category": "tax", "status": "all"}
	if !reflect.DeepEqual(p.Filters, want) {
		t.Errorf("Filters = %v, want %v", p.Filters, want)
	}
}

func TestParams_Force(t *testing.T) {
	p := Params{Filters: map[string]string{"status": "draft"}}
	forced := p.Force("status", "published")

	if forced.Filters["status"] != "published" {
		t.Errorf("forced status = %q", forced.Filters["status"])
	}
	if p.Filters["status"] != "draft" {
		t.Error("Force must not mutate the receiver's filters")
	}
}

func TestBuild_Filters(t *testing.T) {
	tests := []struct {
		name      string
		filters   map[string]string
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "no filters",
			filters:   nil,
			wantWhere: "",
		},
		{
			name:      "all sentinel ignored",
			filters:   map[string]string{"category": "all", "status": "ALL"},
			wantWhere: "",
		},
		{
			name:      "empty ignored",
			filters:   map[string]string{"category": ""},
			wantWhere: "",
		},
		{
			name:      "unknown field ignored",
			filters:   map[string]string{"$where": "1=1", "password": "x"},
			wantWhere: "",
		},
		{
			name:      "string equality",
			filters:   map[string]string{"category": "tax"},
			wantWhere: "WHERE category = ?",
			wantArgs:  []any{"tax"},
		},
		{
			name:      "bool and int",
			filters:   map[string]string{"featured": "true", "author": "7"},
			wantWhere: "WHERE author_id = ? AND is_featured = ?",
			wantArgs:  []any{int64(7), 1},
		},
		{
			name:      "invalid bool and int ignored",
			filters:   map[string]string{"featured": "maybe", "author": "seven"},
			wantWhere: "",
		},
		{
			name:      "json array membership",
			filters:   map[string]string{"tag": "SOX"},
			wantWhere: "WHERE EXISTS (SELECT 1 FROM json_each(tags) WHERE json_each.value = ?)",
			wantArgs:  []any{"sox"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := blogResource.Build(Params{Page: 1, Limit: 10, Filters: tt.filters})
			if q.Where != tt.wantWhere {
				t.Errorf("Where = %q, want %q", q.Where, tt.wantWhere)
			}
			if len(tt.wantArgs) == 0 && len(q.Args) == 0 {
				return
			}
			if !reflect.DeepEqual(q.Args, tt.wantArgs) {
				t.Errorf("Args = %#v, want %#v", q.Args, tt.wantArgs)
			}
		})
	}
}

func TestBuild_Search(t *testing.T) {
	q := blogResource.Build(Params{Page: 1, Limit: 10, Search: "SOX", Filters: map[string]string{"status": "published"}})

	want := `WHERE status = ? AND (LOWER(title) LIKE ? ESCAPE '\' OR LOWER(excerpt) LIKE ? ESCAPE '\')`
	if q.Where != want {
		t.Errorf("Where = %q, want %q", q.Where, want)
	}
	wantArgs := []any{"published", "%sox%", "%sox%"}
	if !reflect.DeepEqual(q.Args, wantArgs) {
		t.Errorf("Args = %#v, want %#v", q.Args, wantArgs)
	}
}

func TestSearchPattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"Tax", "%tax%"},
		{"100%", `%100\%%`},
		{"a_b", `%a\_b%`},
		{`c:\path`, `%c:\\path%`},
		{".*(regex)+", "%.*(regex)+%"},
	}

	for _, tt := range tests {
		if got := SearchPattern(tt.in); got != tt.want {
			t.Errorf("SearchPattern(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuild_Sort(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      string
	}{
		{"default", "", "", "created_at DESC, id DESC"},
		{"whitelisted", "title", "asc", "title ASC, id ASC"},
		{"whitelisted default direction", "title", "", "title DESC, id DESC"},
		{"unknown field falls back", "password", "asc", "created_at ASC, id ASC"},
		{"unknown direction falls back", "title", "sideways", "title DESC, id DESC"},
		{"injection attempt", "title; DROP TABLE blogs", "", "created_at DESC, id DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := blogResource.Build(Params{Page: 1, Limit: 10, SortBy: tt.sortBy, SortOrder: tt.sortOrder})
			if q.OrderBy != tt.want {
				t.Errorf("OrderBy = %q, want %q", q.OrderBy, tt.want)
			}
		})
	}
}

func TestQuery_SQL(t *testing.T) {
	q := blogResource.Build(Params{Page: 3, Limit: 20, Filters: map[string]string{"category": "tax"}})

	stmt, args := q.SelectSQL("id, title")
	wantStmt := "SELECT id, title FROM blogs WHERE category = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	if stmt != wantStmt {
		t.Errorf("SelectSQL() = %q, want %q", stmt, wantStmt)
	}
	if !reflect.DeepEqual(args, []any{"tax", 20, 40}) {
		t.Errorf("select args = %#v", args)
	}

	count, countArgs := q.CountSQL()
	if count != "SELECT COUNT(*) FROM blogs WHERE category = ?" {
		t.Errorf("CountSQL() = %q", count)
	}
	if !reflect.DeepEqual(countArgs, []any{"tax"}) {
		t.Errorf("count args = %#v", countArgs)
	}
	if strings.Contains(count, "LIMIT") {
		t.Error("count must ignore the window")
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		total     int64
		limit     int
		wantPages int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{3, 1, 3},
		{5, 0, 0},
	}

	for _, tt := range tests {
		p := NewPagination(2, tt.limit, tt.total)
		if p.Pages != tt.wantPages {
			t.Errorf("NewPagination(total=%d, limit=%d).Pages = %d, want %d",
				tt.total, tt.limit, p.Pages, tt.wantPages)
		}
		if p.Current != 2 || p.Total != tt.total || p.Limit != tt.limit {
			t.Errorf("unexpected pagination %+v", p)
		}
	}
}

func TestNewPage_EmptyItems(t *testing.T) {
	page := NewPage[string](nil, Query{Page: 1, Limit: 10}, 0)
	if page.Items == nil || len(page.Items) != 0 {
		t.Errorf("Items = %#v, want empty non-nil slice", page.Items)
	}
}
