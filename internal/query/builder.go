// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package query

import (
	"strconv"
	"strings"
)

// Kind describes how a filter value is interpreted.
type Kind int

// Filter kinds.
const (
	String    Kind = iota // exact match
	Bool                  // true/false/1/0, anything else ignored
	Int                   // base-10 integer, anything else ignored
	JSONArray             // membership in a JSON array column
	Lower                 // exact match on the lower-cased value
)

// Filter maps a query parameter onto a column.
type Filter struct {
	Param  string
	Column string
	Kind   Kind
}

// Sort is a column plus direction.
type Sort struct {
	Column string
	Desc   bool
}

// Resource describes the listable shape of one entity. All identifiers in a
// Resource are trusted SQL fragments; nothing from Params is ever spliced into
// the statement text.
type Resource struct {
	// From is the FROM clause body, e.g. "blogs b LEFT JOIN users u ON u.id = b.author_id".
	From string
	// IDColumn is the final tiebreaker that keeps page windows stable.
	IDColumn      string
	Filters       []Filter
	SearchColumns []string
	// Sorts maps accepted sortBy values to columns.
	Sorts       map[string]string
	DefaultSort Sort
}

// Query is a built list statement.
type Query struct {
	From    string
	Where   string
	Args    []any
	OrderBy string
	Page    int
	Limit   int
	Offset  int
}

// Build translates p into a Query for r. Unknown filters and sort fields are
// dropped rather than rejected.
func (r Resource) Build(p Params) Query {
	var (
		conds []string
		args  []any
	)

	for _, f := range r.Filters {
		raw, ok := p.Filters[f.Param]
		if !ok || raw == "" || strings.EqualFold(raw, FilterAll) {
			continue
		}
		cond, arg, ok := filterCondition(f, raw)
		if !ok {
			continue
		}
		conds = append(conds, cond)
		args = append(args, arg)
	}

	if term := SearchPattern(p.Search); term != "" && len(r.SearchColumns) > 0 {
		ors := make([]string, 0, len(r.SearchColumns))
		for _, col := range r.SearchColumns {
			ors = append(ors, "LOWER("+col+") LIKE ? ESCAPE '\\'")
			args = append(args, term)
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	q := Query{
		From:    r.From,
		Args:    args,
		OrderBy: r.orderBy(p),
		Page:    p.Page,
		Limit:   p.Limit,
		Offset:  p.Offset(),
	}
	if len(conds) > 0 {
		q.Where = "WHERE " + strings.Join(conds, " AND ")
	}
	return q
}

func (r Resource) orderBy(p Params) string {
	sort := r.DefaultSort
	if col, ok := r.Sorts[p.SortBy]; ok {
		sort.Column = col
	}
	switch p.SortOrder {
	case OrderAsc:
		sort.Desc = false
	case OrderDesc:
		sort.Desc = true
	}

	dir := "ASC"
	if sort.Desc {
		dir = "DESC"
	}
	order := sort.Column + " " + dir
	if r.IDColumn != "" && sort.Column != r.IDColumn {
		order += ", " + r.IDColumn + " " + dir
	}
	return order
}

func filterCondition(f Filter, raw string) (string, any, bool) {
	switch f.Kind {
	case Bool:
		switch strings.ToLower(raw) {
		case "true", "1":
			return f.Column + " = ?", 1, true
		case "false", "0":
			return f.Column + " = ?", 0, true
		}
		return "", nil, false
	case Int:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return "", nil, false
		}
		return f.Column + " = ?", n, true
	case JSONArray:
		return "EXISTS (SELECT 1 FROM json_each(" + f.Column + ") WHERE json_each.value = ?)", strings.ToLower(raw), true
	case Lower:
		return f.Column + " = ?", strings.ToLower(raw), true
	default:
		return f.Column + " = ?", raw, true
	}
}

// SearchPattern returns the LIKE pattern for a free-text search, or "" when
// the term is blank. LIKE metacharacters in the term are escaped with '\'.
func SearchPattern(search string) string {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return ""
	}
	term = likeEscaper.Replace(term)
	return "%" + term + "%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SelectSQL returns the windowed SELECT statement and its arguments.
func (q Query) SelectSQL(columns string) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(columns)
	b.WriteString(" FROM ")
	b.WriteString(q.From)
	if q.Where != "" {
		b.WriteString(" ")
		b.WriteString(q.Where)
	}
	if q.OrderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(q.OrderBy)
	}
	b.WriteString(" LIMIT ? OFFSET ?")

	args := make([]any, 0, len(q.Args)+2)
	args = append(args, q.Args...)
	args = append(args, q.Limit, q.Offset)
	return b.String(), args
}

// CountSQL returns a COUNT(*) over the same predicate, ignoring the window.
func (q Query) CountSQL() (string, []any) {
	stmt := "SELECT COUNT(*) FROM " + q.From
	if q.Where != "" {
		stmt += " " + q.Where
	}
	return stmt, q.Args
}
