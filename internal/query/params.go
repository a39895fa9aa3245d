// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package query turns untrusted list parameters (page, limit, search, filters
// and sort) into a parameterised SQL window plus the pagination envelope that
// every list endpoint returns.
package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Reserved parameter names. Everything else is a candidate filter.
const (
	ParamPage      = "page"
	ParamLimit     = "limit"
	ParamSearch    = "search"
	ParamSortBy    = "sortBy"
	ParamSortOrder = "sortOrder"
)

// Sort directions accepted in sortOrder.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// FilterAll is the sentinel value that disables a filter.
const FilterAll = "all"

// Limits bounds the page size.
type Limits struct {
	Default int
	Max     int
}

// DefaultLimits are used when the caller passes a zero Limits.
var DefaultLimits = Limits{Default: 10, Max: 100}

func (l Limits) normalize() Limits {
	if l.Default < 1 {
		l.Default = DefaultLimits.Default
	}
	if l.Max < l.Default {
		l.Max = l.Default
	}
	return l
}

// Params is the parsed, lenient view of a list request.
type Params struct {
	Page      int
	Limit     int
	Search    string
	Filters   map[string]string
	SortBy    string
	SortOrder string
}

// ParseParams reads list parameters from a query string. Malformed page or
// limit values fall back to defaults instead of failing; a limit above the
// maximum is clamped.
func ParseParams(values url.Values, limits Limits) Params {
	limits = limits.normalize()

	p := Params{
		Page:      parseIntParam(values.Get(ParamPage), 1),
		Limit:     parseIntParam(values.Get(ParamLimit), limits.Default),
		Search:    strings.TrimSpace(values.Get(ParamSearch)),
		SortBy:    strings.TrimSpace(values.Get(ParamSortBy)),
		SortOrder: strings.ToLower(strings.TrimSpace(values.Get(ParamSortOrder))),
		Filters:   make(map[string]string),
	}
	if p.Limit > limits.Max {
		p.Limit = limits.Max
	}
	// Keep (page-1)*limit within int range.
	if maxPage := math.MaxInt/p.Limit + 1; p.Page > maxPage {
		p.Page = maxPage
	}

	for key, vals := range values {
		switch key {
		case ParamPage, ParamLimit, ParamSearch, ParamSortBy, ParamSortOrder:
			continue
		}
		if len(vals) > 0 {
			p.Filters[key] = strings.TrimSpace(vals[0])
		}
	}

	return p
}

// Force returns a copy of p with param pinned to value, overriding anything
// the client sent.
func (p Params) Force(param, value string) Params {
	filters := make(map[string]string, len(p.Filters)+1)
	for k, v := range p.Filters {
		filters[k] = v
	}
	filters[param] = value
	p.Filters = filters
	return p
}

// Offset returns the number of rows skipped before the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// parseIntParam parses a positive integer, returning defaultVal for
// anything missing, malformed or below 1.
func parseIntParam(str string, defaultVal int) int {
	if str == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(strings.TrimSpace(str))
	if err != nil || val < 1 {
		return defaultVal
	}
	return val
}
