// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util holds small helpers shared by the store and the API layer:
// slug generation, HTML sanitising and nullable column conversion.
package util

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSlugLength bounds generated slugs, including any numeric suffix.
const MaxSlugLength = 200

var (
	slugRegex       = regexp.MustCompile(`[^a-z0-9-]+`)
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Slugify converts a title to a URL-friendly slug: accents are stripped,
// whitespace becomes hyphens and everything outside [a-z0-9-] is dropped.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)
	result = strings.Join(strings.Fields(result), "-")
	result = slugRegex.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	return truncateSlug(result, MaxSlugLength)
}

// SlugCandidate returns the n-th candidate for base: base itself for n <= 1,
// otherwise base-n. The result never exceeds MaxSlugLength.
func SlugCandidate(base string, n int) string {
	if n <= 1 {
		return truncateSlug(base, MaxSlugLength)
	}
	suffix := "-" + strconv.Itoa(n)
	return truncateSlug(base, MaxSlugLength-len(suffix)) + suffix
}

// truncateSlug cuts s to at most max bytes without leaving a trailing hyphen.
// Slugs are ASCII, so byte slicing is safe.
func truncateSlug(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimRight(s[:max], "-")
}

// IsValidSlug checks if a string is a valid slug format.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}

	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}

	return !strings.Contains(s, "--")
}
