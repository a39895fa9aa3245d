// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// ExcerptLength is the maximum rune length of a derived excerpt.
const ExcerptLength = 200

var (
	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

// SanitizeHTML strips scripts, event handlers and other unsafe markup from
// author-supplied HTML while keeping ordinary formatting.
func SanitizeHTML(s string) string {
	return ugcPolicy.Sanitize(s)
}

// PlainText removes all markup and collapses whitespace.
func PlainText(s string) string {
	text := html.UnescapeString(strictPolicy.Sanitize(s))
	return strings.Join(strings.Fields(text), " ")
}

// Excerpt derives a plain-text summary of at most ExcerptLength runes from
// HTML content. Truncation happens on a word boundary when one is close.
func Excerpt(content string) string {
	text := PlainText(content)
	if utf8.RuneCountInString(text) <= ExcerptLength {
		return text
	}

	runes := []rune(text)
	cut := string(runes[:ExcerptLength-3])
	if i := strings.LastIndex(cut, " "); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " .,;:") + "..."
}
