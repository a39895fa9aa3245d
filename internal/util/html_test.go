// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeHTML(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		contains  string
		forbidden string
	}{
		{"keeps formatting", "<p>Hello <strong>world</strong></p>", "<strong>world</strong>", ""},
		{"drops script", `<p>Hi</p><script>alert(1)</script>`, "<p>Hi</p>", "<script"},
		{"drops event handler", `<a href="https://example.com" onclick="x()">link</a>`, "link", "onclick"},
		{"drops javascript url", `<a href="javascript:alert(1)">x</a>`, "x", "javascript:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeHTML(tt.input)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("SanitizeHTML() = %q, want it to contain %q", got, tt.contains)
			}
			if tt.forbidden != "" && strings.Contains(got, tt.forbidden) {
				t.Errorf("SanitizeHTML() = %q, must not contain %q", got, tt.forbidden)
			}
		})
	}
}

func TestPlainText(t *testing.T) {
	got := PlainText("<h2>Year end</h2>\n<p>Tax &amp; audit   tips</p>")
	if want := "Year end Tax & audit tips"; got != want {
		t.Errorf("PlainText() = %q, want %q", got, want)
	}
}

func TestExcerpt(t *testing.T) {
	short := "<p>Short post.</p>"
	if got := Excerpt(short); got != "Short post." {
		t.Errorf("Excerpt(short) = %q", got)
	}

	long := "<p>" + strings.Repeat("internal controls matter ", 40) + "</p>"
	got := Excerpt(long)
	if n := utf8.RuneCountInString(got); n > ExcerptLength {
		t.Errorf("excerpt has %d runes, want <= %d", n, ExcerptLength)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Excerpt(long) = %q, want trailing ellipsis", got)
	}
	if strings.Contains(got, "<p>") {
		t.Errorf("Excerpt(long) still contains markup: %q", got)
	}
}
