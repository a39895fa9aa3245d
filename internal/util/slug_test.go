// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple title", "SOX Compliance Checklist", "sox-compliance-checklist"},
		{"with special characters", "Year-End Tax: What's New?", "year-end-tax-whats-new"},
		{"with numbers", "Form 1099 Changes", "form-1099-changes"},
		{"with accents", "Café résumé", "cafe-resume"},
		{"with tabs and newlines", "Audit\tReady\nGuide", "audit-ready-guide"},
		{"with hyphens", "Risk - Compliance", "risk-compliance"},
		{"leading and trailing spaces", "  Internal Controls  ", "internal-controls"},
		{"all special characters", "!@#$%^&*()", ""},
		{"unicode characters", "日本語タイトル", ""},
		{"german umlauts", "Über München", "uber-munchen"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Slugify(tt.input); result != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSlugifyTruncates(t *testing.T) {
	long := strings.Repeat("word ", 100)
	got := Slugify(long)

	if len(got) > MaxSlugLength {
		t.Errorf("len(Slugify()) = %d, want <= %d", len(got), MaxSlugLength)
	}
	if !IsValidSlug(got) {
		t.Errorf("truncated slug %q is not valid", got)
	}
}

func TestSlugCandidate(t *testing.T) {
	tests := []struct {
		base string
		n    int
		want string
	}{
		{"tax-update", 0, "tax-update"},
		{"tax-update", 1, "tax-update"},
		{"tax-update", 2, "tax-update-2"},
		{"tax-update", 15, "tax-update-15"},
	}

	for _, tt := range tests {
		if got := SlugCandidate(tt.base, tt.n); got != tt.want {
			t.Errorf("SlugCandidate(%q, %d) = %q, want %q", tt.base, tt.n, got, tt.want)
		}
	}

	base := strings.Repeat("a", MaxSlugLength)
	got := SlugCandidate(base, 3)
	if len(got) != MaxSlugLength || !strings.HasSuffix(got, "-3") {
		t.Errorf("SlugCandidate(long, 3) = %q (len %d)", got, len(got))
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"hello-world", true},
		{"page-123", true},
		{"a", true},
		{"", false},
		{"Hello-World", false},
		{"hello world", false},
		{"-hello", false},
		{"hello-", false},
		{"hello--world", false},
		{"hello_world", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidSlug(tt.input); got != tt.want {
				t.Errorf("IsValidSlug(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
