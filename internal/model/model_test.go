// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"reflect"
	"strings"
	"testing"
)

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func tagsPtr(t []string) *[]string { return &t }

func TestUserIsAdmin(t *testing.T) {
	tests := []struct {
		name string
		role string
		want bool
	}{
		{"admin role", RoleAdmin, true},
		{"user role", RoleUser, false},
		{"empty role", "", false},
		{"Admin uppercase", "Admin", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Role: tt.role}
			if got := u.IsAdmin(); got != tt.want {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserIsPrimaryAdmin(t *testing.T) {
	u := &User{Email: "Admin@Example.com"}

	if !u.IsPrimaryAdmin("admin@example.com") {
		t.Error("IsPrimaryAdmin should match case-insensitively")
	}
	if u.IsPrimaryAdmin("other@example.com") {
		t.Error("IsPrimaryAdmin matched a different email")
	}
	if u.IsPrimaryAdmin("") {
		t.Error("IsPrimaryAdmin must never match an empty primary email")
	}
}

func TestValidate_CreateContact(t *testing.T) {
	tests := []struct {
		name       string
		req        CreateContactRequest
		wantFields []string
	}{
		{
			name: "valid",
			req: CreateContactRequest{
				FirstName: "John", LastName: "Doe", Email: "j@x.com",
				Subject: "Audit", Message: "Need help",
			},
		},
		{
			name:       "missing everything",
			req:        CreateContactRequest{},
			wantFields: []string{"email", "firstName", "lastName", "message", "subject"},
		},
		{
			name: "bad email",
			req: CreateContactRequest{
				FirstName: "John", LastName: "Doe", Email: "not-an-email",
				Subject: "Audit", Message: "Need help",
			},
			wantFields: []string{"email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(&tt.req)
			if len(tt.wantFields) == 0 {
				if errs != nil {
					t.Fatalf("Validate() = %v, want nil", errs)
				}
				return
			}
			for _, f := range tt.wantFields {
				if _, ok := errs[f]; !ok {
					t.Errorf("missing error for field %q in %v", f, errs)
				}
			}
			if len(errs) != len(tt.wantFields) {
				t.Errorf("got %d errors, want %d: %v", len(errs), len(tt.wantFields), errs)
			}
		})
	}
}

func TestValidate_MessagesUseJSONNames(t *testing.T) {
	req := CreateServiceRequest{
		Title:       "Audit",
		Description: "Full audit",
		Category:    "bogus",
		Pricing:     Pricing{PriceType: "weekly"},
	}
	errs := Validate(&req)

	if msg := errs["category"]; !strings.HasPrefix(msg, "category must be one of: audit-assurance, ") {
		t.Errorf("category message = %q", msg)
	}
	if _, ok := errs["pricing.priceType"]; !ok {
		t.Errorf("expected nested pricing.priceType error, got %v", errs)
	}
}

func TestValidate_ShortDescriptionLimit(t *testing.T) {
	req := CreateServiceRequest{
		Title:            "Audit",
		Description:      "Full audit",
		ShortDescription: strings.Repeat("x", 201),
		Category:         "audit-assurance",
	}
	errs := Validate(&req)
	if errs["shortDescription"] != "shortDescription must be at most 200 characters" {
		t.Errorf("shortDescription message = %q", errs["shortDescription"])
	}
}

func TestValidate_UpdateRequestsSkipNilFields(t *testing.T) {
	if errs := Validate(&UpdateBlogRequest{}); errs != nil {
		t.Errorf("empty update should be valid, got %v", errs)
	}

	errs := Validate(&UpdateBlogRequest{Title: strPtr(""), Slug: strPtr("Bad Slug")})
	if _, ok := errs["title"]; !ok {
		t.Errorf("explicit empty title should fail, got %v", errs)
	}
	if _, ok := errs["slug"]; !ok {
		t.Errorf("invalid slug should fail, got %v", errs)
	}
}

func TestValidate_TestimonialRating(t *testing.T) {
	for _, rating := range []int{0, 6} {
		req := CreateTestimonialRequest{ClientName: "A", Content: "Great", Rating: rating}
		if errs := Validate(&req); errs["rating"] == "" {
			t.Errorf("rating %d should be rejected, got %v", rating, errs)
		}
	}
	if errs := Validate(&UpdateTestimonialRequest{Rating: intPtr(5)}); errs != nil {
		t.Errorf("rating 5 should be accepted, got %v", errs)
	}
}

func TestFieldErrors_ErrorIsSorted(t *testing.T) {
	errs := FieldErrors{"b": "b is required", "a": "a is required"}
	if got, want := errs.Error(), "validation failed: a is required; b is required"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" SOX ", "sox", "", "Tax", "audit"})
	want := []string{"sox", "tax", "audit"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeTags() = %v, want %v", got, want)
	}
}

func TestUpdateBlogRequest_Apply(t *testing.T) {
	b := Blog{Title: "Old", Content: "Body", Category: "tax", Status: BlogStatusDraft, Views: 7}
	req := UpdateBlogRequest{Title: strPtr("New"), Tags: tagsPtr([]string{"x"})}
	req.Apply(&b)

	if b.Title != "New" || b.Content != "Body" || b.Category != "tax" {
		t.Errorf("unexpected blog after Apply: %+v", b)
	}
	if !reflect.DeepEqual(b.Tags, []string{"x"}) {
		t.Errorf("Tags = %v", b.Tags)
	}
	if b.Views != 7 {
		t.Errorf("Views changed to %d", b.Views)
	}
}

func TestUpdateUserRequest_Apply(t *testing.T) {
	u := User{Name: "A", Email: "a@x.com", Role: RoleUser, IsActive: true}
	req := UpdateUserRequest{Email: strPtr("  B@X.com "), IsActive: boolPtr(false)}
	req.Normalize()
	req.Apply(&u)

	if u.Email != "b@x.com" {
		t.Errorf("Email = %q, want %q", u.Email, "b@x.com")
	}
	if u.IsActive {
		t.Error("IsActive should be false")
	}
	if u.Role != RoleUser || u.Name != "A" {
		t.Errorf("unchanged fields modified: %+v", u)
	}
}

func TestCreateServiceRequest_NormalizeDefaults(t *testing.T) {
	req := CreateServiceRequest{Features: []string{" a ", "", "b"}}
	req.Normalize()

	if req.Pricing.Currency != DefaultCurrency {
		t.Errorf("Currency = %q, want %q", req.Pricing.Currency, DefaultCurrency)
	}
	if req.Pricing.PriceType != PriceTypeCustom {
		t.Errorf("PriceType = %q, want %q", req.Pricing.PriceType, PriceTypeCustom)
	}
	if !reflect.DeepEqual(req.Features, []string{"a", "b"}) {
		t.Errorf("Features = %v", req.Features)
	}
}
