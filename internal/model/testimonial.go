// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"
	"time"
)

// ProjectTypes lists the engagement types a testimonial can refer to.
var ProjectTypes = []string{
	"audit-assurance",
	"tax-advisory",
	"risk-compliance",
	"business-consulting",
	"accounting-bookkeeping",
	"other",
}

// Testimonial is a client quote shown on the marketing pages.
type Testimonial struct {
	ID             int64      `json:"id"`
	ClientName     string     `json:"clientName"`
	ClientCompany  string     `json:"clientCompany,omitempty"`
	ClientPosition string     `json:"clientPosition,omitempty"`
	Content        string     `json:"content"`
	Rating         int        `json:"rating"`
	ProjectType    string     `json:"projectType"`
	IsActive       bool       `json:"isActive"`
	IsFeatured     bool       `json:"isFeatured"`
	DateOfService  *time.Time `json:"dateOfService,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// CreateTestimonialRequest is the body of POST /testimonials.
type CreateTestimonialRequest struct {
	ClientName     string     `json:"clientName" validate:"required,max=100"`
	ClientCompany  string     `json:"clientCompany" validate:"max=100"`
	ClientPosition string     `json:"clientPosition" validate:"max=100"`
	Content        string     `json:"content" validate:"required,max=500"`
	Rating         int        `json:"rating" validate:"required,gte=1,lte=5"`
	ProjectType    string     `json:"projectType" validate:"omitempty,oneof=audit-assurance tax-advisory risk-compliance business-consulting accounting-bookkeeping other"`
	IsActive       *bool      `json:"isActive"`
	IsFeatured     bool       `json:"isFeatured"`
	DateOfService  *time.Time `json:"dateOfService"`
}

// Normalize trims text fields and applies the default project type.
func (r *CreateTestimonialRequest) Normalize() {
	r.ClientName = strings.TrimSpace(r.ClientName)
	r.ClientCompany = strings.TrimSpace(r.ClientCompany)
	r.ClientPosition = strings.TrimSpace(r.ClientPosition)
	r.Content = strings.TrimSpace(r.Content)
	if r.ProjectType == "" {
		r.ProjectType = "other"
	}
}

// UpdateTestimonialRequest is the body of PUT /testimonials/{id}. Nil fields are left unchanged.
type UpdateTestimonialRequest struct {
	ClientName     *string    `json:"clientName" validate:"omitnil,min=1,max=100"`
	ClientCompany  *string    `json:"clientCompany" validate:"omitnil,max=100"`
	ClientPosition *string    `json:"clientPosition" validate:"omitnil,max=100"`
	Content        *string    `json:"content" validate:"omitnil,min=1,max=500"`
	Rating         *int       `json:"rating" validate:"omitnil,gte=1,lte=5"`
	ProjectType    *string    `json:"projectType" validate:"omitnil,oneof=audit-assurance tax-advisory risk-compliance business-consulting accounting-bookkeeping other"`
	IsActive       *bool      `json:"isActive"`
	IsFeatured     *bool      `json:"isFeatured"`
	DateOfService  *time.Time `json:"dateOfService"`
}

// Normalize trims text fields.
func (r *UpdateTestimonialRequest) Normalize() {
	trimPtr(r.ClientName)
	trimPtr(r.ClientCompany)
	trimPtr(r.ClientPosition)
	trimPtr(r.Content)
}

// Apply copies the whitelisted mutable fields onto t.
func (r *UpdateTestimonialRequest) Apply(t *Testimonial) {
	if r.ClientName != nil {
		t.ClientName = *r.ClientName
	}
	if r.ClientCompany != nil {
		t.ClientCompany = *r.ClientCompany
	}
	if r.ClientPosition != nil {
		t.ClientPosition = *r.ClientPosition
	}
	if r.Content != nil {
		t.Content = *r.Content
	}
	if r.Rating != nil {
		t.Rating = *r.Rating
	}
	if r.ProjectType != nil {
		t.ProjectType = *r.ProjectType
	}
	if r.IsActive != nil {
		t.IsActive = *r.IsActive
	}
	if r.IsFeatured != nil {
		t.IsFeatured = *r.IsFeatured
	}
	if r.DateOfService != nil {
		t.DateOfService = r.DateOfService
	}
}
