// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"
	"time"
)

// ServiceCategories lists the firm's five fixed practice areas.
var ServiceCategories = []string{
	"audit-assurance",
	"tax-advisory",
	"risk-compliance",
	"business-consulting",
	"accounting-bookkeeping",
}

// Price types.
const (
	PriceTypeFixed        = "fixed"
	PriceTypeHourly       = "hourly"
	PriceTypeProjectBased = "project-based"
	PriceTypeCustom       = "custom"
)

// DefaultCurrency is used when a service's pricing omits the currency.
const DefaultCurrency = "USD"

// Pricing describes how a service is billed.
type Pricing struct {
	StartingPrice *float64 `json:"startingPrice,omitempty" validate:"omitnil,gte=0"`
	Currency      string   `json:"currency" validate:"omitempty,len=3,alpha"`
	PriceType     string   `json:"priceType" validate:"omitempty,oneof=fixed hourly project-based custom"`
}

// normalize fills currency and price type defaults.
func (p *Pricing) normalize() {
	p.Currency = strings.ToUpper(strings.TrimSpace(p.Currency))
	if p.Currency == "" {
		p.Currency = DefaultCurrency
	}
	if p.PriceType == "" {
		p.PriceType = PriceTypeCustom
	}
}

// Service is one of the firm's advertised offerings.
type Service struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	ShortDescription string    `json:"shortDescription"`
	Category         string    `json:"category"`
	Features         []string  `json:"features"`
	Pricing          Pricing   `json:"pricing"`
	IsActive         bool      `json:"isActive"`
	DisplayOrder     int       `json:"displayOrder"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// CreateServiceRequest is the body of POST /services.
type CreateServiceRequest struct {
	Title            string   `json:"title" validate:"required,max=200"`
	Description      string   `json:"description" validate:"required"`
	ShortDescription string   `json:"shortDescription" validate:"max=200"`
	Category         string   `json:"category" validate:"required,oneof=audit-assurance tax-advisory risk-compliance business-consulting accounting-bookkeeping"`
	Features         []string `json:"features" validate:"max=50,dive,min=1,max=200"`
	Pricing          Pricing  `json:"pricing"`
	IsActive         *bool    `json:"isActive"`
	DisplayOrder     int      `json:"displayOrder" validate:"gte=0"`
}

// Normalize trims text fields and fills pricing defaults.
func (r *CreateServiceRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.ShortDescription = strings.TrimSpace(r.ShortDescription)
	r.Features = trimList(r.Features)
	r.Pricing.normalize()
}

// UpdateServiceRequest is the body of PUT /services/{id}. Nil fields are left unchanged.
type UpdateServiceRequest struct {
	Title            *string   `json:"title" validate:"omitnil,min=1,max=200"`
	Description      *string   `json:"description" validate:"omitnil,min=1"`
	ShortDescription *string   `json:"shortDescription" validate:"omitnil,max=200"`
	Category         *string   `json:"category" validate:"omitnil,oneof=audit-assurance tax-advisory risk-compliance business-consulting accounting-bookkeeping"`
	Features         *[]string `json:"features" validate:"omitnil,max=50,dive,min=1,max=200"`
	Pricing          *Pricing  `json:"pricing"`
	IsActive         *bool     `json:"isActive"`
	DisplayOrder     *int      `json:"displayOrder" validate:"omitnil,gte=0"`
}

// Normalize trims text fields and fills pricing defaults.
func (r *UpdateServiceRequest) Normalize() {
	trimPtr(r.Title)
	trimPtr(r.ShortDescription)
	if r.Features != nil {
		features := trimList(*r.Features)
		r.Features = &features
	}
	if r.Pricing != nil {
		r.Pricing.normalize()
	}
}

// Apply copies the whitelisted mutable fields onto s.
func (r *UpdateServiceRequest) Apply(s *Service) {
	if r.Title != nil {
		s.Title = *r.Title
	}
	if r.Description != nil {
		s.Description = *r.Description
	}
	if r.ShortDescription != nil {
		s.ShortDescription = *r.ShortDescription
	}
	if r.Category != nil {
		s.Category = *r.Category
	}
	if r.Features != nil {
		s.Features = *r.Features
	}
	if r.Pricing != nil {
		s.Pricing = *r.Pricing
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
	if r.DisplayOrder != nil {
		s.DisplayOrder = *r.DisplayOrder
	}
}

// trimList trims every entry and drops empty ones, keeping order.
func trimList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}
