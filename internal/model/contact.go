// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"
	"time"
)

// Contact statuses. Any status may move to any other; there is no enforced order.
const (
	ContactStatusNew        = "new"
	ContactStatusInProgress = "in-progress"
	ContactStatusResolved   = "resolved"
	ContactStatusClosed     = "closed"
)

// ContactStatuses lists all contact statuses.
var ContactStatuses = []string{
	ContactStatusNew,
	ContactStatusInProgress,
	ContactStatusResolved,
	ContactStatusClosed,
}

// Contact is an inquiry submitted through the public contact form.
type Contact struct {
	ID              int64     `json:"id"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	Company         string    `json:"company,omitempty"`
	ServiceInterest string    `json:"serviceInterest,omitempty"`
	Subject         string    `json:"subject"`
	Message         string    `json:"message"`
	Newsletter      bool      `json:"newsletter"`
	Status          string    `json:"status"`
	SubmittedAt     time.Time `json:"submittedAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// FullName returns "First Last".
func (c *Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// ContactStats holds the per-status inquiry counts.
type ContactStats struct {
	Total      int64 `json:"total"`
	New        int64 `json:"new"`
	InProgress int64 `json:"inProgress"`
	Resolved   int64 `json:"resolved"`
	Closed     int64 `json:"closed"`
}

// CreateContactRequest is the body of the public POST /contact. Status and
// submission time are always set by the server.
type CreateContactRequest struct {
	FirstName       string `json:"firstName" validate:"required,max=50"`
	LastName        string `json:"lastName" validate:"required,max=50"`
	Email           string `json:"email" validate:"required,email,max=254"`
	Phone           string `json:"phone" validate:"max=30"`
	Company         string `json:"company" validate:"max=100"`
	ServiceInterest string `json:"serviceInterest" validate:"max=100"`
	Subject         string `json:"subject" validate:"required,max=200"`
	Message         string `json:"message" validate:"required,max=5000"`
	Newsletter      bool   `json:"newsletter"`
}

// Normalize trims all text fields and lower-cases the email.
func (r *CreateContactRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = NormalizeEmail(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Company = strings.TrimSpace(r.Company)
	r.ServiceInterest = strings.TrimSpace(r.ServiceInterest)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
}

// UpdateContactStatusRequest is the body of PUT /contact/{id}/status.
type UpdateContactStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new in-progress resolved closed"`
}
