// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/auditsite/internal/model"
)

// ContactReceipt is returned to the visitor after a successful submission.
type ContactReceipt struct {
	ID          int64     `json:"id"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// CreateContact handles the public POST /api/contact.
func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req model.CreateContactRequest
	if !bindRequest(w, r, &req) {
		return
	}

	c := model.Contact{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		Company:         req.Company,
		ServiceInterest: req.ServiceInterest,
		Subject:         req.Subject,
		Message:         req.Message,
		Newsletter:      req.Newsletter,
	}
	if err := h.queries.CreateContact(r.Context(), &c); err != nil {
		writeStoreError(w, err, "contact", "submit")
		return
	}

	slog.Info("contact inquiry received", "contact_id", c.ID, "subject", c.Subject)
	WriteCreated(w, ContactReceipt{ID: c.ID, SubmittedAt: c.SubmittedAt},
		"Thank you for contacting us. We will get back to you soon.")
}

// ListContacts handles GET /api/contact.
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	page, err := h.queries.ListContacts(r.Context(), h.listParams(r))
	if err != nil {
		writeStoreError(w, err, "contacts", "list")
		return
	}

	stats, err := h.queries.GetContactStats(r.Context())
	if err != nil {
		writeStoreError(w, err, "contact stats", "load")
		return
	}
	page.Stats = stats

	WriteSuccess(w, page)
}

// GetContactStats handles GET /api/contact/admin/stats.
func (h *Handler) GetContactStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.queries.GetContactStats(r.Context())
	if err != nil {
		writeStoreError(w, err, "contact stats", "load")
		return
	}
	WriteSuccess(w, stats)
}

// GetContact handles GET /api/contact/{id}.
func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	c, ok := requireEntityByID(w, r, "contact", h.queries.GetContactByID)
	if !ok {
		return
	}
	WriteSuccess(w, c)
}

// UpdateContactStatus handles PUT /api/contact/{id}/status.
func (h *Handler) UpdateContactStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteBadRequest(w, "Invalid contact ID")
		return
	}

	var req model.UpdateContactStatusRequest
	if !bindRequest(w, r, &req) {
		return
	}

	c, err := h.queries.UpdateContactStatus(r.Context(), id, req.Status)
	if err != nil {
		writeStoreError(w, err, "contact", "update", "id", id)
		return
	}
	WriteMessage(w, "Contact status updated successfully", c)
}

// DeleteContact handles DELETE /api/contact/{id}.
func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteBadRequest(w, "Invalid contact ID")
		return
	}

	if err := h.queries.DeleteContact(r.Context(), id); err != nil {
		writeStoreError(w, err, "contact", "delete", "id", id)
		return
	}
	WriteMessage(w, "Contact deleted successfully", nil)
}
