// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/auditsite/internal/model"
)

// ListActiveTestimonials handles GET /api/testimonials.
func (h *Handler) ListActiveTestimonials(w http.ResponseWriter, r *http.Request) {
	p := h.listParams(r).Force("isActive", "true")

	page, err := h.queries.ListTestimonials(r.Context(), p)
	if err != nil {
		writeStoreError(w, err, "testimonials", "list")
		return
	}
	WriteSuccess(w, page)
}

// ListAllTestimonials handles GET /api/testimonials/admin/all.
func (h *Handler) ListAllTestimonials(w http.ResponseWriter, r *http.Request) {
	page, err := h.queries.ListTestimonials(r.Context(), h.listParams(r))
	if err != nil {
		writeStoreError(w, err, "testimonials", "list")
		return
	}
	WriteSuccess(w, page)
}

// GetTestimonial handles GET /api/testimonials/{id}.
func (h *Handler) GetTestimonial(w http.ResponseWriter, r *http.Request) {
	t, ok := requireEntityByID(w, r, "testimonial", h.queries.GetTestimonialByID)
	if !ok {
		return
	}
	WriteSuccess(w, t)
}

// CreateTestimonial handles POST /api/testimonials.
func (h *Handler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var req model.CreateTestimonialRequest
	if !bindRequest(w, r, &req) {
		return
	}

	t := model.Testimonial{
		ClientName:     req.ClientName,
		ClientCompany:  req.ClientCompany,
		ClientPosition: req.ClientPosition,
		Content:        req.Content,
		Rating:         req.Rating,
		ProjectType:    req.ProjectType,
		IsActive:       req.IsActive == nil || *req.IsActive,
		IsFeatured:     req.IsFeatured,
		DateOfService:  req.DateOfService,
	}
	if err := h.queries.CreateTestimonial(r.Context(), &t); err != nil {
		writeStoreError(w, err, "testimonial", "create")
		return
	}
	WriteCreated(w, t, "Testimonial created successfully")
}

// UpdateTestimonial handles PUT /api/testimonials/{id}.
func (h *Handler) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	t, ok := requireEntityByID(w, r, "testimonial", h.queries.GetTestimonialByID)
	if !ok {
		return
	}

	var req model.UpdateTestimonialRequest
	if !bindRequest(w, r, &req) {
		return
	}
	req.Apply(&t)

	if err := h.queries.UpdateTestimonial(r.Context(), &t); err != nil {
		writeStoreError(w, err, "testimonial", "update", "id", t.ID)
		return
	}
	WriteMessage(w, "Testimonial updated successfully", t)
}

// DeleteTestimonial handles DELETE /api/testimonials/{id}.
func (h *Handler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteBadRequest(w, "Invalid testimonial ID")
		return
	}

	if err := h.queries.DeleteTestimonial(r.Context(), id); err != nil {
		writeStoreError(w, err, "testimonial", "delete", "id", id)
		return
	}
	WriteMessage(w, "Testimonial deleted successfully", nil)
}
