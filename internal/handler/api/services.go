// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/auditsite/internal/model"
)

// ListActiveServices handles GET /api/services.
func (h *Handler) ListActiveServices(w http.ResponseWriter, r *http.Request) {
	p := h.listParams(r).Force("isActive", "true")

	page, err := h.queries.ListServices(r.Context(), p)
	if err != nil {
		writeStoreError(w, err, "services", "list")
		return
	}
	WriteSuccess(w, page)
}

// GetService handles GET /api/services/{id}. Inactive services are reported as missing.
func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	svc, ok := requireEntityByID(w, r, "service", h.queries.GetServiceByID)
	if !ok {
		return
	}
	if !svc.IsActive {
		WriteNotFound(w, "Service not found")
		return
	}
	WriteSuccess(w, svc)
}

// ListAllServices handles GET /api/services/admin/all.
func (h *Handler) ListAllServices(w http.ResponseWriter, r *http.Request) {
	page, err := h.queries.ListServices(r.Context(), h.listParams(r))
	if err != nil {
		writeStoreError(w, err, "services", "list")
		return
	}
	WriteSuccess(w, page)
}

// CreateService handles POST /api/services.
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req model.CreateServiceRequest
	if !bindRequest(w, r, &req) {
		return
	}

	svc := model.Service{
		Title:            req.Title,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Category:         req.Category,
		Features:         req.Features,
		Pricing:          req.Pricing,
		IsActive:         req.IsActive == nil || *req.IsActive,
		DisplayOrder:     req.DisplayOrder,
	}

	if err := h.queries.CreateService(r.Context(), &svc); err != nil {
		writeStoreError(w, err, "service", "create")
		return
	}

	slog.Info("service created", "service_id", svc.ID, "title", svc.Title)
	WriteCreated(w, svc, "Service created successfully")
}

// UpdateService handles PUT /api/services/{id}.
func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	svc, ok := requireEntityByID(w, r, "service", h.queries.GetServiceByID)
	if !ok {
		return
	}

	var req model.UpdateServiceRequest
	if !bindRequest(w, r, &req) {
		return
	}
	req.Apply(&svc)

	if err := h.queries.UpdateService(r.Context(), &svc); err != nil {
		writeStoreError(w, err, "service", "update", "id", svc.ID)
		return
	}
	WriteMessage(w, "Service updated successfully", svc)
}

// DeleteService handles DELETE /api/services/{id}.
func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteBadRequest(w, "Invalid service ID")
		return
	}

	if err := h.queries.DeleteService(r.Context(), id); err != nil {
		writeStoreError(w, err, "service", "delete", "id", id)
		return
	}

	slog.Info("service deleted", "service_id", id)
	WriteMessage(w, "Service deleted successfully", nil)
}
