// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/auditsite/internal/auth"
	"github.com/olegiv/auditsite/internal/middleware"
)

// Route paths relative to the API mount point.
const (
	RouteHealth       = "/health"
	RouteAuthLogin    = "/auth/login"
	RouteAuthMe       = "/auth/me"
	RouteBlogs        = "/blogs"
	RouteServices     = "/services"
	RouteContact      = "/contact"
	RouteUsers        = "/users"
	RouteTestimonials = "/testimonials"
	RouteAdminStats   = "/admin/stats"
	RouteAdminEvents  = "/admin/events"

	routeID       = "/{id}"
	routeSlug     = "/{slug}"
	routeAdminAll = "/admin/all"
	routeAdminSt  = "/admin/stats"
)

// Routes builds the API router. limiter guards the public write endpoints
// (contact form, login) and may be nil.
func (h *Handler) Routes(verifier auth.Verifier, limiter *middleware.IPRateLimiter) http.Handler {
	r := chi.NewRouter()

	throttle := func(next http.Handler) http.Handler { return next }
	if limiter != nil {
		throttle = limiter.Middleware
	}

	// Public endpoints
	r.Get(RouteHealth, h.Health)
	r.With(throttle).Post(RouteAuthLogin, h.Login)
	r.Get(RouteBlogs, h.ListPublishedBlogs)
	r.With(h.cachedResponse(cacheBlogs)).Get(RouteBlogs+"/categories", h.ListBlogCategories)
	r.Get(RouteBlogs+routeSlug, h.GetBlogBySlug)
	r.With(h.cachedResponse(cacheServices)).Get(RouteServices, h.ListActiveServices)
	r.With(h.cachedResponse(cacheServices)).Get(RouteServices+routeID, h.GetService)
	r.With(h.cachedResponse(cacheTestimonials)).Get(RouteTestimonials, h.ListActiveTestimonials)
	r.With(throttle).Post(RouteContact, h.CreateContact)

	// Any signed-in user
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(verifier))
		r.Get(RouteAuthMe, h.Me)
	})

	// Admin only
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(verifier))
		r.Use(middleware.RequireAdmin)

		r.Get(RouteBlogs+routeAdminAll, h.ListAllBlogs)
		r.Get(RouteBlogs+routeAdminSt, h.GetBlogStats)
		r.Get(RouteBlogs+"/admin"+routeID, h.GetBlog)
		r.Group(func(r chi.Router) {
			r.Use(h.invalidates(cacheBlogs))
			r.Post(RouteBlogs, h.CreateBlog)
			r.Put(RouteBlogs+routeID, h.UpdateBlog)
			r.Delete(RouteBlogs+routeID, h.DeleteBlog)
		})

		r.Get(RouteServices+routeAdminAll, h.ListAllServices)
		r.Group(func(r chi.Router) {
			r.Use(h.invalidates(cacheServices))
			r.Post(RouteServices, h.CreateService)
			r.Put(RouteServices+routeID, h.UpdateService)
			r.Delete(RouteServices+routeID, h.DeleteService)
		})

		r.Get(RouteContact, h.ListContacts)
		r.Get(RouteContact+routeAdminSt, h.GetContactStats)
		r.Get(RouteContact+routeID, h.GetContact)
		r.Put(RouteContact+routeID+"/status", h.UpdateContactStatus)
		r.Delete(RouteContact+routeID, h.DeleteContact)

		r.Get(RouteUsers, h.ListUsers)
		r.Get(RouteUsers+routeID, h.GetUser)
		r.Post(RouteUsers, h.CreateUser)
		r.Put(RouteUsers+routeID, h.UpdateUser)
		r.Put(RouteUsers+routeID+"/role", h.UpdateUserRole)
		r.Put(RouteUsers+routeID+"/status", h.UpdateUserStatus)
		r.Delete(RouteUsers+routeID, h.DeleteUser)

		r.Get(RouteTestimonials+routeAdminAll, h.ListAllTestimonials)
		r.Get(RouteTestimonials+routeID, h.GetTestimonial)
		r.Group(func(r chi.Router) {
			r.Use(h.invalidates(cacheTestimonials))
			r.Post(RouteTestimonials, h.CreateTestimonial)
			r.Put(RouteTestimonials+routeID, h.UpdateTestimonial)
			r.Delete(RouteTestimonials+routeID, h.DeleteTestimonial)
		})

		r.Get(RouteAdminStats, h.DashboardStats)
		r.Get(RouteAdminEvents, h.ListEvents)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	return r
}
