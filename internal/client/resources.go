// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/olegiv/auditsite/internal/model"
	"github.com/olegiv/auditsite/internal/query"
)

// ListOptions are the common list parameters. Zero values are omitted and
// left to the server's defaults.
type ListOptions struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
	Filters   map[string]string
}

// Values encodes the options as query parameters.
func (o ListOptions) Values() url.Values {
	v := url.Values{}
	if o.Page > 0 {
		v.Set(query.ParamPage, strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		v.Set(query.ParamLimit, strconv.Itoa(o.Limit))
	}
	if o.Search != "" {
		v.Set(query.ParamSearch, o.Search)
	}
	if o.SortBy != "" {
		v.Set(query.ParamSortBy, o.SortBy)
	}
	if o.SortOrder != "" {
		v.Set(query.ParamSortOrder, o.SortOrder)
	}
	for k, val := range o.Filters {
		v.Set(k, val)
	}
	return v
}

// NoStats is the Stats type of lists that carry no aggregate counts.
type NoStats struct{}

// List is one page of a list endpoint.
type List[T any, S any] struct {
	Items      []T              `json:"items"`
	Pagination query.Pagination `json:"pagination"`
	Stats      S                `json:"stats"`
}

// Session is the result of a successful login.
type Session struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      model.User `json:"user"`
}

// ContactReceipt acknowledges a contact form submission.
type ContactReceipt struct {
	ID          int64     `json:"id"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// CategoryCount is a blog category with its published post count.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Health is the server's health report.
type Health struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
	Version   struct {
		Version   string `json:"version"`
		GitCommit string `json:"gitCommit"`
		BuildTime string `json:"buildTime"`
	} `json:"version"`
}

func idPath(prefix string, id int64, suffix ...string) string {
	p := prefix + "/" + strconv.FormatInt(id, 10)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

// Auth

// Login signs in and stores the returned credential.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var s Session
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, model.LoginRequest{Email: email, Password: password}, &s)
	if err != nil {
		return Session{}, err
	}
	if err := c.creds.Save(Credentials{Token: s.Token, ExpiresAt: s.ExpiresAt, User: s.User}); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Logout forgets the stored credential. Tokens are stateless, so the server is not called.
func (c *Client) Logout() error {
	return c.creds.Clear()
}

// Me returns the signed-in user.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var u model.User
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &u)
	return u, err
}

// Health returns the server health report.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var h Health
	err := c.do(ctx, http.MethodGet, "/health", nil, nil, &h)
	return h, err
}

// Blogs

// ListBlogs returns published blogs.
func (c *Client) ListBlogs(ctx context.Context, opts ListOptions) (List[model.Blog, NoStats], error) {
	var l List[model.Blog, NoStats]
	err := c.do(ctx, http.MethodGet, "/blogs", opts.Values(), nil, &l)
	return l, err
}

// BlogCategories lists every category with its published count.
func (c *Client) BlogCategories(ctx context.Context) ([]CategoryCount, error) {
	var out []CategoryCount
	err := c.do(ctx, http.MethodGet, "/blogs/categories", nil, nil, &out)
	return out, err
}

// GetBlogBySlug reads a published blog, counting a view.
func (c *Client) GetBlogBySlug(ctx context.Context, slug string) (model.Blog, error) {
	var b model.Blog
	err := c.do(ctx, http.MethodGet, "/blogs/"+url.PathEscape(slug), nil, nil, &b)
	return b, err
}

// ListAllBlogs returns blogs in any status with the blog stats.
func (c *Client) ListAllBlogs(ctx context.Context, opts ListOptions) (List[model.Blog, model.BlogStats], error) {
	var l List[model.Blog, model.BlogStats]
	err := c.do(ctx, http.MethodGet, "/blogs/admin/all", opts.Values(), nil, &l)
	return l, err
}

// BlogStats returns the blog counters.
func (c *Client) BlogStats(ctx context.Context) (model.BlogStats, error) {
	var s model.BlogStats
	err := c.do(ctx, http.MethodGet, "/blogs/admin/stats", nil, nil, &s)
	return s, err
}

// GetBlog returns a blog by ID without counting a view.
func (c *Client) GetBlog(ctx context.Context, id int64) (model.Blog, error) {
	var b model.Blog
	err := c.do(ctx, http.MethodGet, idPath("/blogs/admin", id), nil, nil, &b)
	return b, err
}

// CreateBlog creates a blog.
func (c *Client) CreateBlog(ctx context.Context, req model.CreateBlogRequest) (model.Blog, error) {
	var b model.Blog
	err := c.do(ctx, http.MethodPost, "/blogs", nil, req, &b)
	return b, err
}

// UpdateBlog applies the non-nil fields of req.
func (c *Client) UpdateBlog(ctx context.Context, id int64, req model.UpdateBlogRequest) (model.Blog, error) {
	var b model.Blog
	err := c.do(ctx, http.MethodPut, idPath("/blogs", id), nil, req, &b)
	return b, err
}

// DeleteBlog deletes a blog.
func (c *Client) DeleteBlog(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/blogs", id), nil, nil, nil)
}

// Services

// ListServices returns active services.
func (c *Client) ListServices(ctx context.Context, opts ListOptions) (List[model.Service, NoStats], error) {
	var l List[model.Service, NoStats]
	err := c.do(ctx, http.MethodGet, "/services", opts.Values(), nil, &l)
	return l, err
}

// GetService returns an active service.
func (c *Client) GetService(ctx context.Context, id int64) (model.Service, error) {
	var s model.Service
	err := c.do(ctx, http.MethodGet, idPath("/services", id), nil, nil, &s)
	return s, err
}

// ListAllServices returns services including inactive ones.
func (c *Client) ListAllServices(ctx context.Context, opts ListOptions) (List[model.Service, NoStats], error) {
	var l List[model.Service, NoStats]
	err := c.do(ctx, http.MethodGet, "/services/admin/all", opts.Values(), nil, &l)
	return l, err
}

// CreateService creates a service.
func (c *Client) CreateService(ctx context.Context, req model.CreateServiceRequest) (model.Service, error) {
	var s model.Service
	err := c.do(ctx, http.MethodPost, "/services", nil, req, &s)
	return s, err
}

// UpdateService applies the non-nil fields of req.
func (c *Client) UpdateService(ctx context.Context, id int64, req model.UpdateServiceRequest) (model.Service, error) {
	var s model.Service
	err := c.do(ctx, http.MethodPut, idPath("/services", id), nil, req, &s)
	return s, err
}

// DeleteService deletes a service.
func (c *Client) DeleteService(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/services", id), nil, nil, nil)
}

// Contact

// SubmitContact sends the public contact form.
func (c *Client) SubmitContact(ctx context.Context, req model.CreateContactRequest) (ContactReceipt, error) {
	var r ContactReceipt
	err := c.do(ctx, http.MethodPost, "/contact", nil, req, &r)
	return r, err
}

// ListContacts returns inquiries with the per-status counts.
func (c *Client) ListContacts(ctx context.Context, opts ListOptions) (List[model.Contact, model.ContactStats], error) {
	var l List[model.Contact, model.ContactStats]
	err := c.do(ctx, http.MethodGet, "/contact", opts.Values(), nil, &l)
	return l, err
}

// ContactStats returns the per-status counts.
func (c *Client) ContactStats(ctx context.Context) (model.ContactStats, error) {
	var s model.ContactStats
	err := c.do(ctx, http.MethodGet, "/contact/admin/stats", nil, nil, &s)
	return s, err
}

// GetContact returns an inquiry.
func (c *Client) GetContact(ctx context.Context, id int64) (model.Contact, error) {
	var ct model.Contact
	err := c.do(ctx, http.MethodGet, idPath("/contact", id), nil, nil, &ct)
	return ct, err
}

// UpdateContactStatus moves an inquiry to status.
func (c *Client) UpdateContactStatus(ctx context.Context, id int64, status string) (model.Contact, error) {
	var ct model.Contact
	err := c.do(ctx, http.MethodPut, idPath("/contact", id, "status"), nil,
		model.UpdateContactStatusRequest{Status: status}, &ct)
	return ct, err
}

// DeleteContact deletes an inquiry.
func (c *Client) DeleteContact(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/contact", id), nil, nil, nil)
}

// Users

// ListUsers returns users with the user stats.
func (c *Client) ListUsers(ctx context.Context, opts ListOptions) (List[model.User, model.UserStats], error) {
	var l List[model.User, model.UserStats]
	err := c.do(ctx, http.MethodGet, "/users", opts.Values(), nil, &l)
	return l, err
}

// GetUser returns a user.
func (c *Client) GetUser(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	err := c.do(ctx, http.MethodGet, idPath("/users", id), nil, nil, &u)
	return u, err
}

// CreateUser creates a user.
func (c *Client) CreateUser(ctx context.Context, req model.CreateUserRequest) (model.User, error) {
	var u model.User
	err := c.do(ctx, http.MethodPost, "/users", nil, req, &u)
	return u, err
}

// UpdateUser applies the non-nil fields of req.
func (c *Client) UpdateUser(ctx context.Context, id int64, req model.UpdateUserRequest) (model.User, error) {
	var u model.User
	err := c.do(ctx, http.MethodPut, idPath("/users", id), nil, req, &u)
	return u, err
}

// UpdateUserRole sets a user's role.
func (c *Client) UpdateUserRole(ctx context.Context, id int64, role string) (model.User, error) {
	var u model.User
	err := c.do(ctx, http.MethodPut, idPath("/users", id, "role"), nil, model.UpdateRoleRequest{Role: role}, &u)
	return u, err
}

// UpdateUserStatus activates or deactivates a user.
func (c *Client) UpdateUserStatus(ctx context.Context, id int64, active bool) (model.User, error) {
	var u model.User
	err := c.do(ctx, http.MethodPut, idPath("/users", id, "status"), nil,
		model.UpdateStatusRequest{IsActive: &active}, &u)
	return u, err
}

// DeleteUser deletes a user.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/users", id), nil, nil, nil)
}

// Testimonials

// ListTestimonials returns active testimonials.
func (c *Client) ListTestimonials(ctx context.Context, opts ListOptions) (List[model.Testimonial, NoStats], error) {
	var l List[model.Testimonial, NoStats]
	err := c.do(ctx, http.MethodGet, "/testimonials", opts.Values(), nil, &l)
	return l, err
}

// ListAllTestimonials returns testimonials including inactive ones.
func (c *Client) ListAllTestimonials(ctx context.Context, opts ListOptions) (List[model.Testimonial, NoStats], error) {
	var l List[model.Testimonial, NoStats]
	err := c.do(ctx, http.MethodGet, "/testimonials/admin/all", opts.Values(), nil, &l)
	return l, err
}

// GetTestimonial returns a testimonial.
func (c *Client) GetTestimonial(ctx context.Context, id int64) (model.Testimonial, error) {
	var t model.Testimonial
	err := c.do(ctx, http.MethodGet, idPath("/testimonials", id), nil, nil, &t)
	return t, err
}

// CreateTestimonial creates a testimonial.
func (c *Client) CreateTestimonial(ctx context.Context, req model.CreateTestimonialRequest) (model.Testimonial, error) {
	var t model.Testimonial
	err := c.do(ctx, http.MethodPost, "/testimonials", nil, req, &t)
	return t, err
}

// UpdateTestimonial applies the non-nil fields of req.
func (c *Client) UpdateTestimonial(ctx context.Context, id int64, req model.UpdateTestimonialRequest) (model.Testimonial, error) {
	var t model.Testimonial
	err := c.do(ctx, http.MethodPut, idPath("/testimonials", id), nil, req, &t)
	return t, err
}

// DeleteTestimonial deletes a testimonial.
func (c *Client) DeleteTestimonial(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/testimonials", id), nil, nil, nil)
}

// Admin

// DashboardStats returns the aggregated dashboard counters.
func (c *Client) DashboardStats(ctx context.Context) (model.DashboardStats, error) {
	var s model.DashboardStats
	err := c.do(ctx, http.MethodGet, "/admin/stats", nil, nil, &s)
	return s, err
}

// ListEvents returns the server event log.
func (c *Client) ListEvents(ctx context.Context, opts ListOptions) (List[model.Event, NoStats], error) {
	var l List[model.Event, NoStats]
	err := c.do(ctx, http.MethodGet, "/admin/events", opts.Values(), nil, &l)
	return l, err
}
