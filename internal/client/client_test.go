// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/auditsite/internal/auth"
	"github.com/olegiv/auditsite/internal/handler/api"
	"github.com/olegiv/auditsite/internal/model"
	"github.com/olegiv/auditsite/internal/query"
	"github.com/olegiv/auditsite/internal/store"
	"github.com/olegiv/auditsite/internal/testutil"
	"github.com/olegiv/auditsite/internal/version"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin-password-123"
)

// newAPIServer starts the real API on an httptest server with a seeded primary admin.
func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()

	db := testutil.TestDB(t)
	require.NoError(t, store.SeedPrimaryAdmin(context.Background(), db, store.PrimaryAdmin{
		Email: adminEmail, Name: "Admin", Password: adminPassword,
	}))

	tokens := auth.NewTokenManager(strings.Repeat("k", 32), time.Hour)
	h := api.NewHandler(db, api.Config{
		Tokens:            tokens,
		Limits:            query.DefaultLimits,
		PrimaryAdminEmail: adminEmail,
		Version:           version.New("v0.0.1", "", ""),
	})
	router := h.Routes(auth.StoreVerifier{Tokens: tokens, Users: store.New(db)}, nil)

	srv := httptest.NewServer(http.StripPrefix("/api", router))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_EndToEnd(t *testing.T) {
	srv := newAPIServer(t)
	ctx := context.Background()

	c, err := New(srv.URL + "/api")
	require.NoError(t, err)
	assert.False(t, c.IsAuthenticated())

	_, err = c.Login(ctx, adminEmail, "wrong")
	assert.True(t, IsUnauthorized(err))
	assert.False(t, c.IsAuthenticated())

	session, err := c.Login(ctx, adminEmail, adminPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.True(t, c.IsAuthenticated())

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, adminEmail, me.Email)

	blog, err := c.CreateBlog(ctx, model.CreateBlogRequest{
		Title: "SOX Compliance Update", Content: "<p>New rules.</p>", Category: "compliance", Status: "published",
	})
	require.NoError(t, err)
	assert.Equal(t, "sox-compliance-update", blog.Slug)

	viewed, err := c.GetBlogBySlug(ctx, blog.Slug)
	require.NoError(t, err)
	assert.EqualValues(t, 1, viewed.Views)

	list, err := c.ListBlogs(ctx, ListOptions{Search: "SOX", Limit: 5})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 5, list.Pagination.Limit)

	receipt, err := c.SubmitContact(ctx, model.CreateContactRequest{
		FirstName: "John", LastName: "Doe", Email: "j@x.com", Subject: "Audit", Message: "Need help",
	})
	require.NoError(t, err)
	assert.NotZero(t, receipt.ID)

	contacts, err := c.ListContacts(ctx, ListOptions{Filters: map[string]string{"status": "new"}})
	require.NoError(t, err)
	assert.EqualValues(t, 1, contacts.Stats.New)
	assert.EqualValues(t, 1, contacts.Pagination.Total)

	users, err := c.ListUsers(ctx, ListOptions{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, users.Stats.Admins)

	err = c.DeleteUser(ctx, me.ID)
	assert.Equal(t, http.StatusForbidden, StatusCode(err))

	_, err = c.GetBlog(ctx, 9999)
	assert.True(t, IsNotFound(err))

	_, err = c.CreateService(ctx, model.CreateServiceRequest{Title: "x"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Contains(t, apiErr.Errors, "category")

	health, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v0.0.1", health.Version.Version)

	require.NoError(t, c.Logout())
	assert.False(t, c.IsAuthenticated())
	_, err = c.Me(ctx)
	assert.True(t, IsUnauthorized(err))
}

func TestClient_UnauthorizedClearsCredentials(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Invalid or expired token"})
	}))
	defer srv.Close()

	creds := NewMemoryStore()
	require.NoError(t, creds.Save(Credentials{Token: "stale", ExpiresAt: time.Now().Add(time.Hour)}))

	redirected := 0
	c, err := New(srv.URL, WithCredentialStore(creds), WithUnauthorizedHandler(func() { redirected++ }))
	require.NoError(t, err)

	_, err = c.DashboardStats(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Bearer stale", gotAuth)
	assert.True(t, IsUnauthorized(err))
	assert.Contains(t, err.Error(), "Invalid or expired token")
	assert.Equal(t, 1, redirected)

	_, ok, _ := creds.Load()
	assert.False(t, ok, "credentials should be cleared")

	// Without a credential there is nothing to clear and no redirect.
	_, _ = c.DashboardStats(context.Background())
	assert.Equal(t, "", gotAuth)
	assert.Equal(t, 1, redirected)
}

func TestClient_NoRetryOnServerError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.ListBlogs(context.Background(), ListOptions{})
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
	assert.Equal(t, 1, calls)
}

func TestNew_RejectsBadURL(t *testing.T) {
	for _, raw := range []string{"ftp://example.com", "::bad", "example.com/api"} {
		if _, err := New(raw); err == nil {
			t.Errorf("New(%q) should fail", raw)
		}
	}
}

func TestListOptions_Values(t *testing.T) {
	v := ListOptions{
		Page: 2, Limit: 20, Search: "tax", SortBy: "title", SortOrder: "asc",
		Filters: map[string]string{"category": "tax"},
	}.Values()

	want := "category=tax&limit=20&page=2&search=tax&sortBy=title&sortOrder=asc"
	if got := v.Encode(); got != want {
		t.Errorf("Values() = %q, want %q", got, want)
	}
	if got := (ListOptions{}).Values().Encode(); got != "" {
		t.Errorf("zero options encode to %q, want empty", got)
	}
}
