// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/olegiv/auditsite/internal/auth"
	"github.com/olegiv/auditsite/internal/model"
	"github.com/olegiv/auditsite/internal/query"
	"github.com/olegiv/auditsite/internal/store"
	"github.com/olegiv/auditsite/internal/testutil"
	"github.com/olegiv/auditsite/internal/version"
)

const (
	testPrimaryEmail = "admin@example.com"
	testPassword     = "correct-horse-battery"
)

// envelope is the decoded form of every API response.
type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// listData is the data member of list responses.
type listData[T any] struct {
	Items      []T              `json:"items"`
	Pagination query.Pagination `json:"pagination"`
	Stats      json.RawMessage  `json:"stats"`
}

type testServer struct {
	t       *testing.T
	db      *store.Queries
	tokens  *auth.TokenManager
	router  http.Handler
	admin   model.User
	adminTk string
}

func newTestServer(t *testing.T, opts ...func(*Config)) *testServer {
	t.Helper()

	db := testutil.TestDB(t)
	tokens := auth.NewTokenManager(strings.Repeat("s", 32), time.Hour)
	cfg := Config{
		Tokens:            tokens,
		Limits:            query.DefaultLimits,
		PrimaryAdminEmail: testPrimaryEmail,
		Version:           version.New("v1.0.0", "abc1234", "2026-01-01T00:00:00Z"),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	h := NewHandler(db, cfg)
	queries := store.New(db)

	ts := &testServer{
		t:      t,
		db:     queries,
		tokens: tokens,
		router: h.Routes(auth.StoreVerifier{Tokens: tokens, Users: queries}, nil),
	}
	ts.admin = ts.createUser("Primary Admin", testPrimaryEmail, model.RoleAdmin)
	ts.adminTk = ts.token(ts.admin)
	return ts
}

// createUser inserts an active user with testPassword.
func (ts *testServer) createUser(name, email, role string) model.User {
	ts.t.Helper()
	hash, err := auth.HashPassword(testPassword)
	require.NoError(ts.t, err)

	u := model.User{Name: name, Email: email, PasswordHash: hash, Role: role, IsActive: true}
	require.NoError(ts.t, ts.db.CreateUser(context.Background(), &u))
	return u
}

func (ts *testServer) token(u model.User) string {
	ts.t.Helper()
	tok, _, err := ts.tokens.Issue(u)
	require.NoError(ts.t, err)
	return tok
}

// do performs a request against the router. body may be nil, a string (sent
// verbatim) or any value encoded as JSON.
func (ts *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	ts.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(ts.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

// asAdmin performs a request with the primary admin's token.
func (ts *testServer) asAdmin(method, path string, body any) *httptest.ResponseRecorder {
	ts.t.Helper()
	return ts.do(method, path, ts.adminTk, body)
}

// decode parses the envelope and checks the status code.
func decode(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int) envelope {
	t.Helper()
	require.Equal(t, wantStatus, rec.Code, "body: %s", rec.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return env
}

// decodeData parses the envelope's data member into T.
func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder, wantStatus int) T {
	t.Helper()
	env := decode(t, rec, wantStatus)
	require.True(t, env.Success, "message: %s", env.Message)

	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}
