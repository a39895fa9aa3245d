// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/olegiv/auditsite/internal/model"
)

// Token errors.
var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrInactiveUser = errors.New("account is inactive")
)

// Issuer is stamped into and required from every token.
const Issuer = "auditsite"

// Identity is the verified subject of a bearer credential.
type Identity struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// IsAdmin returns true for the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}

// Claims are the JWT claims carried by a bearer token. The user id is the subject.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and parses HS256 bearer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a manager signing with secret and issuing tokens valid for ttl.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for u and returns it with its expiry.
func (m *TokenManager) Issue(u model.User) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := &Claims{
		Email: u.Email,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			Issuer:    Issuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse validates signature, issuer and expiry and returns the identity
// claimed by the token. It does not consult the user store.
func (m *TokenManager) Parse(tokenString string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: id, Email: claims.Email, Role: claims.Role}, nil
}

// Verifier turns a raw bearer credential into a verified identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// UserLookup fetches the current state of a user.
type UserLookup interface {
	GetUserByID(ctx context.Context, id int64) (model.User, error)
}

// StoreVerifier checks the token and then re-reads the user so that role
// changes and deactivation take effect before the token expires.
type StoreVerifier struct {
	Tokens *TokenManager
	Users  UserLookup
}

// Verify implements Verifier.
func (v StoreVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	claimed, err := v.Tokens.Parse(token)
	if err != nil {
		return Identity{}, err
	}

	u, err := v.Users.GetUserByID(ctx, claimed.UserID)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	if !u.IsActive {
		return Identity{}, ErrInactiveUser
	}
	return Identity{UserID: u.ID, Email: u.Email, Role: u.Role}, nil
}
