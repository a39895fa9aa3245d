// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the site's runtime configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"AUDITSITE_DB_PATH" envDefault:"./data/auditsite.db"`
	ServerHost string `env:"AUDITSITE_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"AUDITSITE_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"AUDITSITE_ENV" envDefault:"development"`
	LogLevel   string `env:"AUDITSITE_LOG_LEVEL" envDefault:"info"`

	// Bearer token configuration
	JWTSecret string        `env:"AUDITSITE_JWT_SECRET,required"`
	TokenTTL  time.Duration `env:"AUDITSITE_TOKEN_TTL" envDefault:"24h"`

	// Primary admin account, protected from demotion, deactivation and deletion
	PrimaryAdminEmail    string `env:"AUDITSITE_PRIMARY_ADMIN_EMAIL" envDefault:"admin@example.com"`
	PrimaryAdminPassword string `env:"AUDITSITE_PRIMARY_ADMIN_PASSWORD"`
	PrimaryAdminName     string `env:"AUDITSITE_PRIMARY_ADMIN_NAME" envDefault:"Administrator"`

	// Frontend origins allowed to call the API
	CORSOrigins []string `env:"AUDITSITE_CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// Per-IP limiter for public write endpoints (contact form, login)
	ContactRate  float64 `env:"AUDITSITE_CONTACT_RATE" envDefault:"0.2"`
	ContactBurst int     `env:"AUDITSITE_CONTACT_BURST" envDefault:"5"`

	EventRetentionDays int `env:"AUDITSITE_EVENT_RETENTION_DAYS" envDefault:"90"` // 0 disables pruning

	DefaultPageLimit int `env:"AUDITSITE_DEFAULT_PAGE_LIMIT" envDefault:"10"`
	MaxPageLimit     int `env:"AUDITSITE_MAX_PAGE_LIMIT" envDefault:"100"`

	// Public response cache; Redis is used when RedisURL is set, memory otherwise
	RedisURL    string        `env:"AUDITSITE_REDIS_URL"`
	CachePrefix string        `env:"AUDITSITE_CACHE_PREFIX" envDefault:"auditsite:"`
	CacheTTL    time.Duration `env:"AUDITSITE_CACHE_TTL" envDefault:"5m"` // 0 disables caching
}

// CacheEnabled reports whether public responses should be cached.
func (c Config) CacheEnabled() bool {
	return c.CacheTTL > 0
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// EventRetention returns how long event log records are kept, or 0 when pruning is disabled.
func (c Config) EventRetention() time.Duration {
	if c.EventRetentionDays <= 0 {
		return 0
	}
	return time.Duration(c.EventRetentionDays) * 24 * time.Hour
}

// MinJWTSecretLength is the minimum required length for the token signing secret.
// HS256 keys shorter than the hash output weaken the signature.
const MinJWTSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.JWTSecret) < MinJWTSecretLength {
		return nil, fmt.Errorf("AUDITSITE_JWT_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinJWTSecretLength, len(cfg.JWTSecret))
	}

	if !cfg.IsDevelopment() {
		for _, weak := range knownWeakSecrets {
			if cfg.JWTSecret == weak {
				return nil, fmt.Errorf("AUDITSITE_JWT_SECRET is a known default value and must not be used; " +
					"generate a secure secret with: openssl rand -base64 32")
			}
		}
	}

	if !hasMinimumEntropy(cfg.JWTSecret) {
		slog.Warn("AUDITSITE_JWT_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	cfg.PrimaryAdminEmail = strings.ToLower(strings.TrimSpace(cfg.PrimaryAdminEmail))
	if cfg.PrimaryAdminEmail == "" {
		return nil, fmt.Errorf("AUDITSITE_PRIMARY_ADMIN_EMAIL must not be empty")
	}

	if cfg.DefaultPageLimit < 1 {
		cfg.DefaultPageLimit = 10
	}
	if cfg.MaxPageLimit < cfg.DefaultPageLimit {
		cfg.MaxPageLimit = cfg.DefaultPageLimit
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("AUDITSITE_TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
