// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"log/slog"
	"os"
	"testing"
	"time"
)

const testSecret = "test-Secret-key-32-bytes-long!!!"

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	setEnv(t, "AUDITSITE_JWT_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/auditsite.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/auditsite.db")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %s, want 24h", cfg.TokenTTL)
	}
	if cfg.PrimaryAdminEmail != "admin@example.com" {
		t.Errorf("PrimaryAdminEmail = %q, want %q", cfg.PrimaryAdminEmail, "admin@example.com")
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:3000" {
		t.Errorf("CORSOrigins = %v, want [http://localhost:3000]", cfg.CORSOrigins)
	}
	if cfg.DefaultPageLimit != 10 || cfg.MaxPageLimit != 100 {
		t.Errorf("page limits = %d/%d, want 10/100", cfg.DefaultPageLimit, cfg.MaxPageLimit)
	}
	if cfg.EventRetention() != 90*24*time.Hour {
		t.Errorf("EventRetention() = %s, want 90 days", cfg.EventRetention())
	}
	if !cfg.CacheEnabled() || cfg.CacheTTL != 5*time.Minute || cfg.RedisURL != "" {
		t.Errorf("cache = enabled:%v ttl:%s redis:%q, want memory cache with 5m TTL",
			cfg.CacheEnabled(), cfg.CacheTTL, cfg.RedisURL)
	}
}

func TestLoad_CacheDisabled(t *testing.T) {
	os.Clearenv()
	setEnv(t, "AUDITSITE_JWT_SECRET", testSecret)
	setEnv(t, "AUDITSITE_CACHE_TTL", "0s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.CacheEnabled() {
		t.Error("CacheEnabled() = true with zero TTL")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "AUDITSITE_JWT_SECRET", testSecret)
	setEnv(t, "AUDITSITE_DB_PATH", "/custom/path.db")
	setEnv(t, "AUDITSITE_SERVER_PORT", "3000")
	setEnv(t, "AUDITSITE_PRIMARY_ADMIN_EMAIL", "  Owner@Firm.COM ")
	setEnv(t, "AUDITSITE_CORS_ORIGINS", "https://a.example,https://b.example")
	setEnv(t, "AUDITSITE_TOKEN_TTL", "2h")
	setEnv(t, "AUDITSITE_EVENT_RETENTION_DAYS", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/custom/path.db")
	}
	if cfg.ServerPort != 3000 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 3000)
	}
	if cfg.PrimaryAdminEmail != "owner@firm.com" {
		t.Errorf("PrimaryAdminEmail = %q, want normalised %q", cfg.PrimaryAdminEmail, "owner@firm.com")
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("CORSOrigins = %v, want 2 entries", cfg.CORSOrigins)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Errorf("TokenTTL = %s, want 2h", cfg.TokenTTL)
	}
	if cfg.EventRetention() != 0 {
		t.Errorf("EventRetention() = %s, want 0", cfg.EventRetention())
	}
}

func TestLoad_RequiredJWTSecret(t *testing.T) {
	os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail when AUDITSITE_JWT_SECRET is not set")
	}
}

func TestLoad_JWTSecretTooShort(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{"empty", ""},
		{"short", "short"},
		{"31_bytes", "1234567890123456789012345678901"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			setEnv(t, "AUDITSITE_JWT_SECRET", tt.secret)

			if _, err := Load(); err == nil {
				t.Fatalf("Load() should fail with %d-byte secret", len(tt.secret))
			}
		})
	}
}

func TestLoad_WeakSecretRejectedInProduction(t *testing.T) {
	os.Clearenv()
	setEnv(t, "AUDITSITE_JWT_SECRET", "change-me-to-32-byte-secret-key!")
	setEnv(t, "AUDITSITE_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject a known weak secret in production")
	}
}

func TestLoad_PageLimitsNormalised(t *testing.T) {
	os.Clearenv()
	setEnv(t, "AUDITSITE_JWT_SECRET", testSecret)
	setEnv(t, "AUDITSITE_DEFAULT_PAGE_LIMIT", "0")
	setEnv(t, "AUDITSITE_MAX_PAGE_LIMIT", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DefaultPageLimit != 10 {
		t.Errorf("DefaultPageLimit = %d, want 10", cfg.DefaultPageLimit)
	}
	if cfg.MaxPageLimit != 10 {
		t.Errorf("MaxPageLimit = %d, want 10", cfg.MaxPageLimit)
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := Config{LogLevel: tt.level}
			if got := cfg.SlogLevel(); got != tt.want {
				t.Errorf("SlogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_ServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"localhost", 8080, "localhost:8080"},
		{"0.0.0.0", 3000, "0.0.0.0:3000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			cfg := Config{ServerHost: tt.host, ServerPort: tt.port}
			if got := cfg.ServerAddr(); got != tt.want {
				t.Errorf("ServerAddr() = %q, want %q", got, tt.want)
			}
		})
	}
}
