// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/olegiv/psyhelp/internal/kv"
)

// knownWeakSecrets contains example secrets that must never be used.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	SessionSecret string `env:"PSYHELP_SESSION_SECRET,required"`
	Env           string `env:"PSYHELP_ENV" envDefault:"development"`
	ServerHost    string `env:"PSYHELP_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"PSYHELP_SERVER_PORT" envDefault:"8080"`
	LogLevel      string `env:"PSYHELP_LOG_LEVEL" envDefault:"info"`

	// Storage configuration
	Storage     string `env:"PSYHELP_STORAGE" envDefault:"sqlite"`            // memory, sqlite or redis
	DBPath      string `env:"PSYHELP_DB_PATH" envDefault:"./data/psyhelp.db"` // kv and sessions
	DBMaxConns  int    `env:"PSYHELP_DB_MAX_CONNS" envDefault:"10"`
	RedisURL    string `env:"PSYHELP_REDIS_URL"`
	RedisPrefix string `env:"PSYHELP_REDIS_PREFIX" envDefault:"psyhelp:"`

	VisitorTick    string        `env:"PSYHELP_VISITOR_TICK" envDefault:"@every 5s"` // "off" disables
	RequestTimeout time.Duration `env:"PSYHELP_REQUEST_TIMEOUT" envDefault:"30s"`
	DoSeed         bool          `env:"PSYHELP_DO_SEED" envDefault:"true"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// NeedsSQL reports whether a SQLite database must be opened. Sessions live in
// SQLite for every backend except memory.
func (c Config) NeedsSQL() bool {
	return c.Storage != kv.TypeMemory
}

// KV returns the storage backend configuration.
func (c Config) KV() kv.Config {
	return kv.Config{
		Type:             c.Storage,
		RedisURL:         c.RedisURL,
		Prefix:           c.RedisPrefix,
		FallbackToMemory: c.IsDevelopment(),
	}
}

// VisitorSpec returns the cron spec for the visitor tick, or "" when disabled.
func (c Config) VisitorSpec() string {
	if strings.EqualFold(strings.TrimSpace(c.VisitorTick), "off") {
		return ""
	}
	return c.VisitorTick
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

var validStorage = []string{kv.TypeMemory, kv.TypeSQLite, kv.TypeRedis}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("PSYHELP_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}
	if slices.Contains(knownWeakSecrets, cfg.SessionSecret) {
		return nil, fmt.Errorf("PSYHELP_SESSION_SECRET is a known example value and must not be used")
	}
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("PSYHELP_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.Env != "development" && cfg.Env != "production" {
		return nil, fmt.Errorf("PSYHELP_ENV must be development or production, got %q", cfg.Env)
	}
	if !slices.Contains(validStorage, cfg.Storage) {
		return nil, fmt.Errorf("PSYHELP_STORAGE must be one of %s, got %q",
			strings.Join(validStorage, ", "), cfg.Storage)
	}
	if cfg.Storage == kv.TypeRedis && cfg.RedisURL == "" {
		return nil, fmt.Errorf("PSYHELP_REDIS_URL is required when PSYHELP_STORAGE is redis")
	}
	if cfg.DBMaxConns < 1 {
		return nil, fmt.Errorf("PSYHELP_DB_MAX_CONNS must be at least 1")
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("PSYHELP_REQUEST_TIMEOUT must be positive, got %s", cfg.RequestTimeout)
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes.
func hasMinimumEntropy(s string) bool {
	classes := []string{
		"abcdefghijklmnopqrstuvwxyz",
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ",
		"0123456789",
		"!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\",
	}
	n := 0
	for _, class := range classes {
		if strings.ContainsAny(s, class) {
			n++
		}
	}
	return n >= 3
}
