// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/olegiv/psyhelp/internal/kv"
)

const testSecret = "test-secret-key-32-bytes-long!!!"

// clearEnv unsets every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PSYHELP_SESSION_SECRET", "PSYHELP_ENV", "PSYHELP_SERVER_HOST", "PSYHELP_SERVER_PORT",
		"PSYHELP_LOG_LEVEL", "PSYHELP_STORAGE", "PSYHELP_DB_PATH", "PSYHELP_DB_MAX_CONNS", "PSYHELP_REDIS_URL",
		"PSYHELP_REDIS_PREFIX", "PSYHELP_VISITOR_TICK", "PSYHELP_REQUEST_TIMEOUT", "PSYHELP_DO_SEED",
	} {
		t.Setenv(key, "") // restores the original value on cleanup
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unsetting %s: %v", key, err)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("PSYHELP_SESSION_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/psyhelp.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.DBMaxConns != 10 {
		t.Errorf("DBMaxConns = %d, want 10", cfg.DBMaxConns)
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr() = %q", cfg.ServerAddr())
	}
	if !cfg.IsDevelopment() {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.Storage != kv.TypeSQLite || !cfg.NeedsSQL() {
		t.Errorf("Storage = %q", cfg.Storage)
	}
	if cfg.RedisPrefix != "psyhelp:" {
		t.Errorf("RedisPrefix = %q", cfg.RedisPrefix)
	}
	if cfg.VisitorSpec() != "@every 5s" {
		t.Errorf("VisitorSpec() = %q", cfg.VisitorSpec())
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %s", cfg.RequestTimeout)
	}
	if !cfg.DoSeed {
		t.Error("DoSeed = false, want true")
	}
	if cfg.SlogLevel() != slog.LevelInfo {
		t.Errorf("SlogLevel() = %v", cfg.SlogLevel())
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PSYHELP_SESSION_SECRET", testSecret)
	t.Setenv("PSYHELP_ENV", "production")
	t.Setenv("PSYHELP_SERVER_HOST", "0.0.0.0")
	t.Setenv("PSYHELP_SERVER_PORT", "3000")
	t.Setenv("PSYHELP_LOG_LEVEL", "debug")
	t.Setenv("PSYHELP_STORAGE", "redis")
	t.Setenv("PSYHELP_REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("PSYHELP_VISITOR_TICK", "off")
	t.Setenv("PSYHELP_DO_SEED", "false")
	t.Setenv("PSYHELP_DB_MAX_CONNS", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true in production")
	}
	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q", cfg.ServerAddr())
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v", cfg.SlogLevel())
	}
	if cfg.VisitorSpec() != "" {
		t.Errorf("VisitorSpec() = %q, want empty", cfg.VisitorSpec())
	}
	if cfg.DoSeed {
		t.Error("DoSeed = true, want false")
	}
	if cfg.DBMaxConns != 4 {
		t.Errorf("DBMaxConns = %d, want 4", cfg.DBMaxConns)
	}

	kvCfg := cfg.KV()
	if kvCfg.Type != kv.TypeRedis || kvCfg.RedisURL != "redis://localhost:6379/1" || kvCfg.FallbackToMemory {
		t.Errorf("KV() = %+v", kvCfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing secret",
			env:     map[string]string{},
			wantErr: "PSYHELP_SESSION_SECRET",
		},
		{
			name:    "short secret",
			env:     map[string]string{"PSYHELP_SESSION_SECRET": "short"},
			wantErr: "at least 32 bytes",
		},
		{
			name:    "example secret",
			env:     map[string]string{"PSYHELP_SESSION_SECRET": "change-me-to-32-byte-secret-key!"},
			wantErr: "known example value",
		},
		{
			name:    "bad env",
			env:     map[string]string{"PSYHELP_SESSION_SECRET": testSecret, "PSYHELP_ENV": "staging"},
			wantErr: "PSYHELP_ENV",
		},
		{
			name:    "bad storage",
			env:     map[string]string{"PSYHELP_SESSION_SECRET": testSecret, "PSYHELP_STORAGE": "mongo"},
			wantErr: "PSYHELP_STORAGE",
		},
		{
			name:    "redis without url",
			env:     map[string]string{"PSYHELP_SESSION_SECRET": testSecret, "PSYHELP_STORAGE": "redis"},
			wantErr: "PSYHELP_REDIS_URL",
		},
		{
			name:    "zero db connections",
			env:     map[string]string{"PSYHELP_SESSION_SECRET": testSecret, "PSYHELP_DB_MAX_CONNS": "0"},
			wantErr: "PSYHELP_DB_MAX_CONNS",
		},
		{
			name:    "bad port",
			env:     map[string]string{"PSYHELP_SESSION_SECRET": testSecret, "PSYHELP_SERVER_PORT": "http"},
			wantErr: "parsing config",
		},
		{
			name:    "zero timeout",
			env:     map[string]string{"PSYHELP_SESSION_SECRET": testSecret, "PSYHELP_REQUEST_TIMEOUT": "0s"},
			wantErr: "PSYHELP_REQUEST_TIMEOUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := (Config{LogLevel: in}).SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},
		{"aaaaaaaaaaaaaaaaAAAAAAAAAAAAAAAA", false},
		{"aaaaaaaaaaaaaaaaAAAAAAAAAAAA1234", true},
		{testSecret, true},
	}
	for _, tt := range tests {
		if got := hasMinimumEntropy(tt.secret); got != tt.want {
			t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.secret, got, tt.want)
		}
	}
}
