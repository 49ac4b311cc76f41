package config

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "LOG_LEVEL", "DATABASE_DSN", "JWT_SECRET", "TOKEN_EXPIRY",
		"MAX_LENGTH", "MAX_BATCH", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, slog.LevelInfo)
	}
	if cfg.MaxLength != 50 {
		t.Errorf("MaxLength = %d, want 50", cfg.MaxLength)
	}
	if cfg.MaxBatch != 100 {
		t.Errorf("MaxBatch = %d, want 100", cfg.MaxBatch)
	}
	if cfg.TokenExpiry != 720*time.Hour {
		t.Errorf("TokenExpiry = %s, want 720h", cfg.TokenExpiry)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MAX_LENGTH", "128")
	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("TOKEN_EXPIRY", "1h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, slog.LevelDebug)
	}
	if cfg.MaxLength != 128 {
		t.Errorf("MaxLength = %d, want 128", cfg.MaxLength)
	}
	if cfg.RateLimitRPS != 0.5 {
		t.Errorf("RateLimitRPS = %g, want 0.5", cfg.RateLimitRPS)
	}
	if cfg.TokenExpiry != time.Hour {
		t.Errorf("TokenExpiry = %s, want 1h", cfg.TokenExpiry)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric length", "MAX_LENGTH", "fifty"},
		{"zero length", "MAX_LENGTH", "0"},
		{"negative batch", "MAX_BATCH", "-1"},
		{"bad rate", "RATE_LIMIT_RPS", "fast"},
		{"bad duration", "TOKEN_EXPIRY", "forever"},
		{"bad level", "LOG_LEVEL", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ENV", "development")
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q expected error", tt.key, tt.value)
			}
		})
	}
}

func TestLoadProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	if !errors.Is(err, ErrInsecureSecret) {
		t.Errorf("Load() error = %v, want %v", err, ErrInsecureSecret)
	}

	t.Setenv("JWT_SECRET", "a-real-secret")
	if _, err := Load(); err != nil {
		t.Errorf("Load() unexpected error: %v", err)
	}
}
