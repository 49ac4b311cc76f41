package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const devJWTSecret = "dev-secret-change-in-production"

var ErrInsecureSecret = errors.New("JWT_SECRET must be set in production environment")

type Config struct {
	Port           string
	Env            string
	LogLevel       slog.Level
	DatabaseDSN    string
	JWTSecret      string
	TokenExpiry    time.Duration
	MaxLength      int
	MaxBatch       int
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseDSN: getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/passgen?parseTime=true"),
		JWTSecret:   getEnv("JWT_SECRET", devJWTSecret),
	}

	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	var err error
	cfg.LogLevel, err = getLevel("LOG_LEVEL", slog.LevelInfo)
	collect(err)
	cfg.TokenExpiry, err = getDuration("TOKEN_EXPIRY", 30*24*time.Hour)
	collect(err)
	cfg.MaxLength, err = getInt("MAX_LENGTH", 50)
	collect(err)
	cfg.MaxBatch, err = getInt("MAX_BATCH", 100)
	collect(err)
	cfg.RateLimitRPS, err = getFloat("RATE_LIMIT_RPS", 5)
	collect(err)
	cfg.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", 10)
	collect(err)

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

// Validate checks value ranges and production safety.
func (c Config) Validate() error {
	var errs []error
	if c.Env == "production" && c.JWTSecret == devJWTSecret {
		errs = append(errs, ErrInsecureSecret)
	}
	if c.MaxLength < 1 {
		errs = append(errs, fmt.Errorf("MAX_LENGTH must be positive, got %d", c.MaxLength))
	}
	if c.MaxBatch < 1 {
		errs = append(errs, fmt.Errorf("MAX_BATCH must be positive, got %d", c.MaxBatch))
	}
	if c.RateLimitRPS <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS must be positive, got %g", c.RateLimitRPS))
	}
	if c.RateLimitBurst < 1 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_BURST must be positive, got %d", c.RateLimitBurst))
	}
	if c.TokenExpiry <= 0 {
		errs = append(errs, fmt.Errorf("TOKEN_EXPIRY must be positive, got %s", c.TokenExpiry))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return f, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return d, nil
}

func getLevel(key string, fallback slog.Level) (slog.Level, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return level, nil
}
