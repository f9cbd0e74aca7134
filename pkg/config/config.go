// Package config loads stackscope settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process-wide settings. Every field is optional.
type Config struct {
	GitHubToken  string
	TwitterToken string

	CacheSize int
	CacheTTL  time.Duration

	// HTTPCacheDir enables the persistent upstream response cache when set.
	HTTPCacheDir string
	HTTPCacheTTL time.Duration

	LogLevel slog.Level
	HTTPAddr string
	APIToken string
}

// Load reads .env (if present) and then the environment. Variables already
// set in the environment win over .env entries.
func Load() (Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env is optional

	cfg := Config{
		GitHubToken:  getEnv("GITHUB_TOKEN", ""),
		TwitterToken: getEnv("TWITTER_BEARER_TOKEN", ""),
		CacheSize:    getEnvInt("STACKSCOPE_CACHE_SIZE", 1024),
		HTTPCacheDir: getEnv("STACKSCOPE_HTTP_CACHE_DIR", ""),
		HTTPAddr:     getEnv("STACKSCOPE_HTTP_ADDR", "127.0.0.1:8080"),
		APIToken:     getEnv("STACKSCOPE_API_TOKEN", ""),
	}

	var err error
	if cfg.CacheTTL, err = getEnvDuration("STACKSCOPE_CACHE_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.HTTPCacheTTL, err = getEnvDuration("STACKSCOPE_HTTP_CACHE_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.LogLevel, err = parseLevel(getEnv("STACKSCOPE_LOG_LEVEL", "info")); err != nil {
		return Config{}, err
	}
	if cfg.CacheSize <= 0 {
		return Config{}, fmt.Errorf("STACKSCOPE_CACHE_SIZE must be positive, got %d", cfg.CacheSize)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := getEnv(key, ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("STACKSCOPE_LOG_LEVEL: %w", err)
	}
	return l, nil
}
