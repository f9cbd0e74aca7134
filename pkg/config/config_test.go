package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var allKeys = []string{
	"GITHUB_TOKEN", "TWITTER_BEARER_TOKEN", "STACKSCOPE_CACHE_SIZE", "STACKSCOPE_CACHE_TTL",
	"STACKSCOPE_HTTP_CACHE_DIR", "STACKSCOPE_HTTP_CACHE_TTL", "STACKSCOPE_LOG_LEVEL",
	"STACKSCOPE_HTTP_ADDR", "STACKSCOPE_API_TOKEN",
}

// isolate runs the test in an empty directory with every variable cleared.
func isolate(t *testing.T) string {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
		os.Unsetenv(k) //nolint:errcheck // restored by t.Setenv
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Config{
		CacheSize:    1024,
		CacheTTL:     24 * time.Hour,
		HTTPCacheTTL: 24 * time.Hour,
		LogLevel:     slog.LevelInfo,
		HTTPAddr:     "127.0.0.1:8080",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("GITHUB_TOKEN", " ghp_x ")
	t.Setenv("TWITTER_BEARER_TOKEN", "bearer")
	t.Setenv("STACKSCOPE_CACHE_SIZE", "10")
	t.Setenv("STACKSCOPE_CACHE_TTL", "90m")
	t.Setenv("STACKSCOPE_LOG_LEVEL", "debug")
	t.Setenv("STACKSCOPE_HTTP_CACHE_DIR", "/tmp/stackscope")

	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.GitHubToken != "ghp_x" || got.TwitterToken != "bearer" {
		t.Errorf("tokens = %q, %q", got.GitHubToken, got.TwitterToken)
	}
	if got.CacheSize != 10 || got.CacheTTL != 90*time.Minute {
		t.Errorf("cache = %d, %v", got.CacheSize, got.CacheTTL)
	}
	if got.LogLevel != slog.LevelDebug || got.HTTPCacheDir != "/tmp/stackscope" {
		t.Errorf("level = %v, dir = %q", got.LogLevel, got.HTTPCacheDir)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	content := "GITHUB_TOKEN=from-file\nSTACKSCOPE_HTTP_ADDR=:9090\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("STACKSCOPE_HTTP_ADDR", ":7070")

	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.GitHubToken != "from-file" {
		t.Errorf("GitHubToken = %q, want value from .env", got.GitHubToken)
	}
	if got.HTTPAddr != ":7070" {
		t.Errorf("HTTPAddr = %q, want environment to win", got.HTTPAddr)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"STACKSCOPE_CACHE_TTL", "soon"},
		{"STACKSCOPE_HTTP_CACHE_TTL", "1 day"},
		{"STACKSCOPE_LOG_LEVEL", "chatty"},
		{"STACKSCOPE_CACHE_SIZE", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q succeeded, want error", tt.key, tt.value)
			}
		})
	}
}
