package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(storeURLEnv, "")
	t.Setenv(storeTokenEnv, "")
	t.Setenv(journalDSNEnv, "")
	t.Setenv(logLevelEnv, "")

	cfg := Load()

	if cfg.Store.BaseURL == "" {
		t.Fatal("expected a default store URL")
	}
	if cfg.Store.Timeout() != 15*time.Second {
		t.Fatalf("unexpected default timeout: %v", cfg.Store.Timeout())
	}
	if cfg.Journal.DSN != "" {
		t.Fatalf("journal must be disabled by default, got %q", cfg.Journal.DSN)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("unexpected default level: %q", cfg.Logging.Level)
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
store:
  baseUrl: https://store.internal/api
  apiToken: file-token
  timeoutSeconds: 30
logging:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(storeTokenEnv, "env-token")
	t.Setenv(journalDSNEnv, "postgres://journal")

	cfg := Load()

	if cfg.Store.BaseURL != "https://store.internal/api" {
		t.Fatalf("file value ignored: %q", cfg.Store.BaseURL)
	}
	if cfg.Store.APIToken != "env-token" {
		t.Fatalf("env override must win over file: %q", cfg.Store.APIToken)
	}
	if cfg.Store.Timeout() != 30*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.Store.Timeout())
	}
	if cfg.Journal.DSN != "postgres://journal" {
		t.Fatalf("journal DSN override ignored: %q", cfg.Journal.DSN)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoadBrokenFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("store: [not a mapping"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(storeURLEnv, "")
	t.Setenv(storeTokenEnv, "")
	t.Setenv(journalDSNEnv, "")
	t.Setenv(logLevelEnv, "")

	cfg := Load()
	if cfg.Store.BaseURL != defaultConfig().Store.BaseURL {
		t.Fatalf("broken file must fall back to defaults, got %q", cfg.Store.BaseURL)
	}
}
