package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
environment: test
server:
  port: 8080
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Gateway.BaseURL != "http://localhost:8000" {
		t.Fatalf("unexpected default base url %q", cfg.Gateway.BaseURL)
	}
	if cfg.Dashboard.VolumeDays != 10 {
		t.Fatalf("unexpected default volume days %d", cfg.Dashboard.VolumeDays)
	}
	if cfg.Dashboard.PricePeriod != "1mo" || cfg.Dashboard.PriceInterval != "1d" {
		t.Fatalf("unexpected default period/interval %q/%q", cfg.Dashboard.PricePeriod, cfg.Dashboard.PriceInterval)
	}
	if len(cfg.Dashboard.FilingFormTypes) == 0 {
		t.Fatalf("expected default filing form types")
	}
	if cfg.Cache.Backend != "memory" {
		t.Fatalf("unexpected default cache backend %q", cfg.Cache.Backend)
	}
}

func TestLoadRequiresEnvironment(t *testing.T) {
	_, err := Load(writeConfig(t, "server:\n  port: 8080\n"))
	if err == nil {
		t.Fatalf("expected validation error for missing environment")
	}
}

func TestLoadRejectsUnknownCacheBackend(t *testing.T) {
	body := minimalConfig + "cache:\n  backend: memcached\n"
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatalf("expected validation error for unknown backend")
	}
}

func TestLoadRequiresRedisAddr(t *testing.T) {
	body := minimalConfig + "cache:\n  backend: redis\n"
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatalf("expected validation error for missing redis addr")
	}
}

func TestLoadKafkaValidation(t *testing.T) {
	body := minimalConfig + "kafka:\n  enabled: true\n"
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatalf("expected validation error for kafka without brokers")
	}
}

func TestLoadParsesDurations(t *testing.T) {
	body := minimalConfig + `
gateway:
  timeout: 15s
dashboard:
  fetch_timeout: 45s
  alerts_refresh: 5m
`
	cfg, err := Load(writeConfig(t, body))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Gateway.Timeout != 15*time.Second {
		t.Fatalf("unexpected gateway timeout %v", cfg.Gateway.Timeout)
	}
	if cfg.Dashboard.FetchTimeout != 45*time.Second {
		t.Fatalf("unexpected fetch timeout %v", cfg.Dashboard.FetchTimeout)
	}
	if cfg.Dashboard.AlertsRefresh != 5*time.Minute {
		t.Fatalf("unexpected alerts refresh %v", cfg.Dashboard.AlertsRefresh)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("GATEWAY_BASE_URL", "http://gateway:9000")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithEnv(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Gateway.BaseURL != "http://gateway:9000" {
		t.Fatalf("env override not applied: %q", cfg.Gateway.BaseURL)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("env override not applied: %q", cfg.Logging.Level)
	}
}
