package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	t.Setenv("DB_URL", "postgres://localhost/f1")
	t.Setenv("GOTRUE_BASE_URL", "https://auth.example.com")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_RequiresDBURL(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("DB_URL", "")
	t.Setenv("GOTRUE_BASE_URL", "https://auth.example.com")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when DB_URL is empty")
	}
}

func TestLoad_RequiresGoTrueBaseURL(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("DB_URL", "postgres://localhost/f1")
	t.Setenv("GOTRUE_BASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when GOTRUE_BASE_URL is empty")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("DB_URL", "postgres://localhost/f1")
	t.Setenv("GOTRUE_BASE_URL", "https://auth.example.com")
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_PushRelayRequiresBaseURLWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("DB_URL", "postgres://localhost/f1")
	t.Setenv("GOTRUE_BASE_URL", "https://auth.example.com")
	t.Setenv("PUSH_RELAY_ENABLED", "true")
	t.Setenv("PUSH_RELAY_BASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PUSH_RELAY_ENABLED=true without PUSH_RELAY_BASE_URL")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("DB_URL", "postgres://localhost/f1")
	t.Setenv("GOTRUE_BASE_URL", "https://auth.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Fatalf("unexpected CacheTTL: %s", cfg.CacheTTL)
	}
	if cfg.GoTrueTimeout != 3*time.Second {
		t.Fatalf("unexpected GoTrueTimeout: %s", cfg.GoTrueTimeout)
	}
	if cfg.PushRelayWorkers != 4 {
		t.Fatalf("unexpected PushRelayWorkers: %d", cfg.PushRelayWorkers)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("DB_URL", "postgres://localhost/f1")
	t.Setenv("GOTRUE_BASE_URL", "https://auth.example.com")
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev/123"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/123" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}
