package config

import (
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("COUNTLY_SERVER_URL", "https://countly.example.com")
	t.Setenv("MCP_MODE", "")
	t.Setenv("MCP_HTTP_ADDR", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("COUNTLY_HTTP_TIMEOUT", "")
	t.Setenv("COUNTLY_APP_CACHE_TTL", "")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Mode != ModeHTTP {
		t.Fatalf("expected http mode, got %s", cfg.Mode)
	}
	if cfg.HTTPAddr != ":3333" {
		t.Fatalf("unexpected addr: %s", cfg.HTTPAddr)
	}
	if cfg.AppCacheTTL != 5*time.Minute {
		t.Fatalf("unexpected cache ttl: %v", cfg.AppCacheTTL)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.HTTPTimeout)
	}
}

func TestLoadRequiresServerURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("COUNTLY_SERVER_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without COUNTLY_SERVER_URL")
	}
}

func TestLoadTrimsTrailingSlash(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("COUNTLY_SERVER_URL", "https://countly.example.com/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerURL != "https://countly.example.com" {
		t.Fatalf("unexpected server url: %s", cfg.ServerURL)
	}
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("MCP_MODE", "carrier-pigeon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestLoadParsesDurations(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("COUNTLY_APP_CACHE_TTL", "90s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AppCacheTTL != 90*time.Second {
		t.Fatalf("unexpected ttl: %v", cfg.AppCacheTTL)
	}
}

func TestLoadIgnoresBadDurations(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("COUNTLY_APP_CACHE_TTL", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AppCacheTTL != 5*time.Minute {
		t.Fatalf("bad duration should fall back to default, got %v", cfg.AppCacheTTL)
	}
}
