package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Transport modes.
const (
	ModeHTTP  = "http"
	ModeStdio = "stdio"
)

// Config holds all configuration for the Countly MCP server.
type Config struct {
	Mode     string // "http" or "stdio"
	HTTPAddr string // listen address in http mode
	LogLevel string // "debug", "info", "warn", "error"

	ServerURL   string        // Countly server base URL
	HTTPTimeout time.Duration // per-request timeout against Countly
	AppCacheTTL time.Duration // freshness window for the application table
}

// Load reads configuration from environment variables.
// Priority: environment variables > defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Mode:     getEnv("MCP_MODE", ModeHTTP),
		HTTPAddr: getEnv("MCP_HTTP_ADDR", ":3333"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		ServerURL:   strings.TrimSuffix(strings.TrimSpace(os.Getenv("COUNTLY_SERVER_URL")), "/"),
		HTTPTimeout: getDurationEnv("COUNTLY_HTTP_TIMEOUT", 15*time.Second),
		AppCacheTTL: getDurationEnv("COUNTLY_APP_CACHE_TTL", 5*time.Minute),
	}

	if cfg.Mode != ModeHTTP && cfg.Mode != ModeStdio {
		return nil, fmt.Errorf("invalid MCP_MODE: %s (must be 'http' or 'stdio')", cfg.Mode)
	}
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("COUNTLY_SERVER_URL is required (e.g. https://countly.example.com)")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
