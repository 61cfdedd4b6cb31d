package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// DefaultConfig returns the built-in limits: 60 requests per second per
// client with bursts of up to 100.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    60,
		DefaultWindow:   time.Second,
		DefaultBurst:    100,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// LoadConfig loads rate limiting configuration from RATE_LIMIT_* environment
// variables on top of DefaultConfig. Malformed values keep the default.
func LoadConfig() *Config {
	if !envOr("RATE_LIMIT_ENABLED", true, strconv.ParseBool) {
		return &Config{Enabled: false}
	}

	cfg := DefaultConfig()
	cfg.DefaultLimit = envOr("RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit, strconv.Atoi)
	cfg.DefaultWindow = envOr("RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow, time.ParseDuration)
	cfg.DefaultBurst = envOr("RATE_LIMIT_DEFAULT_BURST", cfg.DefaultBurst, strconv.Atoi)
	cfg.CleanupInterval = envOr("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval, time.ParseDuration)
	cfg.IdleTimeout = envOr("RATE_LIMIT_IDLE_TIMEOUT", cfg.IdleTimeout, time.ParseDuration)
	cfg.Whitelist = clientSet(os.Getenv("RATE_LIMIT_WHITELIST"))
	cfg.Blacklist = clientSet(os.Getenv("RATE_LIMIT_BLACKLIST"))
	return cfg
}

// DefaultEndpointConfigs returns the per-route overrides. Searches use the
// default limit; GET /health and GET /metrics are never limited.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/api/v1/cache/clear", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		{Path: "/api/v1/cache/refresh/", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
	}
}

func envOr[T any](key string, def T, parse func(string) (T, error)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

// clientSet turns a comma-separated client list into a lookup set.
func clientSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, id := range strings.Split(list, ",") {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = true
		}
	}
	return set
}
