// Package config provides configuration loading and validation for skillscout.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/skillscout/internal/logger"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SKILLSCOUT_"

// Config is the service configuration. It can be loaded from a JSON or YAML
// file; every field is optional and falls back to Defaults.
type Config struct {
	Server   ServerConfig   `json:"server" yaml:"server"`
	Upstream UpstreamConfig `json:"upstream" yaml:"upstream"`
	Search   SearchConfig   `json:"search" yaml:"search"`
	Log      logger.Config  `json:"log" yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port                int `json:"port" yaml:"port"`
	ReadTimeoutSeconds  int `json:"read_timeout_seconds" yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int `json:"write_timeout_seconds" yaml:"write_timeout_seconds"`
}

// UpstreamConfig configures the job feed and video site requests.
type UpstreamConfig struct {
	JobsURL        string `json:"jobs_url" yaml:"jobs_url"`
	VideosURL      string `json:"videos_url" yaml:"videos_url"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"`
	UserAgent      string `json:"user_agent" yaml:"user_agent"`
	UseBrowser     bool   `json:"use_browser" yaml:"use_browser"` // Render video pages in headless Chrome
}

// SearchConfig configures result limits and request coalescing.
type SearchConfig struct {
	DefaultJobLimit   int  `json:"default_job_limit" yaml:"default_job_limit"`
	DefaultVideoLimit int  `json:"default_video_limit" yaml:"default_video_limit"`
	MaxLimit          int  `json:"max_limit" yaml:"max_limit"`
	CoalesceRequests  bool `json:"coalesce_requests" yaml:"coalesce_requests"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:                8080,
			ReadTimeoutSeconds:  30,
			WriteTimeoutSeconds: 60,
		},
		Upstream: UpstreamConfig{
			JobsURL:        "https://remoteok.com/api",
			VideosURL:      "https://www.youtube.com",
			TimeoutSeconds: 10,
		},
		Search: SearchConfig{
			DefaultJobLimit:   10,
			DefaultVideoLimit: 5,
			MaxLimit:          100,
		},
		Log: logger.Config{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by
// extension, on top of Defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Defaults()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Load builds the effective configuration: Defaults, then the file at path
// if one is given, then SKILLSCOUT_* environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type envBinding struct {
	name string
	set  func(c *Config, v string) error
}

var envBindings = []envBinding{
	{"PORT", func(c *Config, v string) error { return setInt(&c.Server.Port, v) }},
	{"JOBS_URL", func(c *Config, v string) error { c.Upstream.JobsURL = v; return nil }},
	{"VIDEOS_URL", func(c *Config, v string) error { c.Upstream.VideosURL = v; return nil }},
	{"UPSTREAM_TIMEOUT_SECONDS", func(c *Config, v string) error { return setInt(&c.Upstream.TimeoutSeconds, v) }},
	{"USER_AGENT", func(c *Config, v string) error { c.Upstream.UserAgent = v; return nil }},
	{"USE_BROWSER", func(c *Config, v string) error { return setBool(&c.Upstream.UseBrowser, v) }},
	{"DEFAULT_JOB_LIMIT", func(c *Config, v string) error { return setInt(&c.Search.DefaultJobLimit, v) }},
	{"DEFAULT_VIDEO_LIMIT", func(c *Config, v string) error { return setInt(&c.Search.DefaultVideoLimit, v) }},
	{"MAX_LIMIT", func(c *Config, v string) error { return setInt(&c.Search.MaxLimit, v) }},
	{"COALESCE_REQUESTS", func(c *Config, v string) error { return setBool(&c.Search.CoalesceRequests, v) }},
	{"LOG_LEVEL", func(c *Config, v string) error { c.Log.Level = v; return nil }},
	{"LOG_DEVELOPMENT", func(c *Config, v string) error { return setBool(&c.Log.Development, v) }},
}

// ApplyEnv overrides fields from SKILLSCOUT_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, b := range envBindings {
		v, ok := lookup(EnvPrefix + b.name)
		if !ok || v == "" {
			continue
		}
		if err := b.set(c, v); err != nil {
			return fmt.Errorf("config error: %s%s: %w", EnvPrefix, b.name, err)
		}
	}
	return nil
}

func setInt(dst *int, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid integer %q", v)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid boolean %q", v)
	}
	*dst = b
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 1 and 65535")
	}
	if c.Server.ReadTimeoutSeconds <= 0 || c.Server.WriteTimeoutSeconds <= 0 {
		return fmt.Errorf("config error: server timeouts must be positive")
	}
	if c.Upstream.TimeoutSeconds <= 0 {
		return fmt.Errorf("config error: 'upstream.timeout_seconds' must be positive")
	}
	for name, raw := range map[string]string{
		"upstream.jobs_url":   c.Upstream.JobsURL,
		"upstream.videos_url": c.Upstream.VideosURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config error: '%s' must be an absolute URL", name)
		}
	}
	if c.Search.MaxLimit < 1 {
		return fmt.Errorf("config error: 'search.max_limit' must be at least 1")
	}
	if c.Search.DefaultJobLimit < 1 || c.Search.DefaultJobLimit > c.Search.MaxLimit {
		return fmt.Errorf("config error: 'search.default_job_limit' must be between 1 and max_limit")
	}
	if c.Search.DefaultVideoLimit < 1 || c.Search.DefaultVideoLimit > c.Search.MaxLimit {
		return fmt.Errorf("config error: 'search.default_video_limit' must be between 1 and max_limit")
	}
	return nil
}

// UpstreamTimeout returns the per-request upstream timeout.
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.Upstream.TimeoutSeconds) * time.Second
}

// ReadTimeout returns the HTTP server read timeout.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.Server.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the HTTP server write timeout.
func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.Server.WriteTimeoutSeconds) * time.Second
}
