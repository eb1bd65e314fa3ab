// Package config assembles the application configuration from defaults, an
// optional YAML file and environment variables, in that order of precedence
// (environment wins).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	envcfg "rss-reader/pkg/config"
)

// DefaultAPIBaseURL is the origin of the RSS aggregation API.
const DefaultAPIBaseURL = "https://get-rss.nekoqwq.space"

// Config is the complete application configuration.
type Config struct {
	HTTPAddr  string          `yaml:"http_addr"`
	Version   string          `yaml:"version"`
	Site      SiteConfig      `yaml:"site"`
	API       APIConfig       `yaml:"api"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CSP       CSPConfig       `yaml:"csp"`
	Log       LogConfig       `yaml:"log"`
}

// SiteConfig holds presentation settings.
type SiteConfig struct {
	// Name is appended to the reader's document title: "<article> - <Name>".
	Name string `yaml:"name"`
	// MaxVisiblePages is the width of the pagination window.
	MaxVisiblePages int `yaml:"max_visible_pages"`
}

// APIConfig configures the client of the article API.
type APIConfig struct {
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	UserAgent    string        `yaml:"user_agent"`
}

// RateLimitConfig configures the per-client token bucket in front of the pages.
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
	// TrustedProxies lists the IPs or CIDRs whose X-Forwarded-For and
	// X-Real-IP headers identify the client. Empty means RemoteAddr only.
	TrustedProxies []string `yaml:"trusted_proxies"`
}

// CSPConfig contains the configuration for Content Security Policy headers.
type CSPConfig struct {
	Enabled    bool `yaml:"enabled"`
	ReportOnly bool `yaml:"report_only"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or text
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		HTTPAddr: ":8080",
		Version:  "dev",
		Site: SiteConfig{
			Name:            "NekoQwQ RSS Reader",
			MaxVisiblePages: 5,
		},
		API: APIConfig{
			BaseURL:      DefaultAPIBaseURL,
			Timeout:      10 * time.Second,
			MaxBodyBytes: 10 * 1024 * 1024, // 10MB
			UserAgent:    "NekoRSSReader/1.0",
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 10,
			Burst:             20,
		},
		CSP: CSPConfig{
			Enabled:    true,
			ReportOnly: false,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment variables. The result is validated.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// mergeFile overlays the YAML document at path on top of cfg.
// The path comes from the operator (CONFIG_FILE), not from user input.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.HTTPAddr = envcfg.GetEnvString("HTTP_ADDR", c.HTTPAddr)
	c.Version = envcfg.GetEnvString("VERSION", c.Version)

	c.Site.Name = envcfg.GetEnvString("SITE_NAME", c.Site.Name)
	c.Site.MaxVisiblePages = envcfg.GetEnvInt("PAGINATION_MAX_VISIBLE", c.Site.MaxVisiblePages)

	c.API.BaseURL = envcfg.GetEnvString("API_BASE_URL", c.API.BaseURL)
	c.API.Timeout = envcfg.GetEnvDuration("API_TIMEOUT", c.API.Timeout)
	c.API.MaxBodyBytes = envcfg.GetEnvInt64("API_MAX_BODY_BYTES", c.API.MaxBodyBytes)
	c.API.UserAgent = envcfg.GetEnvString("API_USER_AGENT", c.API.UserAgent)

	c.RateLimit.Enabled = envcfg.GetEnvBool("RATELIMIT_ENABLED", c.RateLimit.Enabled)
	c.RateLimit.RequestsPerSecond = envcfg.GetEnvFloat("RATELIMIT_RPS", c.RateLimit.RequestsPerSecond)
	c.RateLimit.Burst = envcfg.GetEnvInt("RATELIMIT_BURST", c.RateLimit.Burst)
	c.RateLimit.TrustedProxies = envcfg.GetEnvList("RATELIMIT_TRUSTED_PROXIES", c.RateLimit.TrustedProxies)

	c.CSP.Enabled = envcfg.GetEnvBool("CSP_ENABLED", c.CSP.Enabled)
	c.CSP.ReportOnly = envcfg.GetEnvBool("CSP_REPORT_ONLY", c.CSP.ReportOnly)

	c.Log.Level = envcfg.GetEnvString("LOG_LEVEL", c.Log.Level)
	c.Log.Format = envcfg.GetEnvString("LOG_FORMAT", c.Log.Format)
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	if c.HTTPAddr == "" {
		return errors.New("http_addr is required")
	}
	if err := envcfg.ValidateHTTPURL(c.API.BaseURL); err != nil {
		return fmt.Errorf("api base_url: %w", err)
	}
	if err := envcfg.ValidatePositiveDuration(c.API.Timeout); err != nil {
		return fmt.Errorf("api timeout: %w", err)
	}
	if c.API.MaxBodyBytes < 1024 {
		return fmt.Errorf("api max_body_bytes must be at least 1024, got %d", c.API.MaxBodyBytes)
	}
	if c.Site.MaxVisiblePages < 1 {
		return fmt.Errorf("site max_visible_pages must be positive, got %d", c.Site.MaxVisiblePages)
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerSecond <= 0 {
			return fmt.Errorf("rate_limit requests_per_second must be positive, got %v", c.RateLimit.RequestsPerSecond)
		}
		if c.RateLimit.Burst < 1 {
			return fmt.Errorf("rate_limit burst must be positive, got %d", c.RateLimit.Burst)
		}
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log format must be json or text, got %q", c.Log.Format)
	}
	return nil
}
