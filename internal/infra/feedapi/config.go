package feedapi

import (
	"fmt"
	"time"

	envcfg "rss-reader/pkg/config"
)

// Config holds the settings of the article API client.
type Config struct {
	// BaseURL is the API origin, e.g. "https://get-rss.nekoqwq.space".
	// A trailing slash is ignored.
	BaseURL string

	// Timeout bounds a single request including reading the body.
	// Default: 10s
	Timeout time.Duration

	// MaxBodyBytes is the largest response body accepted.
	// Larger bodies fail with ErrBodyTooLarge instead of being truncated.
	// Default: 10485760 (10MB)
	MaxBodyBytes int64

	// UserAgent is sent with every request.
	UserAgent string
}

// DefaultConfig returns the default client configuration for baseURL.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:      baseURL,
		Timeout:      10 * time.Second,
		MaxBodyBytes: 10 * 1024 * 1024,
		UserAgent:    "NekoRSSReader/1.0",
	}
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	if err := envcfg.ValidateHTTPURL(c.BaseURL); err != nil {
		return fmt.Errorf("base url: %w", err)
	}
	if err := envcfg.ValidatePositiveDuration(c.Timeout); err != nil {
		return fmt.Errorf("timeout: %w", err)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive, got %d", c.MaxBodyBytes)
	}
	return nil
}
