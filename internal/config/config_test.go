package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "HTTP_ADDR", "VERSION", "SITE_NAME", "PAGINATION_MAX_VISIBLE",
		"API_BASE_URL", "API_TIMEOUT", "API_MAX_BODY_BYTES", "API_USER_AGENT",
		"RATELIMIT_ENABLED", "RATELIMIT_RPS", "RATELIMIT_BURST", "RATELIMIT_TRUSTED_PROXIES",
		"CSP_ENABLED", "CSP_REPORT_ONLY", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "https://get-rss.nekoqwq.space", cfg.API.BaseURL)
	assert.Equal(t, 5, cfg.Site.MaxVisiblePages)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_BASE_URL", "http://localhost:9000")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("SITE_NAME", "Test Reader")
	t.Setenv("RATELIMIT_ENABLED", "false")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, "Test Reader", cfg.Site.Name)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
http_addr: ":9090"
site:
  name: "From File"
  max_visible_pages: 7
api:
  base_url: "https://api.example.com"
  timeout: 4s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SITE_NAME", "From Env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "From Env", cfg.Site.Name)
	assert.Equal(t, 7, cfg.Site.MaxVisiblePages)
	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, 4*time.Second, cfg.API.Timeout)
	// untouched keys keep their defaults
	assert.Equal(t, int64(10*1024*1024), cfg.API.MaxBodyBytes)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unterminated"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid defaults", mutate: func(*Config) {}},
		{name: "empty addr", mutate: func(c *Config) { c.HTTPAddr = "" }, wantErr: "http_addr"},
		{name: "bad base url", mutate: func(c *Config) { c.API.BaseURL = "get-rss" }, wantErr: "base_url"},
		{name: "zero timeout", mutate: func(c *Config) { c.API.Timeout = 0 }, wantErr: "timeout"},
		{name: "tiny body limit", mutate: func(c *Config) { c.API.MaxBodyBytes = 10 }, wantErr: "max_body_bytes"},
		{name: "zero window", mutate: func(c *Config) { c.Site.MaxVisiblePages = 0 }, wantErr: "max_visible_pages"},
		{name: "zero rps", mutate: func(c *Config) { c.RateLimit.RequestsPerSecond = 0 }, wantErr: "requests_per_second"},
		{name: "zero burst", mutate: func(c *Config) { c.RateLimit.Burst = 0 }, wantErr: "burst"},
		{
			name: "rate limit disabled skips its checks",
			mutate: func(c *Config) {
				c.RateLimit.Enabled = false
				c.RateLimit.Burst = 0
			},
		},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("RSS_READER_DOTENV_TEST=loaded\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("RSS_READER_DOTENV_TEST") })

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "loaded", os.Getenv("RSS_READER_DOTENV_TEST"))
}
