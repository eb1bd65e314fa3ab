// Package config provides typed accessors for environment variables and small
// validation helpers shared by the configuration loaders.
//
// Every accessor returns the supplied default when the variable is unset or
// empty. Malformed values also fall back to the default and are reported with
// a warning through the default slog logger, so a typo never stops startup on
// its own; range checks belong to the caller's Validate step.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnvString returns the value of key, or defaultValue when it is unset or empty.
//
// Example:
//
//	baseURL := GetEnvString("API_BASE_URL", "https://get-rss.nekoqwq.space")
func GetEnvString(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt returns the value of key parsed as a base-10 int.
func GetEnvInt(key string, defaultValue int) int {
	raw, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		warnInvalid(key, raw, strconv.Itoa(defaultValue), err)
		return defaultValue
	}
	return value
}

// GetEnvInt64 returns the value of key parsed as a base-10 int64.
func GetEnvInt64(key string, defaultValue int64) int64 {
	raw, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		warnInvalid(key, raw, strconv.FormatInt(defaultValue, 10), err)
		return defaultValue
	}
	return value
}

// GetEnvFloat returns the value of key parsed as a float64.
func GetEnvFloat(key string, defaultValue float64) float64 {
	raw, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		warnInvalid(key, raw, strconv.FormatFloat(defaultValue, 'g', -1, 64), err)
		return defaultValue
	}
	return value
}

// GetEnvBool returns the value of key parsed with strconv.ParseBool
// ("1", "t", "true", "0", "f", "false", ...).
func GetEnvBool(key string, defaultValue bool) bool {
	raw, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		warnInvalid(key, raw, strconv.FormatBool(defaultValue), err)
		return defaultValue
	}
	return value
}

// GetEnvDuration returns the value of key parsed with time.ParseDuration
// (e.g. "10s", "1m30s").
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		warnInvalid(key, raw, defaultValue.String(), err)
		return defaultValue
	}
	return value
}

// GetEnvList returns the comma separated items of key with surrounding
// whitespace and empty items removed.
func GetEnvList(key string, defaultValue []string) []string {
	raw, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}

func lookup(key string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	return raw, raw != ""
}

func warnInvalid(key, value, def string, err error) {
	slog.Warn("invalid value for environment variable, using default",
		slog.String("key", key),
		slog.String("value", value),
		slog.String("default", def),
		slog.String("error", err.Error()))
}
