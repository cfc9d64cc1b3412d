// Package config provides small environment variable helpers shared by the
// digest configuration loaders. Invalid values fall back to the default
// with a logged warning; an unset variable takes the default silently.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// GetEnvString returns the variable's value, or def when unset or empty.
func GetEnvString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	return value
}

// GetEnvInt returns the variable parsed as an integer, or def on a parse
// failure.
func GetEnvInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("invalid integer value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Int("default", def))
		return def
	}
	return value
}

// GetEnvBool returns the variable parsed with strconv.ParseBool semantics
// ("1", "t", "true", "0", "f", "false" in any case), or def on a parse
// failure.
func GetEnvBool(key string, def bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		slog.Warn("invalid boolean value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Bool("default", def))
		return def
	}
	return value
}

// GetEnvDuration returns the variable parsed as a Go duration string such
// as "30s" or "1h30m", or def on a parse failure.
func GetEnvDuration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}

	value, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("invalid duration value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.String("default", def.String()))
		return def
	}
	return value
}
