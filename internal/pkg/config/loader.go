// Package config loads environment-backed settings for the digest worker.
// Loading is fail-open: an unset variable takes its default silently, an
// invalid one falls back to its default with a warning. A typo in
// DIGEST_CRON or DIGEST_TIMEOUT must never stop the scheduled digest.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Result carries one loaded setting. Warning is non-empty only when
// FellBack is true.
type Result[T any] struct {
	Value    T
	Warning  string
	FellBack bool
}

func fallback[T any](key, raw string, def T, err error) Result[T] {
	return Result[T]{
		Value:    def,
		Warning:  fmt.Sprintf("invalid %s=%q: %v, using default %v", key, raw, err, def),
		FellBack: true,
	}
}

// String loads a string variable. validate may be nil to accept any
// non-empty value.
func String(key, def string, validate func(string) error) Result[string] {
	raw := os.Getenv(key)
	if raw == "" {
		return Result[string]{Value: def}
	}
	if validate != nil {
		if err := validate(raw); err != nil {
			return fallback(key, raw, def, err)
		}
	}
	return Result[string]{Value: raw}
}

// Duration loads a Go duration string such as "30m" or "1h30m".
func Duration(key string, def time.Duration, validate func(time.Duration) error) Result[time.Duration] {
	raw := os.Getenv(key)
	if raw == "" {
		return Result[time.Duration]{Value: def}
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fallback(key, raw, def, err)
	}
	if validate != nil {
		if err := validate(parsed); err != nil {
			return fallback(key, raw, def, err)
		}
	}
	return Result[time.Duration]{Value: parsed}
}

// Int loads an integer variable.
func Int(key string, def int, validate func(int) error) Result[int] {
	raw := os.Getenv(key)
	if raw == "" {
		return Result[int]{Value: def}
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback(key, raw, def, fmt.Errorf("not an integer"))
	}
	if validate != nil {
		if err := validate(parsed); err != nil {
			return fallback(key, raw, def, err)
		}
	}
	return Result[int]{Value: parsed}
}
