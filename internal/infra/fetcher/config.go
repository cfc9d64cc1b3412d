package fetcher

import (
	"fmt"
	"time"

	"journal-radar/pkg/config"
)

// ContentFetchConfig holds the configuration for abstract enhancement.
// When a feed ships a truncated or missing abstract, the article page is
// fetched and readable text is extracted to replace it.
type ContentFetchConfig struct {
	// Enabled controls whether content fetching is enabled.
	// When false, feed abstracts are used as-is.
	// Default: true
	Enabled bool

	// Threshold is the minimum abstract length (in characters) before fetching.
	// If the feed abstract is at least this long, fetching is skipped.
	// Default: 200
	Threshold int

	// Timeout is the maximum duration for a single HTTP request.
	// Default: 10s
	Timeout time.Duration

	// MaxBodySize is the maximum HTTP response body size in bytes.
	// Responses exceeding this limit are rejected to prevent memory exhaustion.
	// Default: 10485760 (10MB)
	MaxBodySize int64
}

// DefaultConfig returns the default configuration for content fetching.
func DefaultConfig() ContentFetchConfig {
	return ContentFetchConfig{
		Enabled:     true,
		Threshold:   200,
		Timeout:     10 * time.Second,
		MaxBodySize: 10 * 1024 * 1024, // 10MB
	}
}

// Validate checks if the configuration values are valid and safe.
func (c *ContentFetchConfig) Validate() error {
	if c.Threshold < 0 {
		return fmt.Errorf("threshold must be non-negative, got %d", c.Threshold)
	}

	if err := config.ValidateDurationRange(c.Timeout, time.Second, 2*time.Minute); err != nil {
		return fmt.Errorf("timeout: %w", err)
	}

	minBodySize := int64(1024)              // 1KB
	maxBodySize := int64(100 * 1024 * 1024) // 100MB
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}

	return nil
}

// LoadConfigFromEnv loads configuration from environment variables.
// If a variable is not set or invalid, the default value is used.
// After loading, the configuration is validated.
//
// Environment variables:
//   - CONTENT_FETCH_ENABLED: "true" or "false" (default: true)
//   - CONTENT_FETCH_THRESHOLD: integer (default: 200)
//   - CONTENT_FETCH_TIMEOUT: duration string, e.g., "10s" (default: 10s)
//   - CONTENT_FETCH_MAX_BODY_SIZE: integer in bytes (default: 10485760)
func LoadConfigFromEnv() (ContentFetchConfig, error) {
	defaults := DefaultConfig()

	cfg := ContentFetchConfig{
		Enabled:     config.GetEnvBool("CONTENT_FETCH_ENABLED", defaults.Enabled),
		Threshold:   config.GetEnvInt("CONTENT_FETCH_THRESHOLD", defaults.Threshold),
		Timeout:     config.GetEnvDuration("CONTENT_FETCH_TIMEOUT", defaults.Timeout),
		MaxBodySize: int64(config.GetEnvInt("CONTENT_FETCH_MAX_BODY_SIZE", int(defaults.MaxBodySize))),
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}
