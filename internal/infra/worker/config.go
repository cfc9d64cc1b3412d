package worker

import (
	"fmt"
	"log/slog"
	"time"

	"journal-radar/internal/pkg/config"
)

// WorkerConfig holds the configuration for the digest worker: the cron
// schedule, its timezone, the per-run timeout and the health check port.
//
// Configuration sources:
//   - Environment variables (loaded via LoadConfigFromEnv)
//   - Default values (provided by DefaultConfig)
//
// All fields have defaults and validation rules so the worker can start
// safely even with invalid or missing configuration.
type WorkerConfig struct {
	// CronSchedule is the cron expression for digest scheduling.
	// Format: "minute hour day month weekday"
	// Default: "30 5 * * *" (every day at 05:30)
	CronSchedule string

	// Timezone is the IANA timezone name the schedule is evaluated in.
	// Default: "Asia/Shanghai"
	Timezone string

	// DigestTimeout bounds a single digest run. Journals still pending
	// when it expires are skipped and the partial result is published.
	// Default: 30 minutes
	DigestTimeout time.Duration

	// HealthPort is the port for the liveness/readiness HTTP server.
	// Range: 1024-65535
	// Default: 9091
	HealthPort int
}

// DefaultConfig returns production-ready defaults: a daily run at 05:30
// Beijing time, a 30-minute run budget and the conventional exporter
// port for health checks.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule:  "30 5 * * *",
		Timezone:      "Asia/Shanghai",
		DigestTimeout: 30 * time.Minute,
		HealthPort:    9091,
	}
}

// Validate checks all fields and returns every violation at once.
//
// Validation rules:
//   - CronSchedule: must parse as a standard 5-field cron expression
//   - Timezone: must be a valid IANA timezone name
//   - DigestTimeout: must be positive
//   - HealthPort: must be between 1024 and 65535
func (c *WorkerConfig) Validate() error {
	var errors []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errors = append(errors, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errors = append(errors, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.DigestTimeout); err != nil {
		errors = append(errors, fmt.Errorf("digest timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errors = append(errors, fmt.Errorf("health port: %w", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation failed: %v", errors)
	}
	return nil
}

// LoadConfigFromEnv loads worker configuration from environment variables
// with validation and automatic fallback to defaults on failure.
//
// This function is fail-open: each invalid value falls back to its
// default with a warning and a metrics increment, and the returned
// configuration is always valid. A scheduled digest must never be lost
// to a typo in an environment variable.
//
// Environment variables:
//   - DIGEST_CRON: cron expression (default: "30 5 * * *")
//   - WORKER_TIMEZONE: IANA timezone name (default: "Asia/Shanghai")
//   - DIGEST_TIMEOUT: duration string between 1m and 4h (default: 30m)
//   - WORKER_HEALTH_PORT: integer 1024-65535 (default: 9091)
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fellBack := false

	noteFallback := func(field, warning string) {
		fellBack = true
		metrics.RecordValidationError(field)
		metrics.RecordFallback(field)
		logger.Warn("configuration fallback applied",
			slog.String("field", field),
			slog.String("warning", warning))
	}

	schedule := config.String("DIGEST_CRON", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = schedule.Value
	if schedule.FellBack {
		noteFallback("digest_cron", schedule.Warning)
	}

	timezone := config.String("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = timezone.Value
	if timezone.FellBack {
		noteFallback("timezone", timezone.Warning)
	}

	timeout := config.Duration("DIGEST_TIMEOUT", cfg.DigestTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 1*time.Minute, 4*time.Hour)
	})
	cfg.DigestTimeout = timeout.Value
	if timeout.FellBack {
		noteFallback("digest_timeout", timeout.Warning)
	}

	port := config.Int("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = port.Value
	if port.FellBack {
		noteFallback("health_port", port.Warning)
	}

	metrics.SetFallbackActive(fellBack)
	metrics.RecordLoadTimestamp()

	// Always returns a valid config (fail-open strategy).
	return &cfg, nil
}
