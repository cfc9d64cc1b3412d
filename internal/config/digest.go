package config

import (
	"fmt"

	"journal-radar/internal/usecase/digest"
	pkgconfig "journal-radar/pkg/config"
)

// DigestConfig carries the pipeline tunables plus the output location for
// rendered pages.
//
// Environment variables:
//   - MAX_ITEMS_PER_JOURNAL: feed entries considered per journal (default 50)
//   - TARGET_ARTICLES_PER_JOURNAL: articles selected per journal (default 15)
//   - DIGEST_MAX_WORKERS: concurrent journals (default 5)
//   - ABSTRACT_FETCH_THRESHOLD: abstracts shorter than this trigger a
//     full-page fetch (default 200, 0 disables)
//   - MAX_RETRIES: attempts per enrichment call (default 3)
//   - JOURNAL_OUTPUT_DIR: directory for rendered HTML pages (default "site")
type DigestConfig struct {
	Pipeline  digest.Config
	OutputDir string
}

// LoadDigestConfig reads pipeline tunables from the environment. Invalid
// values fall back to defaults with a warning; out-of-range values that
// would break the run are rejected.
func LoadDigestConfig() (*DigestConfig, error) {
	defaults := digest.DefaultConfig()
	cfg := &DigestConfig{
		Pipeline: digest.Config{
			MaxItemsPerJournal: pkgconfig.GetEnvInt("MAX_ITEMS_PER_JOURNAL", defaults.MaxItemsPerJournal),
			TargetPerJournal:   pkgconfig.GetEnvInt("TARGET_ARTICLES_PER_JOURNAL", defaults.TargetPerJournal),
			Parallelism:        pkgconfig.GetEnvInt("DIGEST_MAX_WORKERS", defaults.Parallelism),
			AbstractThreshold:  pkgconfig.GetEnvInt("ABSTRACT_FETCH_THRESHOLD", defaults.AbstractThreshold),
			MaxRetries:         pkgconfig.GetEnvInt("MAX_RETRIES", defaults.MaxRetries),
		},
		OutputDir: pkgconfig.GetEnvString("JOURNAL_OUTPUT_DIR", "site"),
	}

	if cfg.Pipeline.MaxItemsPerJournal <= 0 {
		return nil, fmt.Errorf("MAX_ITEMS_PER_JOURNAL must be positive, got %d", cfg.Pipeline.MaxItemsPerJournal)
	}
	if cfg.Pipeline.TargetPerJournal <= 0 {
		return nil, fmt.Errorf("TARGET_ARTICLES_PER_JOURNAL must be positive, got %d", cfg.Pipeline.TargetPerJournal)
	}
	if cfg.Pipeline.Parallelism <= 0 {
		return nil, fmt.Errorf("DIGEST_MAX_WORKERS must be positive, got %d", cfg.Pipeline.Parallelism)
	}
	if cfg.Pipeline.AbstractThreshold < 0 {
		return nil, fmt.Errorf("ABSTRACT_FETCH_THRESHOLD must not be negative, got %d", cfg.Pipeline.AbstractThreshold)
	}
	if cfg.Pipeline.MaxRetries <= 0 {
		return nil, fmt.Errorf("MAX_RETRIES must be positive, got %d", cfg.Pipeline.MaxRetries)
	}
	if cfg.OutputDir == "" {
		return nil, fmt.Errorf("JOURNAL_OUTPUT_DIR cannot be empty")
	}
	return cfg, nil
}
