// Package main provides a CLI command for running a single digest cycle.
// Usage: journal-radar-digest [--output DIR] [--timeout 30m]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"journal-radar/internal/config"
	"journal-radar/internal/render"
	"journal-radar/internal/usecase/digest"
)

func main() {
	// Parse command-line arguments
	var (
		outputDir string
		timeout   time.Duration
	)

	flag.StringVar(&outputDir, "output", "", "Directory for rendered pages (overrides JOURNAL_OUTPUT_DIR)")
	flag.DurationVar(&timeout, "timeout", 30*time.Minute, "Maximum duration for the whole run")
	flag.Parse()

	if timeout <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --timeout must be positive")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: journal-radar-digest [--output DIR] [--timeout 30m]")
		os.Exit(1)
	}

	logger := initLogger()

	journals, err := config.LoadJournals()
	if err != nil {
		logger.Error("failed to load journal registry", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Failed to load journal registry: %v\n", err)
		os.Exit(1)
	}

	digestConfig, err := config.LoadDigestConfig()
	if err != nil {
		logger.Error("failed to load digest configuration", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Failed to load digest configuration: %v\n", err)
		os.Exit(1)
	}
	if outputDir != "" {
		digestConfig.OutputDir = outputDir
	}

	svc := setupDigestService(logger, digestConfig)
	renderer := render.NewRenderer(digestConfig.OutputDir, logger)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	result, err := svc.Run(ctx, journals)
	if err != nil {
		if errors.Is(err, digest.ErrEmptyDigest) {
			logger.Warn("digest produced no articles, nothing to render",
				slog.Any("failed_journals", result.Failed))
			fmt.Fprintln(os.Stderr, "Error: No articles collected from any journal")
			os.Exit(1)
		}
		logger.Error("digest run failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Digest run failed: %v\n", err)
		os.Exit(1)
	}

	pagePath, err := renderer.RenderDaily(result)
	if err != nil {
		logger.Error("failed to render digest page", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Failed to render digest page: %v\n", err)
		os.Exit(1)
	}

	logger.Info("digest run completed",
		slog.Int("articles", len(result.Articles)),
		slog.Int("failed_journals", len(result.Failed)),
		slog.String("page", pagePath),
		slog.Duration("duration", time.Since(start)))

	fmt.Printf("Wrote %s (%d articles", pagePath, len(result.Articles))
	if len(result.Failed) > 0 {
		fmt.Printf(", %d journals failed", len(result.Failed))
	}
	fmt.Println(")")
}
