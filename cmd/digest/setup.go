package main

import (
	"crypto/tls"
	"log/slog"
	"net/http"
	"os"
	"time"

	"journal-radar/internal/config"
	"journal-radar/internal/infra/fetcher"
	"journal-radar/internal/infra/llm"
	"journal-radar/internal/infra/scraper"
	"journal-radar/internal/infra/textclean"
	"journal-radar/internal/usecase/digest"
)

// initLogger initializes a structured logger writing to stderr so that
// command output on stdout stays clean.
func initLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// setupDigestService wires the digest pipeline the same way the worker does.
func setupDigestService(logger *slog.Logger, digestConfig *config.DigestConfig) *digest.Service {
	completionClient := createCompletionClient(logger)

	httpClient := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
	feedFetcher := scraper.NewRSSFetcher(httpClient)

	contentFetchConfig, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		logger.Warn("content fetching disabled due to configuration error", slog.Any("error", err))
		contentFetchConfig = fetcher.DefaultConfig()
		contentFetchConfig.Enabled = false
	}

	var contentFetcher digest.ContentFetcher
	if contentFetchConfig.Enabled {
		contentFetcher = fetcher.NewReadabilityFetcher(contentFetchConfig)
	} else {
		digestConfig.Pipeline.AbstractThreshold = 0
	}

	return digest.NewService(
		feedFetcher,
		textclean.Strip,
		contentFetcher,
		digest.NewSelector(completionClient, logger),
		digest.NewSummarizer(completionClient, logger),
		digest.NewTrendSynthesizer(completionClient, logger),
		digestConfig.Pipeline,
		logger,
	)
}

// createCompletionClient builds the configured model client. A missing API
// key is not fatal: the run degrades to placeholder summaries.
func createCompletionClient(logger *slog.Logger) llm.Client {
	enrichment, err := config.LoadEnrichmentConfig()
	if err != nil {
		logger.Error("invalid enrichment configuration", slog.Any("error", err))
		os.Exit(1)
	}

	if !enrichment.Configured() {
		logger.Warn("no model API key configured, running in degraded mode",
			slog.String("provider", enrichment.Provider))
		return nil
	}

	switch enrichment.Provider {
	case config.ProviderClaude:
		return llm.NewClaude(enrichment.APIKey, llm.DefaultClaudeConfig())
	default:
		return llm.NewDeepSeek(enrichment.APIKey, llm.DefaultDeepSeekConfig())
	}
}
