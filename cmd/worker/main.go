package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"journal-radar/internal/config"
	"journal-radar/internal/domain/entity"
	"journal-radar/internal/infra/fetcher"
	"journal-radar/internal/infra/llm"
	"journal-radar/internal/infra/notifier"
	"journal-radar/internal/infra/scraper"
	"journal-radar/internal/infra/textclean"
	workerPkg "journal-radar/internal/infra/worker"
	"journal-radar/internal/render"
	"journal-radar/internal/usecase/digest"
)

func main() {
	logger := initLogger()

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load worker configuration (fail-open strategy)
	workerMetrics := workerPkg.NewWorkerMetrics()
	workerMetrics.MustRegister()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("digest_timeout", workerConfig.DigestTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	journals, err := config.LoadJournals()
	if err != nil {
		logger.Error("failed to load journal registry", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("journal registry loaded", slog.Int("journals", len(journals)))

	digestConfig, err := config.LoadDigestConfig()
	if err != nil {
		logger.Error("failed to load digest configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("digest configuration loaded",
		slog.Int("max_items_per_journal", digestConfig.Pipeline.MaxItemsPerJournal),
		slog.Int("target_per_journal", digestConfig.Pipeline.TargetPerJournal),
		slog.Int("parallelism", digestConfig.Pipeline.Parallelism),
		slog.String("output_dir", digestConfig.OutputDir))

	svc := setupDigestService(logger, digestConfig)

	// Initialize Slack run notifications
	slackConfig := loadSlackConfig(logger)
	var runNotifier notifier.Notifier
	if slackConfig.Enabled {
		runNotifier = notifier.NewSlackNotifier(slackConfig)
		logger.Info("Slack notifications initialized", slog.String("status", "enabled"))
	} else {
		runNotifier = notifier.NewNoOpNotifier()
		logger.Info("Slack notifications disabled")
	}

	renderer := render.NewRenderer(digestConfig.OutputDir, logger)

	// Start metrics HTTP server
	startMetricsServer(ctx, logger)

	// Start health check server
	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	startCronWorker(logger, svc, renderer, runNotifier, journals, workerConfig, workerMetrics, healthServer)
}

// initLogger initializes and returns a structured logger based on environment configuration.
func initLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// setupDigestService creates and configures the digest pipeline with all dependencies.
func setupDigestService(logger *slog.Logger, digestConfig *config.DigestConfig) *digest.Service {
	completionClient := createCompletionClient(logger)

	httpClient := createHTTPClient()
	feedFetcher := scraper.NewRSSFetcher(httpClient)

	// Load content fetch configuration from environment
	contentFetchConfig, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		logger.Error("Failed to load content fetch configuration",
			slog.Any("error", err))
		logger.Warn("Content fetching disabled due to configuration error")
		contentFetchConfig = fetcher.DefaultConfig()
		contentFetchConfig.Enabled = false
	}

	// Create ContentFetcher if enabled
	var contentFetcher digest.ContentFetcher
	if contentFetchConfig.Enabled {
		contentFetcher = fetcher.NewReadabilityFetcher(contentFetchConfig)
		logger.Info("Content fetching enabled",
			slog.Int("threshold", contentFetchConfig.Threshold),
			slog.Duration("timeout", contentFetchConfig.Timeout))
	} else {
		logger.Info("Content fetching disabled")
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

// createCompletionClient builds the configured model client for article
// selection, summarization, and trend synthesis. A missing API key is not
// fatal: the pipeline runs in degraded mode with placeholder summaries.
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
		logger.Info("Using Claude API for enrichment", slog.String("provider", enrichment.Provider))
		return llm.NewClaude(enrichment.APIKey, llm.DefaultClaudeConfig())
	default:
		logger.Info("Using DeepSeek API for enrichment", slog.String("provider", enrichment.Provider))
		return llm.NewDeepSeek(enrichment.APIKey, llm.DefaultDeepSeekConfig())
	}
}

// createHTTPClient creates an HTTP client with timeouts and connection pooling.
// TLS 1.2+ is enforced for security.
func createHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12, // Enforce TLS 1.2+
			},
		},
	}
}

// loadSlackConfig loads Slack configuration from environment variables.
//
// Environment variables:
//   - SLACK_ENABLED: Boolean flag to enable Slack notifications (default: false)
//   - SLACK_WEBHOOK_URL: Slack webhook URL (required if enabled)
//
// Returns:
//   - notifier.SlackConfig: Configuration with validation applied
func loadSlackConfig(logger *slog.Logger) notifier.SlackConfig {
	enabled := os.Getenv("SLACK_ENABLED") == "true"
	webhookURL := os.Getenv("SLACK_WEBHOOK_URL")

	if !enabled {
		return notifier.SlackConfig{Enabled: false}
	}

	// Validate webhook URL format
	if webhookURL == "" {
		logger.Warn("Slack webhook URL is empty, disabling notifications")
		return notifier.SlackConfig{Enabled: false}
	}

	u, err := url.Parse(webhookURL)
	if err != nil {
		logger.Warn("Invalid Slack webhook URL format, disabling notifications", slog.Any("error", err))
		return notifier.SlackConfig{Enabled: false}
	}

	if u.Scheme != "https" {
		logger.Warn("Slack webhook URL must use HTTPS, disabling notifications")
		return notifier.SlackConfig{Enabled: false}
	}

	if u.Host != "hooks.slack.com" {
		logger.Warn("Invalid Slack webhook host, disabling notifications", slog.String("host", u.Host))
		return notifier.SlackConfig{Enabled: false}
	}

	if !strings.HasPrefix(u.Path, "/services/") {
		logger.Warn("Invalid Slack webhook path, disabling notifications", slog.String("path", u.Path))
		return notifier.SlackConfig{Enabled: false}
	}

	return notifier.SlackConfig{
		Enabled:    true,
		WebhookURL: webhookURL,
		Timeout:    30 * time.Second,
	}
}

// startCronWorker starts the cron scheduler and runs the digest job periodically.
func startCronWorker(logger *slog.Logger, svc *digest.Service, renderer *render.Renderer, runNotifier notifier.Notifier, journals []entity.Journal, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics, healthServer *workerPkg.HealthServer) {
	// Load timezone
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runDigestJob(logger, svc, renderer, runNotifier, journals, cfg, metrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	// Mark as ready after cron is set up
	healthServer.SetReady(true)
	logger.Info("worker marked as ready")

	logger.Info("worker started", slog.String("schedule", cfg.CronSchedule), slog.String("timezone", cfg.Timezone))
	select {}
}

// runDigestJob executes a single digest job with timeout and error handling.
func runDigestJob(logger *slog.Logger, svc *digest.Service, renderer *render.Renderer, runNotifier notifier.Notifier, journals []entity.Journal, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics) {
	startTime := time.Now()
	metrics.RecordJobRun("started")
	logger.Info("digest job started")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DigestTimeout)
	defer cancel()

	result, err := svc.Run(ctx, journals)
	if err != nil {
		metrics.RecordJobDuration(time.Since(startTime).Seconds())
		if errors.Is(err, digest.ErrEmptyDigest) {
			logger.Warn("digest produced no articles, skipping page render",
				slog.Any("failed_journals", result.Failed))
			metrics.RecordJobRun("empty")
			return
		}
		logger.Error("digest job failed", slog.Any("error", err))
		metrics.RecordJobRun("failure")
		return
	}

	pagePath, err := renderer.RenderDaily(result)
	if err != nil {
		logger.Error("failed to render digest page", slog.Any("error", err))
		metrics.RecordJobRun("failure")
		metrics.RecordJobDuration(time.Since(startTime).Seconds())
		return
	}

	metrics.RecordJobRun("success")
	metrics.RecordJobDuration(time.Since(startTime).Seconds())
	metrics.RecordArticlesPublished(len(result.Articles))
	metrics.RecordLastSuccess()

	summary := notifier.RunSummary{
		Date:           startTime,
		JournalCount:   countJournals(result.Articles),
		ArticleCount:   len(result.Articles),
		FailedJournals: result.Failed,
		PagePath:       pagePath,
	}
	if err := runNotifier.NotifyRun(ctx, summary); err != nil {
		logger.Error("run notification failed", slog.Any("error", err))
	}

	logger.Info("digest job completed",
		slog.Int("journals", summary.JournalCount),
		slog.Int("articles", summary.ArticleCount),
		slog.Int("failed_journals", len(summary.FailedJournals)),
		slog.String("page", pagePath),
		slog.Duration("duration", time.Since(startTime)),
	)
}

// countJournals returns how many distinct journals the articles span.
func countJournals(articles []*entity.Article) int {
	seen := make(map[string]struct{}, len(articles))
	for _, a := range articles {
		seen[a.Journal] = struct{}{}
	}
	return len(seen)
}
