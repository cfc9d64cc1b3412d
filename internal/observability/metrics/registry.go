// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Digest metrics track whole-run outcomes
var (
	// DigestRunsTotal counts digest runs by outcome
	DigestRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digest_runs_total",
			Help: "Total number of digest runs",
		},
		[]string{"status"}, // status: success, empty, failure
	)

	// DigestRunDuration measures the duration of a full digest run
	DigestRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "digest_run_duration_seconds",
			Help:    "Time taken for a full digest run",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	// JournalsProcessedTotal counts processed journals by outcome
	JournalsProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journals_processed_total",
			Help: "Total number of journals processed",
		},
		[]string{"status"}, // status: success, empty, failure
	)
)

// Feed metrics track RSS fetching performance
var (
	// ArticlesFetchedTotal counts articles fetched from each journal feed
	ArticlesFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_fetched_total",
			Help: "Total number of articles fetched from journal feeds",
		},
		[]string{"journal_id"},
	)

	// ArticlesSelectedTotal counts articles kept after relevance selection
	ArticlesSelectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_selected_total",
			Help: "Total number of articles kept after relevance selection",
		},
		[]string{"journal_id"},
	)

	// FeedFetchDuration measures time to fetch a journal feed
	FeedFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_fetch_duration_seconds",
			Help:    "Time taken to fetch a journal feed",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"journal_id"},
	)

	// FeedFetchErrors counts errors during feed fetching
	FeedFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_fetch_errors_total",
			Help: "Total number of feed fetch errors",
		},
		[]string{"journal_id", "error_type"},
	)
)

// Enrichment metrics track model API usage
var (
	// EnrichmentCallsTotal counts enrichment API calls by kind and status
	EnrichmentCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_calls_total",
			Help: "Total number of enrichment API calls",
		},
		[]string{"kind", "status"}, // kind: select, summarize, trends
	)

	// EnrichmentDuration measures time per enrichment call by kind
	EnrichmentDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "enrichment_duration_seconds",
			Help:    "Time taken per enrichment API call",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
		[]string{"kind"},
	)
)

// Content fetch metrics track abstract enhancement from publisher pages
var (
	// ContentFetchAttemptsTotal counts content fetch attempts by result
	ContentFetchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_fetch_attempts_total",
			Help: "Total number of content fetch attempts",
		},
		[]string{"result"}, // result: success, failure, skipped
	)

	// ContentFetchDuration measures time to fetch an article page
	ContentFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "content_fetch_duration_seconds",
			Help:    "Time taken to fetch article content",
			Buckets: []float64{0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8},
		},
	)

	// ContentFetchSize measures fetched content size in bytes
	ContentFetchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "content_fetch_size_bytes",
			Help: "Fetched article content size in bytes",
			Buckets: []float64{
				100, 200, 400, 800, 1600, 3200, 6400, 12800,
				25600, 51200, 102400, 204800, 409600, 819200,
				1638400, 3276800, 6553600, 10485760, // up to 10MB
			},
		},
	)
)
