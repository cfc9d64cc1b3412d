package worker

import (
	"journal-radar/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WorkerMetrics provides Prometheus metrics for the digest worker.
// It embeds the standard ConfigMetrics for configuration monitoring and
// adds metrics for scheduled digest job execution.
//
// Embedded metrics (from ConfigMetrics):
//   - worker_config_load_timestamp: Unix timestamp of last configuration load
//   - worker_config_validation_errors_total: Total validation errors by field
//   - worker_config_fallbacks_total: Total fallback operations by field
//   - worker_config_fallback_active: 1 if any fallback active, 0 otherwise
//
// Worker-specific metrics:
//   - worker_digest_job_runs_total: Total digest job runs by status
//   - worker_digest_job_duration_seconds: Duration histogram of digest runs
//   - worker_digest_job_articles_total: Total articles published per run
//   - worker_digest_job_last_success_timestamp: Unix timestamp of last success
type WorkerMetrics struct {
	*config.ConfigMetrics

	// DigestJobRunsTotal counts digest job runs.
	// Labels: status (started, success, empty, failure)
	DigestJobRunsTotal *prometheus.CounterVec

	// DigestJobDurationSeconds measures end-to-end digest run duration.
	// Buckets cover the expected range from a warm cache run to a run that
	// hits every feed's retry budget.
	DigestJobDurationSeconds prometheus.Histogram

	// DigestJobArticlesTotal counts articles published across all runs.
	DigestJobArticlesTotal prometheus.Counter

	// DigestJobLastSuccessTimestamp records when the last run succeeded.
	// Alerting on staleness of this gauge catches silently stuck schedules.
	DigestJobLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates a WorkerMetrics instance. Metrics are
// registered with the default registry via promauto on creation.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		DigestJobRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_digest_job_runs_total",
			Help: "Total number of digest job runs by status (started/success/empty/failure)",
		}, []string{"status"}),

		DigestJobDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_digest_job_duration_seconds",
			Help:    "Duration of digest job execution in seconds",
			Buckets: []float64{5, 30, 60, 300, 600, 1200, 1800}, // 5s to 30m
		}),

		DigestJobArticlesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_digest_job_articles_total",
			Help: "Total number of articles published across all digest runs",
		}),

		DigestJobLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_digest_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful digest run",
		}),
	}
}

// MustRegister is a no-op kept for API symmetry; promauto already
// registered everything in NewWorkerMetrics.
func (m *WorkerMetrics) MustRegister() {}

// RecordJobRun increments the job run counter for the given status.
// Status is one of "started", "success", "empty" or "failure".
func (m *WorkerMetrics) RecordJobRun(status string) {
	m.DigestJobRunsTotal.WithLabelValues(status).Inc()
}

// RecordJobDuration observes the duration of a digest run in seconds.
func (m *WorkerMetrics) RecordJobDuration(seconds float64) {
	m.DigestJobDurationSeconds.Observe(seconds)
}

// RecordArticlesPublished adds the number of articles a run published.
func (m *WorkerMetrics) RecordArticlesPublished(count int) {
	m.DigestJobArticlesTotal.Add(float64(count))
}

// RecordLastSuccess records the current time as the last successful run.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.DigestJobLastSuccessTimestamp.SetToCurrentTime()
}
