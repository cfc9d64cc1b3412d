// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - Digest run metrics (outcome, duration)
//   - Feed fetch metrics (articles, errors, duration)
//   - Enrichment API metrics (calls, duration)
//   - Content fetch metrics (attempts, size)
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "journal-radar/internal/observability/metrics"
//
//	func processJournal(journalID string) {
//	    start := time.Now()
//	    // ... fetch and select articles ...
//	    count := 10
//
//	    metrics.RecordArticlesFetched(journalID, count)
//	    metrics.RecordFeedFetch(journalID, time.Since(start))
//	}
package metrics
