package metrics

import (
	"time"
)

// RecordDigestRun records the outcome and duration of a full digest run.
// Status should be one of "success", "empty", or "failure".
func RecordDigestRun(status string, duration time.Duration) {
	DigestRunsTotal.WithLabelValues(status).Inc()
	DigestRunDuration.Observe(duration.Seconds())
}

// RecordJournalProcessed records the outcome of processing a single journal.
// Status should be one of "success", "empty", or "failure".
func RecordJournalProcessed(status string) {
	JournalsProcessedTotal.WithLabelValues(status).Inc()
}

// RecordArticlesFetched records the number of articles fetched from a journal feed.
func RecordArticlesFetched(journalID string, count int) {
	ArticlesFetchedTotal.WithLabelValues(journalID).Add(float64(count))
}

// RecordArticlesSelected records the number of articles kept after selection.
func RecordArticlesSelected(journalID string, count int) {
	ArticlesSelectedTotal.WithLabelValues(journalID).Add(float64(count))
}

// RecordFeedFetch records the duration of a journal feed fetch.
func RecordFeedFetch(journalID string, duration time.Duration) {
	FeedFetchDuration.WithLabelValues(journalID).Observe(duration.Seconds())
}

// RecordFeedFetchError records an error during feed fetching.
func RecordFeedFetchError(journalID string, errorType string) {
	FeedFetchErrors.WithLabelValues(journalID, errorType).Inc()
}

// RecordEnrichmentCall records the result of an enrichment API call.
// Kind should be one of "select", "summarize", or "trends".
func RecordEnrichmentCall(kind string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	EnrichmentCallsTotal.WithLabelValues(kind, status).Inc()
	EnrichmentDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordContentFetchSuccess records a successful content fetch operation.
// This tracks both the duration and size of fetched content.
func RecordContentFetchSuccess(duration time.Duration, size int) {
	ContentFetchAttemptsTotal.WithLabelValues("success").Inc()
	ContentFetchDuration.Observe(duration.Seconds())
	ContentFetchSize.Observe(float64(size))
}

// RecordContentFetchFailed records a failed content fetch operation.
func RecordContentFetchFailed(duration time.Duration) {
	ContentFetchAttemptsTotal.WithLabelValues("failure").Inc()
	ContentFetchDuration.Observe(duration.Seconds())
}

// RecordContentFetchSkipped records a skipped content fetch operation.
// This occurs when the feed abstract is long enough and fetching is unnecessary.
func RecordContentFetchSkipped() {
	ContentFetchAttemptsTotal.WithLabelValues("skipped").Inc()
}
