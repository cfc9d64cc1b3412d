// Package notifier provides abstraction for announcing completed digest runs.
// It defines the Notifier interface which allows different notification
// mechanisms (Slack, email, etc.) to be used interchangeably through
// dependency injection.
//
// The package includes a Slack webhook implementation and a no-op notifier
// for when notifications are disabled.
package notifier

import (
	"context"
	"time"
)

// RunSummary describes the outcome of a completed digest run.
type RunSummary struct {
	// Date is the run date the digest page was generated for.
	Date time.Time

	// JournalCount is the number of journals that produced articles.
	JournalCount int

	// ArticleCount is the total number of articles in the digest.
	ArticleCount int

	// FailedJournals lists journals that produced no result due to errors.
	FailedJournals []string

	// PagePath is the filesystem path of the rendered digest page.
	PagePath string
}

// Notifier is an interface for announcing digest run completion.
// Implementations should handle rate limiting, retries, and error logging internally.
type Notifier interface {
	// NotifyRun sends a notification about a completed digest run.
	//
	// Implementations should:
	//   - Generate a unique request ID for tracing
	//   - Apply rate limiting to prevent API abuse
	//   - Retry transient failures with backoff
	//   - Respect context cancellation
	NotifyRun(ctx context.Context, summary RunSummary) error
}
