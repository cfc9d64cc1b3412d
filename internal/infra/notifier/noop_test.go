package notifier

import (
	"context"
	"testing"
	"time"
)

func TestNoOpNotifier_NotifyRun(t *testing.T) {
	t.Run("should return nil without error", func(t *testing.T) {
		// Arrange
		notifier := NewNoOpNotifier()
		ctx := context.Background()

		summary := RunSummary{
			Date:         time.Now(),
			JournalCount: 3,
			ArticleCount: 42,
			PagePath:     "journal_pages/index_2026-08-26.html",
		}

		// Act
		err := notifier.NotifyRun(ctx, summary)

		// Assert
		if err != nil {
			t.Errorf("expected nil error, got %v", err)
		}
	})

	t.Run("should ignore canceled context", func(t *testing.T) {
		// Arrange
		notifier := NewNoOpNotifier()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// Act
		err := notifier.NotifyRun(ctx, RunSummary{})

		// Assert
		if err != nil {
			t.Errorf("expected nil error, got %v", err)
		}
	})
}
