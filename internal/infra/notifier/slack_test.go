package notifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func testSummary() RunSummary {
	return RunSummary{
		Date:         time.Date(2026, 8, 26, 6, 0, 0, 0, time.UTC),
		JournalCount: 5,
		ArticleCount: 42,
		PagePath:     "journal_pages/index_2026-08-26.html",
	}
}

func TestSlackNotifier_buildBlockKitPayload(t *testing.T) {
	t.Run("should build valid Block Kit payload with all fields", func(t *testing.T) {
		// Arrange
		notifier := NewSlackNotifier(SlackConfig{
			Enabled:    true,
			WebhookURL: "https://hooks.slack.com/services/test",
			Timeout:    10 * time.Second,
		})

		summary := testSummary()

		// Act
		payload := notifier.buildBlockKitPayload(summary)

		// Assert
		if len(payload.Blocks) != 1 {
			t.Fatalf("expected 1 block, got %d", len(payload.Blocks))
		}

		if !strings.Contains(payload.Text, "2026-08-26") {
			t.Errorf("expected fallback text to contain date, got %q", payload.Text)
		}
		if !strings.Contains(payload.Text, "42 articles") {
			t.Errorf("expected fallback text to contain article count, got %q", payload.Text)
		}

		sectionBlock := payload.Blocks[0]
		if sectionBlock.Type != "section" {
			t.Errorf("expected block type=%q, got %q", "section", sectionBlock.Type)
		}
		if sectionBlock.Text == nil {
			t.Fatal("expected section block to have text")
		}
		if sectionBlock.Text.Type != "mrkdwn" {
			t.Errorf("expected text type=%q, got %q", "mrkdwn", sectionBlock.Text.Type)
		}
		if !strings.Contains(sectionBlock.Text.Text, summary.PagePath) {
			t.Errorf("expected section text to contain page path %q", summary.PagePath)
		}
	})

	t.Run("should add context block listing failed journals", func(t *testing.T) {
		// Arrange
		notifier := NewSlackNotifier(SlackConfig{
			Enabled:    true,
			WebhookURL: "https://hooks.slack.com/services/test",
			Timeout:    10 * time.Second,
		})

		summary := testSummary()
		summary.FailedJournals = []string{"Nature Methods", "Cell"}

		// Act
		payload := notifier.buildBlockKitPayload(summary)

		// Assert
		if len(payload.Blocks) != 2 {
			t.Fatalf("expected 2 blocks, got %d", len(payload.Blocks))
		}

		contextBlock := payload.Blocks[1]
		if contextBlock.Type != "context" {
			t.Errorf("expected block type=%q, got %q", "context", contextBlock.Type)
		}
		if len(contextBlock.Elements) != 1 {
			t.Fatalf("expected 1 context element, got %d", len(contextBlock.Elements))
		}
		if !strings.Contains(contextBlock.Elements[0].Text, "Nature Methods, Cell") {
			t.Errorf("expected context text to list failed journals, got %q", contextBlock.Elements[0].Text)
		}
	})

	t.Run("should truncate oversized section text", func(t *testing.T) {
		// Arrange
		notifier := NewSlackNotifier(SlackConfig{
			Enabled:    true,
			WebhookURL: "https://hooks.slack.com/services/test",
			Timeout:    10 * time.Second,
		})

		summary := testSummary()
		summary.PagePath = strings.Repeat("x", 5000)

		// Act
		payload := notifier.buildBlockKitPayload(summary)

		// Assert
		sectionText := payload.Blocks[0].Text.Text
		if len(sectionText) > maxSectionTextLength {
			t.Errorf("expected section text length <= %d, got %d", maxSectionTextLength, len(sectionText))
		}
		if !strings.HasSuffix(sectionText, slackTruncationSuffix) {
			t.Errorf("expected section text to end with %q", slackTruncationSuffix)
		}
	})
}

func TestSlackNotifier_NotifyRun(t *testing.T) {
	t.Run("should send webhook request with JSON payload", func(t *testing.T) {
		// Arrange
		var receivedBody []byte
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected Content-Type=application/json, got %q", ct)
			}
			receivedBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
			if _, err := w.Write([]byte("ok")); err != nil {
				t.Errorf("failed to write response: %v", err)
			}
		}))
		defer server.Close()

		notifier := NewSlackNotifier(SlackConfig{
			Enabled:    true,
			WebhookURL: server.URL,
			Timeout:    5 * time.Second,
		})

		// Act
		err := notifier.NotifyRun(context.Background(), testSummary())

		// Assert
		if err != nil {
			t.Fatalf("NotifyRun() error = %v", err)
		}

		var payload SlackWebhookPayload
		if err := json.Unmarshal(receivedBody, &payload); err != nil {
			t.Fatalf("received body is not valid JSON: %v", err)
		}
		if payload.Text == "" {
			t.Error("expected non-empty fallback text")
		}
		if len(payload.Blocks) == 0 {
			t.Error("expected at least one block")
		}
	})

	t.Run("should not retry on 4xx client error", func(t *testing.T) {
		// Arrange
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			http.Error(w, "invalid_payload", http.StatusBadRequest)
		}))
		defer server.Close()

		notifier := NewSlackNotifier(SlackConfig{
			Enabled:    true,
			WebhookURL: server.URL,
			Timeout:    5 * time.Second,
		})

		// Act
		err := notifier.NotifyRun(context.Background(), testSummary())

		// Assert
		if err == nil {
			t.Fatal("expected error for 400 response")
		}
		if got := atomic.LoadInt32(&calls); got != 1 {
			t.Errorf("expected 1 call (no retry on client error), got %d", got)
		}
	})

	t.Run("should respect Retry-After on 429", func(t *testing.T) {
		// Arrange
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "rate_limited", http.StatusTooManyRequests)
				return
			}
			w.WriteHeader(http.StatusOK)
			if _, err := w.Write([]byte("ok")); err != nil {
				t.Errorf("failed to write response: %v", err)
			}
		}))
		defer server.Close()

		notifier := NewSlackNotifier(SlackConfig{
			Enabled:    true,
			WebhookURL: server.URL,
			Timeout:    5 * time.Second,
		})

		// Act
		err := notifier.NotifyRun(context.Background(), testSummary())

		// Assert
		if err != nil {
			t.Fatalf("NotifyRun() error = %v", err)
		}
		if got := atomic.LoadInt32(&calls); got != 2 {
			t.Errorf("expected 2 calls (retry after 429), got %d", got)
		}
	})
}
