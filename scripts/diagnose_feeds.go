// Command diagnose_feeds checks every journal feed in the registry and
// reports reachability, item counts, and staleness. Useful when a journal
// silently stops contributing articles to the daily digest.
//
// Usage: go run scripts/diagnose_feeds.go [-json report.json]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/mmcdole/gofeed"

	"journal-radar/internal/config"
)

// FeedDiagnostic represents the diagnostic result for a single feed
type FeedDiagnostic struct {
	Name         string `json:"name"`
	ID           string `json:"id"`
	URL          string `json:"url"`
	Status       string `json:"status"` // "OK", "ERROR", "EMPTY", "STALE", "TIMEOUT"
	ItemCount    int    `json:"item_count"`
	LatestDate   string `json:"latest_date,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	ResponseTime int64  `json:"response_time_ms"`
}

// staleAfter flags feeds whose newest entry is older than this.
const staleAfter = 30 * 24 * time.Hour

func main() {
	jsonPath := flag.String("json", "", "Also write the report as JSON to this path")
	timeout := flag.Duration("timeout", 30*time.Second, "Per-feed fetch timeout")
	flag.Parse()

	journals, err := config.LoadJournals()
	if err != nil {
		log.Fatalf("Failed to load journal registry: %v", err)
	}

	log.Printf("Diagnosing %d journal feeds...\n", len(journals))

	diagnostics := make([]FeedDiagnostic, 0, len(journals))
	for i, journal := range journals {
		log.Printf("[%d/%d] Diagnosing: %s", i+1, len(journals), journal.Name)
		diag := diagnoseFeed(journal.Name, journal.ID, journal.FeedURL, *timeout)
		diagnostics = append(diagnostics, diag)

		// Rate limiting to be nice to servers
		time.Sleep(500 * time.Millisecond)
	}

	printReport(diagnostics)

	if *jsonPath != "" {
		if err := writeJSONReport(diagnostics, *jsonPath); err != nil {
			log.Fatalf("Failed to write JSON report: %v", err)
		}
		log.Printf("JSON report written to %s", *jsonPath)
	}
}

func diagnoseFeed(name, id, url string, timeout time.Duration) FeedDiagnostic {
	diag := FeedDiagnostic{
		Name: name,
		ID:   id,
		URL:  url,
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}

	start := time.Now()
	feed, err := parser.ParseURLWithContext(url, ctx)
	diag.ResponseTime = time.Since(start).Milliseconds()

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			diag.Status = "TIMEOUT"
			diag.ErrorMessage = fmt.Sprintf("fetch timeout after %v", timeout)
		} else {
			diag.Status = "ERROR"
			diag.ErrorMessage = err.Error()
		}
		return diag
	}

	diag.ItemCount = len(feed.Items)
	if diag.ItemCount == 0 {
		diag.Status = "EMPTY"
		return diag
	}

	latest := latestPublished(feed)
	if !latest.IsZero() {
		diag.LatestDate = latest.Format("2006-01-02")
		if time.Since(latest) > staleAfter {
			diag.Status = "STALE"
			return diag
		}
	}

	diag.Status = "OK"
	return diag
}

// latestPublished returns the newest publish timestamp across feed items.
// Items without a parsed date are ignored.
func latestPublished(feed *gofeed.Feed) time.Time {
	var latest time.Time
	for _, item := range feed.Items {
		ts := item.PublishedParsed
		if ts == nil {
			ts = item.UpdatedParsed
		}
		if ts != nil && ts.After(latest) {
			latest = *ts
		}
	}
	return latest
}

func printReport(diagnostics []FeedDiagnostic) {
	sorted := make([]FeedDiagnostic, len(diagnostics))
	copy(sorted, diagnostics)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Status != sorted[j].Status {
			return sorted[i].Status < sorted[j].Status
		}
		return sorted[i].Name < sorted[j].Name
	})

	counts := make(map[string]int)
	fmt.Println()
	fmt.Println("=== Feed Diagnostic Report ===")
	for _, d := range sorted {
		counts[d.Status]++
		line := fmt.Sprintf("%-8s %-40s items=%-3d %4dms", d.Status, d.Name, d.ItemCount, d.ResponseTime)
		if d.LatestDate != "" {
			line += " latest=" + d.LatestDate
		}
		if d.ErrorMessage != "" {
			line += " error=" + d.ErrorMessage
		}
		fmt.Println(line)
	}

	fmt.Println()
	fmt.Printf("Total: %d feeds", len(diagnostics))
	for _, status := range []string{"OK", "STALE", "EMPTY", "TIMEOUT", "ERROR"} {
		if counts[status] > 0 {
			fmt.Printf(", %s=%d", status, counts[status])
		}
	}
	fmt.Println()
}

func writeJSONReport(diagnostics []FeedDiagnostic, path string) error {
	data, err := json.MarshalIndent(diagnostics, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
