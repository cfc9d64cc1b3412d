// Package fetcher retrieves article pages and extracts readable text.
// It backs the abstract enhancement step for feeds that truncate abstracts.
package fetcher

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"journal-radar/internal/resilience/circuitbreaker"
	"journal-radar/internal/resilience/retry"

	"github.com/go-shiori/go-readability"
)

// Sentinel errors for content fetching failures.
var (
	// ErrInvalidURL indicates the article URL could not be used for a request.
	ErrInvalidURL = errors.New("invalid article url")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("content fetch timed out")

	// ErrBodyTooLarge indicates the response exceeded the size limit.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrReadabilityFailed indicates no readable content could be extracted.
	ErrReadabilityFailed = errors.New("readability extraction failed")
)

// ReadabilityFetcher fetches article pages and extracts clean text using
// the go-shiori/go-readability port of Mozilla Readability.
//
// Thread safety: ReadabilityFetcher is safe for concurrent use.
type ReadabilityFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	config         ContentFetchConfig
}

// NewReadabilityFetcher creates a new ReadabilityFetcher with the given configuration.
func NewReadabilityFetcher(config ContentFetchConfig) *ReadabilityFetcher {
	return &ReadabilityFetcher{
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
				},
			},
		},
		circuitBreaker: circuitbreaker.New(circuitbreaker.ContentFetchConfig()),
		retryConfig:    retry.ContentFetchConfig(),
		config:         config,
	}
}

// FetchContent fetches the article page at the given URL and extracts
// readable text. Transient failures such as 5xx responses are retried
// with backoff, and every attempt runs through a circuit breaker so a
// publisher outage cannot stall every article of a run. Permanent
// failures (bad URL, 404, oversized body, unreadable page, timeout)
// abort after the first attempt.
func (f *ReadabilityFetcher) FetchContent(ctx context.Context, urlStr string) (string, error) {
	var content string

	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		result, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, urlStr)
		})
		if err != nil {
			return err
		}

		content = result.(string)
		return nil
	})
	if retryErr != nil {
		return "", retryErr
	}

	return content, nil
}

// doFetch performs the actual HTTP request and content extraction.
func (f *ReadabilityFetcher) doFetch(ctx context.Context, urlStr string) (interface{}, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	req.Header.Set("User-Agent", "JournalRadarBot/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		if reqCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w: request exceeded %v", ErrTimeout, f.config.Timeout)
		}
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", &retry.HTTPError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	// Size limit enforced while reading, not via Content-Length.
	limitedReader := io.LimitReader(resp.Body, f.config.MaxBodySize+1)
	htmlBytes, err := io.ReadAll(limitedReader)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if int64(len(htmlBytes)) > f.config.MaxBodySize {
		return "", fmt.Errorf("%w: response size %d bytes exceeds limit %d bytes",
			ErrBodyTooLarge, len(htmlBytes), f.config.MaxBodySize)
	}

	// Redirects may have changed the final URL.
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		parsedURL = nil
	}
	if resp.Request != nil && resp.Request.URL != nil {
		parsedURL = resp.Request.URL
	}

	article, err := readability.FromReader(bytes.NewReader(htmlBytes), parsedURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadabilityFailed, err)
	}

	if article.TextContent == "" {
		return "", fmt.Errorf("%w: no readable content found", ErrReadabilityFailed)
	}

	return article.TextContent, nil
}
