// Package llm provides text-completion clients for article enrichment.
// It includes adapters for DeepSeek (OpenAI-compatible) and Claude (Anthropic)
// APIs with circuit breaker protection and client-side rate limiting.
package llm

import (
	"context"
	"errors"
)

// Request describes a single completion request.
type Request struct {
	// Prompt is the full user prompt sent to the model.
	Prompt string

	// Temperature controls sampling randomness. Callers pick lower values
	// for structured output and higher values for free-form synthesis.
	Temperature float64
}

// Client generates a text completion for a request.
// Implementations must be safe for concurrent use.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// ErrEmptyResponse is returned when the model answers with no usable text.
var ErrEmptyResponse = errors.New("model returned empty response")
