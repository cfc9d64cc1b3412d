package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"journal-radar/internal/resilience/circuitbreaker"
)

// ClaudeConfig holds configuration for the Claude completion client.
type ClaudeConfig struct {
	// Model is the Claude API model identifier.
	Model string

	// MaxTokens is the maximum number of tokens for the API response.
	MaxTokens int

	// Timeout is the maximum duration for a single API call.
	Timeout time.Duration

	// RequestsPerSecond caps the client-side request rate.
	RequestsPerSecond float64
}

// DefaultClaudeConfig returns the default Claude client configuration.
func DefaultClaudeConfig() ClaudeConfig {
	return ClaudeConfig{
		Model:             "claude-sonnet-4-5-20250929",
		MaxTokens:         4096,
		Timeout:           60 * time.Second,
		RequestsPerSecond: 1.0,
	}
}

// Claude implements Client using Anthropic's Claude API.
// It includes circuit breaker protection and client-side rate limiting.
// Retry policy is owned by callers since fallback behavior differs per use.
type Claude struct {
	client         anthropic.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	limiter        *rate.Limiter
	config         ClaudeConfig
}

// NewClaude creates a new Claude completion client with the given API key.
func NewClaude(apiKey string, cfg ClaudeConfig) *Claude {
	slog.Info("initialized claude completion client",
		slog.String("model", cfg.Model),
		slog.Int("max_tokens", cfg.MaxTokens))

	return &Claude{
		client:         anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker: circuitbreaker.New(circuitbreaker.EnrichmentConfig()),
		limiter:        rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		config:         cfg,
	}
}

// Complete generates a completion for the request using Claude.
func (c *Claude) Complete(ctx context.Context, req Request) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("claude rate limiter: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	result, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return c.doComplete(callCtx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("claude api circuit breaker open, request rejected",
				slog.String("state", c.circuitBreaker.State().String()))
			return "", fmt.Errorf("claude api unavailable: %w", err)
		}
		return "", classifyErr(ctx, err, c.config.Timeout)
	}

	return result.(string), nil
}

// doComplete performs the actual API call without circuit breaker protection.
func (c *Claude) doComplete(ctx context.Context, req Request) (string, error) {
	requestID := uuid.New().String()

	slog.InfoContext(ctx, "starting completion",
		slog.String("request_id", requestID),
		slog.Int("prompt_length", len(req.Prompt)),
		slog.Float64("temperature", req.Temperature))

	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.config.Model),
		MaxTokens:   int64(c.config.MaxTokens),
		Temperature: anthropic.Float(req.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(req.Prompt),
			),
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "completion failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		slog.ErrorContext(ctx, "claude api returned empty response",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return "", ErrEmptyResponse
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", fmt.Errorf("claude api returned unexpected response type")
	}

	slog.InfoContext(ctx, "completion finished",
		slog.String("request_id", requestID),
		slog.Int("response_length", len(textBlock.Text)),
		slog.Duration("duration", duration))

	return textBlock.Text, nil
}
