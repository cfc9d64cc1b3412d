package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"journal-radar/internal/resilience/circuitbreaker"
)

// DeepSeekConfig holds configuration for the DeepSeek completion client.
// DeepSeek exposes an OpenAI-compatible API, so the client is built on the
// go-openai SDK with a custom base URL.
type DeepSeekConfig struct {
	// BaseURL is the API endpoint.
	BaseURL string

	// Model is the model identifier.
	Model string

	// MaxTokens is the maximum number of tokens for the API response.
	MaxTokens int

	// Timeout is the maximum duration for a single API call.
	Timeout time.Duration

	// RequestsPerSecond caps the client-side request rate.
	RequestsPerSecond float64
}

// DefaultDeepSeekConfig returns the default DeepSeek client configuration.
func DefaultDeepSeekConfig() DeepSeekConfig {
	return DeepSeekConfig{
		BaseURL:           "https://api.deepseek.com",
		Model:             "deepseek-chat",
		MaxTokens:         4096,
		Timeout:           60 * time.Second,
		RequestsPerSecond: 1.0,
	}
}

// DeepSeek implements Client using the DeepSeek chat completion API.
// It includes circuit breaker protection and client-side rate limiting.
// Retry policy is owned by callers since fallback behavior differs per use.
type DeepSeek struct {
	client         *openai.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	limiter        *rate.Limiter
	config         DeepSeekConfig
}

// NewDeepSeek creates a new DeepSeek completion client with the given API key.
func NewDeepSeek(apiKey string, cfg DeepSeekConfig) *DeepSeek {
	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.BaseURL = cfg.BaseURL

	slog.Info("initialized deepseek completion client",
		slog.String("base_url", cfg.BaseURL),
		slog.String("model", cfg.Model),
		slog.Int("max_tokens", cfg.MaxTokens))

	return &DeepSeek{
		client:         openai.NewClientWithConfig(clientConfig),
		circuitBreaker: circuitbreaker.New(circuitbreaker.EnrichmentConfig()),
		limiter:        rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		config:         cfg,
	}
}

// Complete generates a completion for the request using DeepSeek.
func (d *DeepSeek) Complete(ctx context.Context, req Request) (string, error) {
	if err := d.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("deepseek rate limiter: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, d.config.Timeout)
	defer cancel()

	result, err := d.circuitBreaker.Execute(func() (interface{}, error) {
		return d.doComplete(callCtx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("deepseek api circuit breaker open, request rejected",
				slog.String("state", d.circuitBreaker.State().String()))
			return "", fmt.Errorf("deepseek api unavailable: %w", err)
		}
		return "", classifyErr(ctx, err, d.config.Timeout)
	}

	return result.(string), nil
}

// doComplete performs the actual API call without circuit breaker protection.
func (d *DeepSeek) doComplete(ctx context.Context, req Request) (string, error) {
	requestID := uuid.New().String()

	slog.InfoContext(ctx, "starting completion",
		slog.String("request_id", requestID),
		slog.Int("prompt_length", len(req.Prompt)),
		slog.Float64("temperature", req.Temperature))

	start := time.Now()

	resp, err := d.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       d.config.Model,
		MaxTokens:   d.config.MaxTokens,
		Temperature: float32(req.Temperature),
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a helpful assistant",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Prompt,
			},
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "completion failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("deepseek api error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		slog.ErrorContext(ctx, "deepseek api returned empty response",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return "", ErrEmptyResponse
	}

	content := resp.Choices[0].Message.Content

	slog.InfoContext(ctx, "completion finished",
		slog.String("request_id", requestID),
		slog.Int("response_length", len(content)),
		slog.Duration("duration", duration))

	return content, nil
}
