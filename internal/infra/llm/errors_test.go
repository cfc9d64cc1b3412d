package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journal-radar/internal/resilience/retry"
)

func anthropicStatusErr(t *testing.T, status int) error {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, "https://api.anthropic.com/v1/messages", nil)
	require.NoError(t, err)
	return &anthropic.Error{
		StatusCode: status,
		Request:    req,
		Response:   &http.Response{StatusCode: status},
	}
}

func TestClassifyErr_ServerErrorsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{
			name:      "openai 500",
			err:       fmt.Errorf("deepseek api error: %w", &openai.APIError{HTTPStatusCode: 500, Message: "internal"}),
			retryable: true,
		},
		{
			name:      "openai 429",
			err:       fmt.Errorf("deepseek api error: %w", &openai.APIError{HTTPStatusCode: 429, Message: "rate limited"}),
			retryable: true,
		},
		{
			name:      "openai 400",
			err:       fmt.Errorf("deepseek api error: %w", &openai.APIError{HTTPStatusCode: 400, Message: "bad request"}),
			retryable: false,
		},
		{
			name:      "openai request error 503",
			err:       fmt.Errorf("deepseek api error: %w", &openai.RequestError{HTTPStatusCode: 503, Err: errors.New("unavailable")}),
			retryable: true,
		},
		{
			name:      "anthropic 529",
			err:       fmt.Errorf("claude api error: %w", anthropicStatusErr(t, 529)),
			retryable: true,
		},
		{
			name:      "anthropic 401",
			err:       fmt.Errorf("claude api error: %w", anthropicStatusErr(t, 401)),
			retryable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyErr(context.Background(), tt.err, time.Minute)

			var httpErr *retry.HTTPError
			require.True(t, errors.As(got, &httpErr))
			assert.Equal(t, tt.retryable, retry.IsRetryable(got))
		})
	}
}

func TestClassifyErr_CallTimeoutRetryableWhileRunLive(t *testing.T) {
	err := fmt.Errorf("deepseek api error: %w", context.DeadlineExceeded)

	got := classifyErr(context.Background(), err, time.Minute)

	assert.True(t, retry.IsRetryable(got))
	assert.False(t, errors.Is(got, context.DeadlineExceeded))
}

func TestClassifyErr_RunCancellationNotRetryable(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	cancel()

	err := fmt.Errorf("deepseek api error: %w", context.DeadlineExceeded)
	got := classifyErr(parent, err, time.Minute)

	assert.False(t, retry.IsRetryable(got))
	assert.True(t, errors.Is(got, context.DeadlineExceeded))
}

func TestClassifyErr_UnknownErrorUnchanged(t *testing.T) {
	err := errors.New("invalid api key")

	got := classifyErr(context.Background(), err, time.Minute)

	assert.Equal(t, err, got)
	assert.False(t, retry.IsRetryable(got))
}
