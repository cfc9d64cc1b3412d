package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	openai "github.com/sashabaranov/go-openai"

	"journal-radar/internal/resilience/retry"
)

// classifyErr maps provider SDK failures onto the retry package's error
// classes. Status-bearing API errors become retry.HTTPError so callers
// retry 5xx and 429 responses. A deadline that belongs to the single call
// is reported as a transient timeout; the returned chain must not carry
// context.DeadlineExceeded, which callers treat as run cancellation.
func classifyErr(parent context.Context, err error, callTimeout time.Duration) error {
	if err == nil {
		return nil
	}

	var openaiErr *openai.APIError
	if errors.As(err, &openaiErr) && openaiErr.HTTPStatusCode > 0 {
		return &retry.HTTPError{StatusCode: openaiErr.HTTPStatusCode, Message: err.Error()}
	}

	var openaiReqErr *openai.RequestError
	if errors.As(err, &openaiReqErr) && openaiReqErr.HTTPStatusCode > 0 {
		return &retry.HTTPError{StatusCode: openaiReqErr.HTTPStatusCode, Message: err.Error()}
	}

	var anthropicErr *anthropic.Error
	if errors.As(err, &anthropicErr) {
		return &retry.HTTPError{StatusCode: anthropicErr.StatusCode, Message: err.Error()}
	}

	if errors.Is(err, context.DeadlineExceeded) && parent.Err() == nil {
		return retry.Transient(fmt.Errorf("completion timed out after %s", callTimeout))
	}

	return err
}
