package notifier

import (
	"context"

	"golang.org/x/time/rate"
)

// webhookLimiter paces outgoing webhook posts with a token bucket.
// Slack allows roughly one message per second per webhook; pacing on the
// client side keeps a burst of run notifications from being dropped.
type webhookLimiter struct {
	limiter *rate.Limiter
}

// newWebhookLimiter creates a limiter sustaining perSecond requests with
// the given burst capacity.
func newWebhookLimiter(perSecond float64, burst int) *webhookLimiter {
	return &webhookLimiter{
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Wait blocks until a token is available or ctx is done.
func (w *webhookLimiter) Wait(ctx context.Context) error {
	return w.limiter.Wait(ctx)
}
