package push

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// RateLimited throttles calls to the wrapped transport.
type RateLimited struct {
	next    Transport
	limiter *rate.Limiter
}

// NewRateLimited wraps next so that at most maxPerMinute sends start per minute.
// A non-positive limit returns next unchanged.
func NewRateLimited(next Transport, maxPerMinute int) Transport {
	if maxPerMinute <= 0 {
		return next
	}
	interval := time.Minute / time.Duration(maxPerMinute)
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

func (t *RateLimited) Name() string { return t.next.Name() }

func (t *RateLimited) Send(ctx context.Context, token, title, body string, data map[string]any) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return t.next.Send(ctx, token, title, body, data)
}
