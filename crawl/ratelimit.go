package crawl

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter spaces out requests to the content server using a token bucket.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a Limiter allowing rps requests per second with a burst
// of 1. A non-positive rps returns nil, which Wait treats as unlimited.
func NewLimiter(rps float64) *Limiter {
	if rps <= 0 {
		return nil
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(rps), 1)}
}

// Wait blocks until the next request may proceed.
// Returns an error if the context is canceled before the wait completes.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return ctx.Err()
	}
	return l.limiter.Wait(ctx)
}
