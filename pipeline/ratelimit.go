package pipeline

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/jwalczak/menuscan"
)

var _ menuscan.CallLimiter = (*CallLimiter)(nil)

// CallLimiter paces vision API calls with a token bucket. A burst of 1
// spaces calls evenly rather than allowing bursts.
type CallLimiter struct {
	limiter *rate.Limiter
}

// NewCallLimiter creates a CallLimiter allowing the given calls per second.
func NewCallLimiter(cps float64) *CallLimiter {
	return &CallLimiter{limiter: rate.NewLimiter(rate.Limit(cps), 1)}
}

// Wait blocks until the rate limit allows another call. Returns an error
// if the context is canceled before the wait completes.
func (l *CallLimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
