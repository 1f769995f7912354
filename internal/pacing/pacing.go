// Package pacing enforces a fixed inter-request delay for an adapter's
// sequential requests against a single upstream host.
package pacing

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces consecutive requests by a fixed delay. It is cooperative
// pacing, not adaptive backoff: the delay is the same whether the previous
// request succeeded or failed. Failure handling stays with the caller.
type Pacer struct {
	limiter *rate.Limiter
}

// New creates a Pacer with the given inter-request delay. A zero or
// negative delay produces a pacer that never waits.
func New(delay time.Duration) *Pacer {
	if delay <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	// Token bucket with burst 1: the first request passes immediately,
	// every subsequent request waits out the full delay.
	return &Pacer{limiter: rate.NewLimiter(rate.Every(delay), 1)}
}

// Wait blocks until the delay since the previous request has elapsed, or
// the context is canceled.
func (p *Pacer) Wait(ctx context.Context) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("pacing wait: %w", err)
	}
	return nil
}
