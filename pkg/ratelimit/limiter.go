package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter defines the interface for pacing requests against the stats service
type Limiter interface {
	// Allow reports whether a request may proceed immediately
	Allow() bool
	// Wait blocks until the limiter allows another request
	Wait(ctx context.Context) error
}

// Pacer enforces a fixed minimum interval between consecutive requests. The
// stats service throttles aggressively, so the pipeline spaces every call
// rather than bursting.
type Pacer struct {
	limiter  *rate.Limiter
	interval time.Duration
}

// NewPacer creates a Pacer allowing one request per interval. A zero or
// negative interval disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1), interval: 0}
	}
	return &Pacer{
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		interval: interval,
	}
}

// Allow reports whether a request may proceed immediately
func (p *Pacer) Allow() bool {
	return p.limiter.Allow()
}

// Wait blocks until the interval since the previous request has elapsed
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// Interval returns the configured pacing interval
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

// Nop is a Limiter that never blocks, for tests.
type Nop struct{}

func (Nop) Allow() bool                    { return true }
func (Nop) Wait(ctx context.Context) error { return nil }
