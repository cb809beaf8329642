package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter defines the interface for request pacing
type Limiter interface {
	// Allow checks if a request is allowed right now
	Allow() bool
	// Wait blocks until the limiter allows another request
	Wait()
}

// Pacer spaces API requests out over time using a token bucket. It is
// pacing only: it never retries or backs off, it just delays the next
// request until the configured rate allows it.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a pacer allowing requestsPerMinute sustained, with
// burst immediate requests.
func NewPacer(requestsPerMinute, burst int) *Pacer {
	interval := time.Minute / time.Duration(requestsPerMinute)
	return &Pacer{
		limiter: rate.NewLimiter(rate.Every(interval), burst),
	}
}

// Allow reports whether a request may proceed immediately
func (p *Pacer) Allow() bool {
	return p.limiter.Allow()
}

// Wait blocks until a request may proceed
func (p *Pacer) Wait() {
	// The background context never cancels; the crawl has no
	// cancellation mechanism and a wait here is always finite.
	_ = p.limiter.Wait(context.Background())
}
