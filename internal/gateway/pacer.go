package gateway

import (
	"context"

	"golang.org/x/time/rate"
)

// Pacer gates outgoing API calls. The gateway consults it before every
// remote request so the request budget lives in one place instead of
// scattered sleeps.
type Pacer interface {
	Wait(ctx context.Context) error
}

// RatePacer spaces requests with a token bucket.
type RatePacer struct {
	bucket *rate.Limiter
}

// NewRatePacer returns a pacer allowing at most rps requests per second.
func NewRatePacer(rps float64) *RatePacer {
	return &RatePacer{bucket: rate.NewLimiter(rate.Limit(rps), 1)}
}

func (p *RatePacer) Wait(ctx context.Context) error {
	return p.bucket.Wait(ctx)
}

// NopPacer never waits. Used in tests.
type NopPacer struct{}

func (NopPacer) Wait(context.Context) error { return nil }
