package provider

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces out calls to a rate-limited API. A nil Pacer never waits.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer allows perMinute calls per minute with a small burst.
// It returns nil when perMinute is not positive.
func NewPacer(perMinute int) *Pacer {
	if perMinute <= 0 {
		return nil
	}
	burst := perMinute / 10
	if burst < 1 {
		burst = 1
	}
	return &Pacer{
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst),
	}
}

// Wait blocks until a call is allowed or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.limiter.Wait(ctx)
}
