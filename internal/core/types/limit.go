package types

import (
	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"
)

// DefaultRateBurst caps a single limited read.
const DefaultRateBurst = 64 * humanize.KByte

type RateLimiter struct {
	*rate.Limiter
}

// UnlimitedRateLimiter never waits.
func UnlimitedRateLimiter() *RateLimiter {
	return &RateLimiter{rate.NewLimiter(rate.Inf, 0)}
}

// NewRateLimiter returns a limiter allowing rateLimit bytes per second.
// A zero rate means unlimited.
func NewRateLimiter(rateLimit Bytes) *RateLimiter {
	rateInt := rateLimit.Bytes()
	if rateInt == 0 {
		return UnlimitedRateLimiter()
	}

	// Burst is at most a tenth of the rate so throttling stays smooth
	burstSize := int(DefaultRateBurst)
	if burstSize > int(rateInt/10) {
		burstSize = int(rateInt / 10)
	}
	if burstSize < 1 {
		burstSize = 1
	}

	return &RateLimiter{rate.NewLimiter(rate.Limit(rateInt), burstSize)}
}

// Unlimited reports whether the limiter never blocks.
func (l *RateLimiter) Unlimited() bool {
	return l == nil || l.Limiter == nil || l.Limit() == rate.Inf
}

// clamp shrinks n so a single WaitN never exceeds the burst.
func (l *RateLimiter) clamp(n int) int {
	if l.Unlimited() {
		return n
	}
	return min(n, l.Burst())
}
