package service

import (
	"time"

	"golang.org/x/time/rate"
)

// LookupLimiter gates outbound provider calls. Each lookup kind (food,
// weather) shares one limiter across all users: maxCalls acquisitions per
// window, refilled continuously. Acquire-or-reject is a single atomic
// operation; there is no separate capacity check that could race with the
// acquisition.
type LookupLimiter struct {
	limiter *rate.Limiter
}

func NewLookupLimiter(maxCalls int, window time.Duration) *LookupLimiter {
	return &LookupLimiter{
		limiter: rate.NewLimiter(rate.Limit(float64(maxCalls)/window.Seconds()), maxCalls),
	}
}

// Allow reports whether one call may proceed right now, consuming a token if
// so. Callers that get false must short-circuit with ErrThrottled instead of
// performing the request.
func (l *LookupLimiter) Allow() bool {
	return l.limiter.Allow()
}
