// Package ratelimit throttles API clients by remote address.
package ratelimit

import "time"

// Limiter decides whether a client key may proceed.
type Limiter interface {
	Allow(key string) bool
}

// NopLimiter allows every request. It is used when rate limiting is disabled.
type NopLimiter struct{}

// Allow always returns true
func (NopLimiter) Allow(string) bool { return true }

// Clock provides the current time to limiters.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock.
type RealClock struct{}

// Now returns current time.
func (RealClock) Now() time.Time { return time.Now() }
