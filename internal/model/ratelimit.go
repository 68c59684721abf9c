package model

import (
	"context"
	"time"
)

// RateLimiter counts attempts per key within a window.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateLimitResult, error)
}

// RateLimitResult describes the state of a key after one attempt.
type RateLimitResult struct {
	Allowed    bool
	Limit      int
	Remaining  int
	// RetryAfter is set on denial: the wait until the next attempt is admitted.
	RetryAfter time.Duration
	// Reset is the wait until the key's full budget is available again.
	Reset time.Duration
}
