package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/dtroode/tasktracker-server/internal/model"
)

var _ model.RateLimiter = (*MemoryLimiter)(nil)

// MemoryLimiter gives every key a token bucket holding limit tokens that
// refills completely over one window.
type MemoryLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*rate.Limiter
	limit     int
	every     rate.Limit
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return newMemoryLimiter(limit, window, time.Now)
}

func newMemoryLimiter(limit int, window time.Duration, now func() time.Time) *MemoryLimiter {
	return &MemoryLimiter{
		limiters:  make(map[string]*rate.Limiter),
		limit:     limit,
		every:     rate.Every(window / time.Duration(limit)),
		window:    window,
		lastSweep: now(),
		now:       now,
	}
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string) (model.RateLimitResult, error) {
	if err := ctx.Err(); err != nil {
		return model.RateLimitResult{}, err
	}

	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.every, l.limit)
		l.limiters[key] = lim
	}

	res := model.RateLimitResult{Limit: l.limit}

	r := lim.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		res.RetryAfter = delay
		res.Reset = l.untilFull(lim.TokensAt(now))
		return res, nil
	}

	tokens := lim.TokensAt(now)
	res.Allowed = true
	res.Remaining = int(tokens)
	res.Reset = l.untilFull(tokens)
	return res, nil
}

// untilFull is the refill time from tokens to a full bucket.
func (l *MemoryLimiter) untilFull(tokens float64) time.Duration {
	missing := float64(l.limit) - tokens
	if missing <= 0 {
		return 0
	}
	return time.Duration(missing * float64(l.window) / float64(l.limit))
}

// sweep drops buckets that have refilled completely, once per window.
func (l *MemoryLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now
	for key, lim := range l.limiters {
		if lim.TokensAt(now) >= float64(l.limit) {
			delete(l.limiters, key)
		}
	}
}
