// Package ratelimit counts attempts per client key. RedisLimiter shares a
// fixed window across processes; MemoryLimiter is a per-process token bucket.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dtroode/tasktracker-server/internal/model"
)

// KeyPrefix namespaces limiter keys in Redis.
const KeyPrefix = "ratelimit:"

var _ model.RateLimiter = (*RedisLimiter)(nil)

// RedisLimiter allows limit attempts per key in each fixed window. The window
// starts at the first attempt and is tracked by the key's TTL.
type RedisLimiter struct {
	client redis.Cmdable
	limit  int
	window time.Duration
}

func NewRedisLimiter(client redis.Cmdable, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: limit, window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (model.RateLimitResult, error) {
	redisKey := KeyPrefix + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return model.RateLimitResult{}, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	ttl, err := l.client.PTTL(ctx, redisKey).Result()
	if err != nil {
		return model.RateLimitResult{}, fmt.Errorf("failed to read rate limit window: %w", err)
	}
	// A key without expiry is either fresh or left behind by a crash between
	// INCR and EXPIRE; both start a new window.
	if count == 1 || ttl < 0 {
		if err := l.client.PExpire(ctx, redisKey, l.window).Err(); err != nil {
			return model.RateLimitResult{}, fmt.Errorf("failed to set rate limit window: %w", err)
		}
		ttl = l.window
	}

	return buildResult(l.limit, count, ttl), nil
}

func buildResult(limit int, count int64, ttl time.Duration) model.RateLimitResult {
	res := model.RateLimitResult{
		Allowed: count <= int64(limit),
		Limit:   limit,
		Reset:   ttl,
	}
	if res.Allowed {
		res.Remaining = limit - int(count)
	} else {
		res.RetryAfter = ttl
	}
	return res
}
