package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:"

// Limiter enforces a fixed-window request limit per client, backed by Redis
// so the count is shared across server instances.
type Limiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewLimiter creates a limiter allowing limit requests per window for each client.
func NewLimiter(client *redis.Client, limit int64, window time.Duration) *Limiter {
	return &Limiter{client: client, limit: limit, window: window}
}

// Allow records one request for clientID and reports whether it is within the
// limit. The remaining allowance and the time until the window resets are
// returned for response headers.
func (l *Limiter) Allow(ctx context.Context, clientID string) (allowed bool, remaining int64, reset time.Duration, err error) {
	key := keyPrefix + clientID

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, 0, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, 0, 0, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	ttl, err := l.client.TTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		ttl = l.window
	}

	remaining = l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= l.limit, remaining, ttl, nil
}

// Limit returns the configured per-window request limit.
func (l *Limiter) Limit() int64 {
	return l.limit
}
