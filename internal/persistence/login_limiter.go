package persistence

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LoginLimiter throttles login attempts per username using a Redis counter
// with a rolling window. When Redis is unavailable the limiter allows the
// attempt; throttling is an extra guard, not a hard dependency.
type LoginLimiter struct {
	redis       *Redis
	maxAttempts int
	window      time.Duration
	logger      *zap.Logger
}

// NewLoginLimiter builds a limiter over the shared Redis client.
func NewLoginLimiter(r *Redis, maxAttempts int, window time.Duration, logger *zap.Logger) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &LoginLimiter{redis: r, maxAttempts: maxAttempts, window: window, logger: logger}
}

// Allow records an attempt for the username and reports whether it is within
// the configured budget.
func (l *LoginLimiter) Allow(ctx context.Context, username string) bool {
	if l == nil || l.redis == nil || l.redis.Client == nil {
		return true
	}

	key := "login_attempts:" + username
	count, err := l.redis.Client.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("login limiter unavailable", zap.Error(err))
		return true
	}
	if count == 1 {
		if err := l.redis.Client.Expire(ctx, key, l.window).Err(); err != nil {
			l.logger.Warn("login limiter expire failed", zap.Error(err))
		}
	}
	return count <= int64(l.maxAttempts)
}

// Reset clears the attempt counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, username string) {
	if l == nil || l.redis == nil || l.redis.Client == nil {
		return
	}
	if err := l.redis.Client.Del(ctx, "login_attempts:"+username).Err(); err != nil {
		l.logger.Warn("login limiter reset failed", zap.Error(err))
	}
}
