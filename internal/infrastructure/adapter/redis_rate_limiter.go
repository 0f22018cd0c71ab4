package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a fixed-window limiter shared by every replica of the
// service. Each client key gets one counter per window.
type RedisRateLimiter struct {
	client      *redis.Client
	logger      *slog.Logger
	prefix      string
	maxRequests int64
	window      time.Duration
}

func NewRedisRateLimiter(client *redis.Client, maxRequests int, window time.Duration, logger *slog.Logger) *RedisRateLimiter {
	return &RedisRateLimiter{
		client:      client,
		logger:      logger,
		prefix:      "hotel-search:ratelimit:",
		maxRequests: int64(maxRequests),
		window:      window,
	}
}

func (r *RedisRateLimiter) Allow(ctx context.Context, clientID string) (bool, error) {
	count, err := r.incrementWithExpiration(ctx, r.windowKey(clientID, time.Now()))
	if err != nil {
		return false, err
	}
	return count <= r.maxRequests, nil
}

func (r *RedisRateLimiter) windowKey(clientID string, now time.Time) string {
	return fmt.Sprintf("%s%s:%d", r.prefix, clientID, now.UnixNano()/int64(r.window))
}

func (r *RedisRateLimiter) incrementWithExpiration(ctx context.Context, fullKey string) (int64, error) {
	pipe := r.client.Pipeline()
	incrCmd := pipe.Incr(ctx, fullKey)
	pipe.Expire(ctx, fullKey, r.window)

	_, err := pipe.Exec(ctx)
	if err != nil {
		r.logger.Error("Failed to increment rate limit counter", "key", fullKey, "error", err)
		return 0, fmt.Errorf("rate limit increment error for key %s: %w", fullKey, err)
	}

	return incrCmd.Val(), nil
}

func (r *RedisRateLimiter) Ping(ctx context.Context) error {
	_, err := r.client.Ping(ctx).Result()
	if err != nil {
		r.logger.Error("Redis ping failed", "error", err)
		return fmt.Errorf("redis ping failed: %w", err)
	}

	return nil
}

func (r *RedisRateLimiter) Close() error {
	return r.client.Close()
}
