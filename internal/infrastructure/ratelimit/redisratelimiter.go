package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a sliding window limiter backed by a sorted set per key,
// shared by every instance using the same redis.
type RedisRateLimiter struct {
	client *redis.Client
	rule   Rule
	now    func() time.Time
}

func NewRedisRateLimiter(client *redis.Client, rule Rule) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, rule: rule, now: time.Now}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.rule.Disabled() {
		return true, nil
	}

	redisKey := l.getKey(key)
	now := l.now()
	windowStart := now.Add(-l.rule.Window).UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart, 10))
	zcard := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: uuid.NewString()})
	pipe.Expire(ctx, redisKey, l.rule.Window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	return zcard.Val() < int64(l.rule.Limit), nil
}

func (l *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.getKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

func (l *RedisRateLimiter) getKey(identifier string) string {
	return fmt.Sprintf("ratelimit:%s:%s", identifier, l.rule.Window.String())
}
