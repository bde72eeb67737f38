package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRateLimiters_Allow(t *testing.T) {
	rule := Rule{Limit: 5, Window: time.Minute}
	limiters := map[string]RateLimiter{
		"redis":  NewRedisRateLimiter(setupTestRedis(t), rule),
		"memory": NewMemoryRateLimiter(rule, 100),
	}

	for name, limiter := range limiters {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			for i := 0; i < 5; i++ {
				allowed, err := limiter.Allow(ctx, "client-a")
				require.NoError(t, err)
				assert.True(t, allowed, "request %d should be allowed", i+1)
			}

			allowed, err := limiter.Allow(ctx, "client-a")
			require.NoError(t, err)
			assert.False(t, allowed, "6th request should be denied")

			allowed, err = limiter.Allow(ctx, "client-b")
			require.NoError(t, err)
			assert.True(t, allowed, "keys are limited independently")

			require.NoError(t, limiter.Reset(ctx, "client-a"))
			allowed, err = limiter.Allow(ctx, "client-a")
			require.NoError(t, err)
			assert.True(t, allowed, "reset clears the window")
		})
	}
}

func TestRedisRateLimiter_WindowSlides(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t), Rule{Limit: 2, Window: time.Minute})
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return base }

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, "k")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	allowed, err := limiter.Allow(ctx, "k")
	require.NoError(t, err)
	assert.False(t, allowed)

	limiter.now = func() time.Time { return base.Add(61 * time.Second) }
	allowed, err = limiter.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRule_Disabled(t *testing.T) {
	limiter := NewMemoryRateLimiter(Rule{}, 10)
	for i := 0; i < 100; i++ {
		allowed, err := limiter.Allow(context.Background(), "k")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}
