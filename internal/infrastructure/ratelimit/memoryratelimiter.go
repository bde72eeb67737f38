package ratelimit

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// MemoryRateLimiter is a per-process token bucket limiter used when redis is
// disabled. Idle keys are evicted after a few windows.
type MemoryRateLimiter struct {
	rule     Rule
	limiters *lru.LRU[string, *rate.Limiter]
}

func NewMemoryRateLimiter(rule Rule, maxKeys int) *MemoryRateLimiter {
	ttl := 3 * rule.Window
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MemoryRateLimiter{
		rule:     rule,
		limiters: lru.NewLRU[string, *rate.Limiter](maxKeys, nil, ttl),
	}
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	if l.rule.Disabled() {
		return true, nil
	}
	limiter, ok := l.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rate.Every(l.rule.Window/time.Duration(l.rule.Limit)), l.rule.Limit)
		l.limiters.Add(key, limiter)
	}
	return limiter.Allow(), nil
}

func (l *MemoryRateLimiter) Reset(_ context.Context, key string) error {
	l.limiters.Remove(key)
	return nil
}
