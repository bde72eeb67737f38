package ratelimit

import (
	"context"
	"time"
)

// Rule allows Limit requests per Window for one key.
type Rule struct {
	Limit  int
	Window time.Duration
}

func (r Rule) Disabled() bool {
	return r.Limit <= 0 || r.Window <= 0
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}
