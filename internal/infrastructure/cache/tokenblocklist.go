package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
)

// TokenBlocklist records revoked refresh token IDs until they would have
// expired anyway.
type TokenBlocklist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

const tokenBlocklistPrefix = "auth:revoked:"

type RedisTokenBlocklist struct {
	client *redis.Client
}

func NewRedisTokenBlocklist(client *redis.Client) *RedisTokenBlocklist {
	return &RedisTokenBlocklist{client: client}
}

func (b *RedisTokenBlocklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return errors.New("token id cannot be empty")
	}
	// an already expired token needs no entry
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, tokenBlocklistPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (b *RedisTokenBlocklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := b.client.Exists(ctx, tokenBlocklistPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}

// MemoryTokenBlocklist keeps every entry for maxTTL, which must be at least
// the refresh token lifetime.
type MemoryTokenBlocklist struct {
	revoked *lru.LRU[string, struct{}]
}

func NewMemoryTokenBlocklist(size int, maxTTL time.Duration) *MemoryTokenBlocklist {
	return &MemoryTokenBlocklist{revoked: lru.NewLRU[string, struct{}](size, nil, maxTTL)}
}

func (b *MemoryTokenBlocklist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return errors.New("token id cannot be empty")
	}
	if ttl <= 0 {
		return nil
	}
	b.revoked.Add(tokenID, struct{}{})
	return nil
}

func (b *MemoryTokenBlocklist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return b.revoked.Contains(tokenID), nil
}
