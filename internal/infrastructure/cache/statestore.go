package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/tenantdesk/internal/shared/biztime"
)

var ErrStateNotFound = errors.New("state not found or expired")

// StateInfo stores state-related information for OAuth flow
type StateInfo struct {
	Provider     string    `json:"provider"`
	CodeVerifier string    `json:"code_verifier"`
	CreatedAt    time.Time `json:"created_at"`
}

// StateStore keeps OAuth state values between the redirect and the callback.
// VerifyAndGet consumes the state.
type StateStore interface {
	Set(ctx context.Context, state string, info StateInfo) error
	VerifyAndGet(ctx context.Context, state string) (*StateInfo, error)
}

func validateState(state string, info StateInfo) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}
	if info.CodeVerifier == "" {
		return errors.New("code_verifier cannot be empty")
	}
	return nil
}

type RedisStateStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStateStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStateStore {
	return &RedisStateStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStateStore) Set(ctx context.Context, state string, info StateInfo) error {
	if err := validateState(state, info); err != nil {
		return err
	}
	info.CreatedAt = biztime.NowUTC()

	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal state info: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+state, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store state in redis: %w", err)
	}
	return nil
}

// VerifyAndGet uses GETDEL so a state can only be redeemed once.
func (s *RedisStateStore) VerifyAndGet(ctx context.Context, state string) (*StateInfo, error) {
	if state == "" {
		return nil, ErrStateNotFound
	}

	data, err := s.client.GetDel(ctx, s.prefix+state).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to retrieve state from redis: %w", err)
	}

	var info StateInfo
	if err := json.Unmarshal([]byte(data), &info); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state info: %w", err)
	}
	return &info, nil
}

// MemoryStateStore is used when redis is disabled. State is lost on restart
// and not shared between instances.
type MemoryStateStore struct {
	states *lru.LRU[string, StateInfo]
}

func NewMemoryStateStore(size int, ttl time.Duration) *MemoryStateStore {
	return &MemoryStateStore{states: lru.NewLRU[string, StateInfo](size, nil, ttl)}
}

func (s *MemoryStateStore) Set(_ context.Context, state string, info StateInfo) error {
	if err := validateState(state, info); err != nil {
		return err
	}
	info.CreatedAt = biztime.NowUTC()
	s.states.Add(state, info)
	return nil
}

func (s *MemoryStateStore) VerifyAndGet(_ context.Context, state string) (*StateInfo, error) {
	info, ok := s.states.Peek(state)
	if !ok || !s.states.Remove(state) {
		return nil, ErrStateNotFound
	}
	return &info, nil
}
