package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sfsking/pizza-party-hq/internal/domain"
)

const (
	idempotencyKeyTTL    = 24 * time.Hour
	idempotencyKeyPrefix = "order:idem:"
	pendingMarker        = "pending"
)

type IdempotencyStoreInterface interface {
	// Reserve claims key. A non-nil response means the key was already completed.
	Reserve(ctx context.Context, key string) (*domain.CreateOrderResponse, error)
	Complete(ctx context.Context, key string, resp domain.CreateOrderResponse) error
	Release(ctx context.Context, key string) error
}

type RedisIdempotencyStore struct {
	client *redis.Client
}

func NewRedisIdempotencyStore(client *redis.Client) IdempotencyStoreInterface {
	return &RedisIdempotencyStore{client: client}
}

func (s *RedisIdempotencyStore) Reserve(ctx context.Context, key string) (*domain.CreateOrderResponse, error) {
	k := idempotencyKeyPrefix + key
	ok, err := s.client.SetNX(ctx, k, pendingMarker, idempotencyKeyTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to reserve idempotency key: %w", err)
	}
	if ok {
		return nil, nil
	}

	val, err := s.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET
		return s.Reserve(ctx, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read idempotency key: %w", err)
	}
	if val == pendingMarker {
		return nil, domain.ErrDuplicateSubmission
	}

	var resp domain.CreateOrderResponse
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		return nil, fmt.Errorf("corrupt idempotency record: %w", err)
	}
	return &resp, nil
}

func (s *RedisIdempotencyStore) Complete(ctx context.Context, key string, resp domain.CreateOrderResponse) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, idempotencyKeyPrefix+key, b, idempotencyKeyTTL).Err()
}

func (s *RedisIdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, idempotencyKeyPrefix+key).Err()
}
