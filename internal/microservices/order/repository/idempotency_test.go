package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfsking/pizza-party-hq/internal/domain"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("PIZZA_TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestIdempotency_ReserveCompleteReplay(t *testing.T) {
	client := getRedisClient(t)
	ctx := context.Background()
	store := NewRedisIdempotencyStore(client)
	key := uuid.NewString()
	t.Cleanup(func() { client.Del(ctx, idempotencyKeyPrefix+key) })

	prev, err := store.Reserve(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, prev)

	// second submit while the first is still running
	_, err = store.Reserve(ctx, key)
	assert.ErrorIs(t, err, domain.ErrDuplicateSubmission)

	resp := domain.CreateOrderResponse{
		OrderID:     "0f8fad5b-d9cb-469f-a165-70867728950e",
		DisplayID:   "0F8FAD5B",
		Status:      domain.StatusPending,
		TotalAmount: decimal.RequireFromString("17.98"),
	}
	require.NoError(t, store.Complete(ctx, key, resp))

	prev, err = store.Reserve(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, resp.OrderID, prev.OrderID)
	assert.True(t, resp.TotalAmount.Equal(prev.TotalAmount))

	ttl, err := client.TTL(ctx, idempotencyKeyPrefix+key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestIdempotency_ReleaseFreesKey(t *testing.T) {
	client := getRedisClient(t)
	ctx := context.Background()
	store := NewRedisIdempotencyStore(client)
	key := uuid.NewString()
	t.Cleanup(func() { client.Del(ctx, idempotencyKeyPrefix+key) })

	_, err := store.Reserve(ctx, key)
	require.NoError(t, err)
	require.NoError(t, store.Release(ctx, key))

	prev, err := store.Reserve(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, prev)
}

func TestIdempotency_CorruptRecord(t *testing.T) {
	client := getRedisClient(t)
	ctx := context.Background()
	store := NewRedisIdempotencyStore(client)
	key := uuid.NewString()
	t.Cleanup(func() { client.Del(ctx, idempotencyKeyPrefix+key) })

	require.NoError(t, client.Set(ctx, idempotencyKeyPrefix+key, "{not json", time.Minute).Err())
	_, err := store.Reserve(ctx, key)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDuplicateSubmission)
}
