package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Repository struct {
	OrderRepo OrderRepositoryInterface
	// IdemStore is nil when redis is not configured.
	IdemStore IdempotencyStoreInterface
}

func New(db *pgxpool.Pool, rdb *redis.Client) *Repository {
	r := &Repository{
		OrderRepo: NewOrderRepository(db),
	}
	if rdb != nil {
		r.IdemStore = NewRedisIdempotencyStore(rdb)
	}
	return r
}
