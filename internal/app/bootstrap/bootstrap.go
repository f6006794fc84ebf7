package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/sfsking/pizza-party-hq/internal/common/blob"
	"github.com/sfsking/pizza-party-hq/internal/common/config"
	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/connections/database"
	"github.com/sfsking/pizza-party-hq/internal/connections/rabbitmq"
	"github.com/sfsking/pizza-party-hq/internal/connections/redis"
)

// Infra holds the backing connections shared by the API and the report worker.
// Redis and RabbitMQ are nil when not configured.
type Infra struct {
	DB       *pgxpool.Pool
	Redis    *goredis.Client
	MQ       *rabbitmq.Client
	Store    blob.StoreInterface
	Location *time.Location
}

func Open(ctx context.Context, cfg config.Config, lg *logger.Logger) (*Infra, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	inf := &Infra{Location: loc}

	inf.DB, err = database.ConnectDB(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	lg.Info("db_connected", map[string]any{"host": cfg.Database.Host, "port": cfg.Database.Port, "database": cfg.Database.Name})
	if err := database.Migrate(ctx, inf.DB); err != nil {
		inf.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if cfg.Redis.Enabled() {
		inf.Redis, err = redis.Connect(ctx, cfg.Redis)
		if err != nil {
			inf.Close()
			return nil, err
		}
		lg.Info("redis_connected", map[string]any{"addr": cfg.Redis.Addr})
	}

	if cfg.Rabbit.Enabled() {
		inf.MQ, err = rabbitmq.Dial(cfg.Rabbit)
		if err != nil {
			inf.Close()
			return nil, fmt.Errorf("rabbitmq connect: %w", err)
		}
		if err := inf.MQ.DeclareTopology(); err != nil {
			inf.Close()
			return nil, fmt.Errorf("rabbitmq topology: %w", err)
		}
		lg.Info("rabbitmq_connected", map[string]any{"host": cfg.Rabbit.Host, "port": cfg.Rabbit.Port, "vhost": cfg.Rabbit.VHost})
	}

	if cfg.Storage.Enabled() {
		s3, err := blob.NewS3Store(ctx, cfg.Storage)
		if err != nil {
			inf.Close()
			return nil, err
		}
		if err := s3.EnsureBucket(ctx); err != nil {
			inf.Close()
			return nil, fmt.Errorf("ensure bucket %s: %w", cfg.Storage.Bucket, err)
		}
		inf.Store = s3
		lg.Info("storage_connected", map[string]any{"endpoint": cfg.Storage.Endpoint, "bucket": cfg.Storage.Bucket})
	} else {
		inf.Store = blob.NewMemoryStore()
		lg.Warn("storage_in_memory", map[string]any{"reason": "no storage endpoint configured"})
	}
	return inf, nil
}

func (i *Infra) Close() {
	if i.MQ != nil {
		i.MQ.Close()
	}
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.DB != nil {
		i.DB.Close()
	}
}
