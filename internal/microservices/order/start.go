package order

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/sfsking/pizza-party-hq/internal/common/httpx"
	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/common/metrics"
	"github.com/sfsking/pizza-party-hq/internal/microservices/order/handlers"
	"github.com/sfsking/pizza-party-hq/internal/microservices/order/repository"
	"github.com/sfsking/pizza-party-hq/internal/microservices/order/service"
)

// Mount wires the order service and registers its routes. rdb may be nil.
func Mount(rt *httpx.Router, db *pgxpool.Pool, rdb *redis.Client, products service.ProductLookup, m *metrics.ServerMetrics) *service.Service {
	lg := logger.New("order-service")
	repo := repository.New(db, rdb)
	svc := service.New(repo, products, m, lg)
	handlers.New(svc, lg).Register(rt)
	return svc
}
