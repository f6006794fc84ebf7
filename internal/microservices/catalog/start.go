package catalog

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sfsking/pizza-party-hq/internal/common/httpx"
	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/microservices/catalog/handlers"
	"github.com/sfsking/pizza-party-hq/internal/microservices/catalog/repository"
	"github.com/sfsking/pizza-party-hq/internal/microservices/catalog/service"
)

// New builds the catalog service without routes.
func New(db *pgxpool.Pool) *service.Service {
	return service.New(repository.New(db), logger.New("catalog-service"))
}

func Mount(rt *httpx.Router, db *pgxpool.Pool) *service.Service {
	lg := logger.New("catalog-service")
	svc := service.New(repository.New(db), lg)
	handlers.New(svc, lg).Register(rt)
	return svc
}
