package report

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sfsking/pizza-party-hq/internal/common/httpx"
	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/microservices/report/handlers"
	"github.com/sfsking/pizza-party-hq/internal/microservices/report/repository"
	"github.com/sfsking/pizza-party-hq/internal/microservices/report/service"
)

// New builds the report service without HTTP routes, for the worker process.
func New(db *pgxpool.Pool, d service.Deps) *service.Service {
	return service.New(repository.New(db), d, logger.New("report-service"))
}

func Mount(rt *httpx.Router, db *pgxpool.Pool, d service.Deps) *service.Service {
	svc := New(db, d)
	handlers.New(svc.ReportService, logger.New("report-service")).Register(rt)
	return svc
}
