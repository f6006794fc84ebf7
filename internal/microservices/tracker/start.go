package tracker

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sfsking/pizza-party-hq/internal/common/httpx"
	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/microservices/tracker/handler"
	"github.com/sfsking/pizza-party-hq/internal/microservices/tracker/repository"
	"github.com/sfsking/pizza-party-hq/internal/microservices/tracker/service"
)

// Mount registers the order query routes. The repository is returned for the
// report generator, which reads the same day windows.
func Mount(rt *httpx.Router, db *pgxpool.Pool, loc *time.Location) *repository.TrackerRepo {
	repo := repository.NewTrackerRepo(db)
	svc := service.NewTrackerService(repo, loc)
	handler.Register(rt, handler.New(svc, logger.New("tracking-service")))
	return repo
}
