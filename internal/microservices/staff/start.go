package staff

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sfsking/pizza-party-hq/internal/common/httpx"
	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/microservices/staff/handlers"
	"github.com/sfsking/pizza-party-hq/internal/microservices/staff/repository"
	"github.com/sfsking/pizza-party-hq/internal/microservices/staff/service"
)

// Mount registers the staff routes. The returned service also resolves
// authenticated identities to profiles.
func Mount(rt *httpx.Router, db *pgxpool.Pool) *service.Service {
	lg := logger.New("staff-service")
	svc := service.New(repository.New(db), lg)
	handlers.New(svc, lg).Register(rt)
	return svc
}
