package api

import (
	"context"
	"net/http"
	"time"

	"github.com/sfsking/pizza-party-hq/internal/common/httpx"
)

type dbPinger interface {
	Ping(ctx context.Context) error
}

type mqPinger interface {
	Ping() error
}

// healthHandler reports 503 when the database or a configured broker is
// unreachable. mq may be nil when no broker is configured.
func healthHandler(db dbPinger, mq mqPinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			httpx.WriteProblem(w, http.StatusServiceUnavailable, "unhealthy", "database unreachable")
			return
		}
		queue := "disabled"
		if mq != nil {
			if err := mq.Ping(); err != nil {
				httpx.WriteProblem(w, http.StatusServiceUnavailable, "unhealthy", "rabbitmq unreachable")
				return
			}
			queue = "ok"
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok", "queue": queue})
	}
}
