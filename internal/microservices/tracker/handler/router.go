package handler

import (
	"github.com/sfsking/pizza-party-hq/internal/common/httpx"
	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/microservices/tracker/service"
)

type Handler struct {
	TrackerHandler *TrackerHandler
}

func New(svc service.TrackerServiceInterface, lg *logger.Logger) *Handler {
	return &Handler{
		TrackerHandler: NewTrackerHandler(svc, lg),
	}
}

// Register adds the read-side order routes. The literal /stats path wins over /{id}.
func Register(rt *httpx.Router, h *Handler) {
	rt.HandleFunc("GET /api/v1/orders", h.TrackerHandler.ListOrders)
	rt.HandleFunc("GET /api/v1/orders/stats", h.TrackerHandler.Stats)
	rt.HandleFunc("GET /api/v1/orders/{id}", h.TrackerHandler.GetOrder)
	rt.HandleFunc("GET /api/v1/orders/{id}/timeline", h.TrackerHandler.GetTimeline)
}
