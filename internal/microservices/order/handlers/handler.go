package handlers

import (
	"github.com/sfsking/pizza-party-hq/internal/common/httpx"
	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/microservices/order/service"
)

type Handler struct {
	OrderHandler *OrderHandler
}

func New(s *service.Service, lg *logger.Logger) *Handler {
	return &Handler{
		OrderHandler: NewOrderHandler(s.OrderService, lg),
	}
}

func (h *Handler) Register(rt *httpx.Router) {
	rt.HandleFunc("POST /api/v1/orders", h.OrderHandler.AddOrder)
	rt.HandleFunc("PATCH /api/v1/orders/{id}/status", h.OrderHandler.UpdateStatus)
	rt.HandleFunc("POST /api/v1/orders/{id}/advance", h.OrderHandler.Advance)
}
