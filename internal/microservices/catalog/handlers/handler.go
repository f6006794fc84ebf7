package handlers

import (
	"github.com/sfsking/pizza-party-hq/internal/common/auth"
	"github.com/sfsking/pizza-party-hq/internal/common/httpx"
	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/microservices/catalog/service"
)

type Handler struct {
	ProductHandler *ProductHandler
}

func New(s *service.Service, lg *logger.Logger) *Handler {
	return &Handler{
		ProductHandler: NewProductHandler(s.CatalogService, lg),
	}
}

func (h *Handler) Register(rt *httpx.Router) {
	rt.HandleFunc("GET /api/v1/products", h.ProductHandler.List)
	rt.HandleFunc("GET /api/v1/products/{id}", h.ProductHandler.Get)
	rt.HandleFunc("POST /api/v1/products", auth.RequireAdmin(h.ProductHandler.Create))
	rt.HandleFunc("PUT /api/v1/products/{id}", auth.RequireAdmin(h.ProductHandler.Update))
	rt.HandleFunc("PATCH /api/v1/products/{id}/active", auth.RequireAdmin(h.ProductHandler.SetActive))
}
