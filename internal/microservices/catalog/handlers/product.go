package handlers

import (
	"net/http"

	"github.com/sfsking/pizza-party-hq/internal/common/auth"
	"github.com/sfsking/pizza-party-hq/internal/common/httpx"
	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/domain"
	"github.com/sfsking/pizza-party-hq/internal/microservices/catalog/service"
)

type ProductHandler struct {
	service service.CatalogServiceInterface
	lg      *logger.Logger
}

func NewProductHandler(s service.CatalogServiceInterface, lg *logger.Logger) *ProductHandler {
	return &ProductHandler{service: s, lg: lg}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context(), auth.ActorOf(r))
	if err != nil {
		httpx.WriteError(w, r, h.lg, "list_products_failed", err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	httpx.WriteJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, r, h.lg, "get_product_failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.ProductInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	p, err := h.service.CreateProduct(r.Context(), auth.ActorOf(r), in)
	if err != nil {
		httpx.WriteError(w, r, h.lg, "create_product_failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in domain.ProductInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), auth.ActorOf(r), r.PathValue("id"), in)
	if err != nil {
		httpx.WriteError(w, r, h.lg, "update_product_failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req domain.SetActiveRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	p, err := h.service.SetActive(r.Context(), auth.ActorOf(r), r.PathValue("id"), req.Active)
	if err != nil {
		httpx.WriteError(w, r, h.lg, "set_product_active_failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}
