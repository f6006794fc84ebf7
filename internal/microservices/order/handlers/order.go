package handlers

import (
	"net/http"
	"strings"

	"github.com/sfsking/pizza-party-hq/internal/common/auth"
	"github.com/sfsking/pizza-party-hq/internal/common/httpx"
	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/domain"
	"github.com/sfsking/pizza-party-hq/internal/microservices/order/service"
)

const IdempotencyHeader = "Idempotency-Key"

type OrderHandler struct {
	service service.OrderServiceInterface
	lg      *logger.Logger
}

func NewOrderHandler(s service.OrderServiceInterface, lg *logger.Logger) *OrderHandler {
	return &OrderHandler{service: s, lg: lg}
}

func (oh *OrderHandler) AddOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	key := strings.TrimSpace(r.Header.Get(IdempotencyHeader))
	resp, err := oh.service.CreateOrder(r.Context(), auth.ActorOf(r), req, key)
	if err != nil {
		httpx.WriteError(w, r, oh.lg, "order_create_failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, resp)
}

func (oh *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	resp, err := oh.service.UpdateStatus(r.Context(), auth.ActorOf(r), r.PathValue("id"), req.Status)
	if err != nil {
		httpx.WriteError(w, r, oh.lg, "order_status_update_failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (oh *OrderHandler) Advance(w http.ResponseWriter, r *http.Request) {
	resp, err := oh.service.Advance(r.Context(), auth.ActorOf(r), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, r, oh.lg, "order_advance_failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
