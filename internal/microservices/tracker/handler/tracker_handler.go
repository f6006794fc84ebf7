package handler

import (
	"net/http"

	"github.com/sfsking/pizza-party-hq/internal/common/httpx"
	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/domain"
	"github.com/sfsking/pizza-party-hq/internal/microservices/tracker/service"
)

type TrackerHandler struct {
	service service.TrackerServiceInterface
	lg      *logger.Logger
}

func NewTrackerHandler(svc service.TrackerServiceInterface, lg *logger.Logger) *TrackerHandler {
	return &TrackerHandler{service: svc, lg: lg}
}

// ListOrders supports ?status=&type=&q= and ?group=date.
func (h *TrackerHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.OrderFilter{Status: q.Get("status"), Type: q.Get("type"), Search: q.Get("q")}

	if q.Get("group") == "date" {
		groups, err := h.service.ListOrdersByDate(r.Context(), f)
		if err != nil {
			httpx.WriteError(w, r, h.lg, "list_orders_failed", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, groups)
		return
	}

	orders, err := h.service.ListOrders(r.Context(), f)
	if err != nil {
		httpx.WriteError(w, r, h.lg, "list_orders_failed", err)
		return
	}
	if orders == nil {
		orders = []domain.OrderView{}
	}
	httpx.WriteJSON(w, http.StatusOK, orders)
}

func (h *TrackerHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, r, h.lg, "get_order_failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, v)
}

func (h *TrackerHandler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	limit := httpx.AtoiDefault(r.URL.Query().Get("limit"), 50)
	offset := httpx.AtoiDefault(r.URL.Query().Get("offset"), 0)
	events, err := h.service.GetOrderTimeline(r.Context(), id, limit, offset)
	if err != nil {
		httpx.WriteError(w, r, h.lg, "get_timeline_failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"order_id": id, "events": events})
}

func (h *TrackerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		httpx.WriteError(w, r, h.lg, "order_stats_failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, stats)
}
