package handlers

import (
	"net/http"

	"github.com/sfsking/pizza-party-hq/internal/common/auth"
	"github.com/sfsking/pizza-party-hq/internal/common/httpx"
	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/domain"
	"github.com/sfsking/pizza-party-hq/internal/microservices/report/service"
)

type ReportHandler struct {
	service service.ReportServiceInterface
	lg      *logger.Logger
}

func NewReportHandler(s service.ReportServiceInterface, lg *logger.Logger) *ReportHandler {
	return &ReportHandler{service: s, lg: lg}
}

func (h *ReportHandler) GenerateSales(w http.ResponseWriter, r *http.Request) {
	rep, err := h.service.GenerateSalesReport(r.Context(), auth.ActorOf(r), r.URL.Query().Get("date"), service.TriggerManual)
	if err != nil {
		httpx.WriteError(w, r, h.lg, "generate_sales_report_failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, rep)
}

func (h *ReportHandler) EnqueueSales(w http.ResponseWriter, r *http.Request) {
	msg, err := h.service.EnqueueSalesReport(r.Context(), auth.ActorOf(r), r.URL.Query().Get("date"))
	if err != nil {
		httpx.WriteError(w, r, h.lg, "enqueue_sales_report_failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusAccepted, msg)
}

func (h *ReportHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.ListSalesReports(r.Context(), auth.ActorOf(r))
	if err != nil {
		httpx.WriteError(w, r, h.lg, "list_sales_reports_failed", err)
		return
	}
	if reports == nil {
		reports = []domain.SalesReport{}
	}
	httpx.WriteJSON(w, http.StatusOK, reports)
}

func (h *ReportHandler) DownloadSales(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	body, err := h.service.DownloadSalesReport(r.Context(), auth.ActorOf(r), date)
	if err != nil {
		httpx.WriteError(w, r, h.lg, "download_sales_report_failed", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="sales-`+date+`.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *ReportHandler) ExportProducts(w http.ResponseWriter, r *http.Request) {
	l, err := h.service.ExportProductListing(r.Context(), auth.ActorOf(r))
	if err != nil {
		httpx.WriteError(w, r, h.lg, "export_products_failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, l)
}

func (h *ReportHandler) ListProductListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.service.ListProductListings(r.Context(), auth.ActorOf(r))
	if err != nil {
		httpx.WriteError(w, r, h.lg, "list_product_listings_failed", err)
		return
	}
	if listings == nil {
		listings = []domain.ProductListing{}
	}
	httpx.WriteJSON(w, http.StatusOK, listings)
}

func (h *ReportHandler) DeleteProductListing(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProductListing(r.Context(), auth.ActorOf(r), r.PathValue("id")); err != nil {
		httpx.WriteError(w, r, h.lg, "delete_product_listing_failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ReportHandler) GetAutoReport(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.GetAutoReportTime(r.Context(), auth.ActorOf(r))
	if err != nil {
		httpx.WriteError(w, r, h.lg, "get_auto_report_failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, s)
}

func (h *ReportHandler) SetAutoReport(w http.ResponseWriter, r *http.Request) {
	var in domain.AutoReportSetting
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	s, err := h.service.SetAutoReportTime(r.Context(), auth.ActorOf(r), in.Time)
	if err != nil {
		httpx.WriteError(w, r, h.lg, "set_auto_report_failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, s)
}
