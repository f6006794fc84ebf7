package handlers

import (
	"github.com/sfsking/pizza-party-hq/internal/common/auth"
	"github.com/sfsking/pizza-party-hq/internal/common/httpx"
	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/microservices/report/service"
)

type Handler struct {
	ReportHandler *ReportHandler
}

func New(s service.ReportServiceInterface, lg *logger.Logger) *Handler {
	return &Handler{
		ReportHandler: NewReportHandler(s, lg),
	}
}

// Register mounts the admin report routes.
func (h *Handler) Register(rt *httpx.Router) {
	rh := h.ReportHandler
	rt.HandleFunc("POST /api/v1/reports/sales", auth.RequireAdmin(rh.GenerateSales))
	rt.HandleFunc("POST /api/v1/reports/sales/enqueue", auth.RequireAdmin(rh.EnqueueSales))
	rt.HandleFunc("GET /api/v1/reports/sales", auth.RequireAdmin(rh.ListSales))
	rt.HandleFunc("GET /api/v1/reports/sales/{date}/download", auth.RequireAdmin(rh.DownloadSales))
	rt.HandleFunc("POST /api/v1/reports/products", auth.RequireAdmin(rh.ExportProducts))
	rt.HandleFunc("GET /api/v1/reports/products", auth.RequireAdmin(rh.ListProductListings))
	rt.HandleFunc("DELETE /api/v1/reports/products/{id}", auth.RequireAdmin(rh.DeleteProductListing))
	rt.HandleFunc("GET /api/v1/settings/auto-report", auth.RequireAdmin(rh.GetAutoReport))
	rt.HandleFunc("PUT /api/v1/settings/auto-report", auth.RequireAdmin(rh.SetAutoReport))
}
