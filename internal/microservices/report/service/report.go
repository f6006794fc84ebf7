package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sfsking/pizza-party-hq/internal/common/blob"
	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/common/metrics"
	"github.com/sfsking/pizza-party-hq/internal/domain"
	"github.com/sfsking/pizza-party-hq/internal/microservices/report/repository"
)

// Report triggers, used as the metrics label and in logs.
const (
	TriggerManual   = "manual"
	TriggerQueue    = "queue"
	TriggerSchedule = "schedule"
)

// OrderSource loads orders created in [start, end).
type OrderSource interface {
	OrdersBetween(ctx context.Context, start, end time.Time) ([]domain.OrderView, error)
}

// ProductSource returns the whole catalog, inactive products included.
type ProductSource interface {
	AllProducts(ctx context.Context) ([]domain.Product, error)
}

// Publisher sends a message to the broker and waits for the confirm.
type Publisher interface {
	Publish(ctx context.Context, exchange, key, messageID string, body []byte) error
}

type ReportServiceInterface interface {
	GenerateSalesReport(ctx context.Context, actor domain.Actor, date, trigger string) (domain.SalesReport, error)
	ListSalesReports(ctx context.Context, actor domain.Actor) ([]domain.SalesReport, error)
	DownloadSalesReport(ctx context.Context, actor domain.Actor, date string) ([]byte, error)
	EnqueueSalesReport(ctx context.Context, actor domain.Actor, date string) (domain.ReportRequestMessage, error)

	ExportProductListing(ctx context.Context, actor domain.Actor) (domain.ProductListing, error)
	ListProductListings(ctx context.Context, actor domain.Actor) ([]domain.ProductListing, error)
	DeleteProductListing(ctx context.Context, actor domain.Actor, id string) error

	GetAutoReportTime(ctx context.Context, actor domain.Actor) (domain.AutoReportSetting, error)
	SetAutoReportTime(ctx context.Context, actor domain.Actor, at *string) (domain.AutoReportSetting, error)
}

type ReportService struct {
	reports  repository.ReportRepositoryInterface
	settings repository.SettingsRepositoryInterface
	store    blob.StoreInterface
	orders   OrderSource
	products ProductSource
	pub      Publisher
	metrics  *metrics.ServerMetrics
	lg       *logger.Logger
	loc      *time.Location
	now      func() time.Time
}

type Deps struct {
	Store    blob.StoreInterface
	Orders   OrderSource
	Products ProductSource
	// Publisher is optional; without it EnqueueSalesReport fails with ErrQueueUnavailable.
	Publisher Publisher
	Metrics   *metrics.ServerMetrics
	Location  *time.Location
}

func NewReportService(repo *repository.Repository, d Deps, lg *logger.Logger) *ReportService {
	loc := d.Location
	if loc == nil {
		loc = time.Local
	}
	return &ReportService{
		reports:  repo.ReportRepo,
		settings: repo.SettingsRepo,
		store:    d.Store,
		orders:   d.Orders,
		products: d.Products,
		pub:      d.Publisher,
		metrics:  d.Metrics,
		lg:       lg,
		loc:      loc,
		now:      time.Now,
	}
}

// salesDocument is the JSON file written to the blob store.
type salesDocument struct {
	ReportDate   string             `json:"report_date"`
	TotalOrders  int                `json:"total_orders"`
	TotalRevenue decimal.Decimal    `json:"total_revenue"`
	GeneratedAt  time.Time          `json:"generated_at"`
	Orders       []domain.OrderView `json:"orders"`
}

func salesKey(date string) string { return "sales/" + date + ".json" }

func requireAdmin(actor domain.Actor) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

// GenerateSalesReport writes the day's report document and upserts its record.
// Running it twice for the same date replaces both.
func (s *ReportService) GenerateSalesReport(ctx context.Context, actor domain.Actor, date, trigger string) (domain.SalesReport, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.SalesReport{}, err
	}
	ref, err := domain.ParseDate(date, s.loc, s.now())
	if err != nil {
		return domain.SalesReport{}, err
	}
	start, end := domain.DayWindow(ref, s.loc)
	orders, err := s.orders.OrdersBetween(ctx, start, end)
	if err != nil {
		return domain.SalesReport{}, fmt.Errorf("load orders for report: %w", err)
	}
	stats := domain.AggregateStats(orders, ref, s.loc)
	if orders == nil {
		orders = []domain.OrderView{}
	}

	generatedAt := s.now().UTC()
	body, err := json.MarshalIndent(salesDocument{
		ReportDate:   stats.Date,
		TotalOrders:  stats.TotalOrders,
		TotalRevenue: stats.Revenue,
		GeneratedAt:  generatedAt,
		Orders:       orders,
	}, "", "  ")
	if err != nil {
		return domain.SalesReport{}, fmt.Errorf("encode sales report: %w", err)
	}

	key := salesKey(stats.Date)
	if err := s.store.Upload(ctx, key, "application/json", body); err != nil {
		return domain.SalesReport{}, fmt.Errorf("upload sales report: %w", err)
	}

	rep := domain.SalesReport{
		ReportDate:   stats.Date,
		TotalOrders:  stats.TotalOrders,
		TotalRevenue: stats.Revenue,
		FilePath:     key,
		GeneratedBy:  actor.ID,
		GeneratedAt:  generatedAt,
	}
	if err := s.reports.UpsertSalesReport(ctx, rep); err != nil {
		return domain.SalesReport{}, err
	}

	s.metrics.ObserveReport(trigger)
	s.lg.Info("sales_report_generated", map[string]any{
		"report_date":  rep.ReportDate,
		"total_orders": rep.TotalOrders,
		"revenue":      rep.TotalRevenue.StringFixed(2),
		"trigger":      trigger,
		"generated_by": actor.ID,
	})
	return rep, nil
}

func (s *ReportService) ListSalesReports(ctx context.Context, actor domain.Actor) ([]domain.SalesReport, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.reports.ListSalesReports(ctx)
}

func (s *ReportService) DownloadSalesReport(ctx context.Context, actor domain.Actor, date string) ([]byte, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, domain.ErrInvalidDate
	}
	rep, err := s.reports.GetSalesReport(ctx, date)
	if err != nil {
		return nil, err
	}
	body, err := s.store.Download(ctx, rep.FilePath)
	if errors.Is(err, blob.ErrNotFound) {
		return nil, domain.ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("download sales report: %w", err)
	}
	return body, nil
}
