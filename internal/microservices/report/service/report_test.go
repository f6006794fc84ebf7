package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfsking/pizza-party-hq/internal/common/blob"
	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/common/metrics"
	"github.com/sfsking/pizza-party-hq/internal/connections/rabbitmq"
	"github.com/sfsking/pizza-party-hq/internal/domain"
	"github.com/sfsking/pizza-party-hq/internal/microservices/report/repository"
)

type fakeReportRepo struct {
	mu       sync.Mutex
	sales    map[string]domain.SalesReport
	listings map[string]domain.ProductListing
	upserts  int
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{sales: map[string]domain.SalesReport{}, listings: map[string]domain.ProductListing{}}
}

func (f *fakeReportRepo) UpsertSalesReport(_ context.Context, r domain.SalesReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sales[r.ReportDate] = r
	f.upserts++
	return nil
}

func (f *fakeReportRepo) ListSalesReports(context.Context) ([]domain.SalesReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.SalesReport{}
	for _, r := range f.sales {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReportDate > out[j].ReportDate })
	return out, nil
}

func (f *fakeReportRepo) GetSalesReport(_ context.Context, date string) (domain.SalesReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.sales[date]
	if !ok {
		return domain.SalesReport{}, domain.ErrReportNotFound
	}
	return r, nil
}

func (f *fakeReportRepo) CreateListing(_ context.Context, l domain.ProductListing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listings[l.ID] = l
	return nil
}

func (f *fakeReportRepo) ListListings(context.Context) ([]domain.ProductListing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.ProductListing{}
	for _, l := range f.listings {
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeReportRepo) GetListing(_ context.Context, id string) (domain.ProductListing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.listings[id]
	if !ok {
		return domain.ProductListing{}, domain.ErrReportNotFound
	}
	return l, nil
}

func (f *fakeReportRepo) DeleteListing(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.listings[id]; !ok {
		return domain.ErrReportNotFound
	}
	delete(f.listings, id)
	return nil
}

type fakeSettings struct {
	values map[string]string
}

func (f *fakeSettings) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeSettings) Set(_ context.Context, key, value string) error {
	f.values[key] = value
	return nil
}

func (f *fakeSettings) Delete(_ context.Context, key string) error {
	delete(f.values, key)
	return nil
}

type fakeOrders struct {
	orders []domain.OrderView
	err    error
}

func (f *fakeOrders) OrdersBetween(_ context.Context, start, end time.Time) ([]domain.OrderView, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.OrderView
	for _, o := range f.orders {
		if !o.CreatedAt.Before(start) && o.CreatedAt.Before(end) {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeProducts struct {
	products []domain.Product
}

func (f *fakeProducts) AllProducts(context.Context) ([]domain.Product, error) {
	return f.products, nil
}

type published struct {
	exchange, key, id string
	body              []byte
}

type fakePublisher struct {
	msgs []published
	err  error
}

func (f *fakePublisher) Publish(_ context.Context, exchange, key, id string, body []byte) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, published{exchange, key, id, body})
	return nil
}

var (
	admin    = domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}
	employee = domain.Actor{ID: "emp-1", Role: domain.RoleEmployee}
	fixedNow = time.Date(2026, 3, 14, 21, 30, 0, 0, time.UTC)
)

type fixture struct {
	svc      *ReportService
	repo     *fakeReportRepo
	settings *fakeSettings
	store    *blob.MemoryStore
	orders   *fakeOrders
	pub      *fakePublisher
	metrics  *metrics.ServerMetrics
}

func newFixture(t *testing.T, withPublisher bool) *fixture {
	t.Helper()
	f := &fixture{
		repo:     newFakeReportRepo(),
		settings: &fakeSettings{values: map[string]string{}},
		store:    blob.NewMemoryStore(),
		orders: &fakeOrders{orders: []domain.OrderView{
			order("aaaaaaaa-0000-0000-0000-000000000001", domain.StatusPending, "10.99", time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)),
			order("bbbbbbbb-0000-0000-0000-000000000002", domain.StatusCompleted, "17.98", time.Date(2026, 3, 14, 14, 0, 0, 0, time.UTC)),
			order("cccccccc-0000-0000-0000-000000000003", domain.StatusCompleted, "5.00", time.Date(2026, 3, 13, 14, 0, 0, 0, time.UTC)),
		}},
		pub:     &fakePublisher{},
		metrics: metrics.NewServerMetrics("report-test"),
	}
	d := Deps{
		Store:    f.store,
		Orders:   f.orders,
		Products: &fakeProducts{products: []domain.Product{{ID: "p1", Name: "Margherita", Price: decimal.RequireFromString("8.99")}}},
		Metrics:  f.metrics,
		Location: time.UTC,
	}
	if withPublisher {
		d.Publisher = f.pub
	}
	repo := &repository.Repository{ReportRepo: f.repo, SettingsRepo: f.settings}
	f.svc = NewReportService(repo, d, logger.NewWithWriter("report-test", io.Discard))
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func order(id string, st domain.OrderStatus, total string, at time.Time) domain.OrderView {
	return domain.OrderView{
		ID:          id,
		DisplayID:   domain.DisplayID(id),
		Type:        domain.OrderTypeDineIn,
		Status:      st,
		TotalAmount: decimal.RequireFromString(total),
		CreatedAt:   at,
		Items:       []domain.OrderItemView{},
	}
}

func TestGenerateSalesReport_WritesDocumentAndRecord(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	rep, err := f.svc.GenerateSalesReport(ctx, admin, "2026-03-14", TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", rep.ReportDate)
	assert.Equal(t, 2, rep.TotalOrders)
	assert.Equal(t, "28.97", rep.TotalRevenue.StringFixed(2))
	assert.Equal(t, "sales/2026-03-14.json", rep.FilePath)
	assert.Equal(t, "admin-1", rep.GeneratedBy)

	body, err := f.store.Download(ctx, "sales/2026-03-14.json")
	require.NoError(t, err)
	var doc struct {
		ReportDate   string             `json:"report_date"`
		TotalOrders  int                `json:"total_orders"`
		TotalRevenue string             `json:"total_revenue"`
		Orders       []domain.OrderView `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Equal(t, "2026-03-14", doc.ReportDate)
	assert.Equal(t, 2, doc.TotalOrders)
	assert.Equal(t, "28.97", doc.TotalRevenue)
	assert.Len(t, doc.Orders, 2)

	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.Reports.WithLabelValues(TriggerManual)))
}

func TestGenerateSalesReport_EmptyDayAndRegeneration(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	rep, err := f.svc.GenerateSalesReport(ctx, admin, "2026-01-01", TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, 0, rep.TotalOrders)
	assert.Equal(t, "0.00", rep.TotalRevenue.StringFixed(2))

	_, err = f.svc.GenerateSalesReport(ctx, admin, "2026-01-01", TriggerManual)
	require.NoError(t, err)
	assert.Len(t, f.repo.sales, 1)
	assert.Equal(t, 2, f.repo.upserts)
	assert.Equal(t, []string{"sales/2026-01-01.json"}, f.store.Keys("sales/"))
}

func TestGenerateSalesReport_DefaultsToToday(t *testing.T) {
	f := newFixture(t, false)
	rep, err := f.svc.GenerateSalesReport(context.Background(), admin, "", TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", rep.ReportDate)
}

func TestGenerateSalesReport_Rejections(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	_, err := f.svc.GenerateSalesReport(ctx, employee, "2026-03-14", TriggerManual)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.GenerateSalesReport(ctx, admin, "2026/03/14", TriggerManual)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	f.orders.err = errors.New("db down")
	_, err = f.svc.GenerateSalesReport(ctx, admin, "2026-03-14", TriggerManual)
	require.Error(t, err)
	assert.Empty(t, f.store.Keys(""))
	assert.Empty(t, f.repo.sales)
}

func TestDownloadSalesReport(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	_, err := f.svc.DownloadSalesReport(ctx, admin, "2026-03-14")
	assert.ErrorIs(t, err, domain.ErrReportNotFound)

	_, err = f.svc.DownloadSalesReport(ctx, admin, "yesterday")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = f.svc.GenerateSalesReport(ctx, admin, "2026-03-14", TriggerManual)
	require.NoError(t, err)
	body, err := f.svc.DownloadSalesReport(ctx, admin, "2026-03-14")
	require.NoError(t, err)
	assert.Contains(t, string(body), `"report_date": "2026-03-14"`)

	require.NoError(t, f.store.Delete(ctx, "sales/2026-03-14.json"))
	_, err = f.svc.DownloadSalesReport(ctx, admin, "2026-03-14")
	assert.ErrorIs(t, err, domain.ErrReportNotFound)
}

func TestProductListingLifecycle(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	l, err := f.svc.ExportProductListing(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, "product-listings/products_20260314T213000Z.json", l.FilePath)
	assert.Equal(t, 1, l.ProductCount)

	body, err := f.store.Download(ctx, l.FilePath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "Margherita"))

	listings, err := f.svc.ListProductListings(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, listings, 1)

	require.NoError(t, f.svc.DeleteProductListing(ctx, admin, l.ID))
	assert.Empty(t, f.store.Keys("product-listings/"))
	assert.ErrorIs(t, f.svc.DeleteProductListing(ctx, admin, l.ID), domain.ErrReportNotFound)

	_, err = f.svc.ExportProductListing(ctx, employee)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAutoReportTimeSetting(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	s, err := f.svc.GetAutoReportTime(ctx, admin)
	require.NoError(t, err)
	assert.Nil(t, s.Time)

	at := "7:05"
	s, err = f.svc.SetAutoReportTime(ctx, admin, &at)
	require.NoError(t, err)
	require.NotNil(t, s.Time)
	assert.Equal(t, "07:05", *s.Time)

	bad := "25:00"
	_, err = f.svc.SetAutoReportTime(ctx, admin, &bad)
	assert.ErrorIs(t, err, domain.ErrInvalidTime)

	s, err = f.svc.SetAutoReportTime(ctx, admin, nil)
	require.NoError(t, err)
	assert.Nil(t, s.Time)
	assert.Empty(t, f.settings.values)
}

func TestEnqueueSalesReport(t *testing.T) {
	ctx := context.Background()

	_, err := newFixture(t, false).svc.EnqueueSalesReport(ctx, admin, "2026-03-14")
	assert.ErrorIs(t, err, domain.ErrQueueUnavailable)

	f := newFixture(t, true)
	msg, err := f.svc.EnqueueSalesReport(ctx, admin, "")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", msg.ReportDate)
	require.Len(t, f.pub.msgs, 1)
	assert.Equal(t, rabbitmq.ReportsExchange, f.pub.msgs[0].exchange)
	assert.Equal(t, rabbitmq.ReportsKey, f.pub.msgs[0].key)
	assert.NotEmpty(t, f.pub.msgs[0].id)

	var got domain.ReportRequestMessage
	require.NoError(t, json.Unmarshal(f.pub.msgs[0].body, &got))
	assert.Equal(t, "admin-1", got.RequestedBy)

	_, err = f.svc.EnqueueSalesReport(ctx, employee, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
