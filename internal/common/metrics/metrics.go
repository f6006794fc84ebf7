package metrics

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec

	// Orders counts successful submissions by order type.
	Orders *prometheus.CounterVec
	// Reports counts generated sales reports by trigger (http, queue, schedule).
	Reports *prometheus.CounterVec

	reg *prometheus.Registry
}

// NewServerMetrics registers the collectors under pizza_<service>_. Dashes in
// the service name become underscores.
func NewServerMetrics(service string) *ServerMetrics {
	service = strings.ReplaceAll(service, "-", "_")
	reg := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pizza",
		Subsystem: service,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pizza",
		Subsystem: service,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pizza",
		Subsystem: service,
		Name:      "orders_submitted_total",
		Help:      "Orders persisted, by order type.",
	}, []string{"order_type"})
	reports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pizza",
		Subsystem: service,
		Name:      "sales_reports_generated_total",
		Help:      "Sales reports generated, by trigger.",
	}, []string{"trigger"})

	reg.MustRegister(
		requests, latency, orders, reports,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &ServerMetrics{Requests: requests, LatencyMS: latency, Orders: orders, Reports: reports, reg: reg}
}

func (m *ServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// ObserveOrder and ObserveReport are nil-safe so services can run without metrics.
func (m *ServerMetrics) ObserveOrder(orderType string) {
	if m == nil {
		return
	}
	m.Orders.WithLabelValues(orderType).Inc()
}

func (m *ServerMetrics) ObserveReport(trigger string) {
	if m == nil {
		return
	}
	m.Reports.WithLabelValues(trigger).Inc()
}
