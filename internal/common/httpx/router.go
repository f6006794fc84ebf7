package httpx

import (
	"net/http"

	"github.com/sfsking/pizza-party-hq/internal/common/metrics"
)

// Router is a ServeMux whose routes are instrumented by pattern.
type Router struct {
	mux     *http.ServeMux
	metrics *metrics.ServerMetrics
}

func NewRouter(m *metrics.ServerMetrics) *Router {
	return &Router{mux: http.NewServeMux(), metrics: m}
}

func (rt *Router) Handle(pattern string, h http.Handler) {
	rt.mux.Handle(pattern, Instrument(rt.metrics, pattern, h))
}

func (rt *Router) HandleFunc(pattern string, h http.HandlerFunc) {
	rt.Handle(pattern, h)
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.mux.ServeHTTP(w, r)
}
