package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/sfsking/pizza-party-hq/internal/app/bootstrap"
	"github.com/sfsking/pizza-party-hq/internal/common/auth"
	"github.com/sfsking/pizza-party-hq/internal/common/config"
	"github.com/sfsking/pizza-party-hq/internal/common/httpx"
	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/common/metrics"
	"github.com/sfsking/pizza-party-hq/internal/microservices/catalog"
	"github.com/sfsking/pizza-party-hq/internal/microservices/order"
	"github.com/sfsking/pizza-party-hq/internal/microservices/report"
	reportsvc "github.com/sfsking/pizza-party-hq/internal/microservices/report/service"
	"github.com/sfsking/pizza-party-hq/internal/microservices/staff"
	"github.com/sfsking/pizza-party-hq/internal/microservices/tracker"
)

// Run serves the HTTP API until ctx is cancelled.
func Run(ctx context.Context, cfg config.Config, port int) error {
	lg := logger.New("api")

	inf, err := bootstrap.Open(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer inf.Close()

	verifier, err := newVerifier(ctx, cfg.Auth, lg)
	if err != nil {
		return err
	}

	m := metrics.NewServerMetrics("pizza-counter")
	rt := httpx.NewRouter(m)

	products := catalog.Mount(rt, inf.DB)
	staffSvc := staff.Mount(rt, inf.DB)
	order.Mount(rt, inf.DB, inf.Redis, products.CatalogService, m)
	orders := tracker.Mount(rt, inf.DB, inf.Location)

	deps := reportsvc.Deps{
		Store:    inf.Store,
		Orders:   orders,
		Products: products.CatalogService,
		Metrics:  m,
		Location: inf.Location,
	}
	if inf.MQ != nil {
		deps.Publisher = inf.MQ
	}
	report.Mount(rt, inf.DB, deps)

	root := http.NewServeMux()
	var mq mqPinger
	if inf.MQ != nil {
		mq = inf.MQ
	}
	root.HandleFunc("GET /health", healthHandler(inf.DB, mq))
	root.Handle("GET /metrics", m.Handler())
	root.Handle("/api/", auth.Middleware(verifier, staffSvc.StaffService)(rt))

	h := httpx.Chain(root, httpx.RequestID(), httpx.Recover(lg), httpx.AccessLog(lg))

	if port == 0 {
		port = cfg.HTTP.Port
	}
	srv := httpx.NewFromConfig(cfg.HTTP, ":"+strconv.Itoa(port), h)
	lg.Info("service_started", map[string]any{"port": port, "timezone": inf.Location.String()})
	return srv.Run(ctx)
}

// newVerifier verifies OIDC bearer tokens when an issuer is configured and
// otherwise trusts the gateway headers.
func newVerifier(ctx context.Context, cfg config.Auth, lg *logger.Logger) (auth.Verifier, error) {
	if cfg.Issuer == "" {
		lg.Warn("auth_header_mode", map[string]any{"header": auth.HeaderEmployeeID})
		return auth.HeaderVerifier{}, nil
	}
	v, err := auth.NewOIDCVerifier(ctx, cfg)
	if err != nil {
		return nil, err
	}
	lg.Info("auth_oidc_mode", map[string]any{"issuer": cfg.Issuer})
	return v, nil
}
