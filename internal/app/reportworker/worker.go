package reportworker

import (
	"context"
	"time"

	"github.com/sfsking/pizza-party-hq/internal/app/bootstrap"
	"github.com/sfsking/pizza-party-hq/internal/common/config"
	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/microservices/catalog"
	"github.com/sfsking/pizza-party-hq/internal/microservices/report"
	"github.com/sfsking/pizza-party-hq/internal/microservices/report/service"
	"github.com/sfsking/pizza-party-hq/internal/microservices/tracker/repository"
)

type Config struct {
	WorkerName string
	Prefetch   int
	Tick       time.Duration
}

// Run consumes report requests and drives the daily auto-report until ctx is cancelled.
func Run(ctx context.Context, cfg config.Config, wc Config) error {
	lg := logger.New("report-worker")

	inf, err := bootstrap.Open(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer inf.Close()

	svc := report.New(inf.DB, service.Deps{
		Store:    inf.Store,
		Orders:   repository.NewTrackerRepo(inf.DB),
		Products: catalog.New(inf.DB).CatalogService,
		Location: inf.Location,
	})

	var consumer service.Consumer
	if inf.MQ != nil {
		consumer = inf.MQ
	} else {
		lg.Warn("queue_disabled", map[string]any{"reason": "no rabbitmq host configured"})
	}

	w := service.NewReportWorker(svc.ReportService, consumer, service.WorkerConfig{
		Name:     wc.WorkerName,
		Prefetch: wc.Prefetch,
		Tick:     wc.Tick,
	}, lg)
	lg.Info("service_started", map[string]any{"worker": wc.WorkerName, "prefetch": wc.Prefetch})
	return w.Run(ctx)
}
