package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sfsking/pizza-party-hq/internal/app/api"
	"github.com/sfsking/pizza-party-hq/internal/app/reportworker"
	"github.com/sfsking/pizza-party-hq/internal/common/config"
	"github.com/sfsking/pizza-party-hq/internal/common/logger"
)

func main() {
	mode := flag.String("mode", "", "api | report-worker")
	cfgPath := flag.String("config", "", "path to YAML config (default: ./config.yaml or deploy/config.example.yaml)")
	port := flag.Int("port", 0, "api: http port, overrides http.port")
	workerName := flag.String("worker-name", "report-worker", "report-worker: consumer tag")
	prefetch := flag.Int("prefetch", 1, "report-worker: RabbitMQ prefetch")
	tick := flag.Duration("tick", time.Minute, "report-worker: auto-report schedule check interval")
	flag.Parse()

	lg := logger.New("bootstrap")

	path := *cfgPath
	if path == "" {
		p, err := config.FindConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, "no config file found: pass --config")
			os.Exit(2)
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		lg.Error("config_load_failed", err, map[string]any{"path": path})
		os.Exit(1)
	}
	logger.SetLevel(cfg.App.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch *mode {
	case "api":
		if err := api.Run(ctx, cfg, *port); err != nil {
			lg.Error("fatal", err, map[string]any{"mode": *mode})
			os.Exit(1)
		}
	case "report-worker":
		if err := reportworker.Run(ctx, cfg, reportworker.Config{
			WorkerName: *workerName,
			Prefetch:   *prefetch,
			Tick:       *tick,
		}); err != nil {
			lg.Error("fatal", err, map[string]any{"mode": *mode})
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "--mode is required: api | report-worker")
		os.Exit(2)
	}
	lg.Info("graceful_shutdown", map[string]any{"mode": *mode})
}
