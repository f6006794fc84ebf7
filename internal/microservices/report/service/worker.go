package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp091 "github.com/rabbitmq/amqp091-go"

	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/connections/rabbitmq"
	"github.com/sfsking/pizza-party-hq/internal/domain"
)

var (
	ErrRequeue = errors.New("requeue")     // nack(requeue=true)
	ErrDLQ     = errors.New("dead_letter") // nack(requeue=false)
)

// Consumer is satisfied by *rabbitmq.Client.
type Consumer interface {
	Consume(queue, consumer string, prefetch int) (<-chan amqp091.Delivery, func() error, error)
}

type WorkerConfig struct {
	Name     string
	Prefetch int
	// Tick is how often the auto-report schedule is checked.
	Tick time.Duration
}

type ReportWorker struct {
	svc      *ReportService
	consumer Consumer
	cfg      WorkerConfig
	lg       *logger.Logger

	mu      sync.Mutex
	lastRun string // local date of the last scheduled report
}

// NewReportWorker builds the worker. consumer may be nil, in which case only
// the daily schedule runs.
func NewReportWorker(svc *ReportService, consumer Consumer, cfg WorkerConfig, lg *logger.Logger) *ReportWorker {
	if cfg.Name == "" {
		cfg.Name = "report-worker"
	}
	if cfg.Prefetch <= 0 {
		cfg.Prefetch = 1
	}
	if cfg.Tick <= 0 {
		cfg.Tick = time.Minute
	}
	return &ReportWorker{svc: svc, consumer: consumer, cfg: cfg, lg: lg}
}

// Run consumes report requests and drives the daily schedule until ctx is done.
// In-flight deliveries are drained before it returns.
func (w *ReportWorker) Run(ctx context.Context) error {
	var (
		msgs <-chan amqp091.Delivery
		stop func() error
	)
	if w.consumer != nil {
		var err error
		msgs, stop, err = w.consumer.Consume(rabbitmq.ReportsQueue, w.cfg.Name, w.cfg.Prefetch)
		if err != nil {
			return fmt.Errorf("consume %s: %w", rabbitmq.ReportsQueue, err)
		}
		w.lg.Info("worker_consuming", map[string]any{"queue": rabbitmq.ReportsQueue, "prefetch": w.cfg.Prefetch, "worker": w.cfg.Name})
	}

	done := make(chan struct{})
	if msgs != nil {
		go func() {
			defer close(done)
			for d := range msgs {
				w.ack(d, w.processOne(ctx, d))
			}
		}()
	} else {
		close(done)
	}

	ticker := time.NewTicker(w.cfg.Tick)
	defer ticker.Stop()
	w.Tick(ctx, time.Now())

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case now := <-ticker.C:
			w.Tick(ctx, now)
		}
	}

	w.lg.Info("graceful_shutdown", map[string]any{"worker": w.cfg.Name})
	if stop != nil {
		_ = stop()
	}
	<-done
	return nil
}

func (w *ReportWorker) ack(d amqp091.Delivery, err error) {
	switch {
	case err == nil:
		_ = d.Ack(false)
	case errors.Is(err, ErrDLQ):
		w.lg.Warn("report_request_dead_lettered", map[string]any{"message_id": d.MessageId, "error": err.Error()})
		_ = d.Nack(false, false)
	default:
		// a redelivered message that fails again goes to the dead-letter queue
		_ = d.Nack(false, !d.Redelivered)
	}
}

func (w *ReportWorker) processOne(ctx context.Context, d amqp091.Delivery) error {
	var msg domain.ReportRequestMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		return fmt.Errorf("%w: %v", ErrDLQ, err)
	}
	actor := domain.SystemActor
	if msg.RequestedBy != "" {
		actor = domain.Actor{ID: msg.RequestedBy, Role: domain.RoleAdmin}
	}

	_, err := w.svc.GenerateSalesReport(ctx, actor, msg.ReportDate, TriggerQueue)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrInvalidDate):
		return fmt.Errorf("%w: %v", ErrDLQ, err)
	default:
		w.lg.Error("report_request_failed", err, map[string]any{"report_date": msg.ReportDate})
		return fmt.Errorf("%w: %v", ErrRequeue, err)
	}
}

// Tick generates today's report once the local clock has reached the
// configured auto-report time. It runs at most once per local day.
func (w *ReportWorker) Tick(ctx context.Context, now time.Time) {
	setting, err := w.svc.autoReportTime(ctx)
	if err != nil {
		w.lg.Error("auto_report_setting_failed", err, nil)
		return
	}
	if setting.Time == nil {
		return
	}
	h, m, err := ParseClock(*setting.Time)
	if err != nil {
		w.lg.Warn("auto_report_time_invalid", map[string]any{"time": *setting.Time})
		return
	}

	local := now.In(w.svc.loc)
	today := local.Format(domain.DateLayout)
	due := time.Date(local.Year(), local.Month(), local.Day(), h, m, 0, 0, w.svc.loc)
	if local.Before(due) {
		return
	}

	w.mu.Lock()
	if w.lastRun == today {
		w.mu.Unlock()
		return
	}
	w.lastRun = today
	w.mu.Unlock()

	if _, err := w.svc.GenerateSalesReport(ctx, domain.SystemActor, today, TriggerSchedule); err != nil {
		w.lg.Error("auto_report_failed", err, map[string]any{"report_date": today})
		w.mu.Lock()
		w.lastRun = ""
		w.mu.Unlock()
	}
}
