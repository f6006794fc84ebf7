package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/sfsking/pizza-party-hq/internal/connections/rabbitmq"
	"github.com/sfsking/pizza-party-hq/internal/domain"
)

// EnqueueSalesReport asks the report worker to generate the report for date.
func (s *ReportService) EnqueueSalesReport(ctx context.Context, actor domain.Actor, date string) (domain.ReportRequestMessage, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.ReportRequestMessage{}, err
	}
	if s.pub == nil {
		return domain.ReportRequestMessage{}, domain.ErrQueueUnavailable
	}
	ref, err := domain.ParseDate(date, s.loc, s.now())
	if err != nil {
		return domain.ReportRequestMessage{}, err
	}

	msg := domain.ReportRequestMessage{
		ReportDate:  ref.In(s.loc).Format(domain.DateLayout),
		RequestedBy: actor.ID,
		RequestedAt: s.now().UTC(),
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return domain.ReportRequestMessage{}, err
	}
	if err := s.pub.Publish(ctx, rabbitmq.ReportsExchange, rabbitmq.ReportsKey, uuid.NewString(), body); err != nil {
		return domain.ReportRequestMessage{}, fmt.Errorf("publish report request: %w", err)
	}
	s.lg.Info("sales_report_enqueued", map[string]any{"report_date": msg.ReportDate, "requested_by": actor.ID})
	return msg, nil
}
