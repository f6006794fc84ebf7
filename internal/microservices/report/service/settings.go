package service

import (
	"context"
	"strings"
	"time"

	"github.com/sfsking/pizza-party-hq/internal/domain"
	"github.com/sfsking/pizza-party-hq/internal/microservices/report/repository"
)

const clockLayout = "15:04"

// ParseClock validates an HH:MM time of day.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse(clockLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, 0, domain.ErrInvalidTime
	}
	return t.Hour(), t.Minute(), nil
}

func (s *ReportService) GetAutoReportTime(ctx context.Context, actor domain.Actor) (domain.AutoReportSetting, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.AutoReportSetting{}, err
	}
	return s.autoReportTime(ctx)
}

func (s *ReportService) autoReportTime(ctx context.Context) (domain.AutoReportSetting, error) {
	v, ok, err := s.settings.Get(ctx, repository.AutoReportTimeKey)
	if err != nil || !ok {
		return domain.AutoReportSetting{}, err
	}
	return domain.AutoReportSetting{Time: &v}, nil
}

// SetAutoReportTime stores HH:MM. A nil time turns the daily report off.
func (s *ReportService) SetAutoReportTime(ctx context.Context, actor domain.Actor, at *string) (domain.AutoReportSetting, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.AutoReportSetting{}, err
	}
	if at == nil {
		if err := s.settings.Delete(ctx, repository.AutoReportTimeKey); err != nil {
			return domain.AutoReportSetting{}, err
		}
		s.lg.Info("auto_report_disabled", map[string]any{"changed_by": actor.ID})
		return domain.AutoReportSetting{}, nil
	}

	h, m, err := ParseClock(*at)
	if err != nil {
		return domain.AutoReportSetting{}, err
	}
	v := time.Date(0, 1, 1, h, m, 0, 0, time.UTC).Format(clockLayout)
	if err := s.settings.Set(ctx, repository.AutoReportTimeKey, v); err != nil {
		return domain.AutoReportSetting{}, err
	}
	s.lg.Info("auto_report_time_set", map[string]any{"time": v, "changed_by": actor.ID})
	return domain.AutoReportSetting{Time: &v}, nil
}
