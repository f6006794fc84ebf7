package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sfsking/pizza-party-hq/internal/domain"
	"github.com/sfsking/pizza-party-hq/internal/microservices/tracker/repository"
)

type TrackerServiceInterface interface {
	ListOrders(ctx context.Context, f domain.OrderFilter) ([]domain.OrderView, error)
	ListOrdersByDate(ctx context.Context, f domain.OrderFilter) ([]domain.OrderDateGroup, error)
	GetOrder(ctx context.Context, id string) (domain.OrderView, error)
	GetOrderTimeline(ctx context.Context, id string, limit, offset int) ([]domain.StatusLogEntry, error)
	Stats(ctx context.Context, date string) (domain.DailyStats, error)
}

type TrackerService struct {
	repo repository.TrackerRepoInterface
	loc  *time.Location
	now  func() time.Time
}

func NewTrackerService(repo repository.TrackerRepoInterface, loc *time.Location) *TrackerService {
	if loc == nil {
		loc = time.Local
	}
	return &TrackerService{repo: repo, loc: loc, now: time.Now}
}

// normalizeFilter maps "all" to empty and rejects unknown values.
func normalizeFilter(f domain.OrderFilter) (status, orderType string, err error) {
	status = strings.TrimSpace(f.Status)
	if status == "all" {
		status = ""
	}
	if status != "" {
		if _, err := domain.ParseStatus(status); err != nil {
			return "", "", err
		}
	}

	orderType = strings.TrimSpace(f.Type)
	if orderType == "all" {
		orderType = ""
	}
	if orderType != "" && !domain.OrderType(orderType).Valid() {
		return "", "", domain.ErrInvalidOrderType
	}
	return status, orderType, nil
}

func (s *TrackerService) ListOrders(ctx context.Context, f domain.OrderFilter) ([]domain.OrderView, error) {
	status, orderType, err := normalizeFilter(f)
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.ListOrders(ctx, status, orderType)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return domain.FilterOrders(orders, f.Search), nil
}

func (s *TrackerService) ListOrdersByDate(ctx context.Context, f domain.OrderFilter) ([]domain.OrderDateGroup, error) {
	orders, err := s.ListOrders(ctx, f)
	if err != nil {
		return nil, err
	}
	groups := domain.GroupByDate(orders, s.loc)
	if groups == nil {
		groups = []domain.OrderDateGroup{}
	}
	return groups, nil
}

func (s *TrackerService) GetOrder(ctx context.Context, id string) (domain.OrderView, error) {
	return s.repo.GetOrder(ctx, id)
}

func (s *TrackerService) GetOrderTimeline(ctx context.Context, id string, limit, offset int) ([]domain.StatusLogEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.GetOrderTimeline(ctx, id, limit, offset)
}

// Stats aggregates the day window of date (YYYY-MM-DD, empty means today).
func (s *TrackerService) Stats(ctx context.Context, date string) (domain.DailyStats, error) {
	ref, err := domain.ParseDate(date, s.loc, s.now())
	if err != nil {
		return domain.DailyStats{}, err
	}
	start, end := domain.DayWindow(ref, s.loc)
	orders, err := s.repo.OrdersBetween(ctx, start, end)
	if err != nil {
		return domain.DailyStats{}, fmt.Errorf("load day orders: %w", err)
	}
	return domain.AggregateStats(orders, ref, s.loc), nil
}
