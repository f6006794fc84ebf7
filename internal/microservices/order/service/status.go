package service

import (
	"context"

	"github.com/sfsking/pizza-party-hq/internal/domain"
)

// Advance moves the order one step forward. Terminal orders are left untouched.
func (s *OrderService) Advance(ctx context.Context, actor domain.Actor, id string) (domain.UpdateStatusResponse, error) {
	current, err := s.db.GetStatus(ctx, id)
	if err != nil {
		return domain.UpdateStatusResponse{}, err
	}
	next, changed := domain.Advance(current)
	return s.apply(ctx, actor, id, current, next, changed)
}

// UpdateStatus accepts only the immediate next state as target. Terminal
// orders ignore the target entirely, even an unknown one.
func (s *OrderService) UpdateStatus(ctx context.Context, actor domain.Actor, id, target string) (domain.UpdateStatusResponse, error) {
	current, err := s.db.GetStatus(ctx, id)
	if err != nil {
		return domain.UpdateStatusResponse{}, err
	}
	if current.Terminal() {
		return s.apply(ctx, actor, id, current, current, false)
	}
	want, err := domain.ParseStatus(target)
	if err != nil {
		return domain.UpdateStatusResponse{}, err
	}
	next, changed, err := domain.Transition(current, want)
	if err != nil {
		return domain.UpdateStatusResponse{}, err
	}
	return s.apply(ctx, actor, id, current, next, changed)
}

func (s *OrderService) apply(ctx context.Context, actor domain.Actor, id string, from, to domain.OrderStatus, changed bool) (domain.UpdateStatusResponse, error) {
	if !changed {
		return domain.UpdateStatusResponse{OrderID: id, Status: from}, nil
	}
	if err := s.db.UpdateStatus(ctx, id, from, to, actor.ID); err != nil {
		return domain.UpdateStatusResponse{}, err
	}
	s.lg.InfoCtx(ctx, "order_status_changed", map[string]any{
		"order_id": id, "from": from, "to": to, "changed_by": actor.ID,
	})
	return domain.UpdateStatusResponse{OrderID: id, Status: to, Changed: true}, nil
}
