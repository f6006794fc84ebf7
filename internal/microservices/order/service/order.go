package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/common/metrics"
	"github.com/sfsking/pizza-party-hq/internal/domain"
	"github.com/sfsking/pizza-party-hq/internal/microservices/order/repository"
)

// ProductLookup is the catalog read the order service depends on.
type ProductLookup interface {
	GetProducts(ctx context.Context, ids []string) (map[string]domain.Product, error)
}

type OrderServiceInterface interface {
	BuildCart(ctx context.Context, items []domain.CreateOrderItem) (*domain.Cart, error)
	Submit(ctx context.Context, actor domain.Actor, cart *domain.Cart, details domain.OrderDetails) (domain.Order, error)
	CreateOrder(ctx context.Context, actor domain.Actor, req domain.CreateOrderRequest, idemKey string) (domain.CreateOrderResponse, error)
	Advance(ctx context.Context, actor domain.Actor, id string) (domain.UpdateStatusResponse, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, id, target string) (domain.UpdateStatusResponse, error)
}

type OrderService struct {
	db       repository.OrderRepositoryInterface
	idem     repository.IdempotencyStoreInterface
	products ProductLookup
	metrics  *metrics.ServerMetrics
	lg       *logger.Logger
	now      func() time.Time
}

func NewOrderService(
	db repository.OrderRepositoryInterface,
	idem repository.IdempotencyStoreInterface,
	products ProductLookup,
	m *metrics.ServerMetrics,
	lg *logger.Logger,
) OrderServiceInterface {
	return &OrderService{db: db, idem: idem, products: products, metrics: m, lg: lg, now: time.Now}
}

// BuildCart turns request lines into a cart priced from the current catalog.
// Repeated lines for the same product are summed.
func (s *OrderService) BuildCart(ctx context.Context, items []domain.CreateOrderItem) (*domain.Cart, error) {
	var ids []string
	qty := make(map[string]int)
	for _, it := range items {
		if it.Quantity < 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if _, seen := qty[it.ProductID]; !seen {
			ids = append(ids, it.ProductID)
		}
		qty[it.ProductID] += it.Quantity
	}

	products, err := s.products.GetProducts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	cart := domain.NewCart()
	for _, id := range ids {
		p, ok := products[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
		}
		cart.AddItem(p)
		if err := cart.SetQuantity(id, qty[id]); err != nil {
			return nil, err
		}
	}
	return cart, nil
}

// Submit validates the cart and type-specific fields and persists a pending order.
// Checks run in order: empty cart, order type, table number, delivery info.
func (s *OrderService) Submit(ctx context.Context, actor domain.Actor, cart *domain.Cart, details domain.OrderDetails) (domain.Order, error) {
	if cart == nil || cart.IsEmpty() {
		return domain.Order{}, domain.ErrEmptyOrder
	}

	order := domain.Order{
		ID:          uuid.NewString(),
		Type:        domain.OrderType(strings.TrimSpace(details.OrderType)),
		TotalAmount: cart.Total(),
		Status:      domain.StatusPending,
		CreatedBy:   actor.ID,
		CreatedAt:   s.now().UTC(),
		Items:       cart.Items(),
	}

	switch order.Type {
	case domain.OrderTypeDineIn:
		table, err := strconv.Atoi(strings.TrimSpace(details.TableNumber))
		if err != nil {
			return domain.Order{}, domain.ErrMissingTableNumber
		}
		order.TableNumber = &table
	case domain.OrderTypeDelivery:
		name := strings.TrimSpace(details.CustomerName)
		addr := strings.TrimSpace(details.Address)
		loc := strings.TrimSpace(details.Location)
		if name == "" || addr == "" || loc == "" {
			return domain.Order{}, domain.ErrMissingDeliveryInfo
		}
		order.CustomerName, order.Address, order.Location = &name, &addr, &loc
	default:
		return domain.Order{}, domain.ErrInvalidOrderType
	}

	if err := s.db.AddOrder(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("failed to save order: %w", err)
	}

	s.metrics.ObserveOrder(string(order.Type))
	s.lg.InfoCtx(ctx, "order_created", map[string]any{
		"order_id":     order.ID,
		"order_type":   order.Type,
		"total_amount": order.TotalAmount.StringFixed(2),
		"items":        len(order.Items),
		"created_by":   actor.ID,
	})
	return order, nil
}

// CreateOrder is the HTTP entry point. With an idempotency key and a store, a
// replayed request returns the first response instead of creating a second order.
func (s *OrderService) CreateOrder(ctx context.Context, actor domain.Actor, req domain.CreateOrderRequest, idemKey string) (resp domain.CreateOrderResponse, err error) {
	if idemKey != "" && s.idem != nil {
		cached, rerr := s.idem.Reserve(ctx, idemKey)
		if rerr != nil {
			return domain.CreateOrderResponse{}, rerr
		}
		if cached != nil {
			s.lg.InfoCtx(ctx, "order_replayed", map[string]any{"order_id": cached.OrderID})
			return *cached, nil
		}
		defer func() {
			if err != nil {
				if rerr := s.idem.Release(context.WithoutCancel(ctx), idemKey); rerr != nil {
					s.lg.ErrorCtx(ctx, "idempotency_release_failed", rerr, nil)
				}
				return
			}
			if cerr := s.idem.Complete(context.WithoutCancel(ctx), idemKey, resp); cerr != nil {
				s.lg.ErrorCtx(ctx, "idempotency_complete_failed", cerr, nil)
			}
		}()
	}

	cart, err := s.BuildCart(ctx, req.Items)
	if err != nil {
		return domain.CreateOrderResponse{}, err
	}
	order, err := s.Submit(ctx, actor, cart, req.OrderDetails)
	if err != nil {
		return domain.CreateOrderResponse{}, err
	}
	return domain.CreateOrderResponse{
		OrderID:     order.ID,
		DisplayID:   domain.DisplayID(order.ID),
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
	}, nil
}
