package service

import (
	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/common/metrics"
	"github.com/sfsking/pizza-party-hq/internal/microservices/order/repository"
)

type Service struct {
	OrderService OrderServiceInterface
}

func New(db *repository.Repository, products ProductLookup, m *metrics.ServerMetrics, lg *logger.Logger) *Service {
	return &Service{
		OrderService: NewOrderService(db.OrderRepo, db.IdemStore, products, m, lg),
	}
}
