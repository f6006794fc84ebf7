package service

import (
	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/microservices/catalog/repository"
)

type Service struct {
	CatalogService CatalogServiceInterface
}

func New(repo *repository.Repository, lg *logger.Logger) *Service {
	return &Service{
		CatalogService: NewCatalogService(repo.ProductRepo, lg),
	}
}
