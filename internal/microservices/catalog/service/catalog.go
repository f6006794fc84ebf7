package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/domain"
	"github.com/sfsking/pizza-party-hq/internal/microservices/catalog/repository"
)

type CatalogServiceInterface interface {
	ListProducts(ctx context.Context, actor domain.Actor) ([]domain.Product, error)
	AllProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	GetProducts(ctx context.Context, ids []string) (map[string]domain.Product, error)
	CreateProduct(ctx context.Context, actor domain.Actor, in domain.ProductInput) (domain.Product, error)
	UpdateProduct(ctx context.Context, actor domain.Actor, id string, in domain.ProductInput) (domain.Product, error)
	SetActive(ctx context.Context, actor domain.Actor, id string, active bool) (domain.Product, error)
}

type CatalogService struct {
	repo repository.ProductRepositoryInterface
	lg   *logger.Logger
	now  func() time.Time
}

func NewCatalogService(repo repository.ProductRepositoryInterface, lg *logger.Logger) CatalogServiceInterface {
	return &CatalogService{repo: repo, lg: lg, now: time.Now}
}

// ListProducts returns the whole catalog to admins and only active products to employees.
func (s *CatalogService) ListProducts(ctx context.Context, actor domain.Actor) ([]domain.Product, error) {
	return s.repo.List(ctx, !actor.IsAdmin())
}

func (s *CatalogService) AllProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx, false)
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	return s.repo.Get(ctx, id)
}

// GetProducts returns the active products among ids. Deactivated ones are
// left out so callers treat them as unknown.
func (s *CatalogService) GetProducts(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	if len(ids) == 0 {
		return map[string]domain.Product{}, nil
	}
	found, err := s.repo.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	for id, p := range found {
		if !p.Active {
			delete(found, id)
		}
	}
	return found, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, actor domain.Actor, in domain.ProductInput) (domain.Product, error) {
	if !actor.IsAdmin() {
		return domain.Product{}, domain.ErrForbidden
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := in.Validate(); err != nil {
		return domain.Product{}, err
	}

	p := domain.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Price:       in.Price.Round(2),
		ImageURL:    in.ImageURL,
		Description: in.Description,
		Active:      in.Active == nil || *in.Active,
		Quantity:    in.Quantity,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}
	s.lg.InfoCtx(ctx, "product_created", map[string]any{"product_id": p.ID, "by": actor.ID})
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, actor domain.Actor, id string, in domain.ProductInput) (domain.Product, error) {
	if !actor.IsAdmin() {
		return domain.Product{}, domain.ErrForbidden
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := in.Validate(); err != nil {
		return domain.Product{}, err
	}

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	p.Name = in.Name
	p.Price = in.Price.Round(2)
	p.ImageURL = in.ImageURL
	p.Description = in.Description
	p.Quantity = in.Quantity
	if err := s.repo.Update(ctx, p); err != nil {
		return domain.Product{}, err
	}
	if in.Active != nil && *in.Active != p.Active {
		if err := s.repo.SetActive(ctx, id, *in.Active); err != nil {
			return domain.Product{}, err
		}
		p.Active = *in.Active
	}
	s.lg.InfoCtx(ctx, "product_updated", map[string]any{"product_id": id, "by": actor.ID})
	return p, nil
}

func (s *CatalogService) SetActive(ctx context.Context, actor domain.Actor, id string, active bool) (domain.Product, error) {
	if !actor.IsAdmin() {
		return domain.Product{}, domain.ErrForbidden
	}
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return domain.Product{}, err
	}
	return s.repo.Get(ctx, id)
}
