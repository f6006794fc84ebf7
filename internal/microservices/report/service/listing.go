package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sfsking/pizza-party-hq/internal/common/blob"
	"github.com/sfsking/pizza-party-hq/internal/domain"
)

const listingTimeLayout = "20060102T150405Z"

type listingDocument struct {
	ExportedAt string           `json:"exported_at"`
	Count      int              `json:"product_count"`
	Products   []domain.Product `json:"products"`
}

// ExportProductListing snapshots the whole catalog into a timestamped file.
func (s *ReportService) ExportProductListing(ctx context.Context, actor domain.Actor) (domain.ProductListing, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.ProductListing{}, err
	}
	products, err := s.products.AllProducts(ctx)
	if err != nil {
		return domain.ProductListing{}, fmt.Errorf("load products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}

	now := s.now().UTC()
	body, err := json.MarshalIndent(listingDocument{
		ExportedAt: now.Format(listingTimeLayout),
		Count:      len(products),
		Products:   products,
	}, "", "  ")
	if err != nil {
		return domain.ProductListing{}, fmt.Errorf("encode product listing: %w", err)
	}

	key := "product-listings/products_" + now.Format(listingTimeLayout) + ".json"
	if err := s.store.Upload(ctx, key, "application/json", body); err != nil {
		return domain.ProductListing{}, fmt.Errorf("upload product listing: %w", err)
	}

	l := domain.ProductListing{
		ID:           uuid.NewString(),
		FilePath:     key,
		ProductCount: len(products),
		CreatedBy:    actor.ID,
		CreatedAt:    now,
	}
	if err := s.reports.CreateListing(ctx, l); err != nil {
		return domain.ProductListing{}, err
	}
	s.lg.Info("product_listing_exported", map[string]any{"file_path": key, "product_count": l.ProductCount})
	return l, nil
}

func (s *ReportService) ListProductListings(ctx context.Context, actor domain.Actor) ([]domain.ProductListing, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.reports.ListListings(ctx)
}

// DeleteProductListing removes the file and then the record. A file that is
// already gone does not block removing the record.
func (s *ReportService) DeleteProductListing(ctx context.Context, actor domain.Actor, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	l, err := s.reports.GetListing(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, l.FilePath); err != nil && !errors.Is(err, blob.ErrNotFound) {
		return fmt.Errorf("delete listing file: %w", err)
	}
	if err := s.reports.DeleteListing(ctx, id); err != nil {
		return err
	}
	s.lg.Info("product_listing_deleted", map[string]any{"listing_id": id, "file_path": l.FilePath})
	return nil
}
