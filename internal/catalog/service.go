package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dookiees/bakery-backend/pkg/db/models"
	pkgerrors "github.com/dookiees/bakery-backend/pkg/errors"
	"github.com/dookiees/bakery-backend/pkg/logger"
	"github.com/dookiees/bakery-backend/pkg/pagination"
)

// Service exposes storefront catalog reads.
type Service interface {
	ListProducts(ctx context.Context, params pagination.Params) *ProductListResult
	GetProductBySlug(ctx context.Context, slug string) (*ProductDTO, error)
	ListFeatured(ctx context.Context) []ProductDTO
}

// ProductListResult is one page of products plus pagination metadata.
type ProductListResult struct {
	Products []ProductDTO
	Meta     pagination.Meta
}

type menuReader interface {
	ListAvailable(ctx context.Context, params pagination.Params) ([]models.Menu, int64, error)
	FindBySlug(ctx context.Context, slug string) (*models.Menu, error)
	ListBestSellers(ctx context.Context) ([]models.Menu, error)
}

type service struct {
	repo menuReader
	log  *logger.Logger
}

// NewService constructs a catalog service instance.
func NewService(repo menuReader, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, log: log}, nil
}

// ListProducts returns one page of the catalog. Backend failures degrade to an
// empty page so the storefront renders an empty state instead of an error.
func (s *service) ListProducts(ctx context.Context, params pagination.Params) *ProductListResult {
	params = pagination.Normalize(params)

	menus, total, err := s.repo.ListAvailable(ctx, params)
	if err != nil {
		s.log.Error(ctx, "catalog list degraded to empty", err)
		return &ProductListResult{
			Products: []ProductDTO{},
			Meta:     pagination.NewMeta(params, 0),
		}
	}

	products := make([]ProductDTO, 0, len(menus))
	for i := range menus {
		products = append(products, toProductDTO(&menus[i]))
	}
	return &ProductListResult{
		Products: products,
		Meta:     pagination.NewMeta(params, total),
	}
}

// GetProductBySlug resolves a single available product. Unknown slugs and
// backend failures both surface as not-found; the storefront shows the same
// page either way.
func (s *service) GetProductBySlug(ctx context.Context, slug string) (*ProductDTO, error) {
	menu, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Error(ctx, "catalog slug lookup failed", err)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
	}
	dto := toProductDTO(menu)
	return &dto, nil
}

// ListFeatured returns the best-seller subset of the catalog, degrading to an
// empty list on backend failure.
func (s *service) ListFeatured(ctx context.Context) []ProductDTO {
	menus, err := s.repo.ListBestSellers(ctx)
	if err != nil {
		s.log.Error(ctx, "featured list degraded to empty", err)
		return []ProductDTO{}
	}
	products := make([]ProductDTO, 0, len(menus))
	for i := range menus {
		products = append(products, toProductDTO(&menus[i]))
	}
	return products
}
