package catalog

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dookiees/bakery-backend/pkg/db/models"
	pkgerrors "github.com/dookiees/bakery-backend/pkg/errors"
	"github.com/dookiees/bakery-backend/pkg/logger"
	"github.com/dookiees/bakery-backend/pkg/pagination"
)

type stubMenuReader struct {
	menus       []models.Menu
	total       int64
	bySlug      map[string]*models.Menu
	listErr     error
	slugErr     error
	featuredErr error
}

func (s *stubMenuReader) ListAvailable(_ context.Context, _ pagination.Params) ([]models.Menu, int64, error) {
	if s.listErr != nil {
		return nil, 0, s.listErr
	}
	return s.menus, s.total, nil
}

func (s *stubMenuReader) FindBySlug(_ context.Context, slug string) (*models.Menu, error) {
	if s.slugErr != nil {
		return nil, s.slugErr
	}
	if menu, ok := s.bySlug[slug]; ok {
		return menu, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubMenuReader) ListBestSellers(_ context.Context) ([]models.Menu, error) {
	if s.featuredErr != nil {
		return nil, s.featuredErr
	}
	return s.menus, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func testMenu(name string) models.Menu {
	return models.Menu{
		ID:    uuid.New(),
		Slug:  name,
		Name:  name,
		Price: decimal.NewFromInt(59),
	}
}

func TestServiceListProducts_ReturnsPage(t *testing.T) {
	repo := &stubMenuReader{menus: []models.Menu{testMenu("a"), testMenu("b")}, total: 14}
	svc, err := NewService(repo, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result := svc.ListProducts(context.Background(), pagination.Params{Page: 1, Limit: 2})

	if len(result.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(result.Products))
	}
	if result.Meta.TotalItems != 14 {
		t.Fatalf("expected total 14, got %d", result.Meta.TotalItems)
	}
	if result.Meta.TotalPages != 7 {
		t.Fatalf("expected 7 pages, got %d", result.Meta.TotalPages)
	}
	if result.Meta.CurrentPage != 1 || result.Meta.Limit != 2 {
		t.Fatalf("unexpected meta: %+v", result.Meta)
	}
}

func TestServiceListProducts_DegradesToEmptyOnFailure(t *testing.T) {
	repo := &stubMenuReader{listErr: errors.New("backend down")}
	svc, err := NewService(repo, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result := svc.ListProducts(context.Background(), pagination.Params{})

	if result == nil {
		t.Fatal("expected result, got nil")
	}
	if len(result.Products) != 0 {
		t.Fatalf("expected empty products, got %d", len(result.Products))
	}
	if result.Meta.TotalItems != 0 || result.Meta.TotalPages != 0 {
		t.Fatalf("expected empty meta, got %+v", result.Meta)
	}
}

func TestServiceGetProductBySlug(t *testing.T) {
	menu := testMenu("choc-chip")
	repo := &stubMenuReader{bySlug: map[string]*models.Menu{"choc-chip": &menu}}
	svc, err := NewService(repo, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.GetProductBySlug(context.Background(), "choc-chip")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if dto.Slug != "choc-chip" {
		t.Fatalf("expected slug choc-chip, got %s", dto.Slug)
	}

	_, err = svc.GetProductBySlug(context.Background(), "missing")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestServiceGetProductBySlug_FailsClosedOnBackendError(t *testing.T) {
	repo := &stubMenuReader{slugErr: errors.New("backend down")}
	svc, err := NewService(repo, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.GetProductBySlug(context.Background(), "anything")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on backend failure, got %v", err)
	}
}

func TestServiceListFeatured_DegradesToEmpty(t *testing.T) {
	repo := &stubMenuReader{featuredErr: errors.New("backend down")}
	svc, err := NewService(repo, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	products := svc.ListFeatured(context.Background())
	if products == nil || len(products) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", products)
	}
}
