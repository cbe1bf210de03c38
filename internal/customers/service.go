package customers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dookiees/bakery-backend/pkg/db/models"
	pkgerrors "github.com/dookiees/bakery-backend/pkg/errors"
	"github.com/dookiees/bakery-backend/pkg/pagination"
)

// CustomerDTO is the admin list row for a customer.
type CustomerDTO struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	TotalSpent float64   `json:"total_spent"`
	CreatedAt  time.Time `json:"created_at"`
}

// CustomerListResult is one page of customers plus pagination metadata.
type CustomerListResult struct {
	Customers []CustomerDTO
	Meta      pagination.Meta
}

type customerStore interface {
	List(ctx context.Context, params pagination.Params) ([]models.Customer, int64, error)
}

// Service exposes admin customer reads.
type Service interface {
	ListCustomers(ctx context.Context, params pagination.Params) (*CustomerListResult, error)
}

type service struct {
	repo customerStore
}

// NewService constructs a customers service instance.
func NewService(repo customerStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListCustomers(ctx context.Context, params pagination.Params) (*CustomerListResult, error) {
	params = pagination.Normalize(params)

	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to list customers")
	}

	dtos := make([]CustomerDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, toCustomerDTO(row))
	}
	return &CustomerListResult{Customers: dtos, Meta: pagination.NewMeta(params, total)}, nil
}

func toCustomerDTO(row models.Customer) CustomerDTO {
	return CustomerDTO{
		ID:         row.ID,
		Name:       row.Name,
		Phone:      row.Phone,
		TotalSpent: row.TotalSpent.InexactFloat64(),
		CreatedAt:  row.CreatedAt,
	}
}
