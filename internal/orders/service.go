package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dookiees/bakery-backend/pkg/db/models"
	"github.com/dookiees/bakery-backend/pkg/enums"
	pkgerrors "github.com/dookiees/bakery-backend/pkg/errors"
	"github.com/dookiees/bakery-backend/pkg/pagination"
)

// OrderDTO is the admin list row for an order.
type OrderDTO struct {
	ID           uuid.UUID         `json:"id"`
	OrderCode    string            `json:"order_code"`
	CustomerName string            `json:"customer_name"`
	TotalAmount  float64           `json:"total_amount"`
	Status       enums.OrderStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
}

// OrderItemDTO is one frozen line of an order.
type OrderItemDTO struct {
	ID        uuid.UUID `json:"id"`
	MenuID    *string   `json:"menu_id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	Subtotal  float64   `json:"subtotal"`
}

// OrderDetailDTO is the full admin view of an order.
type OrderDetailDTO struct {
	OrderDTO
	CustomerPhone string         `json:"customer_phone"`
	Address       string         `json:"address"`
	Items         []OrderItemDTO `json:"items"`
}

// OrderListResult is one page of orders plus pagination metadata.
type OrderListResult struct {
	Orders []OrderDTO
	Meta   pagination.Meta
}

type orderStore interface {
	List(ctx context.Context, params pagination.Params, status *enums.OrderStatus) ([]models.Order, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
}

// Service exposes the admin order surface.
type Service interface {
	ListOrders(ctx context.Context, params pagination.Params, status *enums.OrderStatus) (*OrderListResult, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*OrderDetailDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, next enums.OrderStatus) (*OrderDTO, error)
}

type service struct {
	repo orderStore
}

// NewService constructs an order admin service instance.
func NewService(repo orderStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListOrders(ctx context.Context, params pagination.Params, status *enums.OrderStatus) (*OrderListResult, error) {
	params = pagination.Normalize(params)
	rows, total, err := s.repo.List(ctx, params, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing orders")
	}

	dtos := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, toOrderDTO(&rows[i]))
	}
	return &OrderListResult{Orders: dtos, Meta: pagination.NewMeta(params, total)}, nil
}

func (s *service) GetOrder(ctx context.Context, id uuid.UUID) (*OrderDetailDTO, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading order")
	}
	return toOrderDetailDTO(order), nil
}

// UpdateStatus moves an order along its lifecycle. Transitions outside
// pending→paid→shipped (or →cancelled before shipping) are rejected.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, next enums.OrderStatus) (*OrderDTO, error) {
	if !next.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").
			WithDetails(map[string]any{"status": next})
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading order")
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order status transition disallowed").
			WithDetails(map[string]any{"from": order.Status, "to": next})
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating order status")
	}
	order.Status = next
	dto := toOrderDTO(order)
	return &dto, nil
}

func toOrderDTO(order *models.Order) OrderDTO {
	dto := OrderDTO{
		ID:          order.ID,
		OrderCode:   order.OrderCode,
		TotalAmount: order.TotalAmount.InexactFloat64(),
		Status:      order.Status,
		CreatedAt:   order.CreatedAt,
	}
	if order.Customer != nil {
		dto.CustomerName = order.Customer.Name
	}
	return dto
}

func toOrderDetailDTO(order *models.Order) *OrderDetailDTO {
	detail := &OrderDetailDTO{OrderDTO: toOrderDTO(order)}
	if order.Customer != nil {
		detail.CustomerPhone = order.Customer.Phone
	}
	if order.Address != nil {
		detail.Address = order.Address.Address
	}
	detail.Items = make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		var menuID *string
		if item.MenuID != nil {
			id := item.MenuID.String()
			menuID = &id
		}
		detail.Items = append(detail.Items, OrderItemDTO{
			ID:        item.ID,
			MenuID:    menuID,
			Name:      item.MenuNameSnapshot,
			UnitPrice: item.UnitPrice.InexactFloat64(),
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal.InexactFloat64(),
		})
	}
	return detail
}
