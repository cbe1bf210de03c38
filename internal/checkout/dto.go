package checkout

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/dookiees/bakery-backend/pkg/errors"
)

// CustomerInput identifies the ordering customer. Phone is the natural dedup
// key across checkouts.
type CustomerInput struct {
	Name  string
	Phone string
}

// LineItem is one cart line carried into the order. Name and Price are frozen
// into the order item snapshot.
type LineItem struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// Input is everything the orchestrator needs to place an order.
type Input struct {
	Customer CustomerInput
	Address  string
	Items    []LineItem
	Total    decimal.Decimal
}

// Result reports a placed order plus the messaging deep link the storefront
// redirects to.
type Result struct {
	Success   bool      `json:"success"`
	OrderCode string    `json:"orderCode"`
	OrderID   uuid.UUID `json:"orderId"`
	LineURL   string    `json:"lineUrl"`
}

func (i *Input) normalize() {
	i.Customer.Name = strings.TrimSpace(i.Customer.Name)
	i.Customer.Phone = strings.TrimSpace(i.Customer.Phone)
	i.Address = strings.TrimSpace(i.Address)
}

func (i *Input) validate() error {
	var missing []string
	if i.Customer.Name == "" {
		missing = append(missing, "customer.name")
	}
	if i.Customer.Phone == "" {
		missing = append(missing, "customer.phone")
	}
	if i.Address == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing required checkout fields").
			WithDetails(map[string]any{"fields": missing})
	}
	if len(i.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	for _, item := range i.Items {
		if item.Quantity < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be at least 1").
				WithDetails(map[string]any{"item": item.ID})
		}
	}
	return nil
}
