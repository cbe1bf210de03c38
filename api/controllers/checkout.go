package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/dookiees/bakery-backend/api/responses"
	"github.com/dookiees/bakery-backend/api/validators"
	"github.com/dookiees/bakery-backend/internal/checkout"
	pkgerrors "github.com/dookiees/bakery-backend/pkg/errors"
	"github.com/dookiees/bakery-backend/pkg/logger"
)

type checkoutCustomerPayload struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

type checkoutItemPayload struct {
	ID       string  `json:"id" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"min=1"`
}

type checkoutPayload struct {
	Customer checkoutCustomerPayload `json:"customer" validate:"required"`
	Address  string                  `json:"address" validate:"required"`
	Items    []checkoutItemPayload   `json:"items" validate:"min=1,dive"`
	Total    float64                 `json:"total" validate:"gte=0"`
}

func (p checkoutPayload) toInput() checkout.Input {
	items := make([]checkout.LineItem, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, checkout.LineItem{
			ID:       item.ID,
			Name:     item.Name,
			Price:    decimal.NewFromFloat(item.Price),
			Quantity: item.Quantity,
		})
	}
	return checkout.Input{
		Customer: checkout.CustomerInput{
			Name:  p.Customer.Name,
			Phone: p.Customer.Phone,
		},
		Address: p.Address,
		Items:   items,
		Total:   decimal.NewFromFloat(p.Total),
	}
}

// Checkout places an order and returns the LINE deep link the storefront
// redirects to. The response keeps the historical flat wire shape.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Execute(ctx, payload.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, result)
	}
}
