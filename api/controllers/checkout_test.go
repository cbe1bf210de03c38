package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dookiees/bakery-backend/internal/checkout"
)

type stubCheckout struct {
	executeFn func(ctx context.Context, input checkout.Input) (*checkout.Result, error)
}

func (s stubCheckout) Execute(ctx context.Context, input checkout.Input) (*checkout.Result, error) {
	if s.executeFn != nil {
		return s.executeFn(ctx, input)
	}
	return &checkout.Result{Success: true}, nil
}

func TestCheckoutWireShape(t *testing.T) {
	orderID := uuid.New()
	svc := stubCheckout{
		executeFn: func(ctx context.Context, input checkout.Input) (*checkout.Result, error) {
			if input.Customer.Phone != "0812345678" {
				t.Fatalf("unexpected phone %q", input.Customer.Phone)
			}
			if len(input.Items) != 1 || input.Items[0].Quantity != 2 {
				t.Fatalf("unexpected items %+v", input.Items)
			}
			if !input.Total.Equal(input.Items[0].Price.Mul(decimal.NewFromInt(2))) {
				t.Fatalf("unexpected total %s", input.Total)
			}
			return &checkout.Result{
				Success:   true,
				OrderCode: "DK-2026-000007",
				OrderID:   orderID,
				LineURL:   "https://line.me/R/oaMessage/dookiee.s/?hi",
			}, nil
		},
	}

	body := `{
		"customer": {"name": "Jane", "phone": "0812345678"},
		"address": "1 Sukhumvit Rd, Bangkok",
		"items": [{"id": "p1", "name": "Choc Chip", "price": 59, "quantity": 2}],
		"total": 118
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body))
	resp := httptest.NewRecorder()
	Checkout(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var result checkout.Result
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if !result.Success || result.OrderCode != "DK-2026-000007" || result.OrderID != orderID {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.LineURL == "" {
		t.Fatal("expected a line url")
	}
}

func TestCheckoutRejectsMissingFields(t *testing.T) {
	body := `{"customer": {"name": "Jane"}, "address": "", "items": [], "total": 0}`
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body))
	resp := httptest.NewRecorder()

	called := false
	svc := stubCheckout{executeFn: func(ctx context.Context, input checkout.Input) (*checkout.Result, error) {
		called = true
		return nil, nil
	}}
	Checkout(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if called {
		t.Fatal("service should not run for an invalid payload")
	}
}

func TestCheckoutRejectsUnknownFields(t *testing.T) {
	body := `{"customer": {"name": "Jane", "phone": "0812345678"}, "address": "x", "items": [{"id": "p1", "name": "C", "price": 1, "quantity": 1}], "total": 1, "coupon": "FREE"}`
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body))
	resp := httptest.NewRecorder()
	Checkout(stubCheckout{}, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
