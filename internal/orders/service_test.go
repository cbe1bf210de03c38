package orders

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dookiees/bakery-backend/pkg/db/models"
	"github.com/dookiees/bakery-backend/pkg/enums"
	pkgerrors "github.com/dookiees/bakery-backend/pkg/errors"
	"github.com/dookiees/bakery-backend/pkg/pagination"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:orders_%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	err = conn.AutoMigrate(
		&models.Customer{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return conn
}

func mustCreateOrder(t *testing.T, conn *gorm.DB, seq int, status enums.OrderStatus) *models.Order {
	t.Helper()

	customer := &models.Customer{Name: "Jane", Phone: fmt.Sprintf("08%08d", seq), TotalSpent: decimal.Zero}
	if err := conn.Create(customer).Error; err != nil {
		t.Fatalf("create customer: %v", err)
	}
	address := &models.Address{CustomerID: customer.ID, Address: "123 Main St"}
	if err := conn.Create(address).Error; err != nil {
		t.Fatalf("create address: %v", err)
	}
	order := &models.Order{
		OrderCode:   fmt.Sprintf("DK-2026-%06d", seq),
		CustomerID:  customer.ID,
		AddressID:   address.ID,
		TotalAmount: decimal.NewFromInt(118),
		Status:      status,
	}
	if err := conn.Create(order).Error; err != nil {
		t.Fatalf("create order: %v", err)
	}
	item := &models.OrderItem{
		OrderID:          order.ID,
		MenuNameSnapshot: "Choc Chip",
		UnitPrice:        decimal.NewFromInt(59),
		Quantity:         2,
		Subtotal:         decimal.NewFromInt(118),
	}
	if err := conn.Create(item).Error; err != nil {
		t.Fatalf("create order item: %v", err)
	}
	return order
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestServiceListOrders(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		mustCreateOrder(t, conn, i, enums.OrderStatusPending)
	}
	mustCreateOrder(t, conn, 4, enums.OrderStatusPaid)

	result, err := svc.ListOrders(ctx, pagination.Params{Page: 1, Limit: 10}, nil)
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if result.Meta.TotalItems != 4 {
		t.Fatalf("expected 4 orders, got %d", result.Meta.TotalItems)
	}
	if result.Orders[0].CustomerName != "Jane" {
		t.Fatalf("expected customer attached, got %+v", result.Orders[0])
	}

	paid := enums.OrderStatusPaid
	filtered, err := svc.ListOrders(ctx, pagination.Params{Page: 1, Limit: 10}, &paid)
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if filtered.Meta.TotalItems != 1 || len(filtered.Orders) != 1 {
		t.Fatalf("expected 1 paid order, got %+v", filtered.Meta)
	}
}

func TestServiceGetOrder(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	order := mustCreateOrder(t, conn, 1, enums.OrderStatusPending)

	detail, err := svc.GetOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if detail.OrderCode != order.OrderCode {
		t.Fatalf("expected order code %s, got %s", order.OrderCode, detail.OrderCode)
	}
	if detail.Address != "123 Main St" {
		t.Fatalf("expected address attached, got %q", detail.Address)
	}
	if len(detail.Items) != 1 || detail.Items[0].Name != "Choc Chip" {
		t.Fatalf("expected items attached, got %+v", detail.Items)
	}

	_, err = svc.GetOrder(ctx, uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceUpdateStatus_AllowsForwardTransitions(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	order := mustCreateOrder(t, conn, 1, enums.OrderStatusPending)

	dto, err := svc.UpdateStatus(ctx, order.ID, enums.OrderStatusPaid)
	if err != nil {
		t.Fatalf("update to paid: %v", err)
	}
	if dto.Status != enums.OrderStatusPaid {
		t.Fatalf("expected paid, got %s", dto.Status)
	}

	if _, err := svc.UpdateStatus(ctx, order.ID, enums.OrderStatusShipped); err != nil {
		t.Fatalf("update to shipped: %v", err)
	}

	var stored models.Order
	if err := conn.First(&stored, "id = ?", order.ID).Error; err != nil {
		t.Fatalf("load order: %v", err)
	}
	if stored.Status != enums.OrderStatusShipped {
		t.Fatalf("expected shipped persisted, got %s", stored.Status)
	}
}

func TestServiceUpdateStatus_RejectsIllegalTransitions(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	order := mustCreateOrder(t, conn, 1, enums.OrderStatusPending)

	_, err := svc.UpdateStatus(ctx, order.ID, enums.OrderStatusShipped)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}

	shipped := mustCreateOrder(t, conn, 2, enums.OrderStatusShipped)
	_, err = svc.UpdateStatus(ctx, shipped.ID, enums.OrderStatusCancelled)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected shipped orders to be terminal, got %v", err)
	}

	_, err = svc.UpdateStatus(ctx, order.ID, enums.OrderStatus("bogus"))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
