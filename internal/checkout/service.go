package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	retry "github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dookiees/bakery-backend/internal/customers"
	"github.com/dookiees/bakery-backend/internal/ordercode"
	"github.com/dookiees/bakery-backend/pkg/db"
	"github.com/dookiees/bakery-backend/pkg/db/models"
	pkgerrors "github.com/dookiees/bakery-backend/pkg/errors"
	"github.com/dookiees/bakery-backend/pkg/enums"
	"github.com/dookiees/bakery-backend/pkg/logger"
	"github.com/dookiees/bakery-backend/pkg/metrics"
)

// codeConflictRetries bounds how often a checkout re-runs after losing an
// order-code uniqueness race. The counter-based allocator makes this rare;
// the retry covers codes inserted outside the allocator.
const codeConflictRetries = 2

const (
	stageAllocateCode = "allocate_code"
	stageCustomer     = "customer"
	stageAddress      = "address"
	stageOrder        = "order"
	stageOrderItems   = "order_items"
	stageTotalSpent   = "total_spent"
)

// Service places orders from cart snapshots.
type Service interface {
	Execute(ctx context.Context, input Input) (*Result, error)
}

type lineOAResolver interface {
	LineOA(ctx context.Context) string
}

type service struct {
	repo      *Repository
	customers *customers.Repository
	allocator *ordercode.Allocator
	dbClient  *db.Client
	settings  lineOAResolver
	metrics   *metrics.CheckoutMetrics
	log       *logger.Logger
	now       func() time.Time
}

// NewService constructs a checkout service instance.
func NewService(
	repo *Repository,
	customerRepo *customers.Repository,
	allocator *ordercode.Allocator,
	dbClient *db.Client,
	settings lineOAResolver,
	checkoutMetrics *metrics.CheckoutMetrics,
	log *logger.Logger,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("checkout repository required")
	}
	if customerRepo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	if allocator == nil {
		return nil, fmt.Errorf("order code allocator required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings resolver required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:      repo,
		customers: customerRepo,
		allocator: allocator,
		dbClient:  dbClient,
		settings:  settings,
		metrics:   checkoutMetrics,
		log:       log,
		now:       time.Now,
	}, nil
}

// Execute runs the checkout write sequence inside a single transaction: code
// allocation, customer upsert by phone, address insert, order insert, item
// snapshots, and the lifetime-spend update. A failure at any step rolls the
// whole set back. On success it composes the LINE deep link for the order.
func (s *service) Execute(ctx context.Context, input Input) (*Result, error) {
	input.normalize()
	if err := input.validate(); err != nil {
		return nil, err
	}

	started := s.now()

	var result *Result
	backoff := retry.WithMaxRetries(codeConflictRetries, retry.NewConstant(25*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		res, stage, err := s.executeOnce(ctx, input)
		if err != nil {
			s.metrics.IncFailure(stage)
			if db.IsUniqueViolation(err, "") {
				s.log.Warn(ctx, fmt.Sprintf("order code conflict at stage %s, retrying", stage))
				if resyncErr := s.allocator.Resync(ctx, s.now().Year()); resyncErr != nil {
					s.log.Error(ctx, "order code counter resync failed", resyncErr)
				}
				return retry.RetryableError(err)
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("checkout failed at %s", stage))
		}
		result = res
		return nil
	})
	if err != nil {
		s.metrics.ObserveDuration("failure", s.now().Sub(started))
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checkout failed")
	}

	lineOA := s.settings.LineOA(ctx)
	message := ComposeMessage(result.OrderCode, input.Customer, input.Address, input.Items, input.Total)
	result.LineURL = DeepLink(lineOA, message)

	s.metrics.IncSuccess()
	s.metrics.ObserveDuration("success", s.now().Sub(started))
	s.log.Info(s.log.WithOrderCode(ctx, result.OrderCode), "checkout completed")
	return result, nil
}

func (s *service) executeOnce(ctx context.Context, input Input) (*Result, string, error) {
	year := s.now().Year()

	var (
		result Result
		stage  string
	)
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		customerRepo := s.customers.WithTx(tx)

		stage = stageAllocateCode
		orderCode, err := s.allocator.WithTx(tx).Next(ctx, year)
		if err != nil {
			return err
		}
		s.metrics.IncCodeAllocated()

		stage = stageCustomer
		priorSpend := decimal.Zero
		existed := false
		var customerID uuid.UUID
		existing, err := customerRepo.FindByPhone(ctx, input.Customer.Phone)
		switch {
		case err == nil:
			existed = true
			priorSpend = existing.TotalSpent
			customerID = existing.ID
			if existing.Name != input.Customer.Name {
				if err := customerRepo.UpdateName(ctx, customerID, input.Customer.Name); err != nil {
					return err
				}
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			created := &models.Customer{
				Name:       input.Customer.Name,
				Phone:      input.Customer.Phone,
				TotalSpent: decimal.Zero,
			}
			if err := customerRepo.Create(ctx, created); err != nil {
				return err
			}
			customerID = created.ID
		default:
			return err
		}

		stage = stageAddress
		address := &models.Address{CustomerID: customerID, Address: input.Address}
		if err := repo.CreateAddress(ctx, address); err != nil {
			return err
		}

		stage = stageOrder
		order := &models.Order{
			OrderCode:   orderCode,
			CustomerID:  customerID,
			AddressID:   address.ID,
			TotalAmount: input.Total,
			Status:      enums.OrderStatusPending,
		}
		if err := repo.CreateOrder(ctx, order); err != nil {
			return err
		}

		stage = stageOrderItems
		if err := repo.CreateOrderItems(ctx, buildOrderItems(order.ID, input.Items)); err != nil {
			return err
		}

		stage = stageTotalSpent
		newSpent := input.Total
		if existed {
			newSpent = priorSpend.Add(input.Total)
		}
		if err := customerRepo.SetTotalSpent(ctx, customerID, newSpent); err != nil {
			return err
		}

		result = Result{Success: true, OrderCode: orderCode, OrderID: order.ID}
		return nil
	})
	if err != nil {
		return nil, stage, err
	}
	return &result, "", nil
}

// buildOrderItems freezes a snapshot of each cart line. Product ids that do
// not parse as uuids are stored as null references; the name/price snapshot
// keeps the line renderable either way.
func buildOrderItems(orderID uuid.UUID, items []LineItem) []models.OrderItem {
	rows := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		var menuID *uuid.UUID
		if parsed, err := uuid.Parse(item.ID); err == nil {
			menuID = &parsed
		}
		quantity := decimal.NewFromInt(int64(item.Quantity))
		rows = append(rows, models.OrderItem{
			OrderID:          orderID,
			MenuID:           menuID,
			MenuNameSnapshot: item.Name,
			UnitPrice:        item.Price,
			Quantity:         item.Quantity,
			Subtotal:         item.Price.Mul(quantity),
		})
	}
	return rows
}
