package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dookiees/bakery-backend/pkg/enums"
	"github.com/dookiees/bakery-backend/pkg/pagination"
)

func TestRepositoryListFiltersByStatus(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	mustCreateOrder(t, conn, 1, enums.OrderStatusPending)
	mustCreateOrder(t, conn, 2, enums.OrderStatusPaid)
	mustCreateOrder(t, conn, 3, enums.OrderStatusPending)

	all, total, err := repo.List(ctx, pagination.Normalize(pagination.Params{}), nil)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, all, 3)
	require.NotNil(t, all[0].Customer)
	assert.Equal(t, "Jane", all[0].Customer.Name)

	paid := enums.OrderStatusPaid
	filtered, total, err := repo.List(ctx, pagination.Normalize(pagination.Params{}), &paid)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, filtered, 1)
	assert.Equal(t, "DK-2026-000002", filtered[0].OrderCode)
}

func TestRepositoryFindByIDPreloads(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	created := mustCreateOrder(t, conn, 7, enums.OrderStatusPending)

	order, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Choc Chip", order.Items[0].MenuNameSnapshot)
	require.NotNil(t, order.Customer)
	require.NotNil(t, order.Address)
	assert.Equal(t, "123 Main St", order.Address.Address)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryUpdateStatus(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	created := mustCreateOrder(t, conn, 9, enums.OrderStatusPending)
	require.NoError(t, repo.UpdateStatus(ctx, created.ID, enums.OrderStatusPaid))

	updated, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPaid, updated.Status)
}
