package repository

import (
	"context"
	"testing"
	"time"

	"copyshop/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestOrder(t *testing.T, customerID uuid.UUID, discountPercent int) *model.Order {
	t.Helper()

	crt := model.Cart{
		CustomerID: customerID,
		Lines: []model.LineItem{
			{
				ID:        uuid.New(),
				Kind:      model.KindProduct,
				ProductID: "P001",
				Name:      "Cuaderno A4",
				Quantity:  2,
				UnitPrice: decimal.NewFromInt(2500),
			},
			{
				ID:        uuid.New(),
				Kind:      model.KindPrint,
				Quantity:  1,
				UnitPrice: decimal.NewFromInt(200),
				PageCount: 10,
				Format:    model.FormatA4,
				Color:     false,
				FileRef:   "uploads/tp.pdf",
				FileName:  "tp.pdf",
			},
		},
	}

	order, err := model.NewOrder(crt, customerID, discountPercent, time.Now().UTC().Truncate(time.Microsecond))
	require.NoError(t, err)
	return order
}

func TestOrderRepository_CreateAndGetByID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())
	ctx := context.Background()

	order := buildTestOrder(t, uuid.New(), 10)
	require.NoError(t, repo.Create(ctx, order))

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, order.CustomerID, got.CustomerID)
	assert.Equal(t, model.StatePending, got.State)
	assert.Equal(t, 10, got.DiscountPercent)
	assert.Equal(t, int64(1), got.Version)

	// Lines keep their cart order and frozen prices.
	require.Len(t, got.Lines, 2)
	assert.Equal(t, model.KindProduct, got.Lines[0].Kind)
	assert.Equal(t, model.KindPrint, got.Lines[1].Kind)
	assert.True(t, decimal.NewFromInt(5200).Equal(got.Subtotal()))
	assert.True(t, decimal.RequireFromString("4680").Equal(got.Total()))

	// Creation recorded the initial history entry.
	require.Len(t, got.History, 1)
	assert.Equal(t, model.StatePending, got.History[0].State)
}

func TestOrderRepository_GetByID_NotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())

	got, err := repo.GetByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOrderRepository_UpdateState_AppendsHistory(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())
	ctx := context.Background()

	order := buildTestOrder(t, uuid.New(), 0)
	require.NoError(t, repo.Create(ctx, order))

	now := time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, order.Transition(model.StateCorrection, "falta firma", now))
	require.NoError(t, repo.UpdateState(ctx, order, 1))
	assert.Equal(t, int64(2), order.Version)

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, model.StateCorrection, got.State)
	assert.Equal(t, "falta firma", got.CorrectionReason)
	require.Len(t, got.History, 2)
	assert.Equal(t, "falta firma", got.History[1].Reason)

	// Leaving the correction state clears the live reason; history keeps it.
	require.NoError(t, got.Transition(model.StateInProgress, "", time.Now().UTC().Truncate(time.Microsecond)))
	require.NoError(t, repo.UpdateState(ctx, got, 2))

	final, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, final.CorrectionReason)
	require.Len(t, final.History, 3)
	assert.Equal(t, "falta firma", final.History[1].Reason)
}

func TestOrderRepository_UpdateState_Conflict(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())
	ctx := context.Background()

	order := buildTestOrder(t, uuid.New(), 0)
	require.NoError(t, repo.Create(ctx, order))

	// Two staff members read version 1; the first write wins.
	first, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)

	require.NoError(t, first.Transition(model.StateInProgress, "", time.Now().UTC()))
	require.NoError(t, repo.UpdateState(ctx, first, 1))

	require.NoError(t, second.Transition(model.StateCancelled, "", time.Now().UTC()))
	err = repo.UpdateState(ctx, second, 1)
	assert.ErrorIs(t, err, model.ErrConflict)

	// The losing write left no trace.
	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StateInProgress, got.State)
	assert.Len(t, got.History, 2)
}

func TestOrderRepository_UpdateState_UnknownOrder(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())
	ctx := context.Background()

	order := buildTestOrder(t, uuid.New(), 0)
	require.NoError(t, order.Transition(model.StateInProgress, "", time.Now().UTC()))

	err := repo.UpdateState(ctx, order, 1)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

func TestOrderRepository_ListByCustomer(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())
	ctx := context.Background()

	customerID := uuid.New()
	first := buildTestOrder(t, customerID, 0)
	first.CreatedAt = first.CreatedAt.Add(-time.Hour)
	first.History[0].At = first.CreatedAt
	require.NoError(t, repo.Create(ctx, first))

	second := buildTestOrder(t, customerID, 10)
	require.NoError(t, repo.Create(ctx, second))

	other := buildTestOrder(t, uuid.New(), 0)
	require.NoError(t, repo.Create(ctx, other))

	orders, err := repo.ListByCustomer(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	// Newest first, each fully rehydrated.
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
	assert.Len(t, orders[0].Lines, 2)
	assert.Len(t, orders[0].History, 1)
}
