package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/LilGuiGui/awesome-catering/internal/domain"
	apperrors "github.com/LilGuiGui/awesome-catering/internal/errors"
	"github.com/LilGuiGui/awesome-catering/internal/session"
)

type mockOrderSaver struct {
	SaveFunc func(ctx context.Context, order *domain.Order) error
}

func (m *mockOrderSaver) Save(ctx context.Context, order *domain.Order) error {
	return m.SaveFunc(ctx, order)
}

func newTestCompleteOrderUseCase(saver OrderSaver) *CompleteOrderUseCase {
	return NewCompleteOrderUseCase(saver, zap.NewNop(), 3, 0, "midtrans")
}

func stateWithSnapshot(orderID string) *session.State {
	state := session.NewState()
	state.Cart.AddLine(domain.NewCartLine("item-1", "Nasi Goreng", 25000, 2))
	state.PendingOrder = &domain.PendingOrderSnapshot{
		OrderID: orderID,
		Items: []domain.TaggedLine{
			{CartLine: domain.NewCartLine("item-1", "Nasi Goreng", 25000, 2), Type: domain.LineTypeMenu},
		},
		Total:     50000,
		Customer:  domain.Customer{Name: "Budi", Phone: "0812345", Email: "budi@example.com"},
		Notes:     "no chili",
		CreatedAt: time.Now().UTC(),
	}
	return state
}

func TestComplete_MissingOrderID(t *testing.T) {
	uc := newTestCompleteOrderUseCase(&mockOrderSaver{})

	err := uc.Complete(context.Background(), stateWithSnapshot("ORDER-1-abc"), "", "tx-1")

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestComplete_NoMatchingSnapshot(t *testing.T) {
	uc := newTestCompleteOrderUseCase(&mockOrderSaver{})

	err := uc.Complete(context.Background(), session.NewState(), "ORDER-1-abc", "tx-1")
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)

	err = uc.Complete(context.Background(), stateWithSnapshot("ORDER-2-xyz"), "ORDER-1-abc", "tx-1")
	_, ok = apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestComplete_SavesAndClearsSession(t *testing.T) {
	var saved *domain.Order
	saver := &mockOrderSaver{
		SaveFunc: func(ctx context.Context, order *domain.Order) error {
			saved = order
			return nil
		},
	}
	uc := newTestCompleteOrderUseCase(saver)
	state := stateWithSnapshot("ORDER-1-abc")

	err := uc.Complete(context.Background(), state, "ORDER-1-abc", "tx-99")
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, "ORDER-1-abc", saved.OrderID)
	assert.Equal(t, domain.PaymentPaid, saved.PaymentStatus)
	assert.Equal(t, domain.TrackingPreparing, saved.TrackingStatus)
	assert.Equal(t, "midtrans", saved.PaymentMethod)
	assert.Equal(t, "tx-99", saved.TransactionID)
	assert.Equal(t, "no chili", saved.Notes)
	assert.Equal(t, int64(50000), saved.Total)
	require.Len(t, saved.Items, 1)
	assert.Equal(t, domain.LineTypeMenu, saved.Items[0].Type)

	assert.True(t, state.Cart.IsEmpty())
	assert.Nil(t, state.PendingOrder)
	assert.Equal(t, "ORDER-1-abc", state.CurrentOrderID)
	assert.True(t, state.Dirty())
}

func TestComplete_RetriesTransientFailures(t *testing.T) {
	attempts := 0
	saver := &mockOrderSaver{
		SaveFunc: func(ctx context.Context, order *domain.Order) error {
			attempts++
			if attempts < 3 {
				return apperrors.NewPersistenceError("write failed", nil)
			}
			return nil
		},
	}
	uc := newTestCompleteOrderUseCase(saver)
	state := stateWithSnapshot("ORDER-1-abc")

	err := uc.Complete(context.Background(), state, "ORDER-1-abc", "tx-1")

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Nil(t, state.PendingOrder)
}

func TestComplete_AllAttemptsFailKeepsSnapshot(t *testing.T) {
	attempts := 0
	saver := &mockOrderSaver{
		SaveFunc: func(ctx context.Context, order *domain.Order) error {
			attempts++
			return apperrors.NewPersistenceError("write failed", nil)
		},
	}
	uc := newTestCompleteOrderUseCase(saver)
	state := stateWithSnapshot("ORDER-1-abc")

	err := uc.Complete(context.Background(), state, "ORDER-1-abc", "tx-1")

	assert.Equal(t, 3, attempts)
	_, ok := apperrors.IsPersistenceError(err)
	assert.True(t, ok)

	// Snapshot and cart survive so the client can retry the completion.
	assert.NotNil(t, state.PendingOrder)
	assert.False(t, state.Cart.IsEmpty())
	assert.Empty(t, state.CurrentOrderID)
}
