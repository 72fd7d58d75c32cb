package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/LilGuiGui/awesome-catering/internal/domain"
	apperrors "github.com/LilGuiGui/awesome-catering/internal/errors"
	"github.com/LilGuiGui/awesome-catering/internal/session"
)

type mockTrackingRepository struct {
	GetFunc         func(ctx context.Context, orderID string) (*domain.Order, error)
	ListByPhoneFunc func(ctx context.Context, phone string) ([]domain.Order, error)
}

func (m *mockTrackingRepository) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	return m.GetFunc(ctx, orderID)
}

func (m *mockTrackingRepository) ListByPhone(ctx context.Context, phone string) ([]domain.Order, error) {
	return m.ListByPhoneFunc(ctx, phone)
}

func TestTrackByPhone_EmptyPhoneRejected(t *testing.T) {
	uc := NewTrackOrdersUseCase(&mockTrackingRepository{}, zap.NewNop())

	_, err := uc.TrackByPhone(context.Background(), session.NewState(), "   ")

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestTrackByPhone_NoOrders(t *testing.T) {
	repo := &mockTrackingRepository{
		ListByPhoneFunc: func(ctx context.Context, phone string) ([]domain.Order, error) {
			return nil, nil
		},
	}
	uc := NewTrackOrdersUseCase(repo, zap.NewNop())

	_, err := uc.TrackByPhone(context.Background(), session.NewState(), "0812345")

	nf, ok := apperrors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, "no active orders found for this phone number", nf.Message)
}

func TestTrackByPhone_RemembersPhone(t *testing.T) {
	repo := &mockTrackingRepository{
		ListByPhoneFunc: func(ctx context.Context, phone string) ([]domain.Order, error) {
			return []domain.Order{{OrderID: "ORDER-1-abc", TrackingStatus: domain.TrackingPreparing}}, nil
		},
	}
	uc := NewTrackOrdersUseCase(repo, zap.NewNop())
	state := session.NewState()

	orders, err := uc.TrackByPhone(context.Background(), state, " 0812345 ")
	require.NoError(t, err)

	assert.Len(t, orders, 1)
	assert.Equal(t, "0812345", state.CustomerPhone)
	assert.True(t, state.Dirty())
}

func TestSaveOrderToSession(t *testing.T) {
	repo := &mockTrackingRepository{
		GetFunc: func(ctx context.Context, orderID string) (*domain.Order, error) {
			return &domain.Order{
				OrderID:  orderID,
				Customer: domain.Customer{Phone: "0812345"},
			}, nil
		},
	}
	uc := NewTrackOrdersUseCase(repo, zap.NewNop())
	state := session.NewState()

	err := uc.SaveOrderToSession(context.Background(), state, "ORDER-1-abc")
	require.NoError(t, err)

	assert.Equal(t, "ORDER-1-abc", state.CurrentOrderID)
	assert.Equal(t, "0812345", state.CustomerPhone)
}

func TestSaveOrderToSession_UnknownOrder(t *testing.T) {
	repo := &mockTrackingRepository{
		GetFunc: func(ctx context.Context, orderID string) (*domain.Order, error) {
			return nil, apperrors.NewNotFoundError("order not found")
		},
	}
	uc := NewTrackOrdersUseCase(repo, zap.NewNop())
	state := session.NewState()

	err := uc.SaveOrderToSession(context.Background(), state, "ORDER-missing")

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.Empty(t, state.CurrentOrderID)
}

func TestSessionOrder_NoCurrentOrder(t *testing.T) {
	uc := NewTrackOrdersUseCase(&mockTrackingRepository{}, zap.NewNop())

	_, err := uc.SessionOrder(context.Background(), session.NewState())

	nf, ok := apperrors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, "no order in session", nf.Message)
}

func TestSessionOrder_ReturnsActiveOrder(t *testing.T) {
	repo := &mockTrackingRepository{
		GetFunc: func(ctx context.Context, orderID string) (*domain.Order, error) {
			return &domain.Order{OrderID: orderID, TrackingStatus: domain.TrackingReady}, nil
		},
	}
	uc := NewTrackOrdersUseCase(repo, zap.NewNop())
	state := session.NewState()
	state.CurrentOrderID = "ORDER-1-abc"

	order, err := uc.SessionOrder(context.Background(), state)
	require.NoError(t, err)

	assert.Equal(t, "ORDER-1-abc", order.OrderID)
	assert.Equal(t, "ORDER-1-abc", state.CurrentOrderID)
}

func TestSessionOrder_MissingOrderEvicted(t *testing.T) {
	repo := &mockTrackingRepository{
		GetFunc: func(ctx context.Context, orderID string) (*domain.Order, error) {
			return nil, apperrors.NewNotFoundError("order not found")
		},
	}
	uc := NewTrackOrdersUseCase(repo, zap.NewNop())
	state := session.NewState()
	state.CurrentOrderID = "ORDER-gone"

	_, err := uc.SessionOrder(context.Background(), state)

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.Empty(t, state.CurrentOrderID)
	assert.True(t, state.Dirty())
}

func TestSessionOrder_DoneOrderEvicted(t *testing.T) {
	repo := &mockTrackingRepository{
		GetFunc: func(ctx context.Context, orderID string) (*domain.Order, error) {
			return &domain.Order{OrderID: orderID, TrackingStatus: domain.TrackingDone}, nil
		},
	}
	uc := NewTrackOrdersUseCase(repo, zap.NewNop())
	state := session.NewState()
	state.CurrentOrderID = "ORDER-1-abc"

	_, err := uc.SessionOrder(context.Background(), state)

	nf, ok := apperrors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, "order completed", nf.Message)
	assert.Empty(t, state.CurrentOrderID)
}

func TestSessionOrder_StoreFailureKeepsID(t *testing.T) {
	repo := &mockTrackingRepository{
		GetFunc: func(ctx context.Context, orderID string) (*domain.Order, error) {
			return nil, apperrors.NewPersistenceError("read failed", nil)
		},
	}
	uc := NewTrackOrdersUseCase(repo, zap.NewNop())
	state := session.NewState()
	state.CurrentOrderID = "ORDER-1-abc"

	_, err := uc.SessionOrder(context.Background(), state)

	_, ok := apperrors.IsPersistenceError(err)
	assert.True(t, ok)
	assert.Equal(t, "ORDER-1-abc", state.CurrentOrderID)
}

func TestStatus_ExistenceProbe(t *testing.T) {
	repo := &mockTrackingRepository{
		GetFunc: func(ctx context.Context, orderID string) (*domain.Order, error) {
			if orderID == "ORDER-1-abc" {
				return &domain.Order{OrderID: orderID, PaymentStatus: domain.PaymentPaid}, nil
			}
			return nil, apperrors.NewNotFoundError("order not found")
		},
	}
	uc := NewTrackOrdersUseCase(repo, zap.NewNop())

	exists, status, err := uc.Status(context.Background(), "ORDER-1-abc")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, domain.PaymentPaid, status)

	exists, _, err = uc.Status(context.Background(), "ORDER-missing")
	require.NoError(t, err)
	assert.False(t, exists)
}
