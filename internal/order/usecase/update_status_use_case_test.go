package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/LilGuiGui/awesome-catering/internal/domain"
	apperrors "github.com/LilGuiGui/awesome-catering/internal/errors"
)

type mockStatusRepository struct {
	GetFunc                  func(ctx context.Context, orderID string) (*domain.Order, error)
	UpdateTrackingStatusFunc func(ctx context.Context, orderID string, status domain.TrackingStatus, notes string) error
}

func (m *mockStatusRepository) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	return m.GetFunc(ctx, orderID)
}

func (m *mockStatusRepository) UpdateTrackingStatus(ctx context.Context, orderID string, status domain.TrackingStatus, notes string) error {
	return m.UpdateTrackingStatusFunc(ctx, orderID, status, notes)
}

func statusRepoAt(current domain.TrackingStatus) *mockStatusRepository {
	return &mockStatusRepository{
		GetFunc: func(ctx context.Context, orderID string) (*domain.Order, error) {
			return &domain.Order{OrderID: orderID, TrackingStatus: current}, nil
		},
		UpdateTrackingStatusFunc: func(ctx context.Context, orderID string, status domain.TrackingStatus, notes string) error {
			return nil
		},
	}
}

func TestUpdateTrackingStatus_InvalidStatus(t *testing.T) {
	uc := NewUpdateStatusUseCase(statusRepoAt(domain.TrackingPreparing), domain.StatusMachine{}, zap.NewNop())

	err := uc.UpdateTrackingStatus(context.Background(), "ORDER-1-abc", "shipped", "")

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestUpdateTrackingStatus_UnknownOrder(t *testing.T) {
	repo := &mockStatusRepository{
		GetFunc: func(ctx context.Context, orderID string) (*domain.Order, error) {
			return nil, apperrors.NewNotFoundError("order not found")
		},
	}
	uc := NewUpdateStatusUseCase(repo, domain.StatusMachine{}, zap.NewNop())

	err := uc.UpdateTrackingStatus(context.Background(), "ORDER-missing", "ready", "")

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestUpdateTrackingStatus_ForwardTransition(t *testing.T) {
	var gotStatus domain.TrackingStatus
	var gotNotes string
	repo := statusRepoAt(domain.TrackingPreparing)
	repo.UpdateTrackingStatusFunc = func(ctx context.Context, orderID string, status domain.TrackingStatus, notes string) error {
		gotStatus = status
		gotNotes = notes
		return nil
	}
	uc := NewUpdateStatusUseCase(repo, domain.StatusMachine{}, zap.NewNop())

	err := uc.UpdateTrackingStatus(context.Background(), "ORDER-1-abc", "ready", "at the counter")

	require.NoError(t, err)
	assert.Equal(t, domain.TrackingReady, gotStatus)
	assert.Equal(t, "at the counter", gotNotes)
}

func TestUpdateTrackingStatus_BackwardRejected(t *testing.T) {
	repo := statusRepoAt(domain.TrackingDone)
	repo.UpdateTrackingStatusFunc = func(ctx context.Context, orderID string, status domain.TrackingStatus, notes string) error {
		t.Fatal("adapter must not be called for a rejected transition")
		return nil
	}
	uc := NewUpdateStatusUseCase(repo, domain.StatusMachine{}, zap.NewNop())

	err := uc.UpdateTrackingStatus(context.Background(), "ORDER-1-abc", "preparing", "")

	ce, ok := apperrors.IsConflictError(err)
	require.True(t, ok)
	assert.Contains(t, ce.Message, "done")
	assert.Contains(t, ce.Message, "preparing")
}

func TestUpdateTrackingStatus_SameStatusRejected(t *testing.T) {
	uc := NewUpdateStatusUseCase(statusRepoAt(domain.TrackingReady), domain.StatusMachine{}, zap.NewNop())

	err := uc.UpdateTrackingStatus(context.Background(), "ORDER-1-abc", "ready", "")

	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
}

func TestUpdateTrackingStatus_BackwardAllowedWhenConfigured(t *testing.T) {
	updated := false
	repo := statusRepoAt(domain.TrackingDone)
	repo.UpdateTrackingStatusFunc = func(ctx context.Context, orderID string, status domain.TrackingStatus, notes string) error {
		updated = true
		return nil
	}
	uc := NewUpdateStatusUseCase(repo, domain.StatusMachine{AllowBackward: true}, zap.NewNop())

	err := uc.UpdateTrackingStatus(context.Background(), "ORDER-1-abc", "preparing", "")

	require.NoError(t, err)
	assert.True(t, updated)
}
