package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/LilGuiGui/awesome-catering/internal/domain"
	apperrors "github.com/LilGuiGui/awesome-catering/internal/errors"
)

type StatusRepository interface {
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	UpdateTrackingStatus(ctx context.Context, orderID string, status domain.TrackingStatus, notes string) error
}

// UpdateStatusUseCase enforces the tracking-status state machine on behalf
// of the adapter, which applies updates unconditionally.
type UpdateStatusUseCase struct {
	orders  StatusRepository
	machine domain.StatusMachine
	logger  *zap.Logger
}

func NewUpdateStatusUseCase(orders StatusRepository, machine domain.StatusMachine, logger *zap.Logger) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{
		orders:  orders,
		machine: machine,
		logger:  logger,
	}
}

func (uc *UpdateStatusUseCase) UpdateTrackingStatus(ctx context.Context, orderID, statusStr, notes string) error {
	status, ok := domain.ParseTrackingStatus(statusStr)
	if !ok {
		return apperrors.NewValidationError("invalid status", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of preparing, ready, done",
		})
	}

	order, err := uc.orders.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if !uc.machine.CanTransition(order.TrackingStatus, status) {
		return apperrors.NewConflictError(
			fmt.Sprintf("illegal transition from %s to %s", order.TrackingStatus, status),
		)
	}

	if err := uc.orders.UpdateTrackingStatus(ctx, orderID, status, notes); err != nil {
		return err
	}

	uc.logger.Info("tracking status updated",
		zap.String("orderId", orderID),
		zap.String("from", string(order.TrackingStatus)),
		zap.String("to", string(status)),
	)

	return nil
}
