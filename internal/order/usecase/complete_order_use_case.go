package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/LilGuiGui/awesome-catering/internal/domain"
	apperrors "github.com/LilGuiGui/awesome-catering/internal/errors"
	"github.com/LilGuiGui/awesome-catering/internal/session"
)

type OrderSaver interface {
	Save(ctx context.Context, order *domain.Order) error
}

// CompleteOrderUseCase turns the session's pending snapshot into a durable
// order after the gateway confirms payment. The save is retried against the
// idempotent adapter; the cart is cleared only after the save lands.
type CompleteOrderUseCase struct {
	orders        OrderSaver
	logger        *zap.Logger
	saveAttempts  int
	retryBackoff  time.Duration
	paymentMethod string
}

func NewCompleteOrderUseCase(orders OrderSaver, logger *zap.Logger, saveAttempts int, retryBackoff time.Duration, paymentMethod string) *CompleteOrderUseCase {
	return &CompleteOrderUseCase{
		orders:        orders,
		logger:        logger,
		saveAttempts:  saveAttempts,
		retryBackoff:  retryBackoff,
		paymentMethod: paymentMethod,
	}
}

func (uc *CompleteOrderUseCase) Complete(ctx context.Context, state *session.State, orderID, transactionID string) error {
	if orderID == "" {
		return apperrors.NewValidationError("order id is required", apperrors.ValidationDetail{
			Field:   "order_id",
			Message: "order_id is required",
		})
	}

	snapshot := state.PendingOrder
	if !snapshot.Matches(orderID) {
		return apperrors.NewNotFoundError("order data not found")
	}

	order := &domain.Order{
		OrderID:        orderID,
		Items:          domain.OrderItemsFromLines(snapshot.Items),
		Total:          snapshot.Total,
		Customer:       snapshot.Customer,
		Notes:          snapshot.Notes,
		PaymentStatus:  domain.PaymentPaid,
		TrackingStatus: domain.TrackingPreparing,
		PaymentMethod:  uc.paymentMethod,
		TransactionID:  transactionID,
	}

	var lastErr error
	for attempt := 1; attempt <= uc.saveAttempts; attempt++ {
		lastErr = uc.orders.Save(ctx, order)
		if lastErr == nil {
			uc.logger.Info("order saved", zap.String("orderId", orderID), zap.Int("attempt", attempt))
			break
		}

		uc.logger.Warn("order save failed",
			zap.String("orderId", orderID),
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", uc.saveAttempts),
			zap.Error(lastErr),
		)
		if attempt < uc.saveAttempts {
			time.Sleep(uc.retryBackoff)
		}
	}
	if lastErr != nil {
		// Surfaced as a retry signal; the snapshot stays in the session so
		// the client can re-invoke the completion flow.
		return apperrors.NewPersistenceError("failed to save order", lastErr)
	}

	state.Cart.Clear()
	state.PendingOrder = nil
	state.CurrentOrderID = orderID
	state.MarkDirty()

	return nil
}
