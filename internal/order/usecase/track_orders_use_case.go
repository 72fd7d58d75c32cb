package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/LilGuiGui/awesome-catering/internal/domain"
	apperrors "github.com/LilGuiGui/awesome-catering/internal/errors"
	"github.com/LilGuiGui/awesome-catering/internal/session"
)

type TrackingRepository interface {
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	ListByPhone(ctx context.Context, phone string) ([]domain.Order, error)
}

// TrackOrdersUseCase serves the customer-facing lookups: phone-based
// tracking and the session-held current order. Done orders disappear from
// both views even though the records persist for admin history.
type TrackOrdersUseCase struct {
	orders TrackingRepository
	logger *zap.Logger
}

func NewTrackOrdersUseCase(orders TrackingRepository, logger *zap.Logger) *TrackOrdersUseCase {
	return &TrackOrdersUseCase{
		orders: orders,
		logger: logger,
	}
}

func (uc *TrackOrdersUseCase) TrackByPhone(ctx context.Context, state *session.State, phone string) ([]domain.Order, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, apperrors.NewValidationError("phone number is required", apperrors.ValidationDetail{
			Field:   "phone_number",
			Message: "phone_number is required",
		})
	}

	orders, err := uc.orders.ListByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, apperrors.NewNotFoundError("no active orders found for this phone number")
	}

	state.CustomerPhone = phone
	state.MarkDirty()

	return orders, nil
}

func (uc *TrackOrdersUseCase) SaveOrderToSession(ctx context.Context, state *session.State, orderID string) error {
	if orderID == "" {
		return apperrors.NewValidationError("order id is required", apperrors.ValidationDetail{
			Field:   "order_id",
			Message: "order_id is required",
		})
	}

	order, err := uc.orders.Get(ctx, orderID)
	if err != nil {
		return err
	}

	state.CurrentOrderID = orderID
	if order.Customer.Phone != "" {
		state.CustomerPhone = order.Customer.Phone
	}
	state.MarkDirty()

	return nil
}

// SessionOrder returns the session's current order. A missing or completed
// order evicts the id from the session.
func (uc *TrackOrdersUseCase) SessionOrder(ctx context.Context, state *session.State) (*domain.Order, error) {
	if state.CurrentOrderID == "" {
		return nil, apperrors.NewNotFoundError("no order in session")
	}

	order, err := uc.orders.Get(ctx, state.CurrentOrderID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			state.CurrentOrderID = ""
			state.MarkDirty()
		}
		return nil, err
	}

	if order.TrackingStatus.Terminal() {
		state.CurrentOrderID = ""
		state.MarkDirty()
		return nil, apperrors.NewNotFoundError("order completed")
	}

	return order, nil
}

// Status is a lightweight existence probe used by the client while waiting
// for the durable record to appear.
func (uc *TrackOrdersUseCase) Status(ctx context.Context, orderID string) (bool, domain.PaymentStatus, error) {
	order, err := uc.orders.Get(ctx, orderID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return false, "", nil
		}
		return false, "", err
	}
	return true, order.PaymentStatus, nil
}
