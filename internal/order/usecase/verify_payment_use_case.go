package usecase

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/LilGuiGui/awesome-catering/internal/domain"
	"github.com/LilGuiGui/awesome-catering/internal/dto"
	apperrors "github.com/LilGuiGui/awesome-catering/internal/errors"
)

type OrderGetter interface {
	Get(ctx context.Context, orderID string) (*domain.Order, error)
}

type StatusGateway interface {
	VerifyStatus(ctx context.Context, orderID string) (bool, error)
}

// VerifyPaymentUseCase answers "is this order paid": the durable record wins
// when present; otherwise the gateway's advisory status is consulted.
// Concurrent polls for the same order collapse into one gateway call.
type VerifyPaymentUseCase struct {
	orders  OrderGetter
	gateway StatusGateway
	sfg     singleflight.Group
	logger  *zap.Logger
}

func NewVerifyPaymentUseCase(orders OrderGetter, gateway StatusGateway, logger *zap.Logger) *VerifyPaymentUseCase {
	return &VerifyPaymentUseCase{
		orders:  orders,
		gateway: gateway,
		logger:  logger,
	}
}

func (uc *VerifyPaymentUseCase) Verify(ctx context.Context, orderID string) *dto.VerifyPaymentResponse {
	order, err := uc.orders.Get(ctx, orderID)
	if err == nil {
		return &dto.VerifyPaymentResponse{
			Success:     true,
			Paid:        order.PaymentStatus == domain.PaymentPaid,
			InDatabase:  true,
			OrderStatus: string(order.TrackingStatus),
		}
	}
	if _, ok := apperrors.IsNotFoundError(err); !ok {
		uc.logger.Warn("durable lookup failed, falling back to gateway", zap.String("orderId", orderID), zap.Error(err))
	}

	v, err, _ := uc.sfg.Do(orderID, func() (interface{}, error) {
		return uc.gateway.VerifyStatus(ctx, orderID)
	})
	if err != nil {
		// Advisory only: any gateway failure reads as unpaid.
		uc.logger.Warn("gateway status check failed", zap.String("orderId", orderID), zap.Error(err))
		return &dto.VerifyPaymentResponse{Success: true, Paid: false}
	}

	return &dto.VerifyPaymentResponse{
		Success: true,
		Paid:    v.(bool),
	}
}
