package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/LilGuiGui/awesome-catering/internal/domain"
	"github.com/LilGuiGui/awesome-catering/internal/dto"
	apperrors "github.com/LilGuiGui/awesome-catering/internal/errors"
	"github.com/LilGuiGui/awesome-catering/internal/session"
)

type PaymentGateway interface {
	CreateTransaction(ctx context.Context, lines []domain.TaggedLine, customer domain.Customer, baseURL string) (*dto.GatewayTransaction, error)
}

// CheckoutUseCase hands the session cart to the payment gateway and captures
// the pending-order snapshot used as the reconciliation fallback.
type CheckoutUseCase struct {
	gateway PaymentGateway
	logger  *zap.Logger
}

func NewCheckoutUseCase(gateway PaymentGateway, logger *zap.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{
		gateway: gateway,
		logger:  logger,
	}
}

type CheckoutInput struct {
	Name    string
	Phone   string
	Email   string
	Notes   string
	BaseURL string
}

func (uc *CheckoutUseCase) Checkout(ctx context.Context, state *session.State, in CheckoutInput) (*dto.CheckoutResponse, error) {
	lines := state.Cart.AllLinesTagged()
	total := state.Cart.Total()

	if len(lines) == 0 || total <= 0 {
		return nil, apperrors.NewValidationError("cart is empty")
	}

	customer := domain.Customer{
		Name:  strings.TrimSpace(in.Name),
		Phone: strings.TrimSpace(in.Phone),
		Email: strings.TrimSpace(in.Email),
	}
	if customer.Name == "" || customer.Phone == "" {
		return nil, apperrors.NewValidationError("name and phone are required")
	}
	if customer.Email == "" {
		customer.Email = "customer@example.com"
	}

	// Remembered for phone-based tracking regardless of the gateway outcome.
	state.CustomerPhone = customer.Phone
	state.MarkDirty()

	uc.logger.Info("checkout started",
		zap.Int("lineCount", len(lines)),
		zap.Int64("total", total),
	)

	tx, err := uc.gateway.CreateTransaction(ctx, lines, customer, in.BaseURL)
	if err != nil {
		return nil, err
	}

	state.PendingOrder = &domain.PendingOrderSnapshot{
		OrderID:   tx.OrderID,
		Items:     lines,
		Total:     total,
		Customer:  customer,
		Notes:     in.Notes,
		CreatedAt: time.Now().UTC(),
	}
	state.MarkDirty()

	uc.logger.Info("gateway transaction created", zap.String("orderId", tx.OrderID))

	return &dto.CheckoutResponse{
		Success:   true,
		SnapToken: tx.Token,
		OrderID:   tx.OrderID,
	}, nil
}
