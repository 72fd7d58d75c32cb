package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/LilGuiGui/awesome-catering/internal/domain"
	apperrors "github.com/LilGuiGui/awesome-catering/internal/errors"
)

type OrderRepository interface {
	Get(ctx context.Context, orderID string) (*domain.Order, error)
}

type Source string

const (
	SourceDurable     Source = "durable"
	SourceSnapshot    Source = "snapshot"
	SourcePlaceholder Source = "placeholder"
)

// OrderView is always fully populated; callers never branch on a missing
// order. A placeholder view is a display safety net and must never be
// persisted.
type OrderView struct {
	OrderID         string                `json:"order_id"`
	Items           []domain.OrderItem    `json:"items"`
	Total           int64                 `json:"total"`
	Customer        domain.Customer       `json:"customer"`
	Status          string                `json:"status"`
	TrackingStatus  domain.TrackingStatus `json:"order_status"`
	PaymentMethod   string                `json:"payment_method"`
	AdminNotes      string                `json:"admin_notes,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	StatusUpdatedAt time.Time             `json:"status_updated_at"`
	Source          Source                `json:"source"`
	Confirmed       bool                  `json:"confirmed"`
}

// ReconcileService resolves the authoritative post-checkout order view when
// the durable record, the session snapshot and the gateway can disagree.
type ReconcileService struct {
	orders         OrderRepository
	logger         *zap.Logger
	lookupAttempts int
	retryBackoff   time.Duration
	paymentMethod  string
}

func NewReconcileService(orders OrderRepository, logger *zap.Logger, lookupAttempts int, retryBackoff time.Duration, paymentMethod string) *ReconcileService {
	return &ReconcileService{
		orders:         orders,
		logger:         logger,
		lookupAttempts: lookupAttempts,
		retryBackoff:   retryBackoff,
		paymentMethod:  paymentMethod,
	}
}

// Resolve walks the fallback chain: bounded-retry durable read, then the
// session snapshot when its order id matches, then a placeholder.
func (s *ReconcileService) Resolve(ctx context.Context, orderID string, snapshot *domain.PendingOrderSnapshot) *OrderView {
	for attempt := 1; attempt <= s.lookupAttempts; attempt++ {
		order, err := s.orders.Get(ctx, orderID)
		if err == nil {
			return s.durableView(order)
		}

		if _, ok := apperrors.IsNotFoundError(err); ok {
			s.logger.Debug("order not yet readable", zap.String("orderId", orderID), zap.Int("attempt", attempt))
		} else {
			s.logger.Warn("order lookup failed", zap.String("orderId", orderID), zap.Int("attempt", attempt), zap.Error(err))
		}

		if attempt < s.lookupAttempts {
			time.Sleep(s.retryBackoff)
		}
	}

	if snapshot.Matches(orderID) {
		s.logger.Info("serving order from session snapshot", zap.String("orderId", orderID))
		return s.snapshotView(snapshot)
	}

	s.logger.Warn("serving placeholder order view", zap.String("orderId", orderID))
	return placeholderView(orderID)
}

func (s *ReconcileService) durableView(order *domain.Order) *OrderView {
	items := order.Items
	if items == nil {
		items = []domain.OrderItem{}
	}
	return &OrderView{
		OrderID:         order.OrderID,
		Items:           items,
		Total:           order.Total,
		Customer:        order.Customer,
		Status:          string(order.PaymentStatus),
		TrackingStatus:  order.TrackingStatus,
		PaymentMethod:   order.PaymentMethod,
		AdminNotes:      order.AdminNotes,
		CreatedAt:       order.CreatedAt,
		StatusUpdatedAt: order.StatusUpdatedAt,
		Source:          SourceDurable,
		Confirmed:       true,
	}
}

// snapshotView is optimistically marked paid (the user only lands here after
// a gateway success redirect) but stays unconfirmed until the durable record
// exists.
func (s *ReconcileService) snapshotView(snapshot *domain.PendingOrderSnapshot) *OrderView {
	return &OrderView{
		OrderID:         snapshot.OrderID,
		Items:           domain.OrderItemsFromLines(snapshot.Items),
		Total:           snapshot.Total,
		Customer:        snapshot.Customer,
		Status:          string(domain.PaymentPaid),
		TrackingStatus:  domain.TrackingPreparing,
		PaymentMethod:   s.paymentMethod,
		CreatedAt:       snapshot.CreatedAt,
		StatusUpdatedAt: snapshot.CreatedAt,
		Source:          SourceSnapshot,
		Confirmed:       false,
	}
}

func placeholderView(orderID string) *OrderView {
	now := time.Now().UTC()
	return &OrderView{
		OrderID:         orderID,
		Items:           []domain.OrderItem{},
		Total:           0,
		Customer:        domain.Customer{Name: "Unknown", Phone: "Unknown"},
		Status:          "processing",
		TrackingStatus:  domain.TrackingPreparing,
		CreatedAt:       now,
		StatusUpdatedAt: now,
		Source:          SourcePlaceholder,
		Confirmed:       false,
	}
}
