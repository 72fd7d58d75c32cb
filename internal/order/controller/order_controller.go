package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/LilGuiGui/awesome-catering/internal/domain"
	"github.com/LilGuiGui/awesome-catering/internal/dto"
	apperrors "github.com/LilGuiGui/awesome-catering/internal/errors"
	"github.com/LilGuiGui/awesome-catering/internal/order/service"
	"github.com/LilGuiGui/awesome-catering/internal/order/usecase"
	"github.com/LilGuiGui/awesome-catering/internal/session"
)

type CheckoutUseCase interface {
	Checkout(ctx context.Context, state *session.State, in usecase.CheckoutInput) (*dto.CheckoutResponse, error)
}

type CompleteOrderUseCase interface {
	Complete(ctx context.Context, state *session.State, orderID, transactionID string) error
}

type VerifyPaymentUseCase interface {
	Verify(ctx context.Context, orderID string) *dto.VerifyPaymentResponse
}

type TrackOrdersUseCase interface {
	TrackByPhone(ctx context.Context, state *session.State, phone string) ([]domain.Order, error)
	SaveOrderToSession(ctx context.Context, state *session.State, orderID string) error
	SessionOrder(ctx context.Context, state *session.State) (*domain.Order, error)
	Status(ctx context.Context, orderID string) (bool, domain.PaymentStatus, error)
}

type Reconciler interface {
	Resolve(ctx context.Context, orderID string, snapshot *domain.PendingOrderSnapshot) *service.OrderView
}

type OrderController struct {
	checkout  CheckoutUseCase
	complete  CompleteOrderUseCase
	verify    VerifyPaymentUseCase
	track     TrackOrdersUseCase
	reconcile Reconciler
	logger    *zap.Logger
}

func NewOrderController(
	checkout CheckoutUseCase,
	complete CompleteOrderUseCase,
	verify VerifyPaymentUseCase,
	track TrackOrdersUseCase,
	reconcile Reconciler,
	logger *zap.Logger,
) *OrderController {
	return &OrderController{
		checkout:  checkout,
		complete:  complete,
		verify:    verify,
		track:     track,
		reconcile: reconcile,
		logger:    logger,
	}
}

func (c *OrderController) SessionInit(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := session.IDFromContext(r.Context())
	if !ok {
		c.writeError(w, http.StatusInternalServerError, "session not initialized")
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"session_key": sessionID,
	})
}

func (c *OrderController) CreatePayment(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	state, ok := session.FromContext(r.Context())
	if !ok {
		c.writeError(w, http.StatusBadRequest, "session not initialized")
		return
	}

	var req dto.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	resp, err := c.checkout.Checkout(r.Context(), state, usecase.CheckoutInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Notes:   req.Notes,
		BaseURL: requestBaseURL(r),
	})
	if err != nil {
		c.handleError(w, logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *OrderController) PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	state, ok := session.FromContext(r.Context())
	if !ok {
		c.writeError(w, http.StatusBadRequest, "session not initialized")
		return
	}

	var req dto.PaymentSuccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	if err := c.complete.Complete(r.Context(), state, req.OrderID, req.TransactionID); err != nil {
		if _, ok := apperrors.IsPersistenceError(err); ok {
			logger.Error("order save exhausted retries", zap.String("orderId", req.OrderID), zap.Error(err))
			c.writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"success": false,
				"retry":   true,
				"error":   "failed to save order, retrying...",
			})
			return
		}
		c.handleError(w, logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":           true,
		"message":           "order saved successfully",
		"save_for_tracking": true,
	})
}

func (c *OrderController) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	if orderID == "" {
		c.writeError(w, http.StatusBadRequest, "order id is required")
		return
	}

	c.writeJSON(w, http.StatusOK, c.verify.Verify(r.Context(), orderID))
}

// OrderSuccess is the landing endpoint after the gateway redirect. The
// reconciliation chain guarantees a renderable result even under total
// persistence failure.
func (c *OrderController) OrderSuccess(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	if orderID == "" {
		c.writeError(w, http.StatusBadRequest, "order id is required")
		return
	}

	var snapshot *domain.PendingOrderSnapshot
	if state, ok := session.FromContext(r.Context()); ok {
		snapshot = state.PendingOrder
	}

	view := c.reconcile.Resolve(r.Context(), orderID, snapshot)
	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"order":   view,
	})
}

func (c *OrderController) TrackOrder(w http.ResponseWriter, r *http.Request) {
	state, ok := session.FromContext(r.Context())
	if !ok {
		c.writeError(w, http.StatusBadRequest, "session not initialized")
		return
	}

	var req dto.TrackOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	orders, err := c.track.TrackByPhone(r.Context(), state, req.PhoneNumber)
	if err != nil {
		c.handleError(w, c.logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"orders":  orders,
	})
}

func (c *OrderController) SaveOrderToSession(w http.ResponseWriter, r *http.Request) {
	state, ok := session.FromContext(r.Context())
	if !ok {
		c.writeError(w, http.StatusBadRequest, "session not initialized")
		return
	}

	var req dto.SaveOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	if err := c.track.SaveOrderToSession(r.Context(), state, req.OrderID); err != nil {
		c.handleError(w, c.logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "order saved to session",
	})
}

func (c *OrderController) GetSessionOrder(w http.ResponseWriter, r *http.Request) {
	state, ok := session.FromContext(r.Context())
	if !ok {
		c.writeError(w, http.StatusBadRequest, "session not initialized")
		return
	}

	order, err := c.track.SessionOrder(r.Context(), state)
	if err != nil {
		c.handleError(w, c.logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"order":   order,
	})
}

func (c *OrderController) CheckOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	exists, status, err := c.track.Status(r.Context(), orderID)
	if err != nil {
		c.handleError(w, c.logger, err)
		return
	}

	resp := map[string]interface{}{
		"success": true,
		"exists":  exists,
	}
	if exists {
		resp["status"] = status
	}
	c.writeJSON(w, http.StatusOK, resp)
}

func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func (c *OrderController) handleError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeError(w, http.StatusBadRequest, ve.Message)
		return
	}
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if ue, ok := apperrors.IsUpstreamError(err); ok {
		c.writeError(w, http.StatusBadGateway, ue.Error())
		return
	}
	if _, ok := apperrors.IsUpstreamTimeoutError(err); ok {
		c.writeError(w, http.StatusGatewayTimeout, err.Error())
		return
	}
	if _, ok := apperrors.IsUpstreamUnavailableError(err); ok {
		c.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	if _, ok := apperrors.IsUpstreamMalformedError(err); ok {
		c.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	if _, ok := apperrors.IsPersistenceError(err); ok {
		c.writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
}

func (c *OrderController) writeError(w http.ResponseWriter, status int, message string) {
	c.writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
