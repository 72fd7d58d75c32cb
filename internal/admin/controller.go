package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/LilGuiGui/awesome-catering/internal/domain"
	"github.com/LilGuiGui/awesome-catering/internal/dto"
	apperrors "github.com/LilGuiGui/awesome-catering/internal/errors"
	"github.com/LilGuiGui/awesome-catering/internal/session"
)

type OrderRepository interface {
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	ListActive(ctx context.Context) ([]domain.Order, error)
	ListByTrackingStatus(ctx context.Context, status domain.TrackingStatus) ([]domain.Order, error)
	ListRecent(ctx context.Context) ([]domain.Order, error)
}

type UpdateStatusUseCase interface {
	UpdateTrackingStatus(ctx context.Context, orderID, status, notes string) error
}

type Controller struct {
	auth         *Auth
	orders       OrderRepository
	updateStatus UpdateStatusUseCase
	logger       *zap.Logger
}

func NewController(auth *Auth, orders OrderRepository, updateStatus UpdateStatusUseCase, logger *zap.Logger) *Controller {
	return &Controller{
		auth:         auth,
		orders:       orders,
		updateStatus: updateStatus,
		logger:       logger,
	}
}

func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	state, ok := session.FromContext(r.Context())
	if !ok {
		c.writeError(w, http.StatusBadRequest, "session not initialized")
		return
	}

	var req dto.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	if err := c.auth.Authenticate(req.Username, req.Password); err != nil {
		c.logger.Warn("admin login rejected", zap.String("username", req.Username))
		if ue, ok := apperrors.IsUnauthorizedError(err); ok {
			c.writeError(w, http.StatusUnauthorized, ue.Message)
			return
		}
		c.writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	state.Admin = true
	state.MarkDirty()

	c.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (c *Controller) Logout(w http.ResponseWriter, r *http.Request) {
	state, ok := session.FromContext(r.Context())
	if !ok {
		c.writeError(w, http.StatusBadRequest, "session not initialized")
		return
	}

	state.Admin = false
	state.MarkDirty()

	c.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// GetOrders serves the dashboard: a specific tracking status when requested,
// all orders with status=all, otherwise the active set (preparing + ready).
func (c *Controller) GetOrders(w http.ResponseWriter, r *http.Request) {
	var (
		orders []domain.Order
		err    error
	)

	switch filter := r.URL.Query().Get("status"); filter {
	case "":
		orders, err = c.orders.ListActive(r.Context())
	case "all":
		orders, err = c.orders.ListRecent(r.Context())
	default:
		status, ok := domain.ParseTrackingStatus(filter)
		if !ok {
			c.writeError(w, http.StatusBadRequest, "invalid status filter")
			return
		}
		orders, err = c.orders.ListByTrackingStatus(r.Context(), status)
	}
	if err != nil {
		c.logger.Error("listing orders", zap.Error(err))
		c.writeError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"orders":  orders,
	})
}

func (c *Controller) GetOrderDetails(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	order, err := c.orders.Get(r.Context(), orderID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			c.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		c.logger.Error("loading order details", zap.String("orderId", orderID), zap.Error(err))
		c.writeError(w, http.StatusInternalServerError, "failed to load order")
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"order":   order,
	})
}

func (c *Controller) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	if req.OrderID == "" || req.Status == "" {
		c.writeError(w, http.StatusBadRequest, "order id and status are required")
		return
	}

	if err := c.updateStatus.UpdateTrackingStatus(r.Context(), req.OrderID, req.Status, req.Notes); err != nil {
		if ve, ok := apperrors.IsValidationError(err); ok {
			c.writeError(w, http.StatusBadRequest, ve.Message)
			return
		}
		if _, ok := apperrors.IsNotFoundError(err); ok {
			c.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		if _, ok := apperrors.IsConflictError(err); ok {
			c.writeError(w, http.StatusConflict, err.Error())
			return
		}
		c.logger.Error("updating order status", zap.String("orderId", req.OrderID), zap.Error(err))
		c.writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("order %s status updated to %s", req.OrderID, req.Status),
	})
}

func (c *Controller) writeError(w http.ResponseWriter, status int, message string) {
	c.writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
