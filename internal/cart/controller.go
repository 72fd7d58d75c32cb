package cart

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	apperrors "github.com/LilGuiGui/awesome-catering/internal/errors"
	"github.com/LilGuiGui/awesome-catering/internal/session"
)

type Controller struct {
	service *Service
	logger  *zap.Logger
}

func NewController(service *Service, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

type addItemRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

type addAddonRequest struct {
	AddonID  string `json:"addon_id"`
	Quantity int    `json:"quantity"`
}

func (c *Controller) AddToCart(w http.ResponseWriter, r *http.Request) {
	state, ok := session.FromContext(r.Context())
	if !ok {
		c.writeError(w, http.StatusBadRequest, "session not initialized")
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if err := c.service.AddMenuItem(r.Context(), state, req.ItemID, req.Quantity); err != nil {
		c.handleError(w, err)
		return
	}

	c.writeCart(w, state)
}

func (c *Controller) AddAddonToCart(w http.ResponseWriter, r *http.Request) {
	state, ok := session.FromContext(r.Context())
	if !ok {
		c.writeError(w, http.StatusBadRequest, "session not initialized")
		return
	}

	var req addAddonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if err := c.service.AddAddon(r.Context(), state, req.AddonID, req.Quantity); err != nil {
		c.handleError(w, err)
		return
	}

	c.writeCart(w, state)
}

func (c *Controller) UpdateCart(w http.ResponseWriter, r *http.Request) {
	state, ok := session.FromContext(r.Context())
	if !ok {
		c.writeError(w, http.StatusBadRequest, "session not initialized")
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	c.service.UpdateMenuLine(state, req.ItemID, req.Quantity)
	c.writeCart(w, state)
}

func (c *Controller) UpdateAddonCart(w http.ResponseWriter, r *http.Request) {
	state, ok := session.FromContext(r.Context())
	if !ok {
		c.writeError(w, http.StatusBadRequest, "session not initialized")
		return
	}

	var req addAddonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	c.service.UpdateAddonLine(state, req.AddonID, req.Quantity)
	c.writeCart(w, state)
}

func (c *Controller) GetCart(w http.ResponseWriter, r *http.Request) {
	state, ok := session.FromContext(r.Context())
	if !ok {
		c.writeError(w, http.StatusBadRequest, "session not initialized")
		return
	}

	c.writeCart(w, state)
}

func (c *Controller) writeCart(w http.ResponseWriter, state *session.State) {
	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"cart":    state.Cart.Lines,
		"addons":  state.Cart.Addons,
		"total":   state.Cart.Total(),
	})
}

func (c *Controller) handleError(w http.ResponseWriter, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeError(w, http.StatusBadRequest, ve.Message)
		return
	}
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	c.logger.Error("cart operation failed", zap.Error(err))
	c.writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
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
