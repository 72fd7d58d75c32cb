package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/LilGuiGui/awesome-catering/internal/domain"
	apperrors "github.com/LilGuiGui/awesome-catering/internal/errors"
)

type Repository interface {
	MenuItems(ctx context.Context) ([]domain.MenuItem, error)
	MenuItem(ctx context.Context, id string) (*domain.MenuItem, error)
	AddMenuItem(ctx context.Context, item domain.MenuItem) (string, error)
	UpdateMenuItem(ctx context.Context, id string, item domain.MenuItem) error
	DeleteMenuItem(ctx context.Context, id string) error
	Addons(ctx context.Context) ([]domain.Addon, error)
	AvailableAddons(ctx context.Context) ([]domain.Addon, error)
	AddAddon(ctx context.Context, addon domain.Addon) (string, error)
	UpdateAddon(ctx context.Context, id string, addon domain.Addon) error
	DeleteAddon(ctx context.Context, id string) error
}

type Controller struct {
	repo   Repository
	logger *zap.Logger
}

func NewController(repo Repository, logger *zap.Logger) *Controller {
	return &Controller{
		repo:   repo,
		logger: logger,
	}
}

type menuItemPayload struct {
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Available bool   `json:"available"`
	Category  string `json:"category"`
}

type addonPayload struct {
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Available bool   `json:"available"`
}

func (c *Controller) Menu(w http.ResponseWriter, r *http.Request) {
	items, err := c.repo.MenuItems(r.Context())
	if err != nil {
		c.logger.Error("listing menu items", zap.Error(err))
		c.writeError(w, http.StatusInternalServerError, "failed to load menu")
		return
	}
	if items == nil {
		items = []domain.MenuItem{}
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"items":   items,
	})
}

func (c *Controller) Addons(w http.ResponseWriter, r *http.Request) {
	addons, err := c.repo.AvailableAddons(r.Context())
	if err != nil {
		c.logger.Error("listing addons", zap.Error(err))
		c.writeError(w, http.StatusInternalServerError, "failed to load addons")
		return
	}
	if addons == nil {
		addons = []domain.Addon{}
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"addons":  addons,
	})
}

func (c *Controller) AdminAddons(w http.ResponseWriter, r *http.Request) {
	addons, err := c.repo.Addons(r.Context())
	if err != nil {
		c.logger.Error("listing all addons", zap.Error(err))
		c.writeError(w, http.StatusInternalServerError, "failed to load addons")
		return
	}
	if addons == nil {
		addons = []domain.Addon{}
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"addons":  addons,
	})
}

func (c *Controller) AddMenuItem(w http.ResponseWriter, r *http.Request) {
	var req menuItemPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := validateCatalogPayload(req.Name, req.Price); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	id, err := c.repo.AddMenuItem(r.Context(), domain.MenuItem{
		Name:      req.Name,
		Price:     req.Price,
		Available: req.Available,
		Category:  req.Category,
	})
	if err != nil {
		c.logger.Error("adding menu item", zap.Error(err))
		c.writeError(w, http.StatusInternalServerError, "failed to add menu item")
		return
	}

	c.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"id":      id,
	})
}

func (c *Controller) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req menuItemPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := validateCatalogPayload(req.Name, req.Price); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	err := c.repo.UpdateMenuItem(r.Context(), id, domain.MenuItem{
		Name:      req.Name,
		Price:     req.Price,
		Available: req.Available,
		Category:  req.Category,
	})
	if err != nil {
		c.handleRepoError(w, err, "updating menu item")
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (c *Controller) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := c.repo.DeleteMenuItem(r.Context(), id); err != nil {
		c.handleRepoError(w, err, "deleting menu item")
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (c *Controller) AddAddon(w http.ResponseWriter, r *http.Request) {
	var req addonPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := validateCatalogPayload(req.Name, req.Price); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	id, err := c.repo.AddAddon(r.Context(), domain.Addon{
		Name:      req.Name,
		Price:     req.Price,
		Available: req.Available,
	})
	if err != nil {
		c.logger.Error("adding addon", zap.Error(err))
		c.writeError(w, http.StatusInternalServerError, "failed to add addon")
		return
	}

	c.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"id":      id,
	})
}

func (c *Controller) UpdateAddon(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req addonPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := validateCatalogPayload(req.Name, req.Price); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	err := c.repo.UpdateAddon(r.Context(), id, domain.Addon{
		Name:      req.Name,
		Price:     req.Price,
		Available: req.Available,
	})
	if err != nil {
		c.handleRepoError(w, err, "updating addon")
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (c *Controller) DeleteAddon(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := c.repo.DeleteAddon(r.Context(), id); err != nil {
		c.handleRepoError(w, err, "deleting addon")
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (c *Controller) Ping(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (c *Controller) Health(w http.ResponseWriter, r *http.Request) {
	dbStatus := "ok"
	if _, err := c.repo.MenuItems(r.Context()); err != nil {
		dbStatus = "error: " + err.Error()
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  dbStatus,
	})
}

func validateCatalogPayload(name string, price int64) error {
	var details []apperrors.ValidationDetail

	if name == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name is required",
		})
	}
	if price <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "price",
			Message: "price must be a positive integer",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

func (c *Controller) handleRepoError(w http.ResponseWriter, err error, action string) {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	c.logger.Error(action, zap.Error(err))
	c.writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *Controller) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
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
