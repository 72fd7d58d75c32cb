package cart

import (
	"context"

	"go.uber.org/zap"

	"github.com/LilGuiGui/awesome-catering/internal/domain"
	apperrors "github.com/LilGuiGui/awesome-catering/internal/errors"
	"github.com/LilGuiGui/awesome-catering/internal/session"
)

type CatalogRepository interface {
	MenuItem(ctx context.Context, id string) (*domain.MenuItem, error)
	Addon(ctx context.Context, id string) (*domain.Addon, error)
	AddonByName(ctx context.Context, name string) (*domain.Addon, error)
}

// Service mutates the session-held cart. The staple addon (rice, by default)
// is appended once per cart lifecycle, when the menu sequence first becomes
// non-empty.
type Service struct {
	catalog     CatalogRepository
	stapleAddon string
	logger      *zap.Logger
}

func NewService(catalog CatalogRepository, stapleAddon string, logger *zap.Logger) *Service {
	return &Service{
		catalog:     catalog,
		stapleAddon: stapleAddon,
		logger:      logger,
	}
}

func (s *Service) AddMenuItem(ctx context.Context, state *session.State, itemID string, quantity int) error {
	if quantity < 1 {
		return apperrors.NewValidationError("quantity must be a positive integer", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be at least 1",
		})
	}

	item, err := s.catalog.MenuItem(ctx, itemID)
	if err != nil {
		return err
	}

	firstItem := state.Cart.AddLine(domain.NewCartLine(item.ID, item.Name, item.Price, quantity))
	if firstItem {
		s.autoAddStaple(ctx, state)
	}
	state.MarkDirty()

	return nil
}

func (s *Service) AddAddon(ctx context.Context, state *session.State, addonID string, quantity int) error {
	if quantity < 1 {
		return apperrors.NewValidationError("quantity must be a positive integer", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be at least 1",
		})
	}

	addon, err := s.catalog.Addon(ctx, addonID)
	if err != nil {
		return err
	}
	if !addon.Available {
		return apperrors.NewValidationError("addon not available", apperrors.ValidationDetail{
			Field:   "addon_id",
			Message: "addon is not available",
		})
	}

	state.Cart.AddAddonLine(domain.NewCartLine(addon.ID, addon.Name, addon.Price, quantity))
	state.MarkDirty()

	return nil
}

func (s *Service) UpdateMenuLine(state *session.State, itemID string, quantity int) {
	state.Cart.UpdateLine(itemID, quantity)
	state.MarkDirty()
}

func (s *Service) UpdateAddonLine(state *session.State, addonID string, quantity int) {
	state.Cart.UpdateAddonLine(addonID, quantity)
	state.MarkDirty()
}

func (s *Service) Clear(state *session.State) {
	state.Cart.Clear()
	state.MarkDirty()
}

// autoAddStaple is best-effort: a missing or unavailable staple addon never
// blocks the add that triggered it.
func (s *Service) autoAddStaple(ctx context.Context, state *session.State) {
	addon, err := s.catalog.AddonByName(ctx, s.stapleAddon)
	if err != nil {
		s.logger.Warn("staple addon lookup failed", zap.String("addon", s.stapleAddon), zap.Error(err))
		return
	}
	if !addon.Available {
		return
	}
	if state.Cart.HasAddon(addon.ID) {
		return
	}

	state.Cart.AddAddonLine(domain.NewCartLine(addon.ID, addon.Name, addon.Price, 1))
	s.logger.Info("auto-added staple addon", zap.String("addon", addon.Name))
}
