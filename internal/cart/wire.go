package cart

import (
	"go.uber.org/zap"

	"github.com/LilGuiGui/awesome-catering/internal/config"
)

func NewModule(catalog CatalogRepository, cfg *config.Config, logger *zap.Logger) *Controller {
	service := NewService(catalog, cfg.Order.StapleAddonName, logger)
	return NewController(service, logger)
}
