package admin

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/LilGuiGui/awesome-catering/internal/config"
	"github.com/LilGuiGui/awesome-catering/internal/domain"
	"github.com/LilGuiGui/awesome-catering/internal/order/repository"
	"github.com/LilGuiGui/awesome-catering/internal/order/usecase"
)

func NewModule(db *mongo.Database, cfg *config.Config, logger *zap.Logger) *Controller {
	auth := NewAuth(cfg.Admin)
	orders := repository.NewMongoOrderRepository(db)
	machine := domain.StatusMachine{AllowBackward: cfg.Order.AllowBackward}
	updateStatus := usecase.NewUpdateStatusUseCase(orders, machine, logger)

	return NewController(auth, orders, updateStatus, logger)
}
