package order

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/LilGuiGui/awesome-catering/internal/config"
	"github.com/LilGuiGui/awesome-catering/internal/order/controller"
	"github.com/LilGuiGui/awesome-catering/internal/order/repository"
	"github.com/LilGuiGui/awesome-catering/internal/order/service"
	"github.com/LilGuiGui/awesome-catering/internal/order/usecase"
	"github.com/LilGuiGui/awesome-catering/internal/payment"
)

func NewModule(db *mongo.Database, gateway *payment.Client, cfg *config.Config, logger *zap.Logger) *controller.OrderController {
	orderRepo := repository.NewMongoOrderRepository(db)

	reconcileSvc := service.NewReconcileService(
		orderRepo,
		logger,
		cfg.Order.LookupRetryAttempts,
		cfg.Order.RetryBackoff,
		cfg.Payment.Provider,
	)

	checkoutUC := usecase.NewCheckoutUseCase(gateway, logger)
	completeUC := usecase.NewCompleteOrderUseCase(
		orderRepo,
		logger,
		cfg.Order.SaveRetryAttempts,
		cfg.Order.RetryBackoff,
		cfg.Payment.Provider,
	)
	verifyUC := usecase.NewVerifyPaymentUseCase(orderRepo, gateway, logger)
	trackUC := usecase.NewTrackOrdersUseCase(orderRepo, logger)

	return controller.NewOrderController(
		checkoutUC,
		completeUC,
		verifyUC,
		trackUC,
		reconcileSvc,
		logger,
	)
}
