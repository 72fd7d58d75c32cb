package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/LilGuiGui/awesome-catering/internal/admin"
	"github.com/LilGuiGui/awesome-catering/internal/cart"
	"github.com/LilGuiGui/awesome-catering/internal/catalog"
	"github.com/LilGuiGui/awesome-catering/internal/config"
	ordercontroller "github.com/LilGuiGui/awesome-catering/internal/order/controller"
	"github.com/LilGuiGui/awesome-catering/internal/session"
)

type Controllers struct {
	Catalog *catalog.Controller
	Cart    *cart.Controller
	Order   *ordercontroller.OrderController
	Admin   *admin.Controller
}

func NewRouter(cfg *config.Config, store *session.Store, ctrl Controllers, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(session.Middleware(store, cfg.Session.CookieName, cfg.Session.TTL, logger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", ctrl.Catalog.Ping)
		r.Get("/health", ctrl.Catalog.Health)

		r.Get("/menu", ctrl.Catalog.Menu)
		r.Get("/addons", ctrl.Catalog.Addons)

		r.Get("/session-init", ctrl.Order.SessionInit)

		r.Post("/add-to-cart", ctrl.Cart.AddToCart)
		r.Post("/add-addon-to-cart", ctrl.Cart.AddAddonToCart)
		r.Post("/update-cart", ctrl.Cart.UpdateCart)
		r.Post("/update-addon-cart", ctrl.Cart.UpdateAddonCart)
		r.Get("/get-cart", ctrl.Cart.GetCart)

		r.Post("/create-payment", ctrl.Order.CreatePayment)
		r.Post("/payment-success", ctrl.Order.PaymentSuccess)
		r.Get("/verify-payment/{orderId}", ctrl.Order.VerifyPayment)

		r.Post("/track-order", ctrl.Order.TrackOrder)
		r.Post("/save-order-to-session", ctrl.Order.SaveOrderToSession)
		r.Get("/get-session-order", ctrl.Order.GetSessionOrder)
		r.Get("/check-order-status/{orderId}", ctrl.Order.CheckOrderStatus)
	})

	r.Get("/order-success/{orderId}", ctrl.Order.OrderSuccess)

	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", ctrl.Admin.Login)
		r.Post("/logout", ctrl.Admin.Logout)

		r.Route("/api", func(r chi.Router) {
			r.Use(admin.RequireAdmin(logger))

			r.Get("/orders", ctrl.Admin.GetOrders)
			r.Get("/orders/{orderId}", ctrl.Admin.GetOrderDetails)
			r.Post("/update-order-status", ctrl.Admin.UpdateOrderStatus)

			r.Get("/addons", ctrl.Catalog.AdminAddons)
			r.Post("/menu", ctrl.Catalog.AddMenuItem)
			r.Put("/menu/{id}", ctrl.Catalog.UpdateMenuItem)
			r.Delete("/menu/{id}", ctrl.Catalog.DeleteMenuItem)
			r.Post("/addons", ctrl.Catalog.AddAddon)
			r.Put("/addons/{id}", ctrl.Catalog.UpdateAddon)
			r.Delete("/addons/{id}", ctrl.Catalog.DeleteAddon)
		})
	})

	return r
}
