// Package routes defines the API routing configuration: every route,
// its handler, and the identity middleware guarding it.
package routes

import (
	"net/http"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campuspay/internal/handlers"
	"campuspay/internal/middleware"
	"campuspay/internal/repositories"
	"campuspay/internal/repositories/cache"
	"campuspay/internal/services/ledger"
	"campuspay/internal/services/topup"
	"campuspay/internal/services/user"
)

// Deps carries everything the routes need. All wiring happens in
// main; this package only connects handlers to paths.
type Deps struct {
	DB       *gorm.DB
	Store    repositories.Store
	Cache    *cache.Service
	Engine   *ledger.Service
	Workflow *topup.Service
	Users    *user.Service
	Metrics  http.Handler
}

// Setup registers all application routes on app.
func Setup(app *fiber.App, deps Deps) {
	walletHandler := handlers.NewWalletHandler(deps.Store, deps.Cache)
	paymentHandler := handlers.NewPaymentHandler(deps.Engine)
	topupHandler := handlers.NewTopupRequestHandler(deps.Workflow)
	adminHandler := handlers.NewAdminHandler(deps.Engine, deps.Workflow)
	userHandler := handlers.NewUserHandler(deps.Users)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Cache)

	app.Get("/health", healthHandler.Health)
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")
	api.Post("/register", userHandler.Register)

	// Student routes, identity from the gateway.
	authed := api.Group("", middleware.RequireUser())
	authed.Get("/wallet", walletHandler.GetWallet)
	authed.Get("/transactions", walletHandler.ListTransactions)
	authed.Post("/payments", paymentHandler.CreatePayment)
	authed.Post("/topups/card", topupHandler.TopupByCard)
	authed.Post("/topup-requests", topupHandler.CreateRequest)
	authed.Get("/topup-requests", topupHandler.ListRequests)
	authed.Delete("/topup-requests/:id", topupHandler.CancelRequest)

	// Direct credits and refunds are operator actions.
	operator := api.Group("", middleware.RequireAdmin())
	operator.Post("/topups", paymentHandler.CreateTopup)
	operator.Post("/refunds", paymentHandler.CreateRefund)

	admin := api.Group("/admin", middleware.RequireAdmin())
	admin.Get("/topup-requests", adminHandler.ListPendingRequests)
	admin.Post("/topup-requests/:id/approve", adminHandler.ApproveRequest)
	admin.Post("/topup-requests/:id/reject", adminHandler.RejectRequest)
	admin.Post("/transactions/:id/status", adminHandler.OverrideTransactionStatus)
}
