// Package routes wires repositories, services and handlers into the
// fiber app.
package routes

import (
	"paylink/internal/handlers"
	"paylink/internal/middleware"
	"paylink/internal/repositories"
	"paylink/internal/repositories/cache"
	"paylink/internal/services/auth"
	"paylink/internal/services/configstore"
	"paylink/internal/services/exchange"
	"paylink/internal/services/fee"
	"paylink/internal/services/fraud"
	"paylink/internal/services/limit"
	"paylink/internal/services/transaction"
	"paylink/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRoutes builds the full dependency graph and registers every
// route group on the app.
func SetupRoutes(app *fiber.App, db *gorm.DB, cacheSvc *cache.Service, logger *zap.Logger) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	walletRepo := repositories.NewWalletRepository(db)
	txRepo := repositories.NewTransactionRepository(db)
	caseRepo := repositories.NewSuspiciousActivityRepository(db)
	configRepo := repositories.NewConfigurationRepository(db)

	// Services
	converter := exchange.NewConverter()
	configStore := configstore.NewStore(configRepo, cacheSvc, logger)
	authService := auth.NewService(userRepo, logger)
	walletService := wallet.NewService(walletRepo, logger)

	// Screening pipeline: fee first so the balance check sees the full
	// debit, fraud after the cheap checks, balance last.
	pipeline := transaction.NewPipeline(logger,
		fee.NewStage(),
		limit.NewGuard(txRepo, converter),
		fraud.NewEngine(txRepo, walletRepo, caseRepo, converter, logger),
		transaction.NewBalanceStage(),
	)
	processor := transaction.NewProcessor(transaction.ProcessorConfig{
		DB:       db,
		Pipeline: pipeline,
		Store:    configStore,
		Logger:   logger,
	})

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	walletHandler := handlers.NewWalletHandler(walletService)
	txHandler := handlers.NewTransactionHandler(processor, walletService, userRepo, txRepo)
	adminHandler := handlers.NewAdminHandler(caseRepo, walletService, configStore)

	app.Get("/health", handlers.HealthCheck(db, cacheSvc))

	api := app.Group("/api/v1")
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	protected := api.Use(middleware.Auth())

	wallets := protected.Group("/wallets")
	wallets.Get("/", walletHandler.List)
	wallets.Post("/", walletHandler.Create)
	wallets.Get("/:walletID/transactions", txHandler.History)

	transactions := protected.Group("/transactions")
	transactions.Post("/deposit", txHandler.Deposit)
	transactions.Post("/withdraw", txHandler.Withdraw)
	transactions.Post("/transfer", txHandler.Transfer)
	transactions.Post("/:id/refund", txHandler.Refund)

	admin := protected.Group("/admin", middleware.AdminOnly())
	admin.Get("/suspicious-activities", adminHandler.ListCases)
	admin.Patch("/suspicious-activities/:id", adminHandler.ResolveCase)
	admin.Post("/wallets/:id/unblock", adminHandler.UnblockWallet)
	admin.Get("/configurations", adminHandler.ListConfigurations)
	admin.Put("/configurations/:key", adminHandler.SetConfiguration)
}
