package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/salesdesk-api/internal/application/service"
	"github.com/sangkips/salesdesk-api/internal/config"
	domainRepo "github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/internal/infrastructure/database"
	"github.com/sangkips/salesdesk-api/internal/infrastructure/logger"
	"github.com/sangkips/salesdesk-api/internal/infrastructure/repository"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/handler"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/routes"
	"github.com/sangkips/salesdesk-api/pkg/utils"
	"go.uber.org/zap"
)

const (
	idempotencySweepInterval = 15 * time.Minute
	shutdownTimeout          = 10 * time.Second
)

func main() {
	// Load configuration
	cfg := config.Load()

	zl, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.Open(&cfg.Database, zl)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		zl.Fatal("failed to run migrations", zap.Error(err))
	}

	// Seed default data
	if err := database.SeedDefaultData(db, cfg.Admin, zl); err != nil {
		zl.Warn("failed to seed default data", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	clientRepo := repository.NewClientRepository(db)
	sellerRepo := repository.NewSellerRepository(db)
	productRepo := repository.NewProductRepository(db)
	planRepo := repository.NewFinancingPlanRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	installmentRepo := repository.NewInstallmentRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	commissionRepo := repository.NewCommissionRepository(db)
	incomeRepo := repository.NewIncomeRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	invoiceRepo := repository.NewSupplierInvoiceRepository(db)
	supplierPaymentRepo := repository.NewSupplierPaymentRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(txManager, userRepo, roleRepo)
	clientService := service.NewClientService(txManager, clientRepo)
	sellerService := service.NewSellerService(txManager, sellerRepo)
	productService := service.NewProductService(productRepo)
	planService := service.NewFinancingPlanService(txManager, planRepo)
	orderService := service.NewOrderService(txManager, orderRepo, clientRepo, sellerRepo, planRepo, productRepo)
	paymentService := service.NewPaymentService(txManager, orderRepo, installmentRepo, paymentRepo)
	commissionService := service.NewCommissionService(txManager, commissionRepo, sellerRepo, orderRepo)
	incomeService := service.NewIncomeService(txManager, incomeRepo, orderRepo)
	supplierService := service.NewSupplierService(txManager, supplierRepo, invoiceRepo, supplierPaymentRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		User:          handler.NewUserHandler(userService),
		Client:        handler.NewClientHandler(clientService),
		Seller:        handler.NewSellerHandler(sellerService),
		Product:       handler.NewProductHandler(productService),
		Order:         handler.NewOrderHandler(orderService, paymentService),
		FinancingPlan: handler.NewFinancingPlanHandler(planService),
		Commission:    handler.NewCommissionHandler(commissionService),
		Income:        handler.NewIncomeHandler(incomeService),
		Supplier:      handler.NewSupplierHandler(supplierService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Logger:          zl,
		IdempotencyRepo: idempotencyRepo,
		Stop:            ctx.Done(),
	})

	go sweepIdempotencyKeys(ctx, idempotencyRepo, zl)

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("starting server",
			zap.String("service", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("server shutdown failed", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// sweepIdempotencyKeys removes expired replay entries until ctx is done
func sweepIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, zl *zap.Logger) {
	ticker := time.NewTicker(idempotencySweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := repo.DeleteExpired(ctx)
			if err != nil {
				zl.Warn("idempotency sweep failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				zl.Debug("idempotency keys expired", zap.Int64("removed", removed))
			}
		}
	}
}
