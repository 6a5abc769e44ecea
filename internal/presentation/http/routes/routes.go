package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/salesdesk-api/internal/config"
	domainRepo "github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/internal/infrastructure/logger"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/handler"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/middleware"
	"github.com/sangkips/salesdesk-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth          *handler.AuthHandler
	User          *handler.UserHandler
	Client        *handler.ClientHandler
	Seller        *handler.SellerHandler
	Product       *handler.ProductHandler
	Order         *handler.OrderHandler
	FinancingPlan *handler.FinancingPlanHandler
	Commission    *handler.CommissionHandler
	Income        *handler.IncomeHandler
	Supplier      *handler.SupplierHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Logger          *zap.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
	// Stop ends background work started by the router, such as rate limiter cleanup
	Stop <-chan struct{}
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(logger.Recovery(deps.Logger))
	router.Use(logger.GinMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfigFrom(deps.Cfg.RateLimit), deps.Stop)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes, limited per client IP
		auth := v1.Group("/auth")
		auth.Use(rateLimiter.Middleware())
		registerAuthRoutes(auth, h)

		// Protected routes, limited per user
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(auth *gin.RouterGroup, h *Handlers) {
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	registerOrderRoutes(protected, h, deps)
	registerClientRoutes(protected, h)
	registerSellerRoutes(protected, h)
	registerProductRoutes(protected, h)
	registerFinanceRoutes(protected, h)
	registerSupplierRoutes(protected, h)
	registerUserRoutes(protected, h)
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.Idempotency(deps.IdempotencyRepo)

	orders := protected.Group("/orders")
	orders.Use(middleware.RequirePermission("manage-orders"))
	{
		orders.GET("", h.Order.List)
		orders.POST("", idempotent, h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/cancel", h.Order.Cancel)
		orders.DELETE("/:id", h.Order.Delete)
		orders.GET("/:id/payments", h.Order.ListPayments)
		orders.POST("/:id/payments", idempotent, h.Order.RecordPayment)
	}
}

func registerClientRoutes(protected *gin.RouterGroup, h *Handlers) {
	clients := protected.Group("/clients")
	clients.Use(middleware.RequirePermission("manage-clients"))
	{
		clients.GET("", h.Client.List)
		clients.POST("", h.Client.Create)
		clients.GET("/:id", h.Client.Get)
		clients.PUT("/:id", h.Client.Update)
		clients.DELETE("/:id", h.Client.Delete)
	}
}

func registerSellerRoutes(protected *gin.RouterGroup, h *Handlers) {
	sellers := protected.Group("/sellers")
	sellers.Use(middleware.RequirePermission("manage-sellers"))
	{
		sellers.GET("", h.Seller.List)
		sellers.POST("", h.Seller.Create)
		sellers.GET("/:id", h.Seller.Get)
		sellers.PUT("/:id", h.Seller.Update)
		sellers.DELETE("/:id", h.Seller.Delete)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	products.Use(middleware.RequirePermission("manage-products"))
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerFinanceRoutes(protected *gin.RouterGroup, h *Handlers) {
	plans := protected.Group("/financing-plans")
	plans.Use(middleware.RequirePermission("manage-financing-plans"))
	{
		plans.GET("", h.FinancingPlan.List)
		plans.POST("", h.FinancingPlan.Create)
		plans.GET("/:id", h.FinancingPlan.Get)
		plans.PUT("/:id", h.FinancingPlan.Update)
		plans.DELETE("/:id", h.FinancingPlan.Delete)
	}

	commissions := protected.Group("/commissions")
	commissions.Use(middleware.RequirePermission("manage-commissions"))
	{
		commissions.GET("", h.Commission.List)
		commissions.POST("", h.Commission.Create)
		commissions.POST("/preview", h.Commission.Preview)
		commissions.POST("/for-order", h.Commission.CreateForOrder)
		commissions.GET("/:id", h.Commission.Get)
		commissions.DELETE("/:id", h.Commission.Delete)
	}

	incomes := protected.Group("/incomes")
	incomes.Use(middleware.RequirePermission("manage-incomes"))
	{
		incomes.GET("", h.Income.List)
		incomes.POST("", h.Income.Create)
		incomes.GET("/:id", h.Income.Get)
		incomes.PUT("/:id", h.Income.Update)
		incomes.DELETE("/:id", h.Income.Delete)
	}
}

func registerSupplierRoutes(protected *gin.RouterGroup, h *Handlers) {
	suppliers := protected.Group("/suppliers")
	suppliers.Use(middleware.RequirePermission("manage-suppliers"))
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.POST("", h.Supplier.Create)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.PUT("/:id", h.Supplier.Update)
		suppliers.DELETE("/:id", h.Supplier.Delete)
		suppliers.GET("/:id/balance", h.Supplier.Balance)
		suppliers.GET("/:id/invoices", h.Supplier.ListInvoices)
		suppliers.POST("/:id/invoices", h.Supplier.CreateInvoice)
		suppliers.GET("/:id/payments", h.Supplier.ListPayments)
		suppliers.POST("/:id/payments", h.Supplier.RecordPayment)
	}

	invoices := protected.Group("/supplier-invoices")
	invoices.Use(middleware.RequirePermission("manage-suppliers"))
	{
		invoices.PUT("/:invoiceId", h.Supplier.UpdateInvoice)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequirePermission("manage-users"))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
	}

	roles := protected.Group("/roles")
	roles.Use(middleware.RequirePermission("manage-users"))
	{
		roles.GET("", h.User.ListRoles)
	}
}
