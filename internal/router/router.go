package router

import (
	"time"

	"fatoora/internal/config"
	"fatoora/internal/handler"
	"fatoora/internal/middleware"
	"fatoora/internal/repository"
	"fatoora/internal/service"
	"fatoora/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	traderRepo := repository.NewTraderRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	productSvc := service.NewProductService(productRepo)
	customerSvc := service.NewCustomerService(customerRepo)
	supplierSvc := service.NewSupplierService(supplierRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, productRepo, customerRepo, dispatcher)
	traderSvc := service.NewTraderService(traderRepo)
	documentSvc := service.NewDocumentService(documentRepo, invoiceRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)
	invoicesH := handler.NewInvoicesHandler(invoiceSvc)
	traderH := handler.NewTraderHandler(traderSvc)
	documentsH := handler.NewDocumentsHandler(documentSvc, cfg.PDFStoragePath)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: clerk, admin — declared per-endpoint
		v1.POST("/invoices", middleware.RequireRole("clerk", "admin"), invoicesH.Issue)
		v1.GET("/invoices", middleware.RequireRole("clerk", "admin"), invoicesH.List)
		v1.GET("/invoices/:id", middleware.RequireRole("clerk", "admin"), invoicesH.Get)

		// Rendered documents
		v1.GET("/invoices/:id/document", middleware.RequireRole("clerk", "admin"), documentsH.Status)
		v1.GET("/invoices/:id/document/pdf", middleware.RequireRole("clerk", "admin"), documentsH.Download)
		v1.POST("/invoices/:id/document/requeue", middleware.RequireRole("admin"), documentsH.Requeue)

		// Catalog reads — any authenticated user
		v1.GET("/products", middleware.RequireRole("clerk", "admin"), productsH.List)
		v1.GET("/products/:id", middleware.RequireRole("clerk", "admin"), productsH.Get)
		v1.GET("/stock-ledger", middleware.RequireRole("clerk", "admin"), productsH.StockLedger)

		// Stock entry and catalog writes — admin only
		v1.POST("/stock-entries", middleware.RequireRole("admin"), productsH.AddStock)
		v1.PUT("/products/:id", middleware.RequireRole("admin"), productsH.Update)

		customers := v1.Group("/customers")
		{
			customers.GET("", middleware.RequireRole("clerk", "admin"), customersH.List)
			customers.GET("/:id", middleware.RequireRole("clerk", "admin"), customersH.Get)
			customers.POST("", middleware.RequireRole("clerk", "admin"), customersH.Create)
			customers.PUT("/:id", middleware.RequireRole("admin"), customersH.Update)
			customers.DELETE("/:id", middleware.RequireRole("admin"), customersH.Deactivate)
		}

		suppliers := v1.Group("/suppliers", middleware.RequireRole("admin"))
		{
			suppliers.GET("", suppliersH.List)
			suppliers.GET("/:id", suppliersH.Get)
			suppliers.POST("", suppliersH.Create)
			suppliers.PUT("/:id", suppliersH.Update)
			suppliers.DELETE("/:id", suppliersH.Deactivate)
		}

		// Trader profile — read for all, write for admin
		v1.GET("/trader", middleware.RequireRole("clerk", "admin"), traderH.Get)
		v1.PUT("/trader", middleware.RequireRole("admin"), traderH.Put)

		users := v1.Group("/users", middleware.RequireRole("admin"))
		{
			users.POST("", authH.CreateUser)
			users.GET("", authH.ListUsers)
			users.DELETE("/:id", authH.DeactivateUser)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
