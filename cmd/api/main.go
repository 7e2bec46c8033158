package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/modatienda/boutique_api/internal/cache"
	"github.com/modatienda/boutique_api/internal/config"
	"github.com/modatienda/boutique_api/internal/database"
	"github.com/modatienda/boutique_api/internal/handler"
	"github.com/modatienda/boutique_api/internal/middleware"
	"github.com/modatienda/boutique_api/internal/models"
	"github.com/modatienda/boutique_api/internal/repository"
	"github.com/modatienda/boutique_api/internal/service"
	"github.com/modatienda/boutique_api/internal/sse"
	"github.com/modatienda/boutique_api/internal/utils"
	"github.com/modatienda/boutique_api/internal/worker"
)

// main is the application entrypoint for the boutique storefront API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting boutique api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 3c. Initialize report cache
	reportCache := cache.NewReportCache(redisClient)

	// 4. Initialize JWT signing
	utils.InitJWT(cfg.JWTSecret, cfg.JWTTTL)

	// 5. Initialize repositories
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	userRepo := repository.NewUserRepository(db)
	credentialRepo := repository.NewCredentialRepository(db)
	kpiRepo := repository.NewKPIRepository(db)
	logRepo := repository.NewLogRepository(db)

	// 5a. SSE hub for the admin console
	hub := sse.NewHub()
	notifier := sse.NewHubNotifier(hub)

	// 6. Initialize services
	authSvc := service.NewAuthService(credentialRepo, userRepo, logRepo)
	userSvc := service.NewUserService(userRepo)
	catalogSvc := service.NewCatalogService(productRepo, logRepo)
	cartSvc := service.NewCartService(cartRepo, productRepo, notifier)
	saleSvc := service.NewSaleService(saleRepo, productRepo, cartRepo, logRepo, notifier)
	kpiSvc := service.NewKPIService(saleRepo, productRepo, kpiRepo, reportCache, cfg.Report)

	// 7. Initialize handlers
	loginLimiter := middleware.NewLoginRateLimiter()
	handlers := &Handlers{
		Health:  handler.NewHealthHandler(db, redisClient),
		Auth:    handler.NewAuthHandler(authSvc, loginLimiter),
		Product: handler.NewProductHandler(catalogSvc),
		Cart:    handler.NewCartHandler(cartSvc),
		Sale:    handler.NewSaleHandler(saleSvc),
		Report:  handler.NewReportHandler(kpiSvc),
		User:    handler.NewUserHandler(userSvc, authSvc),
		Log:     handler.NewLogHandler(logRepo),
		SSE:     handler.NewSSEHandler(hub),
	}

	// 8. Initialize middleware
	jwtMw := middleware.NewJWTMiddleware()

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw)

	// 10. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 11. Start workers
	go worker.NewSnapshotWorker(kpiSvc, cfg.Worker.SnapshotInterval).Start(ctx)

	// 12. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 14. Cancel context to stop workers
	cancel()

	// 15. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health  *handler.HealthHandler
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	Cart    *handler.CartHandler
	Sale    *handler.SaleHandler
	Report  *handler.ReportHandler
	User    *handler.UserHandler
	Log     *handler.LogHandler
	SSE     *handler.SSEHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Public auth routes
	auth := router.Group("/v1/auth")
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
	}

	// Public catalog routes
	catalog := router.Group("/v1/catalog")
	{
		catalog.GET("/products", handlers.Product.List)
		catalog.GET("/products/:id", handlers.Product.Get)
		catalog.GET("/top-sellers", handlers.Product.TopSellers)
	}

	// Cart routes (authenticated)
	cart := router.Group("/v1/cart")
	cart.Use(jwtMiddleware.Handle())
	{
		cart.GET("", handlers.Cart.Get)
		cart.DELETE("", handlers.Cart.Clear)
		cart.POST("/items", handlers.Cart.Add)
		cart.PUT("/items/:id", handlers.Cart.UpdateQuantity)
		cart.DELETE("/items/:id", handlers.Cart.Remove)
	}

	// Sale routes (authenticated)
	sales := router.Group("/v1/sales")
	sales.Use(jwtMiddleware.Handle())
	{
		sales.POST("/checkout", handlers.Sale.Checkout)
		sales.GET("", handlers.Sale.MySales)
	}

	// SSE stream authenticates via token query param inside the handler
	router.GET("/v1/admin/sse", handlers.SSE.Stream)

	// Admin routes (authenticated + admin role)
	admin := router.Group("/v1/admin")
	admin.Use(jwtMiddleware.Handle(), middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/products", handlers.Product.Create)
		admin.PUT("/products/:id", handlers.Product.Update)
		admin.PUT("/products/:id/stock", handlers.Product.UpdateStock)
		admin.DELETE("/products/:id", handlers.Product.Delete)

		admin.GET("/sales", handlers.Sale.List)
		admin.GET("/sales/current-month", handlers.Sale.CurrentMonth)

		admin.GET("/reports/dashboard", handlers.Report.Dashboard)
		admin.GET("/reports/low-rotation", handlers.Product.LowRotation)

		admin.GET("/users", handlers.User.List)
		admin.GET("/users/:id", handlers.User.Get)
		admin.POST("/users", handlers.User.CreateAdmin)

		admin.GET("/logs", handlers.Log.List)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
