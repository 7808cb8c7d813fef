package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskbid/marketplace/internal/api/handler"
	"github.com/taskbid/marketplace/internal/api/middleware"
	"github.com/taskbid/marketplace/internal/core/domain"
	"github.com/taskbid/marketplace/internal/core/ports"
	"github.com/taskbid/marketplace/internal/core/service"
	"github.com/taskbid/marketplace/internal/infrastructure/config"
	mongodb "github.com/taskbid/marketplace/internal/infrastructure/db/mongo"
	redisdb "github.com/taskbid/marketplace/internal/infrastructure/db/redis"
	"github.com/taskbid/marketplace/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the settlement dispatcher, which the caller must Start.
func NewRouter(db *mongo.Database, rdb *redis.Client, gateway ports.PaymentGateway, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskbid"))

	// --- Dependencies ---
	authRepo := mongodb.NewAuthRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	bidRepo := mongodb.NewBidRepository(db)

	rules := service.MarketRules{
		MinTaskPrice:  cfg.Market.MinTaskPrice,
		MaxTaskPrice:  cfg.Market.MaxTaskPrice,
		PlatformFee:   cfg.Market.PlatformFee,
		Lifecycle:     domain.LifecycleMode(cfg.Market.Lifecycle),
		PublicBaseURL: cfg.PublicBaseURL,
	}

	authService := service.NewAuthService(authRepo, cfg.JWTSecret, 24*time.Hour)
	taskService := service.NewTaskService(taskRepo, bidRepo, gateway, rules, log)
	bidService := service.NewBidService(bidRepo, taskRepo, log)

	dedup := redisdb.NewDedupChecker(rdb)
	settlementService := service.NewSettlementService(taskRepo, taskService, dedup, cfg.Market.PlatformFee, log)
	dispatcher := queue.NewDispatcher(0, settlementService, log)

	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService, cfg.Market.PlatformFee)
	bidHandler := handler.NewBidHandler(bidService)
	paymentHandler := handler.NewPaymentHandler(dispatcher)
	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Gateway redirect (public: the payer lands here from the hosted page) ---
	e.GET("/payments/callback", paymentHandler.Callback)

	// --- Marketplace routes ---
	v1 := e.Group("/v1", authMiddleware)
	v1.GET("/tasks", taskHandler.ListOpen)
	v1.POST("/tasks", taskHandler.Create)
	v1.GET("/tasks/mine", taskHandler.Mine)
	v1.GET("/tasks/assigned", taskHandler.Assigned)
	v1.POST("/tasks/:id/accept", taskHandler.Accept)
	v1.POST("/tasks/:id/complete", taskHandler.Complete)
	v1.POST("/tasks/:id/checkout", taskHandler.Checkout)
	v1.POST("/tasks/:id/bids", bidHandler.Submit)
	v1.GET("/tasks/:id/bids", bidHandler.ListForTask)
	v1.GET("/bids/mine", bidHandler.Mine)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, dispatcher
}
