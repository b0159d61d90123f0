package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adminapp "github.com/farmmarket/backend/internal/application/admin"
	catalogapp "github.com/farmmarket/backend/internal/application/catalog"
	engagementapp "github.com/farmmarket/backend/internal/application/engagement"
	identityapp "github.com/farmmarket/backend/internal/application/identity"
	notificationapp "github.com/farmmarket/backend/internal/application/notification"
	reportapp "github.com/farmmarket/backend/internal/application/report"
	tradeapp "github.com/farmmarket/backend/internal/application/trade"
	"github.com/farmmarket/backend/internal/infrastructure/auth"
	"github.com/farmmarket/backend/internal/infrastructure/config"
	"github.com/farmmarket/backend/internal/infrastructure/logger"
	"github.com/farmmarket/backend/internal/infrastructure/persistence"
	"github.com/farmmarket/backend/internal/infrastructure/storage"
	"github.com/farmmarket/backend/internal/infrastructure/telemetry"
	"github.com/farmmarket/backend/internal/interfaces/http/handler"
	"github.com/farmmarket/backend/internal/interfaces/http/middleware"
	"github.com/farmmarket/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting farm market backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing is optional; a disabled provider is a no-op
	ctx := context.Background()
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database connection with zap-backed GORM logging
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewPostgresDB(cfg.Database, gormLog, cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		sqlDB, err := db.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Error("Error closing database", zap.Error(err))
			}
		}
	}()
	log.Info("Database connected successfully")

	// Token blacklist backed by Redis. Outside production a missing Redis
	// falls back to an in-memory blacklist, which only holds revocations for
	// the life of this process.
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		if cfg.App.Env == "production" {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		defer func() {
			if err := redisBlacklist.Close(); err != nil {
				log.Error("Error closing Redis connection", zap.Error(err))
			}
		}()
		blacklist = redisBlacklist
		log.Info("Redis token blacklist enabled")
	}

	// Object storage for product images
	var objectStorage storage.ObjectStorage
	if cfg.S3.Enabled {
		s3Storage, err := storage.NewS3ObjectStorage(cfg.S3, log)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("S3 object storage enabled", zap.String("bucket", cfg.S3.Bucket))
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Object storage not configured, image URLs will be stubbed")
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// Repositories
	userRepo := persistence.NewGormUserRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)
	cartRepo := persistence.NewGormCartRepository(db)
	wishlistRepo := persistence.NewGormWishlistRepository(db)
	reviewRepo := persistence.NewGormReviewRepository(db)
	notificationRepo := persistence.NewGormNotificationRepository(db)

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	productService := catalogapp.NewProductService(productRepo, userRepo, objectStorage, cfg.S3.PresignTTL, log)
	orderService := tradeapp.NewOrderService(orderRepo, productRepo, cartRepo, log)
	cartService := tradeapp.NewCartService(cartRepo, productRepo, log)
	engagementService := engagementapp.NewEngagementService(wishlistRepo, reviewRepo, orderRepo, productRepo, log)
	notificationService := notificationapp.NewNotificationService(notificationRepo, log)
	dashboardService := reportapp.NewDashboardService(productService, orderService, engagementService, notificationService, log)
	// A deleted user's outstanding refresh tokens stay revoked for as long
	// as they could otherwise live
	adminService := adminapp.NewAdminService(userRepo, productRepo, orderRepo, blacklist, cfg.JWT.RefreshTokenExpiration, log)

	// Gin engine and middleware chain
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	if tracerProvider.IsEnabled() {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Handlers and routes
	handlers := router.Handlers{
		System:       handler.NewSystemHandler(db),
		Auth:         handler.NewAuthHandler(authService),
		Product:      handler.NewProductHandler(productService),
		Order:        handler.NewOrderHandler(orderService),
		Cart:         handler.NewCartHandler(cartService),
		Engagement:   handler.NewEngagementHandler(engagementService),
		Notification: handler.NewNotificationHandler(notificationService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
		Admin:        handler.NewAdminHandler(adminService),
	}
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(router.NewRoutes(handlers))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
