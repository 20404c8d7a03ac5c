package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/travvip/backend/internal/application/catalog"
	crmapp "github.com/travvip/backend/internal/application/crm"
	documentapp "github.com/travvip/backend/internal/application/document"
	identityapp "github.com/travvip/backend/internal/application/identity"
	quoteapp "github.com/travvip/backend/internal/application/quote"
	"github.com/travvip/backend/internal/infrastructure/auth"
	"github.com/travvip/backend/internal/infrastructure/cache"
	"github.com/travvip/backend/internal/infrastructure/config"
	"github.com/travvip/backend/internal/infrastructure/logger"
	"github.com/travvip/backend/internal/infrastructure/mailer"
	"github.com/travvip/backend/internal/infrastructure/pdf"
	"github.com/travvip/backend/internal/infrastructure/persistence"
	"github.com/travvip/backend/internal/infrastructure/storage"
	"github.com/travvip/backend/internal/interfaces/http/handler"
	"github.com/travvip/backend/internal/interfaces/http/middleware"
	"github.com/travvip/backend/internal/interfaces/http/router"
)

const statsCacheTTL = 30 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Travvip backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log, logger.MapGormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Token blacklist and stats cache share the Redis deployment. Both fall
	// back to per-process stores when Redis is unreachable, so a single
	// instance still runs fine without it.
	var blacklist auth.TokenBlacklist
	var statsCache crmapp.StatsCache
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-process token blacklist and stats cache", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
		statsCache = cache.NewInMemoryStatsCache()
	} else {
		blacklist = redisBlacklist
		statsCache = cache.NewRedisStatsCache(redisBlacklist.Client(), log)
	}

	// Repositories
	queryRepo := persistence.NewGormQueryRepository(db.DB)
	activityLogRepo := persistence.NewGormActivityLogRepository(db.DB)
	bookingRepo := persistence.NewGormBookingChecklistRepository(db.DB)
	leadSourceRepo := persistence.NewGormLeadSourceRepository(db.DB)
	itineraryRepo := persistence.NewGormItineraryRepository(db.DB)
	hotelRepo := persistence.NewGormHotelRepository(db.DB)
	packageRepo := persistence.NewGormTourPackageRepository(db.DB)
	catalogActivityRepo := persistence.NewGormActivityRepository(db.DB)
	routeRepo := persistence.NewGormRouteRepository(db.DB)
	transportRepo := persistence.NewGormTransportRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	orgRepo := persistence.NewGormOrganizationRepository(db.DB)

	// Infrastructure services
	jwtService := auth.NewJWTService(cfg.JWT)
	mail := mailer.NewResendMailer(cfg.Mail, log)

	var imageStorage catalogapp.ImageStorage
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ImageStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize image storage", zap.Error(err))
		}
		imageStorage = s3Storage
		log.Info("Image storage configured", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		log.Warn("Image storage not configured, uploads disabled")
	}

	renderer := pdf.NewChromedpRenderer(cfg.PDF, log)
	defer renderer.Close()

	// Application services
	authService := identityapp.NewAuthService(userRepo, orgRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, log)
	orgService := identityapp.NewOrganizationService(orgRepo, userRepo, mail, log)
	queryService := crmapp.NewQueryService(queryRepo, activityLogRepo, log)
	bookingService := crmapp.NewBookingService(bookingRepo, queryRepo, activityLogRepo, log)
	leadSourceService := crmapp.NewLeadSourceService(leadSourceRepo, queryRepo, log)
	dashboardService := crmapp.NewDashboardService(queryRepo, hotelRepo, packageRepo, log,
		crmapp.WithStatsCache(statsCache, statsCacheTTL))
	catalogService := catalogapp.NewCatalogService(hotelRepo, packageRepo, catalogActivityRepo, routeRepo, transportRepo, log)
	uploadService := catalogapp.NewUploadService(imageStorage, log)
	itineraryService := quoteapp.NewItineraryService(itineraryRepo, queryRepo, hotelRepo, transportRepo, catalogActivityRepo, routeRepo, activityLogRepo, log)
	documentService := documentapp.NewDocumentService(queryRepo, itineraryRepo, orgRepo, renderer, log)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	orgHandler := handler.NewOrganizationHandler(orgService)
	queryHandler := handler.NewQueryHandler(queryService, bookingService)
	leadSourceHandler := handler.NewLeadSourceHandler(leadSourceService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	uploadHandler := handler.NewUploadHandler(uploadService)
	itineraryHandler := handler.NewItineraryHandler(itineraryService)
	documentHandler := handler.NewDocumentHandler(documentService)

	// Gin engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxy configuration", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.NoStore())

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Routes
	authMiddleware := middleware.RequireAuth(middleware.AuthConfig{
		JWTService: jwtService,
		Blacklist:  blacklist,
		Logger:     log,
	})

	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithAuthMiddleware(authMiddleware),
		router.WithAdminMiddleware(middleware.RequireSuperAdmin()),
	)
	r.RegisterPublic(
		router.RegistrarFunc(authHandler.RegisterPublicRoutes),
		router.RegistrarFunc(orgHandler.RegisterPublicRoutes),
		router.RegistrarFunc(leadSourceHandler.RegisterPublicRoutes),
	)
	r.Register(
		authHandler,
		userHandler,
		orgHandler,
		queryHandler,
		leadSourceHandler,
		dashboardHandler,
		catalogHandler,
		uploadHandler,
		itineraryHandler,
		documentHandler,
	)
	r.RegisterAdmin(
		router.RegistrarFunc(orgHandler.RegisterAdminRoutes),
	)
	r.Setup()

	// HTTP server
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports process and database health
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
