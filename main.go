// Package main provides the main entry point for the Sahel Estates CMS backend
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amirphl/Sahel-Estates/app/handlers"
	"github.com/amirphl/Sahel-Estates/app/middleware"
	"github.com/amirphl/Sahel-Estates/app/router"
	"github.com/amirphl/Sahel-Estates/app/services"
	businessflow "github.com/amirphl/Sahel-Estates/business_flow"
	"github.com/amirphl/Sahel-Estates/config"
	"github.com/amirphl/Sahel-Estates/logging"
	"github.com/amirphl/Sahel-Estates/migrations"
	"github.com/amirphl/Sahel-Estates/models"
	"github.com/amirphl/Sahel-Estates/repository"
	"github.com/amirphl/Sahel-Estates/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Application represents the main application structure
type Application struct {
	router    *router.FiberRouter
	config    *config.ProductionConfig
	logs      *logging.Logs
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	// Load production configuration
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logs := logging.New(cfg.Logging)
	defer logs.Close()
	logger := logs.Logger

	logger.Info("Starting Sahel Estates CMS",
		"version", cfg.Deployment.Version,
		"environment", cfg.Deployment.Environment,
		"commit", cfg.Deployment.CommitHash,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := initializeApplication(ctx, cfg, logs)
	if err != nil {
		logger.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	app.router.SetupRoutes()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		serverErr <- app.router.Start(address)
	}()

	select {
	case <-sigChan:
		logger.Info("Shutting down gracefully...")
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", "error", err)
	}

	// Stop background workers and close connections once requests have drained
	cancel()
	for _, fn := range app.stopFuncs {
		fn()
	}

	logger.Info("Server stopped")
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(
			slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
			gormlogger.Config{
				SlowThreshold:             cfg.SlowQueryTime,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB for connection pooling configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
	)

	return db, nil
}

// initializeCache initializes the Redis client and verifies connectivity
func initializeCache(cfg config.CacheConfig, logger *slog.Logger) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	// Override DB if provided in config
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis connection established", "db", cfg.RedisDB)
	return rc, nil
}

// startCacheHealthMonitor starts a background goroutine that periodically pings Redis
// to detect connectivity issues. The returned cancel function stops the monitor.
func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration, logger *slog.Logger) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(context.Background(), 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					logger.Warn("Redis healthcheck failed", "error", err)
				}
				c()
			}
		}
	}()
	return cancel
}

// initializeStorage connects the media bucket; nil means uploads are disabled
func initializeStorage(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (services.BlobStorage, error) {
	if !cfg.Enabled {
		logger.Warn("Media storage disabled, uploads will be rejected")
		return nil, nil
	}

	storage, err := services.NewS3BlobStorage(ctx, services.S3StorageConfig{
		Endpoint:        cfg.Endpoint,
		Region:          cfg.Region,
		Bucket:          cfg.Bucket,
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
		UsePathStyle:    cfg.UsePathStyle,
		PublicBaseURL:   cfg.PublicBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize media storage: %w", err)
	}

	logger.Info("Media storage configured", "bucket", cfg.Bucket, "endpoint", cfg.Endpoint)
	return storage, nil
}

// initializeApplication wires every layer of the service
func initializeApplication(ctx context.Context, cfg *config.ProductionConfig, logs *logging.Logs) (*Application, error) {
	logger := logs.Logger

	db, err := initializeDatabase(cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(ctx, sqlDB); err != nil {
			return nil, err
		}
		logger.Info("Database migrations applied")
	}

	var stopFuncs []func()
	stopFuncs = append(stopFuncs, func() { _ = sqlDB.Close() })

	redisClient, err := initializeCache(cfg.Cache, logger)
	if err != nil {
		return nil, err
	}

	var contentCache services.ContentCache = services.NoopContentCache{}
	var challengeStore services.ChallengeStore
	if redisClient != nil {
		contentCache = services.NewRedisContentCache(redisClient, cfg.Cache.RedisPrefix+"content", cfg.Cache.DefaultTTL, logger)
		challengeStore = services.NewRedisChallengeStore(redisClient, cfg.Cache.RedisPrefix+"captcha:")
		stopFuncs = append(stopFuncs, startCacheHealthMonitor(ctx, redisClient, 30*time.Second, logger))
		stopFuncs = append(stopFuncs, func() { _ = redisClient.Close() })
	} else {
		challengeStore = services.NewMemoryChallengeStore(ctx)
	}

	storage, err := initializeStorage(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, err
	}

	var captcha services.CaptchaService
	if cfg.Captcha.Enabled {
		captcha = services.NewCaptchaServiceRotate(challengeStore, cfg.Captcha.TTL, cfg.Captcha.Tolerance, 0)
	}

	// Session layer
	tokenService, err := services.NewTokenService(cfg.Session.SecretKey, cfg.Session.TTL, services.WithIssuer(cfg.Session.Issuer))
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}
	sessions := services.NewSessionManager(tokenService, services.SessionCookieConfig{
		Name:   cfg.Session.CookieName,
		Path:   "/",
		Secure: cfg.Deployment.IsProduction(),
	})

	// Repositories
	adminRepo := repository.NewAdminRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	messageRepo := repository.NewContactMessageRepository(db)
	heroRepo := repository.NewContentRepository[models.HeroSlide](db)
	projectRepo := repository.NewContentRepository[models.Project](db)
	newsRepo := repository.NewNewsRepository(db)
	serviceRepo := repository.NewContentRepository[models.Service](db)
	benefitRepo := repository.NewContentRepository[models.Benefit](db)
	factRepo := repository.NewContentRepository[models.Fact](db)
	videoRepo := repository.NewSingletonRepository[models.ShowcaseVideo](db)
	contactInfoRepo := repository.NewSingletonRepository[models.ContactInfo](db)

	seeder := businessflow.NewAdminSeeder(adminRepo, auditRepo, cfg.Security.BcryptCost, cfg.Security.PasswordMinLength, logger)
	if _, err := seeder.EnsureSuperAdmin(ctx, businessflow.SeedAdminInput{
		Email:    cfg.Admin.BootstrapEmail,
		Password: cfg.Admin.BootstrapPassword,
		Name:     cfg.Admin.BootstrapName,
	}); err != nil {
		return nil, fmt.Errorf("failed to bootstrap super admin: %w", err)
	}

	// Business flows
	validate := utils.NewValidator()
	authFlow := businessflow.NewAdminAuthFlow(adminRepo, auditRepo, cfg.Security.BcryptCost, logger)
	adminFlow := businessflow.NewAdminManagementFlow(adminRepo, auditRepo, cfg.Security.BcryptCost, cfg.Security.PasswordMinLength, logger)
	newsFlow := businessflow.NewNewsFlow(newsRepo, auditRepo, validate, contentCache, storage, logger)
	siteFlow := businessflow.NewPublicSiteFlow(businessflow.SiteRepositories{
		HeroSlides:    heroRepo,
		Projects:      projectRepo,
		News:          newsRepo,
		Services:      serviceRepo,
		Benefits:      benefitRepo,
		Facts:         factRepo,
		ShowcaseVideo: videoRepo,
		ContactInfo:   contactInfoRepo,
	}, contentCache, logger)

	var uploadStorage services.BlobStorage = services.DisabledBlobStorage{}
	if storage != nil {
		uploadStorage = storage
	}

	// Handlers
	h := router.Handlers{
		Auth:   handlers.NewAdminAuthHandler(authFlow, sessions, logger),
		Admins: handlers.NewAdminManagementHandler(adminFlow, logger),
		HeroSlides: handlers.NewContentHandler[models.HeroSlide](models.SectionHeroSlides,
			businessflow.NewContentFlow[models.HeroSlide](heroRepo, auditRepo, validate, contentCache, storage, logger), logger),
		Projects: handlers.NewContentHandler[models.Project](models.SectionProjects,
			businessflow.NewContentFlow[models.Project](projectRepo, auditRepo, validate, contentCache, storage, logger), logger),
		News: handlers.NewNewsHandler(newsFlow, logger),
		Services: handlers.NewContentHandler[models.Service](models.SectionServices,
			businessflow.NewContentFlow[models.Service](serviceRepo, auditRepo, validate, contentCache, storage, logger), logger),
		Benefits: handlers.NewContentHandler[models.Benefit](models.SectionBenefits,
			businessflow.NewContentFlow[models.Benefit](benefitRepo, auditRepo, validate, contentCache, storage, logger), logger),
		Facts: handlers.NewContentHandler[models.Fact](models.SectionFacts,
			businessflow.NewContentFlow[models.Fact](factRepo, auditRepo, validate, contentCache, storage, logger), logger),
		ShowcaseVideo: handlers.NewSettingsHandler[models.ShowcaseVideo](models.SectionShowcaseVideo,
			businessflow.NewSettingsFlow[models.ShowcaseVideo](videoRepo, auditRepo, validate, contentCache, storage, logger), logger),
		ContactInfo: handlers.NewSettingsHandler[models.ContactInfo](models.SectionContactInfo,
			businessflow.NewSettingsFlow[models.ContactInfo](contactInfoRepo, auditRepo, validate, contentCache, storage, logger), logger),
		Contact: handlers.NewContactHandler(businessflow.NewContactMessageFlow(messageRepo, auditRepo, captcha, logger), logger),
		Uploads: handlers.NewUploadHandler(businessflow.NewUploadFlow(uploadStorage, auditRepo, logger), logger),
		Site:    handlers.NewSiteHandler(siteFlow, logger),
	}

	gate := middleware.NewAdminGate(sessions, middleware.AdminGateConfig{
		ProtectedPrefix: cfg.Session.ProtectedPath,
		LoginPath:       cfg.Session.LoginPath,
		DashboardPath:   cfg.Session.DashboardPath,
	})
	authMiddleware := middleware.NewAuthMiddleware(sessions, authFlow, logger)

	checks := map[string]router.HealthCheck{
		"database": sqlDB.PingContext,
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	fiberRouter := router.NewFiberRouter(cfg, logs, h, gate, authMiddleware, checks)

	return &Application{
		router:    fiberRouter,
		config:    cfg,
		logs:      logs,
		server:    fiberRouter.GetApp(),
		stopFuncs: stopFuncs,
	}, nil
}
