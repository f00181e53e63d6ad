package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"campushire/internal/app"
	"campushire/internal/config"
	"campushire/internal/database"
	apphttp "campushire/internal/http"
	"campushire/internal/http/handlers"
	"campushire/internal/http/metrics"
	httpmw "campushire/internal/http/middleware"
	"campushire/internal/observability"
	"campushire/internal/repository/postgres"
	"campushire/internal/security"
	"campushire/internal/storage"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()
	db, err := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	}, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(migrateCtx, db); err != nil {
		log.Fatal(err)
	}
	cancelMigrate()

	uploads, err := storage.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := postgres.NewUserRepository(db)
	refreshRepo := postgres.NewRefreshTokenRepository(db)
	studentRepo := postgres.NewStudentProfileRepository(db)
	companyRepo := postgres.NewCompanyProfileRepository(db)
	opportunityRepo := postgres.NewOpportunityRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	analyticsRepo := postgres.NewAnalyticsRepository(db)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)

	authService := app.NewAuthService(userRepo, refreshRepo, jwtProvider, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, logger)
	profileService := app.NewProfileService(studentRepo, companyRepo, userRepo, logger)
	opportunityService := app.NewOpportunityService(opportunityRepo, companyRepo, userRepo, applicationRepo, studentRepo, logger)
	applicationService := app.NewApplicationService(applicationRepo, opportunityRepo, studentRepo, userRepo, logger)
	analyticsService := app.NewAnalyticsService(analyticsRepo, opportunityRepo, studentRepo, userRepo, logger)
	adminService := app.NewAdminService(opportunityRepo, companyRepo, userRepo, logger)
	webhookService := app.NewWebhookService(userRepo, companyRepo, logger)

	var rateLimiter httpmw.Limiter
	if cfg.RedisAddr != "" {
		rateLimiter = httpmw.NewRedisLimiter(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
		logger.Info("rate limiting via redis", "addr", cfg.RedisAddr)
	} else {
		rateLimiter = httpmw.NewMemoryLimiter()
	}

	authHandler := handlers.NewAuthHandler(authService, rateLimiter)
	profileHandler := handlers.NewProfileHandler(profileService, uploads)
	opportunityHandler := handlers.NewOpportunityHandler(opportunityService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, rateLimiter)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	adminHandler := handlers.NewAdminHandler(adminService)
	webhookHandler := handlers.NewWebhookHandler(webhookService, cfg.WebhookSecret)
	authMiddleware := httpmw.NewAuthMiddleware(jwtProvider)

	collector := metrics.NewCollector()

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:        authHandler,
		ProfileHandler:     profileHandler,
		OpportunityHandler: opportunityHandler,
		ApplicationHandler: applicationHandler,
		AnalyticsHandler:   analyticsHandler,
		AdminHandler:       adminHandler,
		WebhookHandler:     webhookHandler,
		MetricsHandler:     metrics.NewHandler(collector),
		AuthMiddleware:     authMiddleware,
		RateLimiter:        rateLimiter,
		Metrics:            collector,
		Logger:             logger,
		RequestTimeout:     cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
