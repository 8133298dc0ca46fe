// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rentloop/rentloop-api/internal/admin"
	"github.com/rentloop/rentloop-api/internal/agreement"
	"github.com/rentloop/rentloop-api/internal/application"
	"github.com/rentloop/rentloop-api/internal/auth"
	"github.com/rentloop/rentloop-api/internal/chat"
	"github.com/rentloop/rentloop-api/internal/config"
	"github.com/rentloop/rentloop-api/internal/core"
	"github.com/rentloop/rentloop-api/internal/favorite"
	"github.com/rentloop/rentloop-api/internal/health"
	"github.com/rentloop/rentloop-api/internal/middleware"
	"github.com/rentloop/rentloop-api/internal/notify"
	"github.com/rentloop/rentloop-api/internal/property"
	"github.com/rentloop/rentloop-api/internal/review"
	"github.com/rentloop/rentloop-api/internal/search"
	"github.com/rentloop/rentloop-api/internal/server"
	"github.com/rentloop/rentloop-api/internal/user"
	"github.com/rentloop/rentloop-api/internal/visit"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	var mailer notify.Mailer = notify.NoopMailer{}
	if cfg.Mail.Enabled {
		mailer = notify.NewSendGridMailer(cfg.Mail)
		logger.Info("mailer initialized", "from", cfg.Mail.FromAddress)
	}

	var indexer property.Indexer
	var searchClient *search.Client
	if cfg.Search.Enabled {
		searchClient = search.NewClient(cfg.Search)
		if initErr := searchClient.InitIndex(); initErr != nil {
			logger.Warn("search index init failed", "error", initErr)
		} else {
			logger.Info("search index ready",
				"host", cfg.Search.Host,
				"index", cfg.Search.Index,
			)
		}
		indexer = searchClient
	}

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	authRepo := auth.NewRepository(db.DB)
	authSvc := auth.NewService(authRepo, jwtManager, userSvc, redis.Client, mailer)
	authHandler := auth.NewHandler(authSvc)

	propertyRepo := property.NewRepository(db.DB)
	propertySvc := property.NewService(propertyRepo, indexer)
	propertyHandler := property.NewHandler(propertySvc)

	favoriteRepo := favorite.NewRepository(db.DB)
	favoriteSvc := favorite.NewService(favoriteRepo, propertySvc)
	favoriteHandler := favorite.NewHandler(favoriteSvc)

	applicationRepo := application.NewRepository(db.DB)
	applicationSvc := application.NewService(
		applicationRepo, propertySvc, userSvc, mailer)
	applicationHandler := application.NewHandler(applicationSvc)

	visitRepo := visit.NewRepository(db.DB)
	visitSvc := visit.NewService(visitRepo, propertySvc, userSvc, mailer)
	visitHandler := visit.NewHandler(visitSvc)

	chatRepo := chat.NewRepository(db.DB)
	chatSvc := chat.NewService(chatRepo, propertySvc)
	chatHandler := chat.NewHandler(chatSvc)

	reviewRepo := review.NewRepository(db.DB)
	reviewSvc := review.NewService(reviewRepo, propertySvc, userSvc)
	reviewHandler := review.NewHandler(reviewSvc)

	agreementRepo := agreement.NewRepository(db.DB)
	agreementSvc := agreement.NewService(
		agreementRepo, applicationSvc, propertySvc, userSvc, mailer)
	agreementHandler := agreement.NewHandler(agreementSvc)

	healthHandler := health.NewHandler(db, redis)
	if searchClient != nil {
		healthHandler.AddCheck("search", searchClient)
	}

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:      db.Stats,
		RedisStats:   redis.PoolStats,
		DBPing:       db.Ping,
		RedisPing:    redis.Ping,
		ListingStats: propertyRepo.CountByStatus,
		AppStats:     applicationRepo.CountByStatus,
		Properties:   propertySvc,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics)
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())
	router.Method("GET", "/metrics", middleware.MetricsHandler())

	authenticator := middleware.Authenticator(jwtManager)
	adminOnly := middleware.RequireAdmin

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)

		userHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterAdminRoutes(r, authenticator, adminOnly)

		propertyHandler.RegisterRoutes(r, authenticator)
		favoriteHandler.RegisterRoutes(r, authenticator)
		applicationHandler.RegisterRoutes(r, authenticator)
		visitHandler.RegisterRoutes(r, authenticator)
		chatHandler.RegisterRoutes(r, authenticator)
		reviewHandler.RegisterRoutes(r, authenticator)
		agreementHandler.RegisterRoutes(r, authenticator)

		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
