// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/carterperez-dev/templates/inventory-api/internal/auth"
	"github.com/carterperez-dev/templates/inventory-api/internal/category"
	"github.com/carterperez-dev/templates/inventory-api/internal/config"
	"github.com/carterperez-dev/templates/inventory-api/internal/core"
	"github.com/carterperez-dev/templates/inventory-api/internal/health"
	"github.com/carterperez-dev/templates/inventory-api/internal/middleware"
	"github.com/carterperez-dev/templates/inventory-api/internal/product"
	"github.com/carterperez-dev/templates/inventory-api/internal/server"
	"github.com/carterperez-dev/templates/inventory-api/internal/user"
	"github.com/carterperez-dev/templates/inventory-api/internal/webhook"
)

const readinessPollInterval = time.Second

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

	telemetry, err := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
	if err != nil {
		logger.Warn("failed to initialize telemetry", "error", err)
	} else if cfg.Otel.Enabled {
		logger.Info("OpenTelemetry tracer initialized",
			"endpoint", cfg.Otel.Endpoint,
		)
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

	var metrics *core.Metrics
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics = core.NewMetrics(registry)
		metrics.RegisterDBStats(db.DB.DB)
	}

	tokenRepo := auth.NewRepository(db.DB)
	tokens := auth.NewTokenService(tokenRepo, cfg.Token.TTL,
		auth.WithMetrics(metrics),
	)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	authSvc := auth.NewService(tokens, userSvc)
	authHandler := auth.NewHandler(authSvc)

	categoryRepo := category.NewRepository(db.DB)
	categoryHandler := category.NewHandler(category.NewService(categoryRepo))

	productRepo := product.NewRepository(db.DB)
	productHandler := product.NewHandler(product.NewService(productRepo, categoryRepo))

	webhookSvc := webhook.NewService(
		cfg.Webhook,
		webhook.NewCommandDeployer(cfg.Webhook),
		redis,
		metrics,
	)
	webhookHandler := webhook.NewHandler(webhookSvc)
	if cfg.Webhook.Secret == "" {
		logger.Warn("WEBHOOK_SECRET is empty, every webhook delivery will be rejected")
	}

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
	)
	healthHandler.SetReady(false)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
		ServiceName:   cfg.Otel.ServiceName,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer)
	if metrics != nil {
		router.Use(middleware.Metrics(metrics))
	}
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))

	healthHandler.RegisterRoutes(router)
	if metrics != nil {
		router.Method(http.MethodGet, cfg.Metrics.Path, metrics.Handler())
	}

	authenticate := middleware.Authenticator(tokens, metrics)
	guardExpiration := middleware.ExpirationGuard(tokens, metrics)
	requireAuth := func(next http.Handler) http.Handler {
		return authenticate(guardExpiration(next))
	}

	authHandler.RegisterRoutes(router, requireAuth)
	userHandler.RegisterRoutes(router, requireAuth)
	categoryHandler.RegisterRoutes(router, requireAuth)
	productHandler.RegisterRoutes(router, requireAuth)
	webhookHandler.RegisterRoutes(router)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()
	go awaitDependencies(ctx, logger, healthHandler, db, redis)

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	drainDelay := cfg.Server.DrainDelay
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

// awaitDependencies keeps readiness failing until every dependency answers
// a ping.
func awaitDependencies(
	ctx context.Context,
	logger *slog.Logger,
	h *health.Handler,
	deps ...health.Checker,
) {
	ticker := time.NewTicker(readinessPollInterval)
	defer ticker.Stop()

	for {
		if pingAll(ctx, deps) == nil {
			h.SetReady(true)
			logger.Info("dependencies ready, accepting traffic")
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func pingAll(ctx context.Context, deps []health.Checker) error {
	for _, dep := range deps {
		if err := dep.Ping(ctx); err != nil {
			return err
		}
	}
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
