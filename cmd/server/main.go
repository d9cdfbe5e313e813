package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"notas/internal/audit"
	"notas/internal/config"
	"notas/internal/handlers"
	"notas/internal/repository"
	"notas/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func Run(ctx context.Context) error {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 2. Setup Logger
	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET is empty, every API request will be rejected")
	}

	// 3. Initialize Database
	db, err := repository.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// 4. Run Migrations
	if strings.HasPrefix(cfg.DatabaseURL, "postgres") {
		logger.Info("Running database migrations...")
		if err := repository.RunMigrations(cfg.DatabaseURL, ""); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	} else if err := repository.AutoMigrate(db); err != nil {
		return err
	}

	// 5. Initialize Redis
	rdb, err := repository.InitRedis(cfg.RedisURL, cfg.RedisPassword, 0)
	if err != nil {
		logger.Warn("Failed to connect to Redis", "error", err)
	}

	// 6. Metrics
	var registry *prometheus.Registry
	if cfg.MetricsEnabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	// Background context for workers
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	// 7. Persistence engine and auditing
	store := repository.NewStore(db)
	if err := audit.Install(store, newInterceptor(workerCtx, cfg, logger, rdb, registry)); err != nil {
		return fmt.Errorf("failed to install audit interceptor: %w", err)
	}
	store.Seal()

	// 8. Initialize Services and Handler
	auditService := services.NewAuditService(repository.NewAuditRepository(db), cfg.AuditMaxLimit, logger)
	h := handlers.NewHandler(cfg, logger, db, rdb, registry,
		services.NewProjectService(store),
		services.NewInvoiceService(store),
		services.NewExpenseService(store),
		auditService,
	)

	// 9. Setup Router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := h.SetupRouter()

	// 10. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Shutting down server...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	workerCancel()
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("Server exiting")
	return nil
}

// newInterceptor builds the audit hook and, when enabled and redis is up,
// starts the stream shipper on workerCtx.
func newInterceptor(workerCtx context.Context, cfg config.Config, logger *slog.Logger, rdb *redis.Client, registry *prometheus.Registry) *audit.Interceptor {
	var metrics *audit.Metrics
	if registry != nil {
		metrics = audit.NewMetrics(registry)
	}
	opts := []audit.Option{audit.WithMetrics(metrics)}

	switch {
	case !cfg.AuditStreamEnabled:
	case rdb == nil:
		logger.Warn("Audit stream enabled but Redis is unavailable, stream disabled")
	default:
		publisher := audit.NewStreamPublisher(rdb, cfg.AuditStreamKey, cfg.AuditStreamMaxLen)
		shipper := audit.NewShipper(publisher, 256, logger, metrics)
		go shipper.Start(workerCtx)
		opts = append(opts, audit.WithShipper(shipper))
		logger.Info("Audit stream enabled", "key", cfg.AuditStreamKey)
	}

	return audit.NewInterceptor(logger, opts...)
}
