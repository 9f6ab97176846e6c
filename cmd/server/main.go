package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/config"
	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/database"
	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/handler"
	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/jobs"
	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/middleware"
	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/repository"
	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/service"
	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/stats"
	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/workers"
)

// statsRecorder records and reads back payment attempt counters
type statsRecorder interface {
	stats.Recorder
	stats.Reader
}

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Missing gateway credentials never stop the server; those gateways
	// answer 503 until configured.
	if missing := cfg.Payment.Missing(); len(missing) > 0 {
		slog.Warn("payment gateways not fully configured", slog.Any("missing", missing))
	}

	ctx := context.Background()

	// Payment attempt statistics
	var recorder statsRecorder = stats.NewMemoryRecorder()
	if cfg.Stats.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Stats.RedisAddr,
			Password: cfg.Stats.RedisPassword,
			DB:       cfg.Stats.RedisDB,
		})
		defer func() { _ = rdb.Close() }()

		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Warn("redis unreachable, attempt stats will be retried per request",
				slog.String("addr", cfg.Stats.RedisAddr),
				slog.String("error", err.Error()),
			)
		}
		recorder = stats.NewRedisRecorder(rdb,
			stats.WithPrefix(cfg.Stats.Prefix),
			stats.WithTTL(cfg.Stats.TTL),
		)
	}

	// Transaction audit persistence
	var auditSink middleware.AuditSink
	var auditPool *workers.Pool
	if cfg.Audit.PersistEnabled {
		db := database.NewSurrealDB(database.Config{
			Host:      cfg.Database.Host,
			Port:      cfg.Database.Port,
			User:      cfg.Database.User,
			Password:  cfg.Database.Password,
			Namespace: cfg.Database.Namespace,
			Database:  cfg.Database.Database,
		})
		if err := db.Connect(ctx); err != nil {
			slog.Error("failed to connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()

		slog.Info("connected to database",
			slog.String("host", cfg.Database.Host),
			slog.String("database", cfg.Database.Database),
		)

		auditRepo := repository.NewAuditRepository(db)
		if err := auditRepo.EnsureSchema(ctx); err != nil {
			slog.Error("failed to prepare audit table", slog.String("error", err.Error()))
			os.Exit(1)
		}

		auditPool = workers.NewPool(cfg.Audit.Workers, cfg.Audit.QueueSize, logger)
		auditSink = service.NewAuditService(service.AuditServiceConfig{
			Repo:   auditRepo,
			Pool:   auditPool,
			Logger: logger,
		})
	}

	// Payment attempt limiter
	sweepChance := cfg.RateLimit.SweepChance
	if sweepChance == 0 {
		sweepChance = -1
	}
	limiter := middleware.NewPaymentAttemptLimiter(middleware.PaymentLimiterConfig{
		Window:      cfg.RateLimit.Window,
		MaxAttempts: cfg.RateLimit.MaxAttempts,
		SweepChance: sweepChance,
	})

	var sweeper *jobs.AttemptSweeper
	if cfg.RateLimit.SweepInterval > 0 {
		sweeper = jobs.NewAttemptSweeper(limiter, cfg.RateLimit.SweepInterval, logger)
		sweeper.Start()
	}

	idempotencyStore := middleware.NewIdempotencyStore(middleware.IdempotencyConfig{})

	// Initialize services and handlers
	paymentService := service.NewPaymentService(service.PaymentServiceConfig{})

	identifierHandler := handler.NewIdentifierHandler()
	paymentHandler := handler.NewPaymentHandler(paymentService, cfg.Payment)
	statsHandler := handler.NewStatsHandler(recorder)

	paymentGuard := middleware.PaymentGuard(middleware.PaymentGuardConfig{
		Action:      "payment.create",
		Payment:     cfg.Payment,
		Auditor:     middleware.NewAuditor(logger, auditSink),
		Idempotency: idempotencyStore,
		Limiter:     limiter,
		Recorder:    recorder,
	})

	// Setup router
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.Health)

	// Identifier endpoints
	mux.HandleFunc("POST /v1/identifiers/validate", identifierHandler.Validate)
	mux.HandleFunc("GET /v1/identifiers/help/{type}", identifierHandler.Help)
	mux.HandleFunc("POST /v1/rut/validate", identifierHandler.ValidateRUT)

	// Payment endpoints
	mux.HandleFunc("GET /v1/payments/gateways", paymentHandler.Gateways)
	mux.HandleFunc("GET /v1/payments/attempts/stats", statsHandler.Attempts)
	mux.HandleFunc("GET /v1/payments/intents/{id}", paymentHandler.GetIntent)
	mux.Handle("POST /v1/payments/{gateway}", middleware.Chain(http.HandlerFunc(paymentHandler.Create), paymentGuard...))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins, cfg.Server.UserHeader),
		middleware.RealIP(cfg.Server.TrustProxy),
		middleware.UserFromHeader(cfg.Server.UserHeader),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	if sweeper != nil {
		sweeper.Stop()
	}
	idempotencyStore.Stop()
	if auditPool != nil {
		auditPool.Wait()
	}

	slog.Info("server exited")
}
