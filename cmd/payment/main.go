package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/ridewave/ridepay/internal/adapter/http"
	"github.com/ridewave/ridepay/internal/adapter/http/handler"
	"github.com/ridewave/ridepay/internal/adapter/http/middleware"
	postgresRepo "github.com/ridewave/ridepay/internal/adapter/repository/postgres"
	redisRepo "github.com/ridewave/ridepay/internal/adapter/repository/redis"
	"github.com/ridewave/ridepay/internal/adapter/walletclient"
	"github.com/ridewave/ridepay/internal/infrastructure/auth"
	"github.com/ridewave/ridepay/internal/infrastructure/config"
	"github.com/ridewave/ridepay/internal/infrastructure/logger"
	"github.com/ridewave/ridepay/internal/infrastructure/metrics"
	"github.com/ridewave/ridepay/internal/infrastructure/notifier"
	"github.com/ridewave/ridepay/internal/infrastructure/postgres"
	"github.com/ridewave/ridepay/internal/infrastructure/reconciler"
	"github.com/ridewave/ridepay/internal/infrastructure/redis"
	"github.com/ridewave/ridepay/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}).
		With().Str("service", "payment").Logger()

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations when a path is configured
	if cfg.MigrationsPath != "" {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Initialize repositories. Wallet and user rows belong to the
	// wallet service; this service only touches the ledger.
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Remote balance store client
	balanceClient := walletclient.New(cfg.WalletBaseURL,
		walletclient.WithHTTPClient(&http.Client{Timeout: cfg.WalletTimeout}),
		walletclient.WithRetries(cfg.WalletMaxRetries, 100*time.Millisecond),
	)

	// Notification hub for live connections
	hub := notifier.NewHub(notifier.Config{
		BufferSize: cfg.NotifyBufferSize,
		Logger:     log,
		Dropped:    m.NotificationsDropped,
		Dispatched: m.NotificationsDispatched,
	})

	// Initialize use cases
	creditUC := usecase.NewCreditUseCase(usecase.CreditConfig{
		Balance:             balanceClient,
		LedgerRepo:          ledgerRepo,
		Notifier:            hub,
		IDGen:               idGen,
		Logger:              log,
		RemoteTimeout:       cfg.WalletTimeout,
		LedgerWriteFailures: m.LedgerWriteFailures,
		Attempts:            m.CreditAttempts,
		Duration:            m.CreditDuration,
	})
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo)
	reconciliationUC := usecase.NewReconciliationUseCase(balanceClient, ledgerRepo)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Initialize handlers
	paymentHandler := handler.NewPaymentHandler(creditUC)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC)
	reconciliationHandler := handler.NewReconciliationHandler(reconciliationUC)
	notificationHandler := handler.NewNotificationHandler(hub, log)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewPaymentRouter(httpAdapter.PaymentRouterConfig{
		PaymentHandler:        paymentHandler,
		LedgerHandler:         ledgerHandler,
		ReconciliationHandler: reconciliationHandler,
		HealthHandler:         healthHandler,
		NotificationStream:    notificationHandler.Stream,
		JWTManager:            jwtManager,
		IdempotencyStore:      idempotencyStore,
		RateLimiter:           middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
		Logger:                log,
	})

	// Background reconciliation worker
	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()

	if cfg.ReconcileEnabled {
		worker := reconciler.NewWorker(reconciler.Config{
			Generator:   reconciliationUC,
			Logger:      log,
			Interval:    cfg.ReconcileInterval,
			Runs:        m.ReconciliationRuns,
			Divergences: m.ReconciliationDivergences,
		})

		go func() {
			if err := worker.Start(workerCtx); err != nil && workerCtx.Err() == nil {
				log.Error().Err(err).Msg("reconciliation worker stopped")
			}
		}()
	}

	// Create server. No write timeout: it would sever long-lived SSE
	// notification streams.
	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:     router,
		ReadTimeout: cfg.HTTPReadTimeout,
		IdleTimeout: cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting payment service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down payment service...")
	stopWorker()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("payment service stopped")
}
