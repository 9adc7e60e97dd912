package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ridewave/ridepay/internal/adapter/http/handler"
	"github.com/ridewave/ridepay/internal/adapter/http/middleware"
	"github.com/ridewave/ridepay/internal/infrastructure/auth"
	"github.com/ridewave/ridepay/internal/usecase"
)

// PaymentRouterConfig holds dependencies for the payment API router.
type PaymentRouterConfig struct {
	PaymentHandler        *handler.PaymentHandler
	LedgerHandler         *handler.LedgerHandler
	ReconciliationHandler *handler.ReconciliationHandler
	HealthHandler         *handler.HealthHandler
	NotificationStream    http.HandlerFunc
	JWTManager            *auth.JWTManager
	IdempotencyStore      usecase.IdempotencyStore
	RateLimiter           *middleware.RateLimiter
	Logger                zerolog.Logger
}

// NewPaymentRouter creates the payment service's HTTP router.
func NewPaymentRouter(cfg PaymentRouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.JWTManager))

		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		r.Route("/wallet", func(r chi.Router) {
			r.Post("/credit", cfg.PaymentHandler.CreditWallet)
		})

		r.Route("/ledger", func(r chi.Router) {
			r.Get("/entries", cfg.LedgerHandler.List)
			r.Get("/entries/{id}", cfg.LedgerHandler.Get)
			r.Get("/balance", cfg.LedgerHandler.DerivedBalance)
		})

		if cfg.NotificationStream != nil {
			r.Get("/notifications/stream", cfg.NotificationStream)
		}

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Get("/reconciliation/report", cfg.ReconciliationHandler.Report)
			r.Get("/reconciliation/{userID}", cfg.ReconciliationHandler.CheckUser)
		})
	})

	return r
}

// WalletRouterConfig holds dependencies for the balance service router.
type WalletRouterConfig struct {
	AuthHandler      *handler.AuthHandler
	BalanceHandler   *handler.BalanceHandler
	HealthHandler    *handler.HealthHandler
	JWTManager       *auth.JWTManager
	IdempotencyStore usecase.IdempotencyStore
	Logger           zerolog.Logger
}

// NewWalletRouter creates the balance service's HTTP router. The
// internal routes are only called by the payment service; the /api/v1
// routes are the user-facing profile, login and wallet-read surface.
func NewWalletRouter(cfg WalletRouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/internal/wallets", func(r chi.Router) {
		// Dedupes retried credits carrying the same Idempotency-Key.
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore).Wrap)
		}

		r.Post("/credit", cfg.BalanceHandler.Credit)
		r.Get("/", cfg.BalanceHandler.List)
		r.Get("/{userID}", cfg.BalanceHandler.Get)
	})

	r.Post("/api/v1/auth/register", cfg.AuthHandler.Register)
	r.Post("/api/v1/auth/login", cfg.AuthHandler.Login)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.JWTManager))

		r.Get("/auth/me", cfg.AuthHandler.GetCurrentUser)
		r.Get("/users/me/wallet", cfg.BalanceHandler.GetOwn)
	})

	return r
}
