package reconciler

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/ridewave/ridepay/internal/usecase"
)

// ReportGenerator runs a full reconciliation pass.
type ReportGenerator interface {
	GenerateReport(ctx context.Context) (*usecase.ReconciliationReport, error)
}

// Worker periodically reconciles wallet balances against the ledger and
// logs any divergence it finds.
type Worker struct {
	generator   ReportGenerator
	logger      zerolog.Logger
	interval    time.Duration
	runs        prometheus.Counter
	divergences prometheus.Gauge
}

// Config for Worker.
type Config struct {
	Generator   ReportGenerator
	Logger      zerolog.Logger
	Interval    time.Duration // Time between passes
	Runs        prometheus.Counter
	Divergences prometheus.Gauge
}

// NewWorker creates a new reconciliation worker.
func NewWorker(cfg Config) *Worker {
	if cfg.Interval == 0 {
		cfg.Interval = 10 * time.Minute
	}

	return &Worker{
		generator:   cfg.Generator,
		logger:      cfg.Logger,
		interval:    cfg.Interval,
		runs:        cfg.Runs,
		divergences: cfg.Divergences,
	}
}

// Start begins the reconciliation loop. It runs a pass immediately,
// then on every tick until the context is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info().
		Dur("interval", w.interval).
		Msg("reconciliation worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("reconciliation worker shutting down")
			return ctx.Err()
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	report, err := w.generator.GenerateReport(ctx)
	if err != nil {
		w.logger.Error().Err(err).Msg("reconciliation pass failed")
		return
	}

	if w.runs != nil {
		w.runs.Inc()
	}
	if w.divergences != nil {
		w.divergences.Set(float64(len(report.Discrepancies)))
	}

	if len(report.Discrepancies) == 0 {
		w.logger.Debug().
			Int("wallets", report.TotalWallets).
			Msg("reconciliation pass clean")
		return
	}

	for _, result := range report.Discrepancies {
		w.logger.Error().
			Str("user_id", result.UserID).
			Str("store_balance", result.StoreBalance.String()).
			Str("ledger_balance", result.LedgerBalance.String()).
			Str("difference", result.Difference.String()).
			Msg("wallet diverged from ledger")
	}

	w.logger.Error().
		Int("wallets", report.TotalWallets).
		Int("diverged", len(report.Discrepancies)).
		Msg("reconciliation pass found discrepancies")
}
