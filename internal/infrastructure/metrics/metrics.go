package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all business-level Prometheus metrics. HTTP-level metrics
// are recorded by the metrics middleware.
type Metrics struct {
	// Credit flow metrics
	CreditAttempts      *prometheus.CounterVec
	CreditDuration      prometheus.Histogram
	LedgerWriteFailures prometheus.Counter

	// Notification metrics
	NotificationsDispatched prometheus.Counter
	NotificationsDropped    prometheus.Counter

	// Reconciliation metrics
	ReconciliationRuns        prometheus.Counter
	ReconciliationDivergences prometheus.Gauge
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Credit flow metrics
		CreditAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ridepay_credit_attempts_total",
				Help: "Total wallet credit attempts by outcome",
			},
			[]string{"status"},
		),
		CreditDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ridepay_credit_duration_seconds",
			Help:    "Duration of wallet credit operations",
			Buckets: prometheus.DefBuckets,
		}),
		LedgerWriteFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ridepay_ledger_write_failures_total",
			Help: "Total ledger appends that failed after the remote call",
		}),

		// Notification metrics
		NotificationsDispatched: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ridepay_notifications_dispatched_total",
			Help: "Total notifications delivered to subscribers",
		}),
		NotificationsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ridepay_notifications_dropped_total",
			Help: "Total notifications dropped due to full subscriber buffers",
		}),

		// Reconciliation metrics
		ReconciliationRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ridepay_reconciliation_runs_total",
			Help: "Total reconciliation report runs",
		}),
		ReconciliationDivergences: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "ridepay_reconciliation_divergences",
			Help: "Number of wallets whose ledger sum diverged in the last run",
		}),
	}
}
