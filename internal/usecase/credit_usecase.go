package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ridewave/ridepay/internal/domain"
)

// CreditUseCase coordinates the wallet-crediting flow: remote balance
// mutation, ledger write, notifier dispatch.
//
// The remote call and the ledger write cross store boundaries and are
// not atomic. The contract is: a ledger entry exists for every attempt
// whose remote call was issued, and its status reflects whether the
// mutation is believed applied. A write failure after the outcome is
// known degrades that invariant and is surfaced to operators, never
// swallowed.
type CreditUseCase struct {
	balance             BalanceClient
	ledgerRepo          LedgerRepository
	notifier            Notifier
	idGen               IDGenerator
	logger              zerolog.Logger
	remoteTimeout       time.Duration
	ledgerWriteFailures prometheus.Counter
	attempts            *prometheus.CounterVec
	duration            prometheus.Histogram
}

// CreditConfig holds dependencies for CreditUseCase.
type CreditConfig struct {
	Balance             BalanceClient
	LedgerRepo          LedgerRepository
	Notifier            Notifier
	IDGen               IDGenerator
	Logger              zerolog.Logger
	RemoteTimeout       time.Duration
	LedgerWriteFailures prometheus.Counter
	Attempts            *prometheus.CounterVec
	Duration            prometheus.Histogram
}

// NewCreditUseCase creates a new CreditUseCase.
func NewCreditUseCase(cfg CreditConfig) *CreditUseCase {
	if cfg.RemoteTimeout == 0 {
		cfg.RemoteTimeout = DefaultRemoteTimeout
	}

	return &CreditUseCase{
		balance:             cfg.Balance,
		ledgerRepo:          cfg.LedgerRepo,
		notifier:            cfg.Notifier,
		idGen:               cfg.IDGen,
		logger:              cfg.Logger,
		remoteTimeout:       cfg.RemoteTimeout,
		ledgerWriteFailures: cfg.LedgerWriteFailures,
		attempts:            cfg.Attempts,
		duration:            cfg.Duration,
	}
}

// CreditWalletInput represents input for crediting a wallet. UserID is
// the caller's verified identity, never a request-body field.
type CreditWalletInput struct {
	UserID string
	RideID *string
	Amount decimal.Decimal
}

// CreditWallet adds funds to a user's wallet via the remote balance
// store and records the outcome as an immutable ledger entry.
func (uc *CreditUseCase) CreditWallet(ctx context.Context, input CreditWalletInput) (*domain.LedgerEntry, error) {
	// Local validation: no remote call, no ledger write.
	if err := domain.ValidateCreditAmount(input.Amount); err != nil {
		return nil, err
	}

	// Per-attempt key so the balance store deduplicates transport retries.
	attemptKey := uc.idGen.Generate()

	remoteCtx, cancel := context.WithTimeout(ctx, uc.remoteTimeout)
	defer cancel()

	started := time.Now()
	_, remoteErr := uc.balance.ApplyCredit(remoteCtx, input.UserID, input.Amount, attemptKey)
	if uc.duration != nil {
		uc.duration.Observe(time.Since(started).Seconds())
	}

	status := domain.EntryStatusSuccess
	if remoteErr != nil {
		status = domain.EntryStatusFailed
	}

	if uc.attempts != nil {
		uc.attempts.WithLabelValues(string(status)).Inc()
	}

	entry := &domain.LedgerEntry{
		ID:          uc.idGen.Generate(),
		UserID:      input.UserID,
		RideID:      input.RideID,
		Amount:      input.Amount,
		Status:      status,
		PaymentMode: domain.PaymentModeWalletCredit,
		CreatedAt:   time.Now().UTC(),
	}

	// The ledger write must survive caller cancellation: a cancelled or
	// timed-out remote call may still have been applied, and that
	// ambiguity has to be recorded.
	ledgerCtx := context.WithoutCancel(ctx)

	if appendErr := uc.ledgerRepo.Append(ledgerCtx, entry); appendErr != nil {
		uc.reportLedgerWriteFailure(entry, appendErr)

		if remoteErr != nil {
			return nil, fmt.Errorf("credit wallet: %w", remoteErr)
		}

		// The mutation is applied; the caller still receives the outcome.
		uc.dispatchNotification(ledgerCtx, input)
		return entry, nil
	}

	if remoteErr != nil {
		return nil, fmt.Errorf("credit wallet: %w", remoteErr)
	}

	uc.dispatchNotification(ledgerCtx, input)

	return entry, nil
}

// dispatchNotification fires the credited event without awaiting
// delivery. Notifier failures never fail the credit.
func (uc *CreditUseCase) dispatchNotification(ctx context.Context, input CreditWalletInput) {
	message := fmt.Sprintf("Your wallet was credited with %s", input.Amount.StringFixed(2))

	go uc.notifier.Notify(ctx, input.UserID, domain.EventTypeWalletCredited, message)
}

func (uc *CreditUseCase) reportLedgerWriteFailure(entry *domain.LedgerEntry, err error) {
	uc.logger.Error().
		Err(err).
		Str("user_id", entry.UserID).
		Str("amount", entry.Amount.String()).
		Str("status", string(entry.Status)).
		Msg("ledger write failed after credit outcome was determined")

	if uc.ledgerWriteFailures != nil {
		uc.ledgerWriteFailures.Inc()
	}
}
