package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ridewave/ridepay/internal/domain"
)

// ReconciliationUseCase compares the balance store's per-user balance
// against the balance reconstructed from the ledger. Divergence means
// an attempt was applied but recorded wrong (or not at all), e.g. a
// remote call that timed out after being applied.
type ReconciliationUseCase struct {
	balances   BalanceSource
	ledgerRepo LedgerRepository
}

// NewReconciliationUseCase creates a new reconciliation use case.
func NewReconciliationUseCase(balances BalanceSource, ledgerRepo LedgerRepository) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		balances:   balances,
		ledgerRepo: ledgerRepo,
	}
}

// ReconciliationResult represents the result of a reconciliation check.
type ReconciliationResult struct {
	UserID        string
	StoreBalance  decimal.Decimal
	LedgerBalance decimal.Decimal
	Difference    decimal.Decimal
	IsReconciled  bool
	CheckedAt     time.Time
}

// ReconcileUser checks a single user's wallet against the ledger.
func (uc *ReconciliationUseCase) ReconcileUser(ctx context.Context, userID string) (*ReconciliationResult, error) {
	wallet, err := uc.balances.GetWallet(ctx, userID)
	if err != nil {
		return nil, err
	}

	return uc.reconcileWallet(ctx, wallet)
}

// ReconcileAll checks every wallet. Intended for the background
// reconciliation job, not the hot path.
func (uc *ReconciliationUseCase) ReconcileAll(ctx context.Context) ([]*ReconciliationResult, error) {
	const pageSize = 500

	var results []*ReconciliationResult

	for offset := 0; ; offset += pageSize {
		wallets, err := uc.balances.ListWallets(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}

		for _, wallet := range wallets {
			result, err := uc.reconcileWallet(ctx, wallet)
			if err != nil {
				return nil, fmt.Errorf("failed to reconcile user %s: %w", wallet.UserID, err)
			}

			results = append(results, result)
		}

		if len(wallets) < pageSize {
			break
		}
	}

	return results, nil
}

func (uc *ReconciliationUseCase) reconcileWallet(ctx context.Context, wallet *domain.Wallet) (*ReconciliationResult, error) {
	ledgerBalance, err := uc.ledgerRepo.SumByUser(ctx, wallet.UserID, domain.EntryStatusSuccess)
	if err != nil {
		return nil, err
	}

	difference := wallet.Balance.Sub(ledgerBalance)

	return &ReconciliationResult{
		UserID:        wallet.UserID,
		StoreBalance:  wallet.Balance,
		LedgerBalance: ledgerBalance,
		Difference:    difference,
		IsReconciled:  difference.IsZero(),
		CheckedAt:     time.Now().UTC(),
	}, nil
}

// ReconciliationReport represents a full reconciliation pass.
type ReconciliationReport struct {
	TotalWallets      int
	ReconciledWallets int
	Discrepancies     []*ReconciliationResult
	CheckedAt         time.Time
}

// GenerateReport runs a full pass and collects discrepancies.
func (uc *ReconciliationUseCase) GenerateReport(ctx context.Context) (*ReconciliationReport, error) {
	results, err := uc.ReconcileAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &ReconciliationReport{
		TotalWallets:  len(results),
		Discrepancies: make([]*ReconciliationResult, 0),
		CheckedAt:     time.Now().UTC(),
	}

	for _, result := range results {
		if result.IsReconciled {
			report.ReconciledWallets++
		} else {
			report.Discrepancies = append(report.Discrepancies, result)
		}
	}

	return report, nil
}
