package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ridewave/ridepay/internal/domain"
	"github.com/ridewave/ridepay/internal/usecase"
	"github.com/ridewave/ridepay/internal/usecase/mocks"
)

// walletSource serves wallets the way the remote balance store does.
type walletSource struct {
	wallets []*domain.Wallet
}

func (s *walletSource) GetWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	for _, w := range s.wallets {
		if w.UserID == userID {
			return w, nil
		}
	}
	return nil, domain.ErrWalletNotFound
}

func (s *walletSource) ListWallets(ctx context.Context, limit, offset int) ([]*domain.Wallet, error) {
	if offset >= len(s.wallets) {
		return nil, nil
	}
	end := offset + limit
	if end > len(s.wallets) {
		end = len(s.wallets)
	}
	return s.wallets[offset:end], nil
}

func appendEntry(t *testing.T, repo *mocks.MockLedgerRepository, userID, amount string, status domain.EntryStatus) {
	t.Helper()
	err := repo.Append(context.Background(), &domain.LedgerEntry{
		ID:          "entry-" + userID + "-" + amount,
		UserID:      userID,
		Amount:      decimal.RequireFromString(amount),
		Status:      status,
		PaymentMode: domain.PaymentModeWalletCredit,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("failed to append entry: %v", err)
	}
}

func TestReconciliationUseCase_ReconcileUser(t *testing.T) {
	source := &walletSource{wallets: []*domain.Wallet{
		{ID: "w-1", UserID: "user-1", Balance: decimal.RequireFromString("150.00")},
		{ID: "w-2", UserID: "user-2", Balance: decimal.RequireFromString("80.00")},
	}}

	ledgerRepo := mocks.NewMockLedgerRepository()
	appendEntry(t, ledgerRepo, "user-1", "100.00", domain.EntryStatusSuccess)
	appendEntry(t, ledgerRepo, "user-1", "50.00", domain.EntryStatusSuccess)
	appendEntry(t, ledgerRepo, "user-1", "25.00", domain.EntryStatusFailed)
	// user-2's store balance includes a credit the ledger never saw.
	appendEntry(t, ledgerRepo, "user-2", "60.00", domain.EntryStatusSuccess)

	uc := usecase.NewReconciliationUseCase(source, ledgerRepo)

	t.Run("balanced wallet, failed entries excluded", func(t *testing.T) {
		result, err := uc.ReconcileUser(context.Background(), "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsReconciled {
			t.Errorf("expected reconciled, difference %s", result.Difference)
		}
		if !result.LedgerBalance.Equal(decimal.RequireFromString("150.00")) {
			t.Errorf("expected ledger balance 150.00, got %s", result.LedgerBalance)
		}
	})

	t.Run("diverged wallet", func(t *testing.T) {
		result, err := uc.ReconcileUser(context.Background(), "user-2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsReconciled {
			t.Error("expected divergence")
		}
		if !result.Difference.Equal(decimal.RequireFromString("20.00")) {
			t.Errorf("expected difference 20.00, got %s", result.Difference)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		if _, err := uc.ReconcileUser(context.Background(), "nobody"); err == nil {
			t.Error("expected error")
		}
	})
}

func TestReconciliationUseCase_GenerateReport(t *testing.T) {
	source := &walletSource{wallets: []*domain.Wallet{
		{ID: "w-1", UserID: "user-1", Balance: decimal.RequireFromString("10.00")},
		{ID: "w-2", UserID: "user-2", Balance: decimal.RequireFromString("99.00")},
		{ID: "w-3", UserID: "user-3", Balance: decimal.Zero},
	}}

	ledgerRepo := mocks.NewMockLedgerRepository()
	appendEntry(t, ledgerRepo, "user-1", "10.00", domain.EntryStatusSuccess)
	appendEntry(t, ledgerRepo, "user-2", "100.00", domain.EntryStatusSuccess)

	uc := usecase.NewReconciliationUseCase(source, ledgerRepo)

	report, err := uc.GenerateReport(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.TotalWallets != 3 {
		t.Errorf("expected 3 wallets, got %d", report.TotalWallets)
	}
	if report.ReconciledWallets != 2 {
		t.Errorf("expected 2 reconciled wallets, got %d", report.ReconciledWallets)
	}
	if len(report.Discrepancies) != 1 {
		t.Fatalf("expected 1 discrepancy, got %d", len(report.Discrepancies))
	}
	if report.Discrepancies[0].UserID != "user-2" {
		t.Errorf("expected discrepancy for user-2, got %s", report.Discrepancies[0].UserID)
	}
}
