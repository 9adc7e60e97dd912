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

func seedEntries(repo *mocks.MockLedgerRepository, userID string, amounts []string, status domain.EntryStatus) {
	for i, amount := range amounts {
		_ = repo.Append(context.Background(), &domain.LedgerEntry{
			ID:          userID + "-entry-" + string(rune('a'+i)),
			UserID:      userID,
			Amount:      decimal.RequireFromString(amount),
			Status:      status,
			PaymentMode: domain.PaymentModeWalletCredit,
			CreatedAt:   time.Now().UTC(),
		})
	}
}

func TestLedgerUseCase_GetEntry(t *testing.T) {
	repo := mocks.NewMockLedgerRepository()
	seedEntries(repo, "user-1", []string{"10.00"}, domain.EntryStatusSuccess)
	uc := usecase.NewLedgerUseCase(repo)

	entry, err := uc.GetEntry(context.Background(), "user-1-entry-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.UserID != "user-1" {
		t.Errorf("unexpected entry: %+v", entry)
	}

	if _, err := uc.GetEntry(context.Background(), "missing"); err != domain.ErrEntryNotFound {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestLedgerUseCase_ListEntriesByUser_ClampsLimit(t *testing.T) {
	repo := mocks.NewMockLedgerRepository()
	uc := usecase.NewLedgerUseCase(repo)

	var gotLimit int
	repo.ListByUserFunc = func(ctx context.Context, userID string, limit, offset int) ([]*domain.LedgerEntry, error) {
		gotLimit = limit
		return nil, nil
	}

	if _, err := uc.ListEntriesByUser(context.Background(), usecase.ListEntriesByUserInput{UserID: "user-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 20 {
		t.Errorf("expected default limit 20, got %d", gotLimit)
	}

	if _, err := uc.ListEntriesByUser(context.Background(), usecase.ListEntriesByUserInput{UserID: "user-1", Limit: 500}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 100 {
		t.Errorf("expected limit clamped to 100, got %d", gotLimit)
	}
}

func TestLedgerUseCase_DerivedBalance_IgnoresFailedEntries(t *testing.T) {
	repo := mocks.NewMockLedgerRepository()
	seedEntries(repo, "user-1", []string{"10.00", "15.50"}, domain.EntryStatusSuccess)
	seedEntries(repo, "user-2", []string{"99.00"}, domain.EntryStatusFailed)
	uc := usecase.NewLedgerUseCase(repo)

	balance, err := uc.DerivedBalance(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !balance.Equal(decimal.RequireFromString("25.50")) {
		t.Errorf("expected 25.50, got %s", balance)
	}

	balance, err = uc.DerivedBalance(context.Background(), "user-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !balance.IsZero() {
		t.Errorf("failed entries must not count, got %s", balance)
	}
}
