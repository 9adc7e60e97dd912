package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ridewave/ridepay/internal/domain"
)

func TestWalletFromDomain(t *testing.T) {
	now := time.Now()
	wallet := &domain.Wallet{
		ID:        "wallet-1",
		UserID:    "user-1",
		Balance:   decimal.RequireFromString("123.45"),
		Version:   2,
		CreatedAt: now,
		UpdatedAt: now,
	}

	resp := WalletFromDomain(wallet)
	if resp.ID != wallet.ID || !resp.Balance.Equal(wallet.Balance) || resp.Version != 2 {
		t.Fatalf("unexpected wallet response: %+v", resp)
	}

	list := WalletsFromDomain([]*domain.Wallet{wallet})
	if len(list) != 1 || list[0].UserID != "user-1" {
		t.Fatalf("WalletsFromDomain returned %+v", list)
	}
}

func TestEntryFromDomain(t *testing.T) {
	now := time.Now()
	rideID := "ride-42"
	entry := &domain.LedgerEntry{
		ID:          "entry-1",
		UserID:      "user-1",
		RideID:      &rideID,
		Amount:      decimal.RequireFromString("50.00"),
		Status:      domain.EntryStatusSuccess,
		PaymentMode: domain.PaymentModeWalletCredit,
		CreatedAt:   now,
	}

	resp := EntryFromDomain(entry)
	if resp.ID != entry.ID || resp.Status != domain.EntryStatusSuccess || resp.RideID == nil {
		t.Fatalf("unexpected entry response: %+v", resp)
	}

	list := EntriesFromDomain([]*domain.LedgerEntry{entry})
	if len(list) != 1 || list[0].PaymentMode != domain.PaymentModeWalletCredit {
		t.Fatalf("EntriesFromDomain returned %+v", list)
	}
}

func TestUserFromDomain(t *testing.T) {
	user := &domain.User{
		ID:     "user-1",
		Email:  "rider@example.com",
		Name:   "Test Rider",
		Role:   domain.RoleRider,
		Active: true,
	}

	resp := UserFromDomain(user)
	if resp.ID != user.ID || resp.Email != user.Email || !resp.Active {
		t.Fatalf("unexpected user response: %+v", resp)
	}
}
