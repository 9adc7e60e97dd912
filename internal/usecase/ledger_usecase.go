package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ridewave/ridepay/internal/domain"
)

// LedgerUseCase handles read access to the ledger.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// GetEntry retrieves a ledger entry by ID.
func (uc *LedgerUseCase) GetEntry(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	return uc.ledgerRepo.GetByID(ctx, id)
}

// ListEntriesByUserInput represents input for listing entries.
type ListEntriesByUserInput struct {
	UserID string
	Limit  int
	Offset int
}

// ListEntriesByUser lists a user's entries in creation order.
func (uc *LedgerUseCase) ListEntriesByUser(ctx context.Context, input ListEntriesByUserInput) ([]*domain.LedgerEntry, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	if input.Limit > 100 {
		input.Limit = 100
	}

	return uc.ledgerRepo.ListByUser(ctx, input.UserID, input.Limit, input.Offset)
}

// DerivedBalance recomputes a user's balance from SUCCESS entries,
// independently of the balance store.
func (uc *LedgerUseCase) DerivedBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	return uc.ledgerRepo.SumByUser(ctx, userID, domain.EntryStatusSuccess)
}
