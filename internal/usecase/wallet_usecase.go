package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ridewave/ridepay/internal/domain"
)

// WalletUseCase owns the authoritative balance record. Mutations for
// the same user are serialized by a row lock, so concurrent deltas
// never lose an update.
type WalletUseCase struct {
	txManager  TransactionManager
	walletRepo WalletRepository
	idGen      IDGenerator
	retrier    Retrier
}

// NewWalletUseCase creates a new WalletUseCase. retrier may be nil,
// in which case lock conflicts surface to the caller unretried.
func NewWalletUseCase(txManager TransactionManager, walletRepo WalletRepository, idGen IDGenerator, retrier Retrier) *WalletUseCase {
	return &WalletUseCase{
		txManager:  txManager,
		walletRepo: walletRepo,
		idGen:      idGen,
		retrier:    retrier,
	}
}

// ApplyCreditInput represents input for applying a credit.
type ApplyCreditInput struct {
	UserID string
	Amount decimal.Decimal
}

// ApplyCredit applies a positive delta atomically with respect to
// concurrent credits and debits for the same user, and returns the
// wallet with its new balance.
func (uc *WalletUseCase) ApplyCredit(ctx context.Context, input ApplyCreditInput) (*domain.Wallet, error) {
	if err := domain.ValidateCreditAmount(input.Amount); err != nil {
		return nil, err
	}

	return uc.applyDelta(ctx, input.UserID, input.Amount)
}

// applyDelta is the shared mutation path. Debits reuse it and are
// rejected when the resulting balance would go negative. Deadlocks and
// serialization failures between concurrent row locks retry the whole
// transaction.
func (uc *WalletUseCase) applyDelta(ctx context.Context, userID string, delta decimal.Decimal) (*domain.Wallet, error) {
	if uc.retrier == nil {
		return uc.applyDeltaTx(ctx, userID, delta)
	}

	var wallet *domain.Wallet
	err := uc.retrier.Retry(ctx, func() error {
		w, err := uc.applyDeltaTx(ctx, userID, delta)
		if err != nil {
			return err
		}
		wallet = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	return wallet, nil
}

func (uc *WalletUseCase) applyDeltaTx(ctx context.Context, userID string, delta decimal.Decimal) (*domain.Wallet, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	wallet, err := uc.walletRepo.GetByUserIDForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	if err := wallet.ValidateDelta(delta); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	newBalance := wallet.ApplyDelta(delta)

	if err := uc.walletRepo.UpdateBalance(ctx, tx, wallet.ID, newBalance, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	wallet.Balance = newBalance
	wallet.Version++
	wallet.UpdatedAt = now

	return wallet, nil
}

// CreateForUser provisions a zero-balance wallet inside the caller's
// transaction. Called once, at profile creation.
func (uc *WalletUseCase) CreateForUser(ctx context.Context, tx Transaction, userID string) (*domain.Wallet, error) {
	now := time.Now().UTC()

	wallet := &domain.Wallet{
		ID:        uc.idGen.Generate(),
		UserID:    userID,
		Balance:   decimal.Zero,
		Version:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.walletRepo.CreateTx(ctx, tx, wallet); err != nil {
		return nil, err
	}

	return wallet, nil
}

// GetWallet retrieves a user's wallet.
func (uc *WalletUseCase) GetWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	return uc.walletRepo.GetByUserID(ctx, userID)
}

// ListWalletsInput represents input for listing wallets.
type ListWalletsInput struct {
	Limit  int
	Offset int
}

// ListWallets lists wallets with pagination.
func (uc *WalletUseCase) ListWallets(ctx context.Context, input ListWalletsInput) ([]*domain.Wallet, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.walletRepo.List(ctx, limit, offset)
}
