package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ridewave/ridepay/internal/domain"
)

// WalletRepository defines data access for wallet balance records.
type WalletRepository interface {
	CreateTx(ctx context.Context, tx Transaction, wallet *domain.Wallet) error
	GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error)
	GetByUserIDForUpdate(ctx context.Context, tx Transaction, userID string) (*domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Wallet, error)
}

// LedgerRepository defines data access for the append-only ledger.
// There is deliberately no update or delete surface.
type LedgerRepository interface {
	Append(ctx context.Context, entry *domain.LedgerEntry) error
	GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.LedgerEntry, error)
	SumByUser(ctx context.Context, userID string, status domain.EntryStatus) (decimal.Decimal, error)
}

// BalanceClient is the remote interface to the user-domain balance
// store. The idempotency key makes transport-level retries safe.
type BalanceClient interface {
	ApplyCredit(ctx context.Context, userID string, amount decimal.Decimal, idempotencyKey string) (decimal.Decimal, error)
}

// BalanceSource provides read access to authoritative wallet balances,
// used by reconciliation only.
type BalanceSource interface {
	GetWallet(ctx context.Context, userID string) (*domain.Wallet, error)
	ListWallets(ctx context.Context, limit, offset int) ([]*domain.Wallet, error)
}

// Notifier delivers an event to a user's live connection, if any.
// Delivery is best-effort; failures are invisible to callers.
type Notifier interface {
	Notify(ctx context.Context, userID, eventType, message string)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs an operation after transient failures, such as
// database deadlocks between concurrent row locks.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
