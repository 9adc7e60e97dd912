package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is the authoritative balance record for a single user.
// It is created once, at profile creation, with a zero balance.
type Wallet struct {
	ID        string
	UserID    string
	Balance   decimal.Decimal
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateDelta checks if applying the signed delta would leave the
// wallet in a valid state. Credits are always valid; debits must not
// take the balance negative.
func (w *Wallet) ValidateDelta(delta decimal.Decimal) error {
	if delta.IsZero() {
		return ErrInvalidAmount
	}
	if w.Balance.Add(delta).IsNegative() {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDelta returns the balance after the delta is applied.
func (w *Wallet) ApplyDelta(delta decimal.Decimal) decimal.Decimal {
	return w.Balance.Add(delta)
}
