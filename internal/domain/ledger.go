package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus is the terminal status of a credit attempt.
type EntryStatus string

const (
	EntryStatusSuccess EntryStatus = "SUCCESS"
	EntryStatusFailed  EntryStatus = "FAILED"
)

// PaymentMode tags the kind of payment an entry records.
type PaymentMode string

const (
	PaymentModeWalletCredit PaymentMode = "WALLET_CREDIT"
)

// LedgerEntry is the immutable record of a single credit attempt.
// Entries are append-only: once written they are never updated or
// deleted, regardless of whether the remote mutation succeeded.
type LedgerEntry struct {
	ID          string
	UserID      string
	RideID      *string
	Amount      decimal.Decimal
	Status      EntryStatus
	PaymentMode PaymentMode
	CreatedAt   time.Time
}

// IsValid reports whether the status is one of the terminal statuses.
func (s EntryStatus) IsValid() bool {
	return s == EntryStatusSuccess || s == EntryStatusFailed
}
