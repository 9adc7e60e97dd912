package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ridewave/ridepay/internal/domain"
	"github.com/ridewave/ridepay/internal/usecase"
)

// WalletResponse represents a wallet in API responses.
type WalletResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Balance   decimal.Decimal `json:"balance"`
	Version   int64           `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// WalletFromDomain converts a domain wallet to a response.
func WalletFromDomain(w *domain.Wallet) *WalletResponse {
	return &WalletResponse{
		ID:        w.ID,
		UserID:    w.UserID,
		Balance:   w.Balance,
		Version:   w.Version,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// WalletsFromDomain converts domain wallets to responses.
func WalletsFromDomain(wallets []*domain.Wallet) []*WalletResponse {
	result := make([]*WalletResponse, len(wallets))
	for i, w := range wallets {
		result[i] = WalletFromDomain(w)
	}
	return result
}

// ListWalletsResponse represents a paginated wallet list.
type ListWalletsResponse struct {
	Wallets []*WalletResponse `json:"wallets"`
	Total   int64             `json:"total"`
}

// LedgerEntryResponse represents a ledger entry in API responses.
type LedgerEntryResponse struct {
	ID          string             `json:"id"`
	UserID      string             `json:"user_id"`
	RideID      *string            `json:"ride_id,omitempty"`
	Amount      decimal.Decimal    `json:"amount"`
	Status      domain.EntryStatus `json:"status"`
	PaymentMode domain.PaymentMode `json:"payment_mode"`
	CreatedAt   time.Time          `json:"created_at"`
}

// EntryFromDomain converts a domain ledger entry to a response.
func EntryFromDomain(e *domain.LedgerEntry) *LedgerEntryResponse {
	return &LedgerEntryResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		RideID:      e.RideID,
		Amount:      e.Amount,
		Status:      e.Status,
		PaymentMode: e.PaymentMode,
		CreatedAt:   e.CreatedAt,
	}
}

// EntriesFromDomain converts domain ledger entries to responses.
func EntriesFromDomain(entries []*domain.LedgerEntry) []*LedgerEntryResponse {
	result := make([]*LedgerEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// ListEntriesResponse represents a paginated ledger entry list.
type ListEntriesResponse struct {
	Entries []*LedgerEntryResponse `json:"entries"`
	Total   int64                  `json:"total"`
}

// UserResponse represents a user profile in API responses.
type UserResponse struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Phone     string      `json:"phone,omitempty"`
	Role      domain.Role `json:"role"`
	Active    bool        `json:"active"`
	CreatedAt time.Time   `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

// ReconciliationResultResponse represents one wallet's reconciliation check.
type ReconciliationResultResponse struct {
	UserID        string          `json:"user_id"`
	StoreBalance  decimal.Decimal `json:"store_balance"`
	LedgerBalance decimal.Decimal `json:"ledger_balance"`
	Difference    decimal.Decimal `json:"difference"`
	IsReconciled  bool            `json:"is_reconciled"`
	CheckedAt     time.Time       `json:"checked_at"`
}

// ReconciliationResultFromUseCase converts a use case result to a response.
func ReconciliationResultFromUseCase(r *usecase.ReconciliationResult) *ReconciliationResultResponse {
	return &ReconciliationResultResponse{
		UserID:        r.UserID,
		StoreBalance:  r.StoreBalance,
		LedgerBalance: r.LedgerBalance,
		Difference:    r.Difference,
		IsReconciled:  r.IsReconciled,
		CheckedAt:     r.CheckedAt,
	}
}

// ReconciliationReportResponse represents a full reconciliation pass.
type ReconciliationReportResponse struct {
	TotalWallets      int                             `json:"total_wallets"`
	ReconciledWallets int                             `json:"reconciled_wallets"`
	Discrepancies     []*ReconciliationResultResponse `json:"discrepancies"`
	CheckedAt         time.Time                       `json:"checked_at"`
}

// ReconciliationReportFromUseCase converts a use case report to a response.
func ReconciliationReportFromUseCase(r *usecase.ReconciliationReport) *ReconciliationReportResponse {
	discrepancies := make([]*ReconciliationResultResponse, len(r.Discrepancies))
	for i, d := range r.Discrepancies {
		discrepancies[i] = ReconciliationResultFromUseCase(d)
	}
	return &ReconciliationReportResponse{
		TotalWallets:      r.TotalWallets,
		ReconciledWallets: r.ReconciledWallets,
		Discrepancies:     discrepancies,
		CheckedAt:         r.CheckedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
