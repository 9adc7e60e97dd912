package dto

import (
	"github.com/shopspring/decimal"

	"github.com/ridewave/ridepay/internal/domain"
	"github.com/ridewave/ridepay/internal/usecase"
)

// CreditWalletRequest represents a request to credit the caller's wallet.
type CreditWalletRequest struct {
	Amount decimal.Decimal `json:"amount"`
	RideID *string         `json:"ride_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreditWalletRequest) ToUseCaseInput(userID string) usecase.CreditWalletInput {
	return usecase.CreditWalletInput{
		UserID: userID,
		RideID: r.RideID,
		Amount: r.Amount,
	}
}

// InternalCreditRequest represents the balance service's credit request.
// The target user travels in the X-User-ID header.
type InternalCreditRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// CreateUserRequest represents a request to create a profile.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateUserRequest) ToUseCaseInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Email:    r.Email,
		Name:     r.Name,
		Phone:    r.Phone,
		Password: r.Password,
		Role:     domain.Role(r.Role),
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
