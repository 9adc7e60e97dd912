package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ridewave/ridepay/internal/adapter/http/dto"
	"github.com/ridewave/ridepay/internal/adapter/http/middleware"
	"github.com/ridewave/ridepay/internal/domain"
	"github.com/ridewave/ridepay/internal/usecase"
)

// CreditService defines the behavior needed by PaymentHandler.
type CreditService interface {
	CreditWallet(ctx context.Context, input usecase.CreditWalletInput) (*domain.LedgerEntry, error)
}

// PaymentHandler handles wallet credit requests on the payment API.
type PaymentHandler struct {
	creditUC CreditService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(creditUC CreditService) *PaymentHandler {
	return &PaymentHandler{creditUC: creditUC}
}

// CreditWallet credits the authenticated user's wallet and returns the
// ledger entry recording the attempt.
func (h *PaymentHandler) CreditWallet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.CreditWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.creditUC.CreditWallet(r.Context(), req.ToUseCaseInput(user.ID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to credit wallet", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}
