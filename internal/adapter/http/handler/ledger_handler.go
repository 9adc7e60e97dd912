package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ridewave/ridepay/internal/adapter/http/dto"
	"github.com/ridewave/ridepay/internal/adapter/http/middleware"
	"github.com/ridewave/ridepay/internal/domain"
	"github.com/ridewave/ridepay/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	GetEntry(ctx context.Context, id string) (*domain.LedgerEntry, error)
	ListEntriesByUser(ctx context.Context, input usecase.ListEntriesByUserInput) ([]*domain.LedgerEntry, error)
	DerivedBalance(ctx context.Context, userID string) (decimal.Decimal, error)
}

// LedgerHandler handles ledger read requests.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// Get retrieves a ledger entry by ID. Non-admin callers only see their
// own entries.
func (h *LedgerHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	entry, err := h.ledgerUC.GetEntry(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get entry", err.Error())
		return
	}

	if entry.UserID != user.ID && user.Role != domain.RoleAdmin {
		writeError(w, http.StatusNotFound, "failed to get entry", domain.ErrEntryNotFound.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// List lists the authenticated user's entries in creation order.
func (h *LedgerHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	entries, err := h.ledgerUC.ListEntriesByUser(r.Context(), usecase.ListEntriesByUserInput{
		UserID: user.ID,
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.EntriesFromDomain(entries),
		Total:   int64(len(entries)),
	})
}

// DerivedBalance returns the authenticated user's balance reconstructed
// from successful ledger entries.
func (h *LedgerHandler) DerivedBalance(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	balance, err := h.ledgerUC.DerivedBalance(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to derive balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user_id": user.ID,
		"balance": balance,
	})
}
