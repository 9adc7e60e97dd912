package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ridewave/ridepay/internal/adapter/http/dto"
	"github.com/ridewave/ridepay/internal/usecase"
)

// ReconciliationService defines the behavior needed by ReconciliationHandler.
type ReconciliationService interface {
	ReconcileUser(ctx context.Context, userID string) (*usecase.ReconciliationResult, error)
	GenerateReport(ctx context.Context) (*usecase.ReconciliationReport, error)
}

// ReconciliationHandler exposes on-demand reconciliation to admins.
type ReconciliationHandler struct {
	reconciliationUC ReconciliationService
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(reconciliationUC ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{reconciliationUC: reconciliationUC}
}

// CheckUser reconciles a single user's wallet against the ledger.
func (h *ReconciliationHandler) CheckUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	result, err := h.reconciliationUC.ReconcileUser(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reconcile user", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationResultFromUseCase(result))
}

// Report runs a full reconciliation pass over every wallet.
func (h *ReconciliationHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconciliationUC.GenerateReport(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to generate report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationReportFromUseCase(report))
}
