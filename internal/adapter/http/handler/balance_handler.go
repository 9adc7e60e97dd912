package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ridewave/ridepay/internal/adapter/http/dto"
	"github.com/ridewave/ridepay/internal/adapter/http/middleware"
	"github.com/ridewave/ridepay/internal/domain"
	"github.com/ridewave/ridepay/internal/usecase"
)

const walletCacheTTL = 5 * time.Second

// WalletService defines the behavior needed by BalanceHandler.
type WalletService interface {
	ApplyCredit(ctx context.Context, input usecase.ApplyCreditInput) (*domain.Wallet, error)
	GetWallet(ctx context.Context, userID string) (*domain.Wallet, error)
	ListWallets(ctx context.Context, input usecase.ListWalletsInput) ([]*domain.Wallet, error)
}

// WalletCache caches wallet reads between credits.
type WalletCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// BalanceHandler serves the balance service's internal wallet API. The
// payment service is its only caller.
type BalanceHandler struct {
	walletUC WalletService
	cache    WalletCache
	logger   zerolog.Logger
}

// NewBalanceHandler creates a new BalanceHandler. cache may be nil.
func NewBalanceHandler(walletUC WalletService, cache WalletCache, logger zerolog.Logger) *BalanceHandler {
	return &BalanceHandler{
		walletUC: walletUC,
		cache:    cache,
		logger:   logger,
	}
}

// Credit applies a credit to the wallet named by the X-User-ID header.
func (h *BalanceHandler) Credit(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get(middleware.UserIDHeader)
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID header", "")
		return
	}

	var req dto.InternalCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	wallet, err := h.walletUC.ApplyCredit(r.Context(), usecase.ApplyCreditInput{
		UserID: userID,
		Amount: req.Amount,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to apply credit", err.Error())
		return
	}

	h.invalidateCache(r.Context(), userID)

	writeJSON(w, http.StatusOK, dto.WalletFromDomain(wallet))
}

// Get retrieves a user's wallet, via cache when one is configured.
func (h *BalanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	h.serveWallet(w, r, userID)
}

// GetOwn retrieves the authenticated caller's wallet.
func (h *BalanceHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required", "")
		return
	}

	h.serveWallet(w, r, user.ID)
}

func (h *BalanceHandler) serveWallet(w http.ResponseWriter, r *http.Request, userID string) {
	if cached, ok := h.cachedWallet(r.Context(), userID); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	wallet, err := h.walletUC.GetWallet(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get wallet", err.Error())
		return
	}

	resp := dto.WalletFromDomain(wallet)
	h.storeInCache(r.Context(), userID, resp)

	writeJSON(w, http.StatusOK, resp)
}

// List lists wallets with pagination.
func (h *BalanceHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	wallets, err := h.walletUC.ListWallets(r.Context(), usecase.ListWalletsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list wallets", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListWalletsResponse{
		Wallets: dto.WalletsFromDomain(wallets),
		Total:   int64(len(wallets)),
	})
}

func (h *BalanceHandler) cachedWallet(ctx context.Context, userID string) (*dto.WalletResponse, bool) {
	if h.cache == nil {
		return nil, false
	}

	raw, err := h.cache.Get(ctx, "wallet:"+userID)
	if err != nil {
		return nil, false
	}

	var resp dto.WalletResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, false
	}

	return &resp, true
}

func (h *BalanceHandler) storeInCache(ctx context.Context, userID string, resp *dto.WalletResponse) {
	if h.cache == nil {
		return
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}

	if err := h.cache.Set(ctx, "wallet:"+userID, string(raw), walletCacheTTL); err != nil {
		h.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to cache wallet")
	}
}

func (h *BalanceHandler) invalidateCache(ctx context.Context, userID string) {
	if h.cache == nil {
		return
	}

	if err := h.cache.Delete(ctx, "wallet:"+userID); err != nil {
		h.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to invalidate wallet cache")
	}
}
