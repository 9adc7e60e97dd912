package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ridewave/ridepay/internal/adapter/http/dto"
	"github.com/ridewave/ridepay/internal/adapter/http/middleware"
	"github.com/ridewave/ridepay/internal/domain"
	"github.com/ridewave/ridepay/internal/usecase"
)

type fakeLedgerService struct {
	getFn     func(ctx context.Context, id string) (*domain.LedgerEntry, error)
	listFn    func(ctx context.Context, input usecase.ListEntriesByUserInput) ([]*domain.LedgerEntry, error)
	balanceFn func(ctx context.Context, userID string) (decimal.Decimal, error)
}

func (f *fakeLedgerService) GetEntry(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	return f.getFn(ctx, id)
}

func (f *fakeLedgerService) ListEntriesByUser(ctx context.Context, input usecase.ListEntriesByUserInput) ([]*domain.LedgerEntry, error) {
	return f.listFn(ctx, input)
}

func (f *fakeLedgerService) DerivedBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	return f.balanceFn(ctx, userID)
}

func testEntry(id, userID string) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:          id,
		UserID:      userID,
		Amount:      decimal.RequireFromString("25.00"),
		Status:      domain.EntryStatusSuccess,
		PaymentMode: domain.PaymentModeWalletCredit,
		CreatedAt:   time.Now().UTC(),
	}
}

func entryRequest(userID string, role domain.Role, entryID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ledger/entries/"+entryID, nil)
	user := &domain.User{ID: userID, Role: role}
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", entryID)
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, user)
	return req.WithContext(context.WithValue(ctx, chi.RouteCtxKey, rctx))
}

func TestLedgerHandler_Get(t *testing.T) {
	svc := &fakeLedgerService{
		getFn: func(ctx context.Context, id string) (*domain.LedgerEntry, error) {
			return testEntry(id, "user-1"), nil
		},
	}
	h := NewLedgerHandler(svc)

	rr := httptest.NewRecorder()
	h.Get(rr, entryRequest("user-1", domain.RoleRider, "entry-1"))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp dto.LedgerEntryResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "entry-1" {
		t.Errorf("unexpected entry: %+v", resp)
	}
}

func TestLedgerHandler_Get_OtherUsersEntryHidden(t *testing.T) {
	svc := &fakeLedgerService{
		getFn: func(ctx context.Context, id string) (*domain.LedgerEntry, error) {
			return testEntry(id, "someone-else"), nil
		},
	}
	h := NewLedgerHandler(svc)

	rr := httptest.NewRecorder()
	h.Get(rr, entryRequest("user-1", domain.RoleRider, "entry-1"))

	// Existence of other users' entries must not leak.
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestLedgerHandler_Get_AdminSeesAllEntries(t *testing.T) {
	svc := &fakeLedgerService{
		getFn: func(ctx context.Context, id string) (*domain.LedgerEntry, error) {
			return testEntry(id, "someone-else"), nil
		},
	}
	h := NewLedgerHandler(svc)

	rr := httptest.NewRecorder()
	h.Get(rr, entryRequest("admin-1", domain.RoleAdmin, "entry-1"))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", rr.Code)
	}
}

func TestLedgerHandler_Get_NotFound(t *testing.T) {
	svc := &fakeLedgerService{
		getFn: func(ctx context.Context, id string) (*domain.LedgerEntry, error) {
			return nil, domain.ErrEntryNotFound
		},
	}
	h := NewLedgerHandler(svc)

	rr := httptest.NewRecorder()
	h.Get(rr, entryRequest("user-1", domain.RoleRider, "missing"))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestLedgerHandler_List(t *testing.T) {
	svc := &fakeLedgerService{
		listFn: func(ctx context.Context, input usecase.ListEntriesByUserInput) ([]*domain.LedgerEntry, error) {
			if input.UserID != "user-1" {
				t.Errorf("expected user-1, got %s", input.UserID)
			}
			if input.Limit != 5 || input.Offset != 10 {
				t.Errorf("expected limit=5 offset=10, got %d/%d", input.Limit, input.Offset)
			}
			return []*domain.LedgerEntry{testEntry("entry-1", "user-1"), testEntry("entry-2", "user-1")}, nil
		},
	}
	h := NewLedgerHandler(svc)

	rr := httptest.NewRecorder()
	h.List(rr, authenticatedRequest(http.MethodGet, "/api/v1/ledger/entries?limit=5&offset=10", ""))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp dto.ListEntriesResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Entries) != 2 || resp.Total != 2 {
		t.Errorf("unexpected list response: %+v", resp)
	}
}

func TestLedgerHandler_DerivedBalance(t *testing.T) {
	svc := &fakeLedgerService{
		balanceFn: func(ctx context.Context, userID string) (decimal.Decimal, error) {
			return decimal.RequireFromString("125.50"), nil
		},
	}
	h := NewLedgerHandler(svc)

	rr := httptest.NewRecorder()
	h.DerivedBalance(rr, authenticatedRequest(http.MethodGet, "/api/v1/ledger/balance", ""))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp struct {
		UserID  string          `json:"user_id"`
		Balance decimal.Decimal `json:"balance"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.UserID != "user-1" || !resp.Balance.Equal(decimal.RequireFromString("125.50")) {
		t.Errorf("unexpected balance response: %+v", resp)
	}
}
