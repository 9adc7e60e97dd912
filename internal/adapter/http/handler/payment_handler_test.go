package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ridewave/ridepay/internal/adapter/http/dto"
	"github.com/ridewave/ridepay/internal/adapter/http/middleware"
	"github.com/ridewave/ridepay/internal/domain"
	"github.com/ridewave/ridepay/internal/usecase"
)

type fakeCreditService struct {
	creditFn func(ctx context.Context, input usecase.CreditWalletInput) (*domain.LedgerEntry, error)
}

func (f *fakeCreditService) CreditWallet(ctx context.Context, input usecase.CreditWalletInput) (*domain.LedgerEntry, error) {
	return f.creditFn(ctx, input)
}

func authenticatedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	user := &domain.User{ID: "user-1", Email: "rider@example.com", Role: domain.RoleRider}
	return req.WithContext(context.WithValue(req.Context(), middleware.UserContextKey, user))
}

func TestPaymentHandler_CreditWallet(t *testing.T) {
	svc := &fakeCreditService{
		creditFn: func(ctx context.Context, input usecase.CreditWalletInput) (*domain.LedgerEntry, error) {
			if input.UserID != "user-1" {
				t.Errorf("expected user-1, got %s", input.UserID)
			}
			return &domain.LedgerEntry{
				ID:          "entry-1",
				UserID:      input.UserID,
				RideID:      input.RideID,
				Amount:      input.Amount,
				Status:      domain.EntryStatusSuccess,
				PaymentMode: domain.PaymentModeWalletCredit,
			}, nil
		},
	}
	h := NewPaymentHandler(svc)

	rr := httptest.NewRecorder()
	h.CreditWallet(rr, authenticatedRequest(http.MethodPost, "/api/v1/wallet/credit", `{"amount":"50.00","ride_id":"ride-42"}`))

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp dto.LedgerEntryResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != domain.EntryStatusSuccess {
		t.Errorf("expected SUCCESS, got %s", resp.Status)
	}
	if !resp.Amount.Equal(decimal.RequireFromString("50.00")) {
		t.Errorf("expected amount 50.00, got %s", resp.Amount)
	}
	if resp.RideID == nil || *resp.RideID != "ride-42" {
		t.Errorf("expected ride-42, got %v", resp.RideID)
	}
}

func TestPaymentHandler_CreditWallet_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		expected int
	}{
		{
			name:     "invalid amount",
			body:     `{"amount":"-5"}`,
			err:      domain.ErrInvalidAmount,
			expected: http.StatusBadRequest,
		},
		{
			name:     "balance service down",
			body:     `{"amount":"20.00"}`,
			err:      domain.ErrRemoteUnavailable,
			expected: http.StatusBadGateway,
		},
		{
			name:     "credit rejected",
			body:     `{"amount":"10.00"}`,
			err:      domain.ErrRemoteRejected,
			expected: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeCreditService{
				creditFn: func(ctx context.Context, input usecase.CreditWalletInput) (*domain.LedgerEntry, error) {
					return nil, tt.err
				},
			}
			h := NewPaymentHandler(svc)

			rr := httptest.NewRecorder()
			h.CreditWallet(rr, authenticatedRequest(http.MethodPost, "/api/v1/wallet/credit", tt.body))

			if rr.Code != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, rr.Code)
			}
		})
	}
}

func TestPaymentHandler_CreditWallet_MalformedBody(t *testing.T) {
	h := NewPaymentHandler(&fakeCreditService{
		creditFn: func(ctx context.Context, input usecase.CreditWalletInput) (*domain.LedgerEntry, error) {
			t.Fatal("use case should not be called")
			return nil, nil
		},
	})

	rr := httptest.NewRecorder()
	h.CreditWallet(rr, authenticatedRequest(http.MethodPost, "/api/v1/wallet/credit", `{not json`))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestPaymentHandler_CreditWallet_Unauthenticated(t *testing.T) {
	h := NewPaymentHandler(&fakeCreditService{
		creditFn: func(ctx context.Context, input usecase.CreditWalletInput) (*domain.LedgerEntry, error) {
			t.Fatal("use case should not be called")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/wallet/credit", strings.NewReader(`{"amount":"10"}`))
	rr := httptest.NewRecorder()
	h.CreditWallet(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}
