package walletclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"

	"github.com/ridewave/ridepay/internal/domain"
)

const (
	headerUserID         = "X-User-ID"
	headerIdempotencyKey = "Idempotency-Key"
)

// Client calls the balance service's internal wallet API. It
// implements usecase.BalanceClient and usecase.BalanceSource.
type Client struct {
	baseURL    string
	httpClient *http.Client

	maxRetries      int
	initialInterval time.Duration
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithRetries configures transport-level retries. Retried requests
// carry the same idempotency key, so the balance service applies the
// credit at most once.
func WithRetries(maxRetries int, initialInterval time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.initialInterval = initialInterval
	}
}

// New creates a new Client.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:         baseURL,
		httpClient:      &http.Client{Timeout: 10 * time.Second},
		maxRetries:      2,
		initialInterval: 100 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type creditRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type walletResponse struct {
	ID      string          `json:"id"`
	UserID  string          `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ApplyCredit asks the balance service to apply a positive delta and
// returns the resulting balance.
func (c *Client) ApplyCredit(ctx context.Context, userID string, amount decimal.Decimal, idempotencyKey string) (decimal.Decimal, error) {
	body, err := json.Marshal(creditRequest{Amount: amount})
	if err != nil {
		return decimal.Zero, err
	}

	var wallet walletResponse
	err = c.doWithRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/internal/wallets/credit", bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(headerUserID, userID)
		req.Header.Set(headerIdempotencyKey, idempotencyKey)

		return c.do(req, &wallet)
	})
	if err != nil {
		return decimal.Zero, err
	}

	return wallet.Balance, nil
}

// GetWallet retrieves a user's wallet from the balance service.
func (c *Client) GetWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	var wallet walletResponse
	err := c.doWithRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/internal/wallets/"+url.PathEscape(userID), nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		return c.do(req, &wallet)
	})
	if err != nil {
		return nil, err
	}

	return toDomain(wallet), nil
}

// ListWallets pages through wallets on the balance service. The
// reconciliation job uses it to sweep every wallet.
func (c *Client) ListWallets(ctx context.Context, limit, offset int) ([]*domain.Wallet, error) {
	var list struct {
		Wallets []walletResponse `json:"wallets"`
	}

	err := c.doWithRetry(ctx, func() error {
		u := c.baseURL + "/internal/wallets?limit=" + strconv.Itoa(limit) + "&offset=" + strconv.Itoa(offset)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		return c.do(req, &list)
	})
	if err != nil {
		return nil, err
	}

	wallets := make([]*domain.Wallet, 0, len(list.Wallets))
	for _, w := range list.Wallets {
		wallets = append(wallets, toDomain(w))
	}

	return wallets, nil
}

func (c *Client) doWithRetry(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval
	b.MaxElapsedTime = 0 // bounded by the request context

	return backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.maxRetries)), ctx))
}

// do sends the request and decodes the response. Transport errors and
// 5xx responses are retryable; everything else is permanent.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("%w: decoding response: %v", domain.ErrRemoteUnavailable, err))
		}

		return nil
	}

	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: balance service returned %d", domain.ErrRemoteUnavailable, resp.StatusCode)
	}

	return backoff.Permanent(classifyRejection(resp))
}

func classifyRejection(resp *http.Response) error {
	var apiErr errorResponse
	msg := resp.Status
	if body, err := io.ReadAll(io.LimitReader(resp.Body, 4096)); err == nil {
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrWalletNotFound, msg)
	case http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", domain.ErrRemoteRejected, msg)
	default:
		return fmt.Errorf("%w: balance service returned %d: %s", domain.ErrRemoteRejected, resp.StatusCode, msg)
	}
}

func toDomain(w walletResponse) *domain.Wallet {
	return &domain.Wallet{
		ID:      w.ID,
		UserID:  w.UserID,
		Balance: w.Balance,
	}
}
