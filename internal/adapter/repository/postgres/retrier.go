package postgres

import (
	"context"
	"errors"
	"time"

	"log/slog"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
)

// Error codes PostgreSQL reports for lock conflicts that are safe to
// retry: the transaction was rolled back without applying anything.
var retryablePgCodes = map[string]string{
	"40001": "serialization_failure",
	"40P01": "deadlock_detected",
}

// Retrier implements usecase.Retrier for the row-locking wallet
// mutation path. Only lock-conflict errors are retried; everything
// else is permanent.
type Retrier struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	logger          *slog.Logger
}

// NewRetrier creates a Retrier with default settings.
func NewRetrier() *Retrier {
	return &Retrier{
		maxRetries:      3,
		initialInterval: 50 * time.Millisecond,
		maxInterval:     1 * time.Second,
		maxElapsedTime:  10 * time.Second,
		logger:          slog.Default(),
	}
}

// Retry runs operation, retrying with exponential backoff while it
// fails with a retryable PostgreSQL error.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.MaxElapsedTime = r.maxElapsedTime

	attempt := 0

	return backoff.Retry(func() error {
		err := operation()
		if err == nil {
			return nil
		}

		code, retryable := retryablePgCode(err)
		if !retryable {
			return backoff.Permanent(err)
		}

		attempt++
		if attempt > r.maxRetries {
			return backoff.Permanent(err)
		}

		r.logger.Warn("retrying wallet transaction after lock conflict",
			"code", code,
			"attempt", attempt,
		)

		return err
	}, backoff.WithContext(b, ctx))
}

func retryablePgCode(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}

	_, ok := retryablePgCodes[pgErr.Code]
	return pgErr.Code, ok
}
