package usecase

import "time"

const (
	// DefaultRemoteTimeout bounds the balance store call. The credit is
	// recorded as FAILED if the call does not return within it.
	DefaultRemoteTimeout = 5 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)
