package domain

import "time"

// Notification event types
const (
	EventTypeWalletCredited = "wallet.credited"
)

// Notification is a best-effort message for a user's live connection.
type Notification struct {
	UserID    string    `json:"-"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
