package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/ridewave/ridepay/internal/domain"
)

// Hub fans notifications out to live user connections. Delivery is
// best-effort: a notification for a user with no open connection, or
// with a full buffer, is dropped.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string][]chan domain.Notification
	bufferSize  int
	logger      zerolog.Logger
	dropped     prometheus.Counter
	dispatched  prometheus.Counter
}

// Config for Hub.
type Config struct {
	BufferSize int // Per-subscriber channel buffer
	Logger     zerolog.Logger
	Dropped    prometheus.Counter
	Dispatched prometheus.Counter
}

// NewHub creates a new notification hub.
func NewHub(cfg Config) *Hub {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 16
	}

	return &Hub{
		subscribers: make(map[string][]chan domain.Notification),
		bufferSize:  cfg.BufferSize,
		logger:      cfg.Logger,
		dropped:     cfg.Dropped,
		dispatched:  cfg.Dispatched,
	}
}

// Notify delivers an event to every live connection for userID. It never
// blocks: subscribers that cannot keep up lose the message.
func (h *Hub) Notify(ctx context.Context, userID, eventType, message string) {
	notification := domain.Notification{
		UserID:    userID,
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subscribers[userID] {
		select {
		case ch <- notification:
			if h.dispatched != nil {
				h.dispatched.Inc()
			}
		default:
			if h.dropped != nil {
				h.dropped.Inc()
			}
			h.logger.Warn().
				Str("user_id", userID).
				Str("event_type", eventType).
				Msg("notification dropped: subscriber buffer full")
		}
	}
}

// Subscribe registers a live connection for userID and returns the
// channel to read from. The caller must call Unsubscribe when done.
func (h *Hub) Subscribe(userID string) <-chan domain.Notification {
	ch := make(chan domain.Notification, h.bufferSize)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.subscribers[userID] = append(h.subscribers[userID], ch)

	return ch
}

// Unsubscribe removes a connection registered by Subscribe and closes
// its channel.
func (h *Hub) Unsubscribe(userID string, ch <-chan domain.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()

	channels := h.subscribers[userID]
	for i, existing := range channels {
		if existing == ch {
			h.subscribers[userID] = append(channels[:i], channels[i+1:]...)
			close(existing)
			break
		}
	}

	if len(h.subscribers[userID]) == 0 {
		delete(h.subscribers, userID)
	}
}

// SubscriberCount reports the number of open connections for userID.
func (h *Hub) SubscriberCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers[userID])
}
