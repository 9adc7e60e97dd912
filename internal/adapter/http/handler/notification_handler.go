package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/ridewave/ridepay/internal/adapter/http/middleware"
	"github.com/ridewave/ridepay/internal/domain"
)

// NotificationSource provides per-user notification channels.
type NotificationSource interface {
	Subscribe(userID string) <-chan domain.Notification
	Unsubscribe(userID string, ch <-chan domain.Notification)
}

// NotificationHandler streams notifications to clients over SSE.
type NotificationHandler struct {
	source            NotificationSource
	logger            zerolog.Logger
	heartbeatInterval time.Duration
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(source NotificationSource, logger zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		source:            source,
		logger:            logger,
		heartbeatInterval: 30 * time.Second,
	}
}

// Stream handles GET /api/v1/notifications/stream. It holds the
// connection open and forwards the user's notifications as SSE events
// until the client disconnects.
func (h *NotificationHandler) Stream(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported", "response writer does not support flushing")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := h.source.Subscribe(user.ID)
	defer h.source.Unsubscribe(user.ID, ch)

	heartbeat := time.NewTicker(h.heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		case notification, open := <-ch:
			if !open {
				return
			}

			data, err := json.Marshal(notification)
			if err != nil {
				h.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to encode notification")
				continue
			}

			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", notification.Type, data)
			flusher.Flush()
		}
	}
}
