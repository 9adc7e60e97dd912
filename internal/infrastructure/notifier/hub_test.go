package notifier

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ridewave/ridepay/internal/domain"
)

func newTestHub(bufferSize int) *Hub {
	return NewHub(Config{BufferSize: bufferSize, Logger: zerolog.Nop()})
}

func TestHubDeliversToSubscriber(t *testing.T) {
	hub := newTestHub(4)

	ch := hub.Subscribe("user-1")
	defer hub.Unsubscribe("user-1", ch)

	hub.Notify(context.Background(), "user-1", domain.EventTypeWalletCredited, "wallet credited with 50.00")

	select {
	case n := <-ch:
		if n.Type != domain.EventTypeWalletCredited {
			t.Errorf("expected %s, got %s", domain.EventTypeWalletCredited, n.Type)
		}
		if n.Message != "wallet credited with 50.00" {
			t.Errorf("unexpected message: %s", n.Message)
		}
		if n.Timestamp.IsZero() {
			t.Errorf("expected timestamp to be set")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for notification")
	}
}

func TestHubNoSubscriberIsNoop(t *testing.T) {
	hub := newTestHub(4)

	// Must not block or panic.
	hub.Notify(context.Background(), "nobody", domain.EventTypeWalletCredited, "hello")
}

func TestHubDropsWhenBufferFull(t *testing.T) {
	hub := newTestHub(1)

	ch := hub.Subscribe("user-1")
	defer hub.Unsubscribe("user-1", ch)

	// First fills the buffer, second must be dropped without blocking.
	hub.Notify(context.Background(), "user-1", domain.EventTypeWalletCredited, "first")

	done := make(chan struct{})
	go func() {
		hub.Notify(context.Background(), "user-1", domain.EventTypeWalletCredited, "second")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on a full buffer")
	}

	if got := (<-ch).Message; got != "first" {
		t.Fatalf("expected first message, got %s", got)
	}
}

func TestHubMultipleSubscribersPerUser(t *testing.T) {
	hub := newTestHub(4)

	first := hub.Subscribe("user-1")
	second := hub.Subscribe("user-1")
	defer hub.Unsubscribe("user-1", first)
	defer hub.Unsubscribe("user-1", second)

	hub.Notify(context.Background(), "user-1", domain.EventTypeWalletCredited, "fan out")

	for _, ch := range []<-chan domain.Notification{first, second} {
		select {
		case n := <-ch:
			if n.Message != "fan out" {
				t.Errorf("unexpected message: %s", n.Message)
			}
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive notification")
		}
	}
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	hub := newTestHub(4)

	ch := hub.Subscribe("user-1")
	hub.Unsubscribe("user-1", ch)

	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed")
	}

	if got := hub.SubscriberCount("user-1"); got != 0 {
		t.Fatalf("expected 0 subscribers, got %d", got)
	}

	// Notifying after unsubscribe must not panic on the closed channel.
	hub.Notify(context.Background(), "user-1", domain.EventTypeWalletCredited, "late")
}

func TestHubConcurrentNotifyAndSubscribe(t *testing.T) {
	hub := newTestHub(64)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			ch := hub.Subscribe("user-1")
			hub.Unsubscribe("user-1", ch)
		}()
		go func() {
			defer wg.Done()
			hub.Notify(context.Background(), "user-1", domain.EventTypeWalletCredited, "concurrent")
		}()
	}

	wg.Wait()

	if got := hub.SubscriberCount("user-1"); got != 0 {
		t.Fatalf("expected all subscribers removed, got %d", got)
	}
}
