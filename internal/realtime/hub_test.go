package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reliefhub-backend/internal/models"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	go hub.Run()
	t.Cleanup(hub.Shutdown)
	return hub
}

func receiveEvent(t *testing.T, ch chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "event stream closed unexpectedly")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestHub_PublishReachesAllSubscribers(t *testing.T) {
	hub := startHub(t)

	sub1 := hub.Subscribe()
	sub2 := hub.Subscribe()

	msg := &models.ChatMessage{Content: "Welcome team"}
	require.NoError(t, hub.Publish(msg))

	for _, sub := range []chan Event{sub1, sub2} {
		ev := receiveEvent(t, sub)
		assert.Equal(t, EventNewMessage, ev.Event)
		assert.Equal(t, "Welcome team", ev.Data.Content)
	}
}

func TestHub_LateSubscriberMissesEarlierPublish(t *testing.T) {
	hub := startHub(t)

	early := hub.Subscribe()
	require.NoError(t, hub.Publish(&models.ChatMessage{Content: "before"}))
	receiveEvent(t, early)

	late := hub.Subscribe()
	require.NoError(t, hub.Publish(&models.ChatMessage{Content: "after"}))

	// The late subscriber only sees messages published after it joined.
	ev := receiveEvent(t, late)
	assert.Equal(t, "after", ev.Data.Content)

	ev = receiveEvent(t, early)
	assert.Equal(t, "after", ev.Data.Content)
}

func TestHub_UnsubscribeStopsDelivery(t *testing.T) {
	hub := startHub(t)

	sub := hub.Subscribe()
	hub.Unsubscribe(sub)

	// The stream closes; nothing further is delivered.
	select {
	case _, ok := <-sub:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

func TestHub_SlowSubscriberIsDroppedWithoutBlockingPublish(t *testing.T) {
	hub := startHub(t)

	slow := hub.Subscribe()
	healthy := hub.Subscribe()

	// Overflow the slow subscriber's buffer without ever reading it.
	for i := 0; i <= subscriberBuffer; i++ {
		require.NoError(t, hub.Publish(&models.ChatMessage{Content: "flood"}))
	}

	// The healthy subscriber keeps receiving throughout.
	for i := 0; i <= subscriberBuffer; i++ {
		receiveEvent(t, healthy)
	}

	// The slow one was cut: drain its buffer and find the channel closed.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-slow:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("slow subscriber was never dropped")
		}
	}
}

func TestHub_PublishAfterShutdownFails(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	hub.Shutdown()

	err := hub.Publish(&models.ChatMessage{Content: "too late"})
	assert.ErrorIs(t, err, ErrHubClosed)
}

func TestHub_ShutdownClosesSubscribers(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	sub := hub.Subscribe()
	hub.Shutdown()

	select {
	case _, ok := <-sub:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}
