// Package realtime fans newly accepted chat messages out to every
// currently-connected viewer. Delivery is live-only: no replay on connect,
// no redelivery after a disconnect. Clients that need gap recovery
// re-fetch history over HTTP.
package realtime

import (
	"errors"
	"log"

	"reliefhub-backend/internal/models"
)

// EventNewMessage is the event name emitted for every accepted message.
const EventNewMessage = "new_message"

// Event is the wire envelope pushed to subscribers.
type Event struct {
	Event string              `json:"event"`
	Data  *models.ChatMessage `json:"data"`
}

// ErrHubClosed is returned by Publish after Shutdown.
var ErrHubClosed = errors.New("realtime hub is closed")

// subscriberBuffer is how many undelivered events a subscriber may lag
// behind before the hub gives up on it.
const subscriberBuffer = 32

// Hub owns the set of live subscriber channels. All membership changes and
// deliveries happen on the Run goroutine, so no locks are needed. A
// subscriber whose buffer is full is dropped rather than ever blocking
// Publish or the other subscribers.
type Hub struct {
	register   chan chan Event
	unregister chan chan Event
	broadcast  chan Event
	quit       chan struct{}
	stopped    chan struct{}
}

// NewHub creates a Hub. Call Run on its own goroutine before publishing.
func NewHub() *Hub {
	return &Hub{
		register:   make(chan chan Event),
		unregister: make(chan chan Event),
		broadcast:  make(chan Event, 64),
		quit:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

// Run processes subscriptions and broadcasts until Shutdown is called.
func (h *Hub) Run() {
	subscribers := make(map[chan Event]struct{})
	defer func() {
		for ch := range subscribers {
			close(ch)
		}
		close(h.stopped)
	}()

	for {
		select {
		case ch := <-h.register:
			subscribers[ch] = struct{}{}
		case ch := <-h.unregister:
			if _, ok := subscribers[ch]; ok {
				delete(subscribers, ch)
				close(ch)
			}
		case ev := <-h.broadcast:
			for ch := range subscribers {
				select {
				case ch <- ev:
				default:
					// Slow consumer: cut it loose instead of stalling
					// everyone else. It can reconnect and re-fetch history.
					delete(subscribers, ch)
					close(ch)
					log.Printf("WARN: [Hub] dropped slow realtime subscriber (%d remaining)", len(subscribers))
				}
			}
		case <-h.quit:
			return
		}
	}
}

// Shutdown stops the run loop and closes every subscriber channel.
// Safe to call once; Publish and Subscribe fail cleanly afterwards.
func (h *Hub) Shutdown() {
	close(h.quit)
	<-h.stopped
}

// Subscribe registers a live event stream. The returned channel is closed
// when the subscriber is dropped, unsubscribed, or the hub shuts down.
func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, subscriberBuffer)
	select {
	case h.register <- ch:
	case <-h.stopped:
		close(ch)
	}
	return ch
}

// Unsubscribe removes a stream registered with Subscribe. Idempotent.
func (h *Hub) Unsubscribe(ch chan Event) {
	select {
	case h.unregister <- ch:
	case <-h.stopped:
	}
}

// Publish delivers the message to every currently-connected subscriber.
// It never blocks on subscribers; it only fails once the hub is shut down.
func (h *Hub) Publish(msg *models.ChatMessage) error {
	// The broadcast channel is buffered, so the send below can still
	// succeed after shutdown; check for the stopped state first.
	select {
	case <-h.stopped:
		return ErrHubClosed
	default:
	}
	select {
	case h.broadcast <- Event{Event: EventNewMessage, Data: msg}:
		return nil
	case <-h.stopped:
		return ErrHubClosed
	}
}
