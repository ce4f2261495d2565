package services

import (
	"log"
	"sync"

	"github.com/gin-contrib/sse"

	"github.com/cuisine-de-lin/order-board-api/models"
)

// subscriberBuffer bounds how many undelivered events a display connection
// may accumulate before further events are dropped for it. A client that
// falls that far behind resynchronizes from the snapshot on reconnect.
const subscriberBuffer = 16

// Hub is the live Broadcaster implementation. Each connected display owns a
// buffered event channel; publishes fan out to all of them in commit order.
type Hub struct {
	mu          sync.Mutex
	subscribers map[chan sse.Event]struct{}
	snapshot    func() []models.Order
}

// NewHub creates a hub. snapshot supplies the current order list for the
// orders:init event sent to every new connection.
func NewHub(snapshot func() []models.Order) *Hub {
	return &Hub{
		subscribers: make(map[chan sse.Event]struct{}),
		snapshot:    snapshot,
	}
}

// Subscribe registers a new display connection. The returned channel is
// primed with an orders:init event carrying the full current list, so a
// client joining mid-session is immediately consistent. Callers must
// Unsubscribe when the connection closes.
func (h *Hub) Subscribe() chan sse.Event {
	ch := make(chan sse.Event, subscriberBuffer)

	// Snapshot and registration happen under the same lock as publish, so
	// an order committed while a connection is joining lands either in its
	// snapshot or in its event stream, never in neither.
	h.mu.Lock()
	ch <- sse.Event{Event: EventOrdersInit, Data: h.snapshot()}
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes a connection and closes its channel.
func (h *Hub) Unsubscribe(ch chan sse.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[ch]; ok {
		delete(h.subscribers, ch)
		close(ch)
	}
}

// SubscriberCount reports the number of connected displays.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// publish fans an event out to every subscriber without blocking. A full
// subscriber channel means that display is too far behind; the event is
// dropped for it.
func (h *Hub) publish(ev sse.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		select {
		case ch <- ev:
		default:
			log.Printf("realtime hub: dropping %s event for slow subscriber", ev.Event)
		}
	}
}

// OrderCreated broadcasts the committed order, including its authoritative
// id, so the origin client can reconcile a provisional id mismatch.
func (h *Hub) OrderCreated(order models.Order) {
	h.publish(sse.Event{Event: EventOrderCreated, Data: order})
}

// OrderCompleted broadcasts a completion by id.
func (h *Hub) OrderCompleted(id int) {
	h.publish(sse.Event{Event: EventOrderCompleted, Data: map[string]int{"id": id}})
}

// OrdersReset broadcasts the daily reset.
func (h *Hub) OrdersReset() {
	h.publish(sse.Event{Event: EventOrdersReset, Data: struct{}{}})
}
