package services

import (
	"sync"

	"github.com/cuisine-de-lin/order-board-api/models"
)

// RecordedEvent is a single broadcast captured by RecordingBroadcaster.
type RecordedEvent struct {
	Name  string
	Order models.Order
	ID    int
}

// RecordingBroadcaster captures broadcasts for assertions in tests.
type RecordingBroadcaster struct {
	mu     sync.Mutex
	Events []RecordedEvent
}

func (r *RecordingBroadcaster) OrderCreated(order models.Order) {
	r.record(RecordedEvent{Name: EventOrderCreated, Order: order, ID: order.ID})
}

func (r *RecordingBroadcaster) OrderCompleted(id int) {
	r.record(RecordedEvent{Name: EventOrderCompleted, ID: id})
}

func (r *RecordingBroadcaster) OrdersReset() {
	r.record(RecordedEvent{Name: EventOrdersReset})
}

func (r *RecordingBroadcaster) record(ev RecordedEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, ev)
}

// Names returns the recorded event names in broadcast order.
func (r *RecordingBroadcaster) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.Events))
	for i, ev := range r.Events {
		names[i] = ev.Name
	}
	return names
}
