package services

import "github.com/cuisine-de-lin/order-board-api/models"

// Realtime event names shared by the server hub and the display clients.
const (
	EventOrdersInit     = "orders:init"
	EventOrderCreated   = "order:created"
	EventOrderCompleted = "order:completed"
	EventOrdersReset    = "orders:reset"
)

// Broadcaster delivers order lifecycle events to connected displays.
// Implementations must only be invoked after the corresponding store write
// has succeeded; delivery is fire-and-forget.
type Broadcaster interface {
	OrderCreated(order models.Order)
	OrderCompleted(id int)
	OrdersReset()
}

// NullBroadcaster is the no-op implementation used when no realtime channel
// is configured. The order service never branches on availability.
type NullBroadcaster struct{}

func (NullBroadcaster) OrderCreated(models.Order) {}
func (NullBroadcaster) OrderCompleted(int)        {}
func (NullBroadcaster) OrdersReset()              {}
