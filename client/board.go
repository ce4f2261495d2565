package client

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cuisine-de-lin/order-board-api/models"
)

// LocalState tracks how far a locally-known order has progressed through
// the submit/confirm cycle.
type LocalState string

const (
	// StatePendingConfirmation: optimistically inserted, awaiting the
	// server response or a matching broadcast.
	StatePendingConfirmation LocalState = "pending_confirmation"
	// StateConfirmed: the server committed it and the local id is
	// authoritative.
	StateConfirmed LocalState = "confirmed"
	// StateCompleted: the kitchen marked it done.
	StateCompleted LocalState = "completed"
)

// LocalOrder is an order as a single station sees it, with reconciliation
// metadata that never leaves the client.
type LocalOrder struct {
	Order models.Order
	State LocalState
	// Token correlates an in-flight submission with its server response.
	// It is the dedupe key while the provisional numeric id may still be
	// rewritten; cleared once confirmed.
	Token string
}

// Submission is the handle returned by Submit, used to reconcile the server
// response with the optimistic local entry.
type Submission struct {
	Token      string
	Generation int
	Order      models.Order
}

// Board keeps one station's local order view consistent despite optimistic
// local mutation, async server confirmation, and broadcast events from
// other stations. Safe for use from a render loop and an event-stream
// goroutine concurrently.
type Board struct {
	mu          sync.Mutex
	draft       []models.OrderLine
	orders      []LocalOrder
	nextLocalID int
	// generation increments on every reset; responses to submissions from
	// an earlier generation are stale and discarded.
	generation int
}

// NewBoard creates an empty board with provisional numbering starting at 1.
func NewBoard() *Board {
	return &Board{nextLocalID: 1}
}

// AddItem appends a menu selection to the current draft. Selection order is
// preserved for the kitchen display.
func (b *Board) AddItem(line models.OrderLine) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if line.Extras == nil {
		line.Extras = []string{}
	}
	b.draft = append(b.draft, line)
}

// RemoveItem removes the draft line at index; out-of-range is a no-op.
func (b *Board) RemoveItem(index int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= len(b.draft) {
		return
	}
	b.draft = append(b.draft[:index], b.draft[index+1:]...)
}

// ClearDraft discards the current draft.
func (b *Board) ClearDraft() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draft = nil
}

// Draft returns a copy of the current draft lines.
func (b *Board) Draft() []models.OrderLine {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.OrderLine, len(b.draft))
	copy(out, b.draft)
	return out
}

// Submit turns the draft into a provisional order and inserts it at the
// front of the local list immediately, before any server round trip. The
// returned submission carries the correlation token and generation to pass
// to Reconcile once the server responds.
func (b *Board) Submit(customerName string, payment models.PaymentType) (Submission, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.draft) == 0 {
		return Submission{}, models.ErrEmptyOrder
	}

	id := b.nextLocalID
	b.nextLocalID++

	if customerName == "" {
		customerName = fmt.Sprintf("Order #%d", id)
	}
	if payment == "" {
		payment = models.PaymentCash
	}

	items := make([]models.OrderLine, len(b.draft))
	copy(items, b.draft)
	b.draft = nil

	order := models.Order{
		ID:           id,
		CustomerName: customerName,
		Items:        items,
		PaymentType:  payment,
		Status:       models.StatusPending,
		Timestamp:    time.Now().Format(time.RFC3339),
	}
	token := uuid.NewString()

	b.orders = append([]LocalOrder{{Order: order, State: StatePendingConfirmation, Token: token}}, b.orders...)

	return Submission{Token: token, Generation: b.generation, Order: order}, nil
}

// Reconcile merges the server-confirmed order into the local entry matched
// by correlation token, rewriting id and timestamp in place; it never
// inserts a duplicate. Returns false when the response is stale (the board
// was reset since the submission) or the entry is gone.
func (b *Board) Reconcile(sub Submission, server models.Order) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub.Generation != b.generation {
		return false
	}

	for i := range b.orders {
		if b.orders[i].Token == sub.Token {
			b.orders[i].Order.ID = server.ID
			if server.Timestamp != "" {
				b.orders[i].Order.Timestamp = server.Timestamp
			}
			if server.CustomerName != "" {
				b.orders[i].Order.CustomerName = server.CustomerName
			}
			if b.orders[i].State == StatePendingConfirmation {
				b.orders[i].State = StateConfirmed
			}
			b.orders[i].Token = ""
			return true
		}
	}

	// A broadcast may have confirmed this entry already; the direct
	// response then has nothing left to do.
	for i := range b.orders {
		if b.orders[i].Order.ID == server.ID {
			return true
		}
	}
	return false
}

// ApplyCreated handles an order:created broadcast. An order already present
// by id is not re-inserted. A broadcast arriving before the direct response
// for this station's own in-flight submission is accepted as authoritative
// and reconciled immediately.
func (b *Board) ApplyCreated(order models.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.orders {
		if b.orders[i].Order.ID == order.ID && b.orders[i].Token == "" {
			return
		}
	}

	// Provisional-id window: match this station's own pending submission
	// by content, since the broadcast carries no correlation token.
	for i := range b.orders {
		lo := &b.orders[i]
		if lo.State == StatePendingConfirmation && sameSubmission(lo.Order, order) {
			lo.Order.ID = order.ID
			if order.Timestamp != "" {
				lo.Order.Timestamp = order.Timestamp
			}
			lo.State = StateConfirmed
			lo.Token = ""
			return
		}
	}

	b.orders = append([]LocalOrder{{Order: order, State: stateForStatus(order.Status)}}, b.orders...)
}

// ApplyCompleted handles an order:completed broadcast. Unknown ids are a
// no-op; the order was created on another session and will arrive with the
// next snapshot.
func (b *Board) ApplyCompleted(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.orders {
		if b.orders[i].Order.ID == id {
			b.orders[i].Order.Status = models.StatusCompleted
			b.orders[i].State = StateCompleted
			return
		}
	}
}

// ApplyReset handles an orders:reset broadcast: the local list is cleared
// unconditionally, in-flight submissions included, and the generation is
// bumped so their late responses are discarded. Provisional numbering
// restarts at 1 for the new day.
func (b *Board) ApplyReset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orders = nil
	b.draft = nil
	b.nextLocalID = 1
	b.generation++
}

// ApplySnapshot replaces local state with the server's full list (the
// orders:init event, or a refetch after reconnecting). An in-flight
// submission whose content already appears in the snapshot was committed by
// the server even though its response was lost; it confirms against the
// snapshot copy instead of surviving as a duplicate. Other in-flight
// submissions are kept at the front until their response or broadcast
// arrives.
func (b *Board) ApplySnapshot(orders []models.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var pending []LocalOrder
	for _, lo := range b.orders {
		if lo.State == StatePendingConfirmation {
			pending = append(pending, lo)
		}
	}

	var merged []LocalOrder
	for _, o := range orders {
		for i, lo := range pending {
			if sameSubmission(lo.Order, o) {
				pending = append(pending[:i], pending[i+1:]...)
				break
			}
		}
		merged = append(merged, LocalOrder{Order: o, State: stateForStatus(o.Status)})
	}
	b.orders = append(pending, merged...)
}

// Orders returns a copy of the local list, most recent first.
func (b *Board) Orders() []LocalOrder {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]LocalOrder, len(b.orders))
	copy(out, b.orders)
	return out
}

// Generation returns the current reset epoch.
func (b *Board) Generation() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.generation
}

func stateForStatus(status models.OrderStatus) LocalState {
	if status == models.StatusCompleted {
		return StateCompleted
	}
	return StateConfirmed
}

func sameSubmission(local, remote models.Order) bool {
	if local.CustomerName != remote.CustomerName || local.PaymentType != remote.PaymentType {
		return false
	}
	if len(local.Items) != len(remote.Items) {
		return false
	}
	for i := range local.Items {
		if local.Items[i].Name != remote.Items[i].Name {
			return false
		}
		if len(local.Items[i].Extras) != len(remote.Items[i].Extras) {
			return false
		}
		for j := range local.Items[i].Extras {
			if local.Items[i].Extras[j] != remote.Items[i].Extras[j] {
				return false
			}
		}
	}
	return true
}
