package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuisine-de-lin/order-board-api/models"
)

// memoryStore is an in-memory OrderRepository for service tests.
type memoryStore struct {
	orders    []models.Order
	failWrite bool
	writes    int
}

func (m *memoryStore) LoadAll() []models.Order {
	out := make([]models.Order, len(m.orders))
	copy(out, m.orders)
	return out
}

func (m *memoryStore) ReplaceAll(orders []models.Order) error {
	if m.failWrite {
		return errors.New("disk full")
	}
	m.writes++
	m.orders = make([]models.Order, len(orders))
	copy(m.orders, orders)
	return nil
}

func burgerCandidate() models.Order {
	return models.Order{
		Items:       []models.OrderLine{{Name: "Burger", Extras: []string{"Bacon"}}},
		PaymentType: models.PaymentCash,
	}
}

func TestCreateOrder_AssignsSequentialIDs(t *testing.T) {
	store := &memoryStore{}
	service := NewOrderService(store, NullBroadcaster{})

	for i := 1; i <= 5; i++ {
		order, err := service.CreateOrder(burgerCandidate())
		require.NoError(t, err)
		assert.Equal(t, i, order.ID, "ids should be assigned in submission-commit order")
		assert.Equal(t, models.StatusPending, order.Status)
	}

	assert.Len(t, store.orders, 5)
}

func TestCreateOrder_FirstOrderOnEmptyStore(t *testing.T) {
	service := NewOrderService(&memoryStore{}, NullBroadcaster{})

	order, err := service.CreateOrder(models.Order{
		Items:       []models.OrderLine{{Name: "Burger", Extras: []string{"Bacon"}}},
		PaymentType: models.PaymentCash,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, order.ID)
	assert.Equal(t, models.StatusPending, order.Status)

	second, err := service.CreateOrder(burgerCandidate())
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)
}

func TestCreateOrder_Validation(t *testing.T) {
	service := NewOrderService(&memoryStore{}, NullBroadcaster{})

	tests := []struct {
		name      string
		candidate models.Order
	}{
		{name: "no items", candidate: models.Order{PaymentType: models.PaymentCash}},
		{name: "empty items", candidate: models.Order{Items: []models.OrderLine{}}},
		{name: "item without name", candidate: models.Order{Items: []models.OrderLine{{Name: ""}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateOrder(tt.candidate)
			assert.ErrorIs(t, err, models.ErrEmptyOrder)
			assert.Empty(t, service.ListAll(), "rejected orders must not be persisted")
		})
	}
}

func TestCreateOrder_Defaults(t *testing.T) {
	service := NewOrderService(&memoryStore{}, NullBroadcaster{})

	order, err := service.CreateOrder(models.Order{
		Items: []models.OrderLine{{Name: "Poutine"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Order #1", order.CustomerName, "blank customer name gets a generated placeholder")
	assert.Equal(t, models.PaymentCash, order.PaymentType)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.NotEmpty(t, order.Timestamp, "server stamps the authoritative timestamp")
	assert.NotNil(t, order.Items[0].Extras, "extras normalize to an empty list")
}

func TestCreateOrder_KeepsFreeClientID(t *testing.T) {
	service := NewOrderService(&memoryStore{}, NullBroadcaster{})

	candidate := burgerCandidate()
	candidate.ID = 7
	order, err := service.CreateOrder(candidate)
	require.NoError(t, err)
	assert.Equal(t, 7, order.ID, "a free client-supplied id is kept")

	// A colliding provisional id gets renumbered to max+1.
	colliding := burgerCandidate()
	colliding.ID = 7
	order, err = service.CreateOrder(colliding)
	require.NoError(t, err)
	assert.Equal(t, 8, order.ID, "a taken id must be overwritten by the server")
}

func TestCreateOrder_PrependsMostRecentFirst(t *testing.T) {
	service := NewOrderService(&memoryStore{}, NullBroadcaster{})

	first := burgerCandidate()
	first.CustomerName = "first"
	_, err := service.CreateOrder(first)
	require.NoError(t, err)

	second := burgerCandidate()
	second.CustomerName = "second"
	_, err = service.CreateOrder(second)
	require.NoError(t, err)

	orders := service.ListAll()
	require.Len(t, orders, 2)
	assert.Equal(t, "second", orders[0].CustomerName)
	assert.Equal(t, "first", orders[1].CustomerName)
}

func TestCreateOrder_BroadcastsCommittedOrder(t *testing.T) {
	recorder := &RecordingBroadcaster{}
	service := NewOrderService(&memoryStore{}, recorder)

	candidate := burgerCandidate()
	candidate.ID = 99
	// Seed an order so 99 collides and the broadcast must carry the
	// renumbered authoritative id.
	seeded := burgerCandidate()
	seeded.ID = 99
	_, err := service.CreateOrder(seeded)
	require.NoError(t, err)

	order, err := service.CreateOrder(candidate)
	require.NoError(t, err)

	require.Len(t, recorder.Events, 2)
	assert.Equal(t, EventOrderCreated, recorder.Events[1].Name)
	assert.Equal(t, order.ID, recorder.Events[1].Order.ID, "broadcast carries the final id for origin reconciliation")
}

func TestCreateOrder_NoBroadcastWhenWriteFails(t *testing.T) {
	recorder := &RecordingBroadcaster{}
	store := &memoryStore{failWrite: true}
	service := NewOrderService(store, recorder)

	_, err := service.CreateOrder(burgerCandidate())

	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrEmptyOrder)
	assert.Empty(t, recorder.Events, "never broadcast state that was not durably committed")
}

func TestCompleteOrder_Idempotent(t *testing.T) {
	recorder := &RecordingBroadcaster{}
	store := &memoryStore{}
	service := NewOrderService(store, recorder)

	order, err := service.CreateOrder(burgerCandidate())
	require.NoError(t, err)

	require.NoError(t, service.CompleteOrder(order.ID))
	assert.Equal(t, models.StatusCompleted, service.ListAll()[0].Status)

	// Completing again is a no-op producing the same observable state.
	require.NoError(t, service.CompleteOrder(order.ID))
	assert.Equal(t, models.StatusCompleted, service.ListAll()[0].Status)
}

func TestCompleteOrder_UnknownID(t *testing.T) {
	recorder := &RecordingBroadcaster{}
	store := &memoryStore{}
	service := NewOrderService(store, recorder)

	_, err := service.CreateOrder(burgerCandidate())
	require.NoError(t, err)
	writesBefore := store.writes

	err = service.CompleteOrder(42)

	assert.ErrorIs(t, err, models.ErrOrderNotFound)
	assert.Equal(t, writesBefore, store.writes, "a failed completion must not mutate the store")
	assert.Equal(t, []string{EventOrderCreated}, recorder.Names())
}

func TestCompleteOrder_NoBroadcastWhenWriteFails(t *testing.T) {
	recorder := &RecordingBroadcaster{}
	store := &memoryStore{}
	service := NewOrderService(store, recorder)

	order, err := service.CreateOrder(burgerCandidate())
	require.NoError(t, err)

	store.failWrite = true
	err = service.CompleteOrder(order.ID)

	require.Error(t, err)
	assert.Equal(t, []string{EventOrderCreated}, recorder.Names())
}

func TestResetAll_ClearsAndRestartsNumbering(t *testing.T) {
	recorder := &RecordingBroadcaster{}
	service := NewOrderService(&memoryStore{}, recorder)

	for i := 0; i < 2; i++ {
		_, err := service.CreateOrder(burgerCandidate())
		require.NoError(t, err)
	}

	require.NoError(t, service.ResetAll())
	assert.Empty(t, service.ListAll())

	order, err := service.CreateOrder(burgerCandidate())
	require.NoError(t, err)
	assert.Equal(t, 1, order.ID, "numbering restarts at 1 after a reset")

	names := recorder.Names()
	require.Len(t, names, 4)
	assert.Equal(t, EventOrdersReset, names[2])
}

func TestListAll_EmptyStore(t *testing.T) {
	service := NewOrderService(&memoryStore{}, NullBroadcaster{})
	assert.Empty(t, service.ListAll())
}

func TestCreateOrder_ManySequential(t *testing.T) {
	service := NewOrderService(&memoryStore{}, NullBroadcaster{})

	const n = 25
	seen := map[int]bool{}
	for i := 0; i < n; i++ {
		candidate := burgerCandidate()
		candidate.CustomerName = fmt.Sprintf("customer %d", i)
		order, err := service.CreateOrder(candidate)
		require.NoError(t, err)
		seen[order.ID] = true
	}

	for id := 1; id <= n; id++ {
		assert.True(t, seen[id], "ids should be exactly 1..N with no gaps")
	}
}
