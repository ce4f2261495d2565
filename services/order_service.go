package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/cuisine-de-lin/order-board-api/models"
)

// OrderRepository defines the storage interactions the service needs.
type OrderRepository interface {
	LoadAll() []models.Order
	ReplaceAll(orders []models.Order) error
}

// OrderService is the single authoritative writer of the order list. All
// mutations run the whole load-mutate-replace cycle under one mutex, so
// concurrent requests cannot lose updates. Broadcasts fire only after the
// store write has succeeded.
type OrderService struct {
	mu          sync.Mutex
	store       OrderRepository
	broadcaster Broadcaster
}

// NewOrderService creates the service. Pass a NullBroadcaster when no
// realtime channel is configured.
func NewOrderService(store OrderRepository, broadcaster Broadcaster) *OrderService {
	return &OrderService{store: store, broadcaster: broadcaster}
}

// CreateOrder validates and commits a candidate order. The server assigns
// the authoritative id whenever the candidate's id is absent or already
// taken, stamps the server timestamp, and prepends the order (most recent
// first). The returned order carries the final id for client reconciliation.
func (s *OrderService) CreateOrder(candidate models.Order) (models.Order, error) {
	if len(candidate.Items) == 0 {
		return models.Order{}, models.ErrEmptyOrder
	}
	for i, line := range candidate.Items {
		if line.Name == "" {
			return models.Order{}, fmt.Errorf("%w: item %d has no name", models.ErrEmptyOrder, i)
		}
		if line.Extras == nil {
			candidate.Items[i].Extras = []string{}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.store.LoadAll()

	if candidate.ID <= 0 || idTaken(orders, candidate.ID) {
		candidate.ID = nextID(orders)
	}
	if candidate.Status == "" {
		candidate.Status = models.StatusPending
	}
	if candidate.PaymentType == "" {
		candidate.PaymentType = models.PaymentCash
	}
	if candidate.CustomerName == "" {
		candidate.CustomerName = fmt.Sprintf("Order #%d", candidate.ID)
	}
	candidate.Timestamp = time.Now().Format(time.RFC3339)

	orders = append([]models.Order{candidate}, orders...)
	if err := s.store.ReplaceAll(orders); err != nil {
		return models.Order{}, fmt.Errorf("failed to persist order: %w", err)
	}

	s.broadcaster.OrderCreated(candidate)
	return candidate, nil
}

// CompleteOrder marks the order as completed. Completing an already
// completed order is a no-op; an unknown id is ErrOrderNotFound and leaves
// the store untouched.
func (s *OrderService) CompleteOrder(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.store.LoadAll()
	found := false
	for i := range orders {
		if orders[i].ID == id {
			orders[i].Status = models.StatusCompleted
			found = true
			break
		}
	}
	if !found {
		return models.ErrOrderNotFound
	}

	if err := s.store.ReplaceAll(orders); err != nil {
		return fmt.Errorf("failed to persist completion: %w", err)
	}

	s.broadcaster.OrderCompleted(id)
	return nil
}

// ResetAll clears the active order list, starting a new numbering epoch.
// Archiving the discarded list is the daily collaborator's job and must
// happen before this call; reset is destructive.
func (s *OrderService) ResetAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.ReplaceAll([]models.Order{}); err != nil {
		return fmt.Errorf("failed to persist reset: %w", err)
	}

	s.broadcaster.OrdersReset()
	return nil
}

// ListAll returns the current order list, most recent first.
func (s *OrderService) ListAll() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.LoadAll()
}

func idTaken(orders []models.Order, id int) bool {
	for _, o := range orders {
		if o.ID == id {
			return true
		}
	}
	return false
}

func nextID(orders []models.Order) int {
	max := 0
	for _, o := range orders {
		if o.ID > max {
			max = o.ID
		}
	}
	return max + 1
}
