package storage

import (
	"log"
	"path/filepath"

	"github.com/cuisine-de-lin/order-board-api/models"
)

// OrdersFilename is the JSON document holding the active order list.
const OrdersFilename = "orders.json"

// OrderStore is the durable holder of the authoritative order list.
// The whole document is replaced on every write; there are no partial
// updates.
type OrderStore struct {
	path string
}

// NewOrderStore creates a store backed by <dataDir>/orders.json.
func NewOrderStore(dataDir string) *OrderStore {
	return &OrderStore{path: filepath.Join(dataDir, OrdersFilename)}
}

// LoadAll returns the current order list, most recent first. A missing or
// corrupt backing file degrades to an empty list so reads never fail the
// caller.
func (s *OrderStore) LoadAll() []models.Order {
	var orders []models.Order
	ok, err := readJSONFile(s.path, &orders)
	if err != nil {
		log.Printf("order store: degraded read, starting empty: %v", err)
		return []models.Order{}
	}
	if !ok || orders == nil {
		return []models.Order{}
	}
	return orders
}

// ReplaceAll atomically persists the full list, overwriting prior content.
// Write failures propagate so the caller can refuse to broadcast state that
// was never committed.
func (s *OrderStore) ReplaceAll(orders []models.Order) error {
	if orders == nil {
		orders = []models.Order{}
	}
	return writeJSONFileAtomic(s.path, orders)
}
