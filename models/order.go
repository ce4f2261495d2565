package models

import "errors"

// Domain errors returned by the order service
var (
	ErrEmptyOrder    = errors.New("order must contain at least one item")
	ErrOrderNotFound = errors.New("order not found")
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
)

// PaymentType represents how the customer pays
type PaymentType string

const (
	PaymentCash PaymentType = "cash"
	PaymentCard PaymentType = "card"
)

// OrderLine is a single menu selection within an order.
// Extras keep the user's selection order for the kitchen display.
type OrderLine struct {
	Name   string   `json:"name"`
	Extras []string `json:"extras"`
}

// Order represents a customer's submitted order.
// IDs are unique within the active list only; numbering restarts at 1
// after a daily reset.
type Order struct {
	ID           int         `json:"id"`
	CustomerName string      `json:"customerName"`
	Items        []OrderLine `json:"items"`
	PaymentType  PaymentType `json:"paymentType"`
	Status       OrderStatus `json:"status"`
	Timestamp    string      `json:"timestamp"`
}
