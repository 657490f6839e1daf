package domain

import "time"

// OrderPlacedEvent is published after a checkout transaction commits.
type OrderPlacedEvent struct {
	OrderID    string      `json:"order_id"`
	CustomerID string      `json:"customer_id"`
	Total      int64       `json:"total"`
	Items      []OrderItem `json:"items"`
	Timestamp  time.Time   `json:"timestamp"`
}

const (
	ShipmentEventShipped   = "shipped"
	ShipmentEventDelivered = "delivered"
)

// ShipmentEvent arrives from the external carrier feed.
type ShipmentEvent struct {
	OrderID   string    `json:"order_id"`
	Event     string    `json:"event"`
	Timestamp time.Time `json:"timestamp"`
}
