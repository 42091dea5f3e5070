// Package notifications carries order events from the ordering context to
// interested consumers, such as the kitchen display, through a transactional
// outbox and a Kafka topic.
package notifications

import "time"

const (
	EventOrderConfirmed     = "OrderConfirmed"
	EventOrderStatusChanged = "OrderStatusChanged"
)

// OrderConfirmedMessage is the wire shape of an order confirmation.
type OrderConfirmedMessage struct {
	OrderID     string    `json:"orderId"`
	TableNumber int       `json:"tableNumber"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// OrderStatusChangedMessage is the wire shape of a status transition.
type OrderStatusChangedMessage struct {
	OrderID     string    `json:"orderId"`
	TableNumber int       `json:"tableNumber"`
	OldStatus   string    `json:"oldStatus"`
	NewStatus   string    `json:"newStatus"`
	OccurredAt  time.Time `json:"occurredAt"`
}
