package domain

import "time"

// Event is a fact recorded by the Order aggregate. Events accumulate on the
// instance and are drained by the orchestrating use case after a successful
// persist; there is no process-wide bus.
type Event interface {
	Name() string
}

type OrderConfirmed struct {
	OrderID     OrderID
	TableNumber int
	OccurredAt  time.Time
}

func (OrderConfirmed) Name() string { return "OrderConfirmed" }

type OrderStatusChanged struct {
	OrderID     OrderID
	TableNumber int
	OldStatus   Status
	NewStatus   Status
	OccurredAt  time.Time
}

func (OrderStatusChanged) Name() string { return "OrderStatusChanged" }
