package domain

import "github.com/tablebistro/tablebistro/internal/shared"

// Status is the order lifecycle state. Forward transitions form a strict
// chain Draft -> Confirmed -> Preparing -> Ready -> Delivered, with
// cancellation possible from Draft and Confirmed only.
type Status string

const (
	StatusDraft     Status = "Draft"
	StatusConfirmed Status = "Confirmed"
	StatusPreparing Status = "Preparing"
	StatusReady     Status = "Ready"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusConfirmed, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return Status(s), nil
	}
	return "", shared.Validationf("unknown order status %q", s)
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}
