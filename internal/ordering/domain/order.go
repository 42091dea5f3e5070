package domain

import (
	"time"

	"github.com/google/uuid"

	catalog "github.com/tablebistro/tablebistro/internal/catalog/domain"
	"github.com/tablebistro/tablebistro/internal/shared"
	tables "github.com/tablebistro/tablebistro/internal/tables/domain"
)

type OrderID uuid.UUID

func NewOrderID() OrderID { return OrderID(uuid.New()) }

func ParseOrderID(s string) (OrderID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return OrderID{}, shared.Validationf("invalid order id %q", s)
	}
	return OrderID(u), nil
}

func (id OrderID) String() string { return uuid.UUID(id).String() }

// Order is the aggregate root for a table's order. All mutation goes through
// its methods; the total always equals the sum of line subtotals.
type Order struct {
	id          OrderID
	tableID     tables.TableID
	sessionID   tables.SessionID
	lines       []*OrderLine
	status      Status
	total       shared.Price
	createdAt   time.Time
	confirmedAt *time.Time
	events      []Event
}

// NewOrder creates a Draft order bound to a table's active session.
func NewOrder(tableID tables.TableID, sessionID tables.SessionID) *Order {
	return &Order{
		id:        NewOrderID(),
		tableID:   tableID,
		sessionID: sessionID,
		status:    StatusDraft,
		total:     shared.ZeroEUR(),
		createdAt: time.Now().UTC(),
	}
}

// RestoreOrder rebuilds an order from persisted state. The total is
// recomputed from the lines rather than trusted.
func RestoreOrder(id OrderID, tableID tables.TableID, sessionID tables.SessionID, lines []*OrderLine, status Status, createdAt time.Time, confirmedAt *time.Time) (*Order, error) {
	o := &Order{
		id:          id,
		tableID:     tableID,
		sessionID:   sessionID,
		lines:       lines,
		status:      status,
		createdAt:   createdAt,
		confirmedAt: confirmedAt,
	}
	if err := o.recalculateTotal(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Order) ID() OrderID { return o.id }

func (o *Order) TableID() tables.TableID { return o.tableID }

func (o *Order) SessionID() tables.SessionID { return o.sessionID }

// Lines returns the order lines in insertion order. The slice is a copy; the
// lines themselves are owned by the aggregate.
func (o *Order) Lines() []*OrderLine {
	out := make([]*OrderLine, len(o.lines))
	copy(out, o.lines)
	return out
}

func (o *Order) Status() Status { return o.status }

func (o *Order) Total() shared.Price { return o.total }

func (o *Order) CreatedAt() time.Time { return o.createdAt }

func (o *Order) ConfirmedAt() *time.Time { return o.confirmedAt }

// AddProduct merges into an existing line for the same product, otherwise
// appends a new line. The order is left unchanged on any failure.
func (o *Order) AddProduct(productID catalog.ProductID, productName string, unitPrice shared.Price, quantity shared.Quantity) error {
	if err := o.ensureModifiable(); err != nil {
		return err
	}
	if unitPrice.Currency() != o.total.Currency() {
		return shared.Validationf("cannot add a %s product to a %s order", unitPrice.Currency(), o.total.Currency())
	}

	if existing := o.findLineByProduct(productID); existing != nil {
		merged, err := existing.quantity.Add(quantity)
		if err != nil {
			return err
		}
		if err := existing.updateQuantity(merged); err != nil {
			return err
		}
		return o.recalculateTotal()
	}

	line, err := newOrderLine(productID, productName, unitPrice, quantity)
	if err != nil {
		return err
	}
	o.lines = append(o.lines, line)
	return o.recalculateTotal()
}

func (o *Order) RemoveLine(lineID OrderLineID) error {
	if err := o.ensureModifiable(); err != nil {
		return err
	}
	for i, line := range o.lines {
		if line.id == lineID {
			o.lines = append(o.lines[:i], o.lines[i+1:]...)
			return o.recalculateTotal()
		}
	}
	return shared.NotFoundf("order line %s not found", lineID)
}

func (o *Order) UpdateLineQuantity(lineID OrderLineID, quantity shared.Quantity) error {
	if err := o.ensureModifiable(); err != nil {
		return err
	}
	line := o.findLine(lineID)
	if line == nil {
		return shared.NotFoundf("order line %s not found", lineID)
	}
	if err := line.updateQuantity(quantity); err != nil {
		return err
	}
	return o.recalculateTotal()
}

// Confirm sends the order to the kitchen and records the confirmation events.
func (o *Order) Confirm() error {
	if len(o.lines) == 0 {
		return shared.InvalidStatef("cannot confirm an empty order")
	}
	if o.status != StatusDraft {
		return shared.InvalidStatef("cannot confirm order in status %s, only Draft orders can be confirmed", o.status)
	}

	oldStatus := o.status
	now := time.Now().UTC()
	o.status = StatusConfirmed
	o.confirmedAt = &now

	o.record(OrderConfirmed{OrderID: o.id, TableNumber: o.tableID.Value(), OccurredAt: now})
	o.record(OrderStatusChanged{OrderID: o.id, TableNumber: o.tableID.Value(), OldStatus: oldStatus, NewStatus: o.status, OccurredAt: now})
	return nil
}

// Cancel is allowed from Draft and Confirmed. It records a status-changed
// event like every other transition.
func (o *Order) Cancel() error {
	if o.status == StatusDelivered {
		return shared.InvalidStatef("cannot cancel an order that has been delivered")
	}
	if o.status == StatusCancelled {
		return shared.InvalidStatef("order is already cancelled")
	}

	oldStatus := o.status
	o.status = StatusCancelled
	o.record(OrderStatusChanged{OrderID: o.id, TableNumber: o.tableID.Value(), OldStatus: oldStatus, NewStatus: o.status, OccurredAt: time.Now().UTC()})
	return nil
}

func (o *Order) MarkAsPreparing() error {
	if o.status != StatusConfirmed {
		return shared.InvalidStatef("only confirmed orders can be marked as preparing")
	}
	o.transition(StatusPreparing)
	return nil
}

func (o *Order) MarkAsReady() error {
	if o.status != StatusPreparing {
		return shared.InvalidStatef("only preparing orders can be marked as ready")
	}
	o.transition(StatusReady)
	return nil
}

func (o *Order) MarkAsDelivered() error {
	if o.status != StatusReady {
		return shared.InvalidStatef("only ready orders can be marked as delivered")
	}
	o.transition(StatusDelivered)
	return nil
}

// DomainEvents returns the events recorded since the last clear.
func (o *Order) DomainEvents() []Event {
	out := make([]Event, len(o.events))
	copy(out, o.events)
	return out
}

func (o *Order) ClearDomainEvents() { o.events = nil }

func (o *Order) transition(next Status) {
	oldStatus := o.status
	o.status = next
	o.record(OrderStatusChanged{OrderID: o.id, TableNumber: o.tableID.Value(), OldStatus: oldStatus, NewStatus: next, OccurredAt: time.Now().UTC()})
}

func (o *Order) record(e Event) { o.events = append(o.events, e) }

func (o *Order) ensureModifiable() error {
	if o.status != StatusDraft {
		return shared.InvalidStatef("cannot modify order in status %s, only Draft orders can be modified", o.status)
	}
	return nil
}

func (o *Order) findLine(lineID OrderLineID) *OrderLine {
	for _, line := range o.lines {
		if line.id == lineID {
			return line
		}
	}
	return nil
}

func (o *Order) findLineByProduct(productID catalog.ProductID) *OrderLine {
	for _, line := range o.lines {
		if line.productID == productID {
			return line
		}
	}
	return nil
}

func (o *Order) recalculateTotal() error {
	total := shared.ZeroEUR()
	for _, line := range o.lines {
		sum, err := total.Add(line.subtotal)
		if err != nil {
			return err
		}
		total = sum
	}
	o.total = total
	return nil
}
