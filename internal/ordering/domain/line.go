package domain

import (
	"github.com/google/uuid"

	catalog "github.com/tablebistro/tablebistro/internal/catalog/domain"
	"github.com/tablebistro/tablebistro/internal/shared"
)

type OrderLineID uuid.UUID

func NewOrderLineID() OrderLineID { return OrderLineID(uuid.New()) }

func ParseOrderLineID(s string) (OrderLineID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return OrderLineID{}, shared.Validationf("invalid order line id %q", s)
	}
	return OrderLineID(u), nil
}

func (id OrderLineID) String() string { return uuid.UUID(id).String() }

// OrderLine snapshots the product name and unit price at add-time, so
// historical orders are unaffected by later catalog edits.
type OrderLine struct {
	id          OrderLineID
	productID   catalog.ProductID
	productName string
	unitPrice   shared.Price
	quantity    shared.Quantity
	subtotal    shared.Price
}

func newOrderLine(productID catalog.ProductID, productName string, unitPrice shared.Price, quantity shared.Quantity) (*OrderLine, error) {
	subtotal, err := unitPrice.Mul(quantity.Value())
	if err != nil {
		return nil, err
	}
	return &OrderLine{
		id:          NewOrderLineID(),
		productID:   productID,
		productName: productName,
		unitPrice:   unitPrice,
		quantity:    quantity,
		subtotal:    subtotal,
	}, nil
}

// RestoreOrderLine rebuilds a line from persisted state; the subtotal is
// recomputed so it always equals unit price times quantity.
func RestoreOrderLine(id OrderLineID, productID catalog.ProductID, productName string, unitPrice shared.Price, quantity shared.Quantity) (*OrderLine, error) {
	subtotal, err := unitPrice.Mul(quantity.Value())
	if err != nil {
		return nil, err
	}
	return &OrderLine{
		id:          id,
		productID:   productID,
		productName: productName,
		unitPrice:   unitPrice,
		quantity:    quantity,
		subtotal:    subtotal,
	}, nil
}

func (l *OrderLine) ID() OrderLineID { return l.id }

func (l *OrderLine) ProductID() catalog.ProductID { return l.productID }

func (l *OrderLine) ProductName() string { return l.productName }

func (l *OrderLine) UnitPrice() shared.Price { return l.unitPrice }

func (l *OrderLine) Quantity() shared.Quantity { return l.quantity }

func (l *OrderLine) Subtotal() shared.Price { return l.subtotal }

func (l *OrderLine) updateQuantity(quantity shared.Quantity) error {
	subtotal, err := l.unitPrice.Mul(quantity.Value())
	if err != nil {
		return err
	}
	l.quantity = quantity
	l.subtotal = subtotal
	return nil
}
