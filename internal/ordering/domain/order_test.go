package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/tablebistro/tablebistro/internal/catalog/domain"
	"github.com/tablebistro/tablebistro/internal/shared"
	tables "github.com/tablebistro/tablebistro/internal/tables/domain"
)

func newDraftOrder() *Order {
	return NewOrder(tables.TableID(5), tables.NewSessionID())
}

func eur(t *testing.T, amount string) shared.Price {
	t.Helper()
	p, err := shared.NewPriceFromString(amount, "EUR")
	require.NoError(t, err)
	return p
}

func qty(t *testing.T, v int) shared.Quantity {
	t.Helper()
	q, err := shared.NewQuantity(v)
	require.NoError(t, err)
	return q
}

func addProduct(t *testing.T, o *Order, name string, price string, quantity int) catalog.ProductID {
	t.Helper()
	id := catalog.NewProductID()
	require.NoError(t, o.AddProduct(id, name, eur(t, price), qty(t, quantity)))
	return id
}

func TestNewOrderStartsEmptyDraft(t *testing.T) {
	o := newDraftOrder()

	assert.Equal(t, StatusDraft, o.Status())
	assert.Empty(t, o.Lines())
	assert.Equal(t, "0.00 EUR", o.Total().String())
	assert.Nil(t, o.ConfirmedAt())
	assert.Empty(t, o.DomainEvents())
}

func TestAddProductMergesLinesByProduct(t *testing.T) {
	o := newDraftOrder()
	productID := addProduct(t, o, "Papas Arrugadas con Mojo", "4.50", 2)

	require.NoError(t, o.AddProduct(productID, "Papas Arrugadas con Mojo", eur(t, "4.50"), qty(t, 3)))

	lines := o.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity().Value())
	assert.Equal(t, "22.50 EUR", lines[0].Subtotal().String())
	assert.Equal(t, "22.50 EUR", o.Total().String())
}

func TestAddProductOverflowLeavesLineUnchanged(t *testing.T) {
	o := newDraftOrder()
	productID := addProduct(t, o, "Agua", "1.00", 60)

	err := o.AddProduct(productID, "Agua", eur(t, "1.00"), qty(t, 41))
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrValidation)

	lines := o.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 60, lines[0].Quantity().Value())
	assert.Equal(t, "60.00 EUR", o.Total().String())
}

func TestAddProductRejectsForeignCurrency(t *testing.T) {
	o := newDraftOrder()
	usd, err := shared.NewPriceFromString("3.00", "USD")
	require.NoError(t, err)

	err = o.AddProduct(catalog.NewProductID(), "Imported", usd, qty(t, 1))
	assert.ErrorIs(t, err, shared.ErrValidation)
	assert.Empty(t, o.Lines())
}

func TestTotalTracksLineMutations(t *testing.T) {
	o := newDraftOrder()
	addProduct(t, o, "Queso Asado", "6.00", 2)
	secondProduct := addProduct(t, o, "Refresco", "1.50", 4)
	assert.Equal(t, "18.00 EUR", o.Total().String())

	lines := o.Lines()
	require.NoError(t, o.UpdateLineQuantity(lines[0].ID(), qty(t, 1)))
	assert.Equal(t, "12.00 EUR", o.Total().String())

	var secondLine *OrderLine
	for _, l := range o.Lines() {
		if l.ProductID() == secondProduct {
			secondLine = l
		}
	}
	require.NotNil(t, secondLine)
	require.NoError(t, o.RemoveLine(secondLine.ID()))
	assert.Equal(t, "6.00 EUR", o.Total().String())

	err := o.RemoveLine(NewOrderLineID())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestMutationsRequireDraft(t *testing.T) {
	o := newDraftOrder()
	productID := addProduct(t, o, "Costillas", "10.50", 1)
	lineID := o.Lines()[0].ID()
	require.NoError(t, o.Confirm())

	totalBefore := o.Total()

	err := o.AddProduct(productID, "Costillas", eur(t, "10.50"), qty(t, 1))
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	err = o.RemoveLine(lineID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	err = o.UpdateLineQuantity(lineID, qty(t, 2))
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	require.Len(t, o.Lines(), 1)
	assert.Equal(t, 1, o.Lines()[0].Quantity().Value())
	assert.True(t, totalBefore.Equal(o.Total()))
}

func TestConfirm(t *testing.T) {
	o := newDraftOrder()

	err := o.Confirm()
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	addProduct(t, o, "Entrecot", "14.00", 1)
	require.NoError(t, o.Confirm())
	assert.Equal(t, StatusConfirmed, o.Status())
	require.NotNil(t, o.ConfirmedAt())

	events := o.DomainEvents()
	require.Len(t, events, 2)
	confirmed, ok := events[0].(OrderConfirmed)
	require.True(t, ok)
	assert.Equal(t, o.ID(), confirmed.OrderID)
	assert.Equal(t, 5, confirmed.TableNumber)
	changed, ok := events[1].(OrderStatusChanged)
	require.True(t, ok)
	assert.Equal(t, StatusDraft, changed.OldStatus)
	assert.Equal(t, StatusConfirmed, changed.NewStatus)

	err = o.Confirm()
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestClearDomainEvents(t *testing.T) {
	o := newDraftOrder()
	addProduct(t, o, "Quesillo", "3.50", 1)
	require.NoError(t, o.Confirm())
	require.NotEmpty(t, o.DomainEvents())

	o.ClearDomainEvents()
	assert.Empty(t, o.DomainEvents())
}

func TestStatusChainForwardOnly(t *testing.T) {
	o := newDraftOrder()
	addProduct(t, o, "Pulpo a la Gallega", "14.00", 1)

	// From Draft, nothing beyond Confirm is legal.
	assert.ErrorIs(t, o.MarkAsPreparing(), shared.ErrInvalidState)
	assert.ErrorIs(t, o.MarkAsReady(), shared.ErrInvalidState)
	assert.ErrorIs(t, o.MarkAsDelivered(), shared.ErrInvalidState)

	require.NoError(t, o.Confirm())
	assert.ErrorIs(t, o.MarkAsReady(), shared.ErrInvalidState)
	assert.ErrorIs(t, o.MarkAsDelivered(), shared.ErrInvalidState)

	require.NoError(t, o.MarkAsPreparing())
	assert.Equal(t, StatusPreparing, o.Status())
	assert.ErrorIs(t, o.MarkAsPreparing(), shared.ErrInvalidState)
	assert.ErrorIs(t, o.MarkAsDelivered(), shared.ErrInvalidState)

	require.NoError(t, o.MarkAsReady())
	require.NoError(t, o.MarkAsDelivered())
	assert.Equal(t, StatusDelivered, o.Status())
	assert.True(t, o.Status().IsTerminal())

	// Terminal: no way out.
	assert.ErrorIs(t, o.MarkAsPreparing(), shared.ErrInvalidState)
	assert.ErrorIs(t, o.MarkAsReady(), shared.ErrInvalidState)
	assert.ErrorIs(t, o.MarkAsDelivered(), shared.ErrInvalidState)
	assert.ErrorIs(t, o.Cancel(), shared.ErrInvalidState)
}

func TestSkippingToDeliveredMentionsReady(t *testing.T) {
	o := newDraftOrder()
	addProduct(t, o, "Barraquito", "2.00", 1)
	require.NoError(t, o.Confirm())

	err := o.MarkAsDelivered()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ready orders")
	assert.Contains(t, err.Error(), "delivered")
}

func TestCancel(t *testing.T) {
	draft := newDraftOrder()
	require.NoError(t, draft.Cancel())
	assert.Equal(t, StatusCancelled, draft.Status())
	err := draft.Cancel()
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	confirmed := newDraftOrder()
	addProduct(t, confirmed, "Cortado", "1.30", 2)
	require.NoError(t, confirmed.Confirm())
	confirmed.ClearDomainEvents()
	require.NoError(t, confirmed.Cancel())

	events := confirmed.DomainEvents()
	require.Len(t, events, 1)
	changed := events[0].(OrderStatusChanged)
	assert.Equal(t, StatusConfirmed, changed.OldStatus)
	assert.Equal(t, StatusCancelled, changed.NewStatus)
}

// Scenario: one shared order for table 5, product added twice, confirmed.
func TestOrderLifecycleScenario(t *testing.T) {
	o := NewOrder(tables.TableID(5), tables.NewSessionID())
	productID := catalog.NewProductID()

	require.NoError(t, o.AddProduct(productID, "Conejo al Salmorejo", eur(t, "18.90"), qty(t, 2)))
	assert.Equal(t, "37.80 EUR", o.Total().String())

	require.NoError(t, o.AddProduct(productID, "Conejo al Salmorejo", eur(t, "18.90"), qty(t, 1)))
	require.Len(t, o.Lines(), 1)
	assert.Equal(t, 3, o.Lines()[0].Quantity().Value())
	assert.Equal(t, "56.70 EUR", o.Total().String())

	require.NoError(t, o.Confirm())
	assert.Len(t, o.DomainEvents(), 2)
	o.ClearDomainEvents()
	assert.Empty(t, o.DomainEvents())
}
