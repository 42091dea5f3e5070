package application_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/tablebistro/tablebistro/internal/catalog/domain"
	"github.com/tablebistro/tablebistro/internal/ordering/application"
	"github.com/tablebistro/tablebistro/internal/ordering/domain"
	"github.com/tablebistro/tablebistro/internal/shared"
	tablesdomain "github.com/tablebistro/tablebistro/internal/tables/domain"
)

func TestToOrderDTOFlattensAggregate(t *testing.T) {
	order := domain.NewOrder(mustTableID(t, 6), tablesdomain.NewSessionID())

	price, err := shared.NewPriceFromString("18.90", "EUR")
	require.NoError(t, err)
	qty, err := shared.NewQuantity(3)
	require.NoError(t, err)
	productID := catalogdomain.NewProductID()
	require.NoError(t, order.AddProduct(productID, "Entrecot", price, qty))
	require.NoError(t, order.Confirm())

	dto := application.ToOrderDTO(order)

	assert.Equal(t, order.ID().String(), dto.ID)
	assert.Equal(t, 6, dto.TableNumber)
	assert.Equal(t, order.SessionID().String(), dto.SessionID)
	assert.Equal(t, "Confirmed", dto.Status)
	assert.Equal(t, "EUR", dto.Currency)
	assert.True(t, dto.Total.Equal(decimal.RequireFromString("56.70")))
	assert.Equal(t, order.CreatedAt(), dto.CreatedAt)
	require.NotNil(t, dto.ConfirmedAt)

	require.Len(t, dto.Lines, 1)
	line := dto.Lines[0]
	assert.Equal(t, productID.String(), line.ProductID)
	assert.Equal(t, "Entrecot", line.ProductName)
	assert.Equal(t, 3, line.Quantity)
	assert.True(t, line.UnitPrice.Equal(decimal.RequireFromString("18.90")))
	assert.True(t, line.Subtotal.Equal(decimal.RequireFromString("56.70")))
}
