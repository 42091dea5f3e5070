package application_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/tablebistro/tablebistro/internal/catalog/domain"
	catalogmem "github.com/tablebistro/tablebistro/internal/catalog/infrastructure/memory"
	"github.com/tablebistro/tablebistro/internal/ordering/application"
	"github.com/tablebistro/tablebistro/internal/ordering/domain"
	orderingmem "github.com/tablebistro/tablebistro/internal/ordering/infrastructure/memory"
	"github.com/tablebistro/tablebistro/internal/shared"
	tablesdomain "github.com/tablebistro/tablebistro/internal/tables/domain"
	tablesmem "github.com/tablebistro/tablebistro/internal/tables/infrastructure/memory"
)

type notifierSpy struct {
	confirmed     []domain.OrderConfirmed
	statusChanged []domain.OrderStatusChanged
}

func (n *notifierSpy) NotifyOrderConfirmed(_ context.Context, event domain.OrderConfirmed) error {
	n.confirmed = append(n.confirmed, event)
	return nil
}

func (n *notifierSpy) NotifyOrderStatusChanged(_ context.Context, event domain.OrderStatusChanged) error {
	n.statusChanged = append(n.statusChanged, event)
	return nil
}

type fixture struct {
	svc      *application.Service
	tables   *tablesmem.TableRepository
	products *catalogmem.ProductRepository
	orders   *orderingmem.OrderRepository
	notifier *notifierSpy
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		tables:   tablesmem.NewTableRepository(),
		products: catalogmem.NewProductRepository(),
		orders:   orderingmem.NewOrderRepository(),
		notifier: &notifierSpy{},
	}
	f.tables.Seed(1, 2, 3)
	f.svc = application.NewService(f.orders, f.tables, f.products, f.notifier)
	return f
}

func (f *fixture) addProduct(t *testing.T, name, price string) *catalogdomain.Product {
	t.Helper()
	p, err := shared.NewPriceFromString(price, "EUR")
	require.NoError(t, err)
	product, err := catalogdomain.NewProduct(name, "", p, catalogdomain.NewCategoryID(), shared.NoAllergens())
	require.NoError(t, err)
	require.NoError(t, f.products.Save(context.Background(), product))
	return product
}

func (f *fixture) occupyTable(t *testing.T, number int) {
	t.Helper()
	table, err := f.tables.GetByID(context.Background(), mustTableID(t, number))
	require.NoError(t, err)
	table.StartSession()
	require.NoError(t, f.tables.Save(context.Background(), table))
}

func mustTableID(t *testing.T, number int) tablesdomain.TableID {
	t.Helper()
	id, err := tablesdomain.NewTableID(number)
	require.NoError(t, err)
	return id
}

func TestGetOrCreateOrderRequiresSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetOrCreateOrderForTable(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	assert.EqualError(t, err, "table 1 does not have an active session")
}

func TestGetOrCreateOrderUnknownTable(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetOrCreateOrderForTable(context.Background(), 99)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.EqualError(t, err, "table 99 does not exist")
}

func TestGetOrCreateOrderIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.occupyTable(t, 2)

	first, err := f.svc.GetOrCreateOrderForTable(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Draft", first.Status)
	assert.Equal(t, 2, first.TableNumber)

	second, err := f.svc.GetOrCreateOrderForTable(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestAddProductSnapshotsNameAndPrice(t *testing.T) {
	f := newFixture(t)
	f.occupyTable(t, 1)
	product := f.addProduct(t, "Ropa Vieja", "8.50")

	order, err := f.svc.GetOrCreateOrderForTable(context.Background(), 1)
	require.NoError(t, err)

	updated, err := f.svc.AddProduct(context.Background(), order.ID, product.ID().String(), 2)
	require.NoError(t, err)
	require.Len(t, updated.Lines, 1)
	assert.Equal(t, "Ropa Vieja", updated.Lines[0].ProductName)
	assert.True(t, updated.Lines[0].UnitPrice.Equal(decimal.RequireFromString("8.50")))
	assert.True(t, updated.Total.Equal(decimal.RequireFromString("17.00")))
}

func TestAddProductUnavailable(t *testing.T) {
	f := newFixture(t)
	f.occupyTable(t, 1)
	product := f.addProduct(t, "Cherne a la Plancha", "13.00")
	product.MarkUnavailable()
	require.NoError(t, f.products.Save(context.Background(), product))

	order, err := f.svc.GetOrCreateOrderForTable(context.Background(), 1)
	require.NoError(t, err)

	_, err = f.svc.AddProduct(context.Background(), order.ID, product.ID().String(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	assert.Contains(t, err.Error(), "is not available")
}

func TestAddProductUnknownProduct(t *testing.T) {
	f := newFixture(t)
	f.occupyTable(t, 1)

	order, err := f.svc.GetOrCreateOrderForTable(context.Background(), 1)
	require.NoError(t, err)

	_, err = f.svc.AddProduct(context.Background(), order.ID, catalogdomain.NewProductID().String(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestConfirmDispatchesAndClearsEvents(t *testing.T) {
	f := newFixture(t)
	f.occupyTable(t, 1)
	product := f.addProduct(t, "Quesillo", "3.50")

	order, err := f.svc.GetOrCreateOrderForTable(context.Background(), 1)
	require.NoError(t, err)
	_, err = f.svc.AddProduct(context.Background(), order.ID, product.ID().String(), 1)
	require.NoError(t, err)

	confirmed, err := f.svc.Confirm(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Confirmed", confirmed.Status)
	assert.NotNil(t, confirmed.ConfirmedAt)

	require.Len(t, f.notifier.confirmed, 1)
	assert.Equal(t, 1, f.notifier.confirmed[0].TableNumber)
	require.Len(t, f.notifier.statusChanged, 1)
	assert.Equal(t, domain.StatusDraft, f.notifier.statusChanged[0].OldStatus)
	assert.Equal(t, domain.StatusConfirmed, f.notifier.statusChanged[0].NewStatus)

	// Events were drained, a later transition dispatches only its own.
	_, err = f.svc.UpdateStatus(context.Background(), order.ID, "Preparing")
	require.NoError(t, err)
	assert.Len(t, f.notifier.confirmed, 1)
	assert.Len(t, f.notifier.statusChanged, 2)
}

func TestConfirmEmptyOrder(t *testing.T) {
	f := newFixture(t)
	f.occupyTable(t, 1)

	order, err := f.svc.GetOrCreateOrderForTable(context.Background(), 1)
	require.NoError(t, err)

	_, err = f.svc.Confirm(context.Background(), order.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	assert.EqualError(t, err, "cannot confirm an empty order")
}

func TestUpdateStatusRejectsUnknownName(t *testing.T) {
	f := newFixture(t)
	f.occupyTable(t, 1)
	product := f.addProduct(t, "Barraquito", "2.00")

	order, err := f.svc.GetOrCreateOrderForTable(context.Background(), 1)
	require.NoError(t, err)
	_, err = f.svc.AddProduct(context.Background(), order.ID, product.ID().String(), 1)
	require.NoError(t, err)
	_, err = f.svc.Confirm(context.Background(), order.ID)
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), order.ID, "Done")
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrValidation)
	assert.EqualError(t, err, `invalid status "Done", valid statuses are Preparing, Ready and Delivered`)

	// Confirm and Cancel have dedicated paths, not UpdateStatus.
	_, err = f.svc.UpdateStatus(context.Background(), order.ID, "Cancelled")
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdateStatusWalksKitchenFlow(t *testing.T) {
	f := newFixture(t)
	f.occupyTable(t, 1)
	product := f.addProduct(t, "Costillas", "10.50")

	order, err := f.svc.GetOrCreateOrderForTable(context.Background(), 1)
	require.NoError(t, err)
	_, err = f.svc.AddProduct(context.Background(), order.ID, product.ID().String(), 1)
	require.NoError(t, err)
	_, err = f.svc.Confirm(context.Background(), order.ID)
	require.NoError(t, err)

	for _, status := range []string{"Preparing", "Ready", "Delivered"} {
		dto, err := f.svc.UpdateStatus(context.Background(), order.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, dto.Status)
	}

	// Delivered is terminal.
	_, err = f.svc.UpdateStatus(context.Background(), order.ID, "Preparing")
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestCancelDispatchesStatusChange(t *testing.T) {
	f := newFixture(t)
	f.occupyTable(t, 1)

	order, err := f.svc.GetOrCreateOrderForTable(context.Background(), 1)
	require.NoError(t, err)

	cancelled, err := f.svc.Cancel(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cancelled", cancelled.Status)

	require.Len(t, f.notifier.statusChanged, 1)
	assert.Equal(t, domain.StatusCancelled, f.notifier.statusChanged[0].NewStatus)
}

func TestActiveOrdersFiltersAndSorts(t *testing.T) {
	f := newFixture(t)
	f.occupyTable(t, 1)
	f.occupyTable(t, 2)
	f.occupyTable(t, 3)
	product := f.addProduct(t, "Pulpo a la Gallega", "14.00")

	// Table 1 stays Draft.
	_, err := f.svc.GetOrCreateOrderForTable(context.Background(), 1)
	require.NoError(t, err)

	// Tables 2 and 3 get confirmed in order.
	var confirmedIDs []string
	for _, n := range []int{2, 3} {
		order, err := f.svc.GetOrCreateOrderForTable(context.Background(), n)
		require.NoError(t, err)
		_, err = f.svc.AddProduct(context.Background(), order.ID, product.ID().String(), 1)
		require.NoError(t, err)
		_, err = f.svc.Confirm(context.Background(), order.ID)
		require.NoError(t, err)
		confirmedIDs = append(confirmedIDs, order.ID)
	}

	active, err := f.svc.ActiveOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, confirmedIDs[0], active[0].ID)
	assert.Equal(t, confirmedIDs[1], active[1].ID)
	assert.False(t, active[0].CreatedAt.After(active[1].CreatedAt))
}

func TestLoadOrderUnknownID(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Confirm(context.Background(), domain.NewOrderID().String())
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
