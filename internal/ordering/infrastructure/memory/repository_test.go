package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/tablebistro/tablebistro/internal/catalog/domain"
	"github.com/tablebistro/tablebistro/internal/ordering/domain"
	"github.com/tablebistro/tablebistro/internal/ordering/infrastructure/memory"
	"github.com/tablebistro/tablebistro/internal/shared"
	tables "github.com/tablebistro/tablebistro/internal/tables/domain"
)

func newDraftOrder(t *testing.T) *domain.Order {
	t.Helper()
	tableID, err := tables.NewTableID(4)
	require.NoError(t, err)
	order := domain.NewOrder(tableID, tables.NewSessionID())

	price, err := shared.NewPriceFromString("8.50", "EUR")
	require.NoError(t, err)
	qty, err := shared.NewQuantity(2)
	require.NoError(t, err)
	require.NoError(t, order.AddProduct(catalog.NewProductID(), "Ropa Vieja", price, qty))
	return order
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo := memory.NewOrderRepository()
	order := newDraftOrder(t)
	require.NoError(t, repo.Save(context.Background(), order))

	loaded, err := repo.GetByID(context.Background(), order.ID())
	require.NoError(t, err)
	assert.Equal(t, order.ID(), loaded.ID())
	assert.Equal(t, order.Status(), loaded.Status())
	assert.True(t, order.Total().Equal(loaded.Total()))
	require.Len(t, loaded.Lines(), 1)
	assert.Equal(t, "Ropa Vieja", loaded.Lines()[0].ProductName())
	assert.Equal(t, 2, loaded.Lines()[0].Quantity().Value())
}

func TestLoadsAreIsolatedCopies(t *testing.T) {
	repo := memory.NewOrderRepository()
	order := newDraftOrder(t)
	require.NoError(t, repo.Save(context.Background(), order))

	first, err := repo.GetByID(context.Background(), order.ID())
	require.NoError(t, err)
	require.NoError(t, first.Confirm())

	// Mutating a loaded copy without saving must not leak into the store.
	second, err := repo.GetByID(context.Background(), order.ID())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, second.Status())
}

func TestGetActiveOrderByTable(t *testing.T) {
	repo := memory.NewOrderRepository()
	order := newDraftOrder(t)
	require.NoError(t, repo.Save(context.Background(), order))

	active, err := repo.GetActiveOrderByTable(context.Background(), order.TableID())
	require.NoError(t, err)
	assert.Equal(t, order.ID(), active.ID())

	// Delivered orders are no longer active for the table.
	require.NoError(t, order.Confirm())
	require.NoError(t, order.MarkAsPreparing())
	require.NoError(t, order.MarkAsReady())
	require.NoError(t, order.MarkAsDelivered())
	require.NoError(t, repo.Save(context.Background(), order))

	_, err = repo.GetActiveOrderByTable(context.Background(), order.TableID())
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
