package application

import (
	"context"

	catalog "github.com/tablebistro/tablebistro/internal/catalog/domain"
	"github.com/tablebistro/tablebistro/internal/ordering/domain"
	tables "github.com/tablebistro/tablebistro/internal/tables/domain"
)

// OrderRepository persists whole Order aggregates. Loads return an error
// matching shared.ErrNotFound for unknown ids; saves are last-writer-wins.
type OrderRepository interface {
	GetByID(ctx context.Context, id domain.OrderID) (*domain.Order, error)
	// GetActiveOrderByTable returns the table's open order, meaning one whose
	// status is Draft or Confirmed.
	GetActiveOrderByTable(ctx context.Context, tableID tables.TableID) (*domain.Order, error)
	GetAll(ctx context.Context) ([]*domain.Order, error)
	Save(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id domain.OrderID) error
}

// TableDirectory is the slice of the tables context this service needs.
type TableDirectory interface {
	GetByID(ctx context.Context, id tables.TableID) (*tables.Table, error)
}

// ProductCatalog is the slice of the catalog this service needs when
// snapshotting a product onto an order line.
type ProductCatalog interface {
	GetByID(ctx context.Context, id catalog.ProductID) (*catalog.Product, error)
}

// Notifier receives the domain events drained from an order after a
// successful persist. Delivery is fire-and-observe.
type Notifier interface {
	NotifyOrderConfirmed(ctx context.Context, event domain.OrderConfirmed) error
	NotifyOrderStatusChanged(ctx context.Context, event domain.OrderStatusChanged) error
}
