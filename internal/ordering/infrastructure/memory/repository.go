package memory

import (
	"context"
	"sync"
	"time"

	catalog "github.com/tablebistro/tablebistro/internal/catalog/domain"
	"github.com/tablebistro/tablebistro/internal/ordering/domain"
	"github.com/tablebistro/tablebistro/internal/shared"
	tables "github.com/tablebistro/tablebistro/internal/tables/domain"
)

type lineRecord struct {
	id          domain.OrderLineID
	productID   catalog.ProductID
	productName string
	unitPrice   shared.Price
	quantity    shared.Quantity
}

type orderRecord struct {
	id          domain.OrderID
	tableID     tables.TableID
	sessionID   tables.SessionID
	lines       []lineRecord
	status      domain.Status
	createdAt   time.Time
	confirmedAt *time.Time
}

// OrderRepository keeps order snapshots in a mutex-guarded map. Every load
// rebuilds a fresh aggregate, so concurrent use cases each mutate their own
// copy and the last save wins.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[domain.OrderID]orderRecord
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[domain.OrderID]orderRecord)}
}

func (r *OrderRepository) GetByID(_ context.Context, id domain.OrderID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.orders[id]
	if !ok {
		return nil, shared.NotFoundf("order %s not found", id)
	}
	return restore(rec)
}

func (r *OrderRepository) GetActiveOrderByTable(_ context.Context, tableID tables.TableID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.orders {
		if rec.tableID != tableID {
			continue
		}
		if rec.status == domain.StatusDraft || rec.status == domain.StatusConfirmed {
			return restore(rec)
		}
	}
	return nil, shared.NotFoundf("no open order for table %d", tableID.Value())
}

func (r *OrderRepository) GetAll(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Order, 0, len(r.orders))
	for _, rec := range r.orders {
		o, err := restore(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *OrderRepository) Save(_ context.Context, order *domain.Order) error {
	lines := make([]lineRecord, 0, len(order.Lines()))
	for _, l := range order.Lines() {
		lines = append(lines, lineRecord{
			id:          l.ID(),
			productID:   l.ProductID(),
			productName: l.ProductName(),
			unitPrice:   l.UnitPrice(),
			quantity:    l.Quantity(),
		})
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID()] = orderRecord{
		id:          order.ID(),
		tableID:     order.TableID(),
		sessionID:   order.SessionID(),
		lines:       lines,
		status:      order.Status(),
		createdAt:   order.CreatedAt(),
		confirmedAt: order.ConfirmedAt(),
	}
	return nil
}

func (r *OrderRepository) Delete(_ context.Context, id domain.OrderID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return shared.NotFoundf("order %s not found", id)
	}
	delete(r.orders, id)
	return nil
}

func restore(rec orderRecord) (*domain.Order, error) {
	lines := make([]*domain.OrderLine, 0, len(rec.lines))
	for _, lr := range rec.lines {
		line, err := domain.RestoreOrderLine(lr.id, lr.productID, lr.productName, lr.unitPrice, lr.quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return domain.RestoreOrder(rec.id, rec.tableID, rec.sessionID, lines, rec.status, rec.createdAt, rec.confirmedAt)
}
