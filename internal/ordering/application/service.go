package application

import (
	"context"
	"errors"
	"sort"

	catalog "github.com/tablebistro/tablebistro/internal/catalog/domain"
	"github.com/tablebistro/tablebistro/internal/ordering/domain"
	"github.com/tablebistro/tablebistro/internal/shared"
	tables "github.com/tablebistro/tablebistro/internal/tables/domain"
)

// Service orchestrates the order lifecycle: load the aggregate, invoke its
// methods, persist, then hand any recorded events to the notifier.
type Service struct {
	orders   OrderRepository
	tableDir TableDirectory
	products ProductCatalog
	notifier Notifier
}

func NewService(orders OrderRepository, tableDir TableDirectory, products ProductCatalog, notifier Notifier) *Service {
	return &Service{orders: orders, tableDir: tableDir, products: products, notifier: notifier}
}

// GetOrCreateOrderForTable is the idempotency boundary that lets repeated
// page loads converge on one shared Draft/Confirmed order per session.
func (s *Service) GetOrCreateOrderForTable(ctx context.Context, tableNumber int) (OrderDTO, error) {
	tableID, err := tables.NewTableID(tableNumber)
	if err != nil {
		return OrderDTO{}, err
	}
	table, err := s.tableDir.GetByID(ctx, tableID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return OrderDTO{}, shared.NotFoundf("table %d does not exist", tableNumber)
		}
		return OrderDTO{}, err
	}
	if !table.IsOccupied() {
		return OrderDTO{}, shared.InvalidStatef("table %d does not have an active session", tableNumber)
	}

	existing, err := s.orders.GetActiveOrderByTable(ctx, tableID)
	if err == nil {
		return ToOrderDTO(existing), nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return OrderDTO{}, err
	}

	order := domain.NewOrder(tableID, table.ActiveSession().ID())
	if err := s.orders.Save(ctx, order); err != nil {
		return OrderDTO{}, err
	}
	return ToOrderDTO(order), nil
}

// AddProduct snapshots the product's current name and price onto the order.
func (s *Service) AddProduct(ctx context.Context, orderID, productID string, quantity int) (OrderDTO, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return OrderDTO{}, err
	}
	pid, err := catalog.ParseProductID(productID)
	if err != nil {
		return OrderDTO{}, err
	}
	product, err := s.products.GetByID(ctx, pid)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return OrderDTO{}, shared.NotFoundf("product %s not found", productID)
		}
		return OrderDTO{}, err
	}
	if !product.IsAvailable() {
		return OrderDTO{}, shared.InvalidStatef("product %q is not available", product.Name())
	}
	qty, err := shared.NewQuantity(quantity)
	if err != nil {
		return OrderDTO{}, err
	}

	if err := order.AddProduct(product.ID(), product.Name(), product.Price(), qty); err != nil {
		return OrderDTO{}, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return OrderDTO{}, err
	}
	return ToOrderDTO(order), nil
}

func (s *Service) RemoveLine(ctx context.Context, orderID, lineID string) (OrderDTO, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return OrderDTO{}, err
	}
	lid, err := domain.ParseOrderLineID(lineID)
	if err != nil {
		return OrderDTO{}, err
	}
	if err := order.RemoveLine(lid); err != nil {
		return OrderDTO{}, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return OrderDTO{}, err
	}
	return ToOrderDTO(order), nil
}

func (s *Service) UpdateLineQuantity(ctx context.Context, orderID, lineID string, quantity int) (OrderDTO, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return OrderDTO{}, err
	}
	lid, err := domain.ParseOrderLineID(lineID)
	if err != nil {
		return OrderDTO{}, err
	}
	qty, err := shared.NewQuantity(quantity)
	if err != nil {
		return OrderDTO{}, err
	}
	if err := order.UpdateLineQuantity(lid, qty); err != nil {
		return OrderDTO{}, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return OrderDTO{}, err
	}
	return ToOrderDTO(order), nil
}

// Confirm sends the order to the kitchen, then dispatches the buffered
// confirmation events.
func (s *Service) Confirm(ctx context.Context, orderID string) (OrderDTO, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return OrderDTO{}, err
	}
	if err := order.Confirm(); err != nil {
		return OrderDTO{}, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return OrderDTO{}, err
	}
	if err := s.dispatchEvents(ctx, order); err != nil {
		return OrderDTO{}, err
	}
	return ToOrderDTO(order), nil
}

func (s *Service) Cancel(ctx context.Context, orderID string) (OrderDTO, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return OrderDTO{}, err
	}
	if err := order.Cancel(); err != nil {
		return OrderDTO{}, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return OrderDTO{}, err
	}
	if err := s.dispatchEvents(ctx, order); err != nil {
		return OrderDTO{}, err
	}
	return ToOrderDTO(order), nil
}

// UpdateStatus drives the kitchen workflow. Confirm and Cancel have their
// own paths, so only the three kitchen transitions are accepted here.
func (s *Service) UpdateStatus(ctx context.Context, orderID, newStatus string) (OrderDTO, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return OrderDTO{}, err
	}

	switch domain.Status(newStatus) {
	case domain.StatusPreparing:
		err = order.MarkAsPreparing()
	case domain.StatusReady:
		err = order.MarkAsReady()
	case domain.StatusDelivered:
		err = order.MarkAsDelivered()
	default:
		return OrderDTO{}, shared.Validationf("invalid status %q, valid statuses are Preparing, Ready and Delivered", newStatus)
	}
	if err != nil {
		return OrderDTO{}, err
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return OrderDTO{}, err
	}
	if err := s.dispatchEvents(ctx, order); err != nil {
		return OrderDTO{}, err
	}
	return ToOrderDTO(order), nil
}

// ActiveOrders is the kitchen dashboard read: everything past Draft that was
// not cancelled, oldest first.
func (s *Service) ActiveOrders(ctx context.Context) ([]OrderDTO, error) {
	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	var active []*domain.Order
	for _, o := range orders {
		if o.Status() == domain.StatusDraft || o.Status() == domain.StatusCancelled {
			continue
		}
		active = append(active, o)
	}
	sort.Slice(active, func(i, j int) bool { return active[i].CreatedAt().Before(active[j].CreatedAt()) })

	out := make([]OrderDTO, 0, len(active))
	for _, o := range active {
		out = append(out, ToOrderDTO(o))
	}
	return out, nil
}

func (s *Service) loadOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	id, err := domain.ParseOrderID(orderID)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFoundf("order %s not found", orderID)
		}
		return nil, err
	}
	return order, nil
}

func (s *Service) dispatchEvents(ctx context.Context, order *domain.Order) error {
	for _, event := range order.DomainEvents() {
		switch e := event.(type) {
		case domain.OrderConfirmed:
			if err := s.notifier.NotifyOrderConfirmed(ctx, e); err != nil {
				return err
			}
		case domain.OrderStatusChanged:
			if err := s.notifier.NotifyOrderStatusChanged(ctx, e); err != nil {
				return err
			}
		}
	}
	order.ClearDomainEvents()
	return nil
}
