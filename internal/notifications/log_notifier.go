package notifications

import (
	"context"
	"log/slog"

	ordering "github.com/tablebistro/tablebistro/internal/ordering/domain"
)

// LogNotifier writes order events to the log. Used when running on the
// in-memory store, where there is no outbox to relay from.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) NotifyOrderConfirmed(_ context.Context, event ordering.OrderConfirmed) error {
	n.log.Info("order confirmed",
		"order_id", event.OrderID, "table", event.TableNumber, "occurred_at", event.OccurredAt)
	return nil
}

func (n *LogNotifier) NotifyOrderStatusChanged(_ context.Context, event ordering.OrderStatusChanged) error {
	n.log.Info("order status changed",
		"order_id", event.OrderID, "table", event.TableNumber,
		"old_status", event.OldStatus, "new_status", event.NewStatus)
	return nil
}
