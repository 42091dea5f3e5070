package notifications

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	ordering "github.com/tablebistro/tablebistro/internal/ordering/domain"
)

// OutboxNotifier records order events in the outbox table. A relay picks them
// up and publishes to Kafka, so event delivery survives a process crash once
// the row is written.
type OutboxNotifier struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewOutboxNotifier(log *slog.Logger, pool *pgxpool.Pool) *OutboxNotifier {
	return &OutboxNotifier{log: log, pool: pool}
}

func (n *OutboxNotifier) NotifyOrderConfirmed(ctx context.Context, event ordering.OrderConfirmed) error {
	payload, err := json.Marshal(OrderConfirmedMessage{
		OrderID:     event.OrderID.String(),
		TableNumber: event.TableNumber,
		OccurredAt:  event.OccurredAt,
	})
	if err != nil {
		return err
	}
	return n.insert(ctx, event.OrderID.String(), EventOrderConfirmed, payload)
}

func (n *OutboxNotifier) NotifyOrderStatusChanged(ctx context.Context, event ordering.OrderStatusChanged) error {
	payload, err := json.Marshal(OrderStatusChangedMessage{
		OrderID:     event.OrderID.String(),
		TableNumber: event.TableNumber,
		OldStatus:   string(event.OldStatus),
		NewStatus:   string(event.NewStatus),
		OccurredAt:  event.OccurredAt,
	})
	if err != nil {
		return err
	}
	return n.insert(ctx, event.OrderID.String(), EventOrderStatusChanged, payload)
}

func (n *OutboxNotifier) insert(ctx context.Context, aggregateID, eventType string, payload []byte) error {
	_, err := n.pool.Exec(ctx, `
		INSERT INTO outbox (aggregate_type, aggregate_id, type, payload, traceparent, status)
		VALUES ('order', $1, $2, $3, $4, 'pending')`,
		aggregateID, eventType, payload, traceparent(ctx))
	if err != nil {
		n.log.Error("outbox insert failed", "aggregate_id", aggregateID, "type", eventType, "err", err)
		return err
	}
	return nil
}

func traceparent(ctx context.Context) string {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	return carrier["traceparent"]
}
