// Package kitchen consumes order events and surfaces them to the kitchen
// display. Deduplication runs through Redis so redeliveries after a consumer
// restart do not re-announce an order.
package kitchen

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/tablebistro/tablebistro/internal/notifications"
	"github.com/tablebistro/tablebistro/pkg/idempotency"
	"github.com/tablebistro/tablebistro/pkg/tracing"
)

type Consumer struct {
	log    *slog.Logger
	reader *kafka.Reader
	idem   *idempotency.Store
	tracer trace.Tracer
}

func NewConsumer(log *slog.Logger, brokers []string, topic, group string, idem *idempotency.Store) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: group,
	})
	return &Consumer{
		log:    log,
		reader: r,
		idem:   idem,
		tracer: otel.Tracer("kitchen-consumer"),
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	defer c.reader.Close()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}
		key := c.idem.Key(msg.Topic, msg.Partition, msg.Offset)
		seen, err := c.idem.Seen(ctx, key)
		if err != nil {
			c.log.Error("idempotency check failed", "err", err)
			continue
		}
		if seen {
			c.log.Info("duplicate message skipped", "key", key)
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}

		msgCtx := tracing.ExtractKafkaHeaders(ctx, msg.Headers)
		msgCtx, span := c.tracer.Start(msgCtx, "ConsumeOrderEvent")

		c.handle(msgCtx, headerValue(msg.Headers, "event_type"), msg.Value)

		span.End()
		_ = c.reader.CommitMessages(ctx, msg)
	}
}

func (c *Consumer) handle(_ context.Context, eventType string, payload []byte) {
	switch eventType {
	case notifications.EventOrderConfirmed:
		var m notifications.OrderConfirmedMessage
		if err := json.Unmarshal(payload, &m); err != nil {
			c.log.Error("unmarshal failed", "event_type", eventType, "err", err)
			return
		}
		c.log.Info("kitchen: new order",
			"order_id", m.OrderID, "table", m.TableNumber, "occurred_at", m.OccurredAt)
	case notifications.EventOrderStatusChanged:
		var m notifications.OrderStatusChangedMessage
		if err := json.Unmarshal(payload, &m); err != nil {
			c.log.Error("unmarshal failed", "event_type", eventType, "err", err)
			return
		}
		c.log.Info("kitchen: order status changed",
			"order_id", m.OrderID, "table", m.TableNumber,
			"old_status", m.OldStatus, "new_status", m.NewStatus)
	default:
		c.log.Warn("unknown event type skipped", "event_type", eventType)
	}
}

func headerValue(h []kafka.Header, key string) string {
	for _, hh := range h {
		if hh.Key == key {
			return string(hh.Value)
		}
	}
	return ""
}
