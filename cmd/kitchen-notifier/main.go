package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tablebistro/tablebistro/internal/notifications/kitchen"
	"github.com/tablebistro/tablebistro/pkg/idempotency"
	"github.com/tablebistro/tablebistro/pkg/logging"
	"github.com/tablebistro/tablebistro/pkg/shutdown"
	"github.com/tablebistro/tablebistro/pkg/tracing"
)

func main() {
	log := logging.New()

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	// Configuration
	kafkaBrokers := []string{env("KAFKA_ADDR", "localhost:9092")}
	redisAddr := env("REDIS_ADDR", "localhost:6379")
	otlpURL := env("OTLP_URL", "http://localhost:4318")
	topic := env("ORDER_EVENTS_TOPIC", "order.events")
	group := env("CONSUMER_GROUP", "kitchen-notifier")

	tp, err := tracing.Init(ctx, "kitchen-notifier", otlpURL, log)
	if err != nil {
		log.Error("otel init failed", "err", err)
		os.Exit(1)
	}
	defer func() { _ = tp.Shutdown(ctx) }()

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()

	idem := idempotency.NewStore(rdb, 24*time.Hour)
	consumer := kitchen.NewConsumer(log, kafkaBrokers, topic, group, idem)

	log.Info("kitchen notifier running", "topic", topic, "group", group)
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("consumer stopped with error", "err", err)
		os.Exit(1)
	}
	log.Info("kitchen notifier shutdown complete")
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
