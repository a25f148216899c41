//go:build integration

package kafka_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerfin/dealerfin/internal/application/usecase"
	"github.com/dealerfin/dealerfin/internal/domain/event"
	"github.com/dealerfin/dealerfin/internal/infrastructure/cache"
	"github.com/dealerfin/dealerfin/internal/infrastructure/kafka"
	pkgkafka "github.com/dealerfin/dealerfin/pkg/kafka"
	"github.com/dealerfin/dealerfin/pkg/testutil"
)

func TestPublishedEventsReachTheNotificationFeed(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := pkgkafka.Config{
		Brokers:       testutil.StartKafka(ctx, t),
		ConsumerGroup: "dealerfin-it-" + uuid.NewString(),
		ClientID:      "dealerfin-it",
	}
	topic := "finance.events.it"

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	feed := cache.NewNotificationFeed(rdb, usecase.MaxNotifications)

	producer, err := pkgkafka.NewProducer(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = producer.Close() })

	consumer, err := pkgkafka.NewConsumer(cfg, topic,
		kafka.NotificationHandler(usecase.NewProjectNotificationUseCase(feed), logger), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = consumer.Close() })

	consumeCtx, stopConsumer := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- consumer.Start(consumeCtx) }()

	customer := uuid.New()
	publisher := kafka.NewEventPublisher(producer, topic, logger)
	require.NoError(t, publisher.Publish(ctx,
		event.NewFinanceRequestStatusChanged(uuid.New(), customer, "pending", "approved", "", time.Now().UTC()),
	))

	list := usecase.NewListNotificationsUseCase(feed)
	require.Eventually(t, func() bool {
		found, err := list.Execute(ctx, customer, 10)
		return err == nil && len(found) == 1
	}, 90*time.Second, 500*time.Millisecond)

	found, err := list.Execute(ctx, customer, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, found[0].Title)

	stopConsumer()
	assert.NoError(t, <-done)
}
