package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Handler processes a consumed Kafka message.
type Handler func(ctx context.Context, msg Message) error

// Reader is the subset of *kafkago.Reader the consumer needs.
type Reader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Consumer reads a topic within a consumer group and hands each message to a
// Handler. A message is committed once the handler succeeds or after
// MaxAttempts failures, so one poison message cannot stall the partition.
type Consumer struct {
	reader  Reader
	handler Handler
	logger  *slog.Logger

	MaxAttempts int
	Backoff     time.Duration
}

// NewConsumer creates a Consumer for topic.
func NewConsumer(cfg Config, topic string, handler Handler, logger *slog.Logger) (*Consumer, error) {
	dialer, err := cfg.dialer()
	if err != nil {
		return nil, fmt.Errorf("kafka dialer: %w", err)
	}
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       topic,
		GroupID:     cfg.ConsumerGroup,
		MinBytes:    1,
		MaxBytes:    10 * 1024 * 1024, // 10 MB
		StartOffset: kafkago.FirstOffset,
		Dialer:      dialer,
	})
	return newConsumer(r, handler, logger.With("topic", topic, "group", cfg.ConsumerGroup)), nil
}

func newConsumer(r Reader, handler Handler, logger *slog.Logger) *Consumer {
	return &Consumer{
		reader:      r,
		handler:     handler,
		logger:      logger,
		MaxAttempts: 3,
		Backoff:     200 * time.Millisecond,
	}
}

// Start consumes until ctx is canceled.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("consumer starting")

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				c.logger.Info("consumer stopping due to context cancellation")
				return nil
			}
			return fmt.Errorf("fetching message: %w", err)
		}

		if err := c.handle(ctx, m); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error("dropping message after repeated handler errors",
				"partition", m.Partition,
				"offset", m.Offset,
				"attempts", c.MaxAttempts,
				"error", err,
			)
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			c.logger.Error("commit error",
				"partition", m.Partition,
				"offset", m.Offset,
				"error", err,
			)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, m kafkago.Message) error {
	msg := fromKafka(m)
	attempts := max(c.MaxAttempts, 1)

	var err error
	for i := 0; i < attempts; i++ {
		if err = c.handler(ctx, msg); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		c.logger.Warn("handler error, retrying", "offset", m.Offset, "attempt", i+1, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.Backoff * time.Duration(i+1)):
		}
	}
	return err
}

// Close closes the reader.
func (c *Consumer) Close() error {
	if err := c.reader.Close(); err != nil {
		return fmt.Errorf("closing kafka reader: %w", err)
	}
	return nil
}
