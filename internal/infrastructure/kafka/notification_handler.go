package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dealerfin/dealerfin/internal/infrastructure/metrics"
	"github.com/dealerfin/dealerfin/pkg/events"
	pkgkafka "github.com/dealerfin/dealerfin/pkg/kafka"
)

// EnvelopeProjector is satisfied by usecase.ProjectNotificationUseCase.
type EnvelopeProjector interface {
	Execute(ctx context.Context, env events.Envelope) (bool, error)
}

// NotificationHandler returns a consumer handler that decodes event envelopes
// and projects them onto customer notification feeds. Undecodable payloads are
// logged and dropped rather than retried.
func NotificationHandler(projector EnvelopeProjector, logger *slog.Logger) pkgkafka.Handler {
	return func(ctx context.Context, msg pkgkafka.Message) error {
		var env events.Envelope
		if err := json.Unmarshal(msg.Value, &env); err != nil {
			logger.WarnContext(ctx, "skipping malformed event",
				"event_type", msg.Headers[HeaderEventType],
				"error", err,
			)
			metrics.Notifications.WithLabelValues(msg.Headers[HeaderEventType], "malformed").Inc()
			return nil
		}

		projected, err := projector.Execute(ctx, env)
		if err != nil {
			metrics.Notifications.WithLabelValues(env.EventType, "error").Inc()
			return fmt.Errorf("project %s %s: %w", env.EventType, env.ID, err)
		}
		if !projected {
			metrics.Notifications.WithLabelValues(env.EventType, "skipped").Inc()
			return nil
		}
		metrics.Notifications.WithLabelValues(env.EventType, "projected").Inc()
		logger.DebugContext(ctx, "notification projected",
			"event_type", env.EventType,
			"aggregate_id", env.AggregateID,
		)
		return nil
	}
}
