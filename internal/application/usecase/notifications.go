package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dealerfin/dealerfin/internal/application/dto"
	"github.com/dealerfin/dealerfin/internal/domain/event"
	"github.com/dealerfin/dealerfin/internal/domain/model"
	"github.com/dealerfin/dealerfin/internal/domain/port"
	"github.com/dealerfin/dealerfin/pkg/events"
	"github.com/dealerfin/dealerfin/pkg/money"
)

// MaxNotifications bounds a single feed read.
const MaxNotifications = 50

// ---------------------------------------------------------------------------
// Projection: domain events -> customer notifications
// ---------------------------------------------------------------------------

// ProjectNotificationUseCase turns a published event into a notification on
// the affected customer's feed.
type ProjectNotificationUseCase struct {
	feed port.NotificationFeed
}

func NewProjectNotificationUseCase(feed port.NotificationFeed) *ProjectNotificationUseCase {
	return &ProjectNotificationUseCase{feed: feed}
}

// Execute projects one envelope. Event types without a customer-facing
// message are skipped and report false, as are payloads that cannot be
// decoded. Only feed failures are returned as errors.
func (uc *ProjectNotificationUseCase) Execute(ctx context.Context, env events.Envelope) (bool, error) {
	n, ok, err := notificationFor(env)
	if err != nil {
		slog.WarnContext(ctx, "dropping undecodable event", "event_id", env.ID, "error", err)
		return false, nil
	}
	if !ok {
		return false, nil
	}
	if err := uc.feed.Push(ctx, n); err != nil {
		return false, fmt.Errorf("push notification: %w", err)
	}
	return true, nil
}

func notificationFor(env events.Envelope) (model.Notification, bool, error) {
	n := model.Notification{
		ID:          env.ID,
		Type:        env.EventType,
		ReferenceID: env.AggregateID,
		CreatedAt:   env.OccurredAt,
	}

	switch env.EventType {
	case event.TypeFinanceRequestSubmitted:
		var e event.FinanceRequestSubmitted
		if err := env.Decode(&e); err != nil {
			return model.Notification{}, false, fmt.Errorf("decode %s: %w", env.EventType, err)
		}
		n.UserID = e.UserID
		n.Title = "Finance request received"
		n.Message = fmt.Sprintf("Your %s request for vehicle %s was submitted. Estimated payment %s/month.",
			e.FinanceType, e.CarID, money.USDAmount(e.MonthlyPayment).FormatWhole())

	case event.TypeFinanceRequestStatusChanged:
		var e event.FinanceRequestStatusChanged
		if err := env.Decode(&e); err != nil {
			return model.Notification{}, false, fmt.Errorf("decode %s: %w", env.EventType, err)
		}
		n.UserID = e.UserID
		n.Title = "Finance request updated"
		n.Message = fmt.Sprintf("Your finance request is now %s.", e.ToStatus)
		if e.DealerNotes != "" {
			n.Message += " Dealer notes: " + e.DealerNotes
		}

	case event.TypeOfferCreated:
		var e event.OfferCreated
		if err := env.Decode(&e); err != nil {
			return model.Notification{}, false, fmt.Errorf("decode %s: %w", env.EventType, err)
		}
		n.UserID = e.UserID
		n.ReferenceID = e.FinanceRequestID
		n.Title = "New offer from your dealer"
		n.Message = fmt.Sprintf("%s/month for %d months at %s%% APR. Valid until %s.",
			money.USDAmount(e.MonthlyPayment).FormatWhole(), e.TermMonths,
			e.InterestRate.String(), e.ValidUntil.Format("Jan 2, 2006"))

	default:
		return model.Notification{}, false, nil
	}

	if n.UserID == uuid.Nil {
		return model.Notification{}, false, fmt.Errorf("%s event %s has no user", env.EventType, env.ID)
	}
	return n, true, nil
}

// ---------------------------------------------------------------------------
// Feed query
// ---------------------------------------------------------------------------

// ListNotificationsUseCase reads a customer's feed, newest first.
type ListNotificationsUseCase struct {
	feed port.NotificationFeed
}

func NewListNotificationsUseCase(feed port.NotificationFeed) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{feed: feed}
}

// Execute returns up to limit entries; limit outside 1..MaxNotifications
// means MaxNotifications.
func (uc *ListNotificationsUseCase) Execute(ctx context.Context, userID uuid.UUID, limit int) ([]dto.NotificationResponse, error) {
	if limit <= 0 || limit > MaxNotifications {
		limit = MaxNotifications
	}
	found, err := uc.feed.List(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	out := make([]dto.NotificationResponse, 0, len(found))
	for _, n := range found {
		out = append(out, dto.NotificationResponse{
			ID:          n.ID,
			Type:        n.Type,
			Title:       n.Title,
			Message:     n.Message,
			ReferenceID: n.ReferenceID,
			CreatedAt:   n.CreatedAt,
		})
	}
	return out, nil
}
