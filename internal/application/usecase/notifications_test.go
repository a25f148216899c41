package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerfin/dealerfin/internal/application/dto"
	"github.com/dealerfin/dealerfin/internal/application/usecase"
	"github.com/dealerfin/dealerfin/internal/domain/event"
	"github.com/dealerfin/dealerfin/internal/domain/model"
	"github.com/dealerfin/dealerfin/pkg/events"
)

func envelopeOf(t *testing.T, e event.DomainEvent) events.Envelope {
	t.Helper()
	env, err := events.NewEnvelope(e)
	require.NoError(t, err)
	return env
}

func TestProjectNotification_Execute(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()
	requestID := uuid.New()

	t.Run("projects a submitted request", func(t *testing.T) {
		feed := &mockNotificationFeed{}
		uc := usecase.NewProjectNotificationUseCase(feed)

		e := event.NewFinanceRequestSubmitted(requestID, userID, civic.ID, "default-dealership", "finance",
			60, d("2000"), d("467.63"), now)
		pushed, err := uc.Execute(context.Background(), envelopeOf(t, e))
		require.NoError(t, err)
		assert.True(t, pushed)

		require.Len(t, feed.pushed, 1)
		n := feed.pushed[0]
		assert.Equal(t, userID, n.UserID)
		assert.Equal(t, requestID, n.ReferenceID)
		assert.Equal(t, e.EventID(), n.ID)
		assert.Contains(t, n.Message, "$468/month")
	})

	t.Run("projects a status change with dealer notes", func(t *testing.T) {
		feed := &mockNotificationFeed{}
		uc := usecase.NewProjectNotificationUseCase(feed)

		e := event.NewFinanceRequestStatusChanged(requestID, userID, "pending", "approved", "See you Friday", now)
		_, err := uc.Execute(context.Background(), envelopeOf(t, e))
		require.NoError(t, err)
		require.Len(t, feed.pushed, 1)
		assert.Equal(t, "Your finance request is now approved. Dealer notes: See you Friday", feed.pushed[0].Message)
	})

	t.Run("projects an offer onto its finance request", func(t *testing.T) {
		feed := &mockNotificationFeed{}
		uc := usecase.NewProjectNotificationUseCase(feed)

		e := event.NewOfferCreated(uuid.New(), requestID, userID, d("439.08"), d("2000"), d("3.9"), 60,
			now.Add(7*24*time.Hour), now)
		_, err := uc.Execute(context.Background(), envelopeOf(t, e))
		require.NoError(t, err)
		require.Len(t, feed.pushed, 1)
		assert.Equal(t, requestID, feed.pushed[0].ReferenceID)
		assert.Equal(t, "$439/month for 60 months at 3.9% APR. Valid until Mar 8, 2026.", feed.pushed[0].Message)
	})

	t.Run("skips events without a customer message", func(t *testing.T) {
		feed := &mockNotificationFeed{}
		uc := usecase.NewProjectNotificationUseCase(feed)

		e := event.NewOfferRejected(uuid.New(), requestID, userID, uuid.New(), now)
		pushed, err := uc.Execute(context.Background(), envelopeOf(t, e))
		require.NoError(t, err)
		assert.False(t, pushed)
		assert.Empty(t, feed.pushed)
	})

	t.Run("drops a corrupt payload without retrying", func(t *testing.T) {
		feed := &mockNotificationFeed{}
		uc := usecase.NewProjectNotificationUseCase(feed)
		env := events.Envelope{ID: uuid.New(), EventType: event.TypeOfferCreated, Data: []byte(`{"user_id":42}`)}
		pushed, err := uc.Execute(context.Background(), env)
		require.NoError(t, err)
		assert.False(t, pushed)
		assert.Empty(t, feed.pushed)
	})

	t.Run("drops an event without a user", func(t *testing.T) {
		feed := &mockNotificationFeed{}
		uc := usecase.NewProjectNotificationUseCase(feed)

		e := event.NewFinanceRequestStatusChanged(requestID, uuid.Nil, "pending", "approved", "", now)
		pushed, err := uc.Execute(context.Background(), envelopeOf(t, e))
		require.NoError(t, err)
		assert.False(t, pushed)
		assert.Empty(t, feed.pushed)
	})

	t.Run("returns feed failures for retry", func(t *testing.T) {
		feed := &mockNotificationFeed{
			pushFunc: func(context.Context, model.Notification) error { return errors.New("redis down") },
		}
		uc := usecase.NewProjectNotificationUseCase(feed)

		e := event.NewFinanceRequestStatusChanged(requestID, userID, "pending", "approved", "", now)
		_, err := uc.Execute(context.Background(), envelopeOf(t, e))
		assert.ErrorContains(t, err, "redis down")
	})
}

func TestListNotifications_Execute(t *testing.T) {
	userID := uuid.New()
	var gotLimit int
	feed := &mockNotificationFeed{
		listFunc: func(_ context.Context, id uuid.UUID, limit int) ([]model.Notification, error) {
			assert.Equal(t, userID, id)
			gotLimit = limit
			return []model.Notification{{ID: uuid.New(), UserID: userID, Title: "Finance request received"}}, nil
		},
	}
	uc := usecase.NewListNotificationsUseCase(feed)

	out, err := uc.Execute(context.Background(), userID, 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, usecase.MaxNotifications, gotLimit)

	_, err = uc.Execute(context.Background(), userID, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, gotLimit)
}

func TestFindDealerships_Execute(t *testing.T) {
	austin := model.Dealership{ID: "dealer-austin", Name: "Austin Motors", City: "Austin", State: "TX", ZipCode: "78701"}
	var used string
	dir := &mockDealershipDirectory{
		findByZipFunc: func(_ context.Context, zip string) ([]model.Dealership, error) {
			used = "zip:" + zip
			return []model.Dealership{austin}, nil
		},
		findByCityStateFunc: func(_ context.Context, city, state string) ([]model.Dealership, error) {
			used = "city:" + city + "," + state
			return []model.Dealership{austin}, nil
		},
		searchFunc: func(_ context.Context, q string) ([]model.Dealership, error) {
			used = "search:" + q
			return nil, nil
		},
	}
	uc := usecase.NewFindDealershipsUseCase(dir)

	out, err := uc.Execute(context.Background(), dtoQuery("", "78701", "", "", ""))
	require.NoError(t, err)
	assert.Equal(t, "zip:78701", used)
	require.Len(t, out, 1)
	assert.Equal(t, "Austin Motors", out[0].Name)

	_, err = uc.Execute(context.Background(), dtoQuery("", "", "Austin", "TX", ""))
	require.NoError(t, err)
	assert.Equal(t, "city:Austin,TX", used)

	out, err = uc.Execute(context.Background(), dtoQuery("", "", "", "", "motors"))
	require.NoError(t, err)
	assert.Equal(t, "search:motors", used)
	assert.Empty(t, out)

	out, err = uc.Execute(context.Background(), dtoQuery("dealer-austin", "", "", "", ""))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "dealer-austin", out[0].ID)
}

func dtoQuery(id, zip, city, state, q string) dto.DealershipQuery {
	return dto.DealershipQuery{ID: id, Zip: zip, City: city, State: state, Query: q}
}
