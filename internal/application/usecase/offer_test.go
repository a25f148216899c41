package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerfin/dealerfin/internal/application/dto"
	"github.com/dealerfin/dealerfin/internal/application/usecase"
	"github.com/dealerfin/dealerfin/internal/domain/event"
	"github.com/dealerfin/dealerfin/internal/domain/model"
	"github.com/dealerfin/dealerfin/internal/domain/valueobject"
)

const offerValidity = 7 * 24 * time.Hour

func requestRepoWith(fr model.FinanceRequest) *mockFinanceRequestRepository {
	return &mockFinanceRequestRepository{
		findByIDFunc: func(_ context.Context, _ uuid.UUID) (model.FinanceRequest, error) { return fr, nil },
	}
}

func TestCreateOffer_Execute(t *testing.T) {
	t.Run("successfully creates an offer and marks the request", func(t *testing.T) {
		fr := existingRequest(t, uuid.New(), civic.ID, valueobject.PlanTypeFinance, valueobject.FinanceRequestStatusPending)
		offers := &mockOfferRepository{}
		publisher := &mockEventPublisher{}
		uc := usecase.NewCreateOfferUseCase(requestRepoWith(fr), offers, newCatalog(), publisher, offerValidity)

		before := time.Now().UTC()
		resp, err := uc.Execute(context.Background(), dto.CreateOfferRequest{
			FinanceRequestID: fr.ID(),
			DealerUserID:     uuid.New(),
			InterestRate:     d("3.9"),
			TermMonths:       60,
			DownPayment:      d("2000"),
			Notes:            "Manager special",
		})
		require.NoError(t, err)

		assert.Equal(t, "active", resp.Status)
		assert.Equal(t, "439.08", resp.MonthlyPayment.String())
		assert.True(t, resp.TotalCost.GreaterThan(resp.DownPayment))
		assert.WithinDuration(t, before.Add(offerValidity), resp.ValidUntil, 5*time.Second)

		require.Len(t, offers.savedPairs, 1)
		assert.Equal(t, "counter-offer", offers.savedPairs[0].request.Status().String())

		require.Len(t, publisher.publishedEvents, 2)
		assert.Equal(t, event.TypeOfferCreated, publisher.publishedEvents[0].EventType())
		assert.Equal(t, event.TypeFinanceRequestStatusChanged, publisher.publishedEvents[1].EventType())
	})

	t.Run("honours an explicit validity date", func(t *testing.T) {
		fr := existingRequest(t, uuid.New(), civic.ID, valueobject.PlanTypeFinance, valueobject.FinanceRequestStatusCounterOffer)
		uc := usecase.NewCreateOfferUseCase(requestRepoWith(fr), &mockOfferRepository{}, newCatalog(), &mockEventPublisher{}, offerValidity)

		until := time.Now().Add(48 * time.Hour).UTC()
		resp, err := uc.Execute(context.Background(), dto.CreateOfferRequest{
			FinanceRequestID: fr.ID(),
			DealerUserID:     uuid.New(),
			InterestRate:     d("4.5"),
			TermMonths:       48,
			DownPayment:      d("3000"),
			ValidUntil:       &until,
		})
		require.NoError(t, err)
		assert.True(t, resp.ValidUntil.Equal(until))
	})

	t.Run("fails on a closed request", func(t *testing.T) {
		fr := existingRequest(t, uuid.New(), civic.ID, valueobject.PlanTypeFinance, valueobject.FinanceRequestStatusRejected)
		offers := &mockOfferRepository{}
		uc := usecase.NewCreateOfferUseCase(requestRepoWith(fr), offers, newCatalog(), &mockEventPublisher{}, offerValidity)

		_, err := uc.Execute(context.Background(), dto.CreateOfferRequest{
			FinanceRequestID: fr.ID(),
			DealerUserID:     uuid.New(),
			InterestRate:     d("3.9"),
			TermMonths:       60,
			DownPayment:      d("2000"),
		})
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
		assert.Empty(t, offers.savedPairs)
	})
}

func TestRespondToOffer_Execute(t *testing.T) {
	customer := uuid.New()

	t.Run("successfully accepts an offer", func(t *testing.T) {
		fr := existingRequest(t, customer, civic.ID, valueobject.PlanTypeFinance, valueobject.FinanceRequestStatusCounterOffer)
		offer := existingOffer(fr, time.Now().Add(offerValidity))
		offers := &mockOfferRepository{
			findByIDFunc: func(_ context.Context, _ uuid.UUID) (model.Offer, error) { return offer, nil },
		}
		publisher := &mockEventPublisher{}
		uc := usecase.NewRespondToOfferUseCase(requestRepoWith(fr), offers, publisher)

		resp, err := uc.Execute(context.Background(), dto.RespondToOfferRequest{OfferID: offer.ID(), UserID: customer, Accept: true})
		require.NoError(t, err)

		assert.Equal(t, "accepted", resp.Status)
		require.Len(t, offers.savedPairs, 1)
		assert.Equal(t, "accepted", offers.savedPairs[0].request.Status().String())
		require.Len(t, publisher.publishedEvents, 2)
		assert.Equal(t, event.TypeOfferAccepted, publisher.publishedEvents[0].EventType())
	})

	t.Run("successfully rejects an offer without touching the request", func(t *testing.T) {
		fr := existingRequest(t, customer, civic.ID, valueobject.PlanTypeFinance, valueobject.FinanceRequestStatusCounterOffer)
		offer := existingOffer(fr, time.Now().Add(offerValidity))
		offers := &mockOfferRepository{
			findByIDFunc: func(_ context.Context, _ uuid.UUID) (model.Offer, error) { return offer, nil },
		}
		requests := requestRepoWith(fr)
		uc := usecase.NewRespondToOfferUseCase(requests, offers, &mockEventPublisher{})

		resp, err := uc.Execute(context.Background(), dto.RespondToOfferRequest{OfferID: offer.ID(), UserID: customer})
		require.NoError(t, err)

		assert.Equal(t, "rejected", resp.Status)
		require.Len(t, offers.saved, 1)
		assert.Empty(t, offers.savedPairs)
		assert.Empty(t, requests.saved)
	})

	t.Run("expired offers cannot be accepted", func(t *testing.T) {
		fr := existingRequest(t, customer, civic.ID, valueobject.PlanTypeFinance, valueobject.FinanceRequestStatusCounterOffer)
		offer := existingOffer(fr, time.Now().Add(-time.Hour))
		offers := &mockOfferRepository{
			findByIDFunc: func(_ context.Context, _ uuid.UUID) (model.Offer, error) { return offer, nil },
		}
		uc := usecase.NewRespondToOfferUseCase(requestRepoWith(fr), offers, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.RespondToOfferRequest{OfferID: offer.ID(), UserID: customer, Accept: true})
		assert.ErrorIs(t, err, model.ErrOfferExpired)

		require.Len(t, offers.saved, 1)
		assert.Equal(t, "expired", offers.saved[0].Status().String())
		assert.Empty(t, offers.savedPairs)
	})

	t.Run("only the customer may respond", func(t *testing.T) {
		fr := existingRequest(t, customer, civic.ID, valueobject.PlanTypeFinance, valueobject.FinanceRequestStatusCounterOffer)
		offer := existingOffer(fr, time.Now().Add(offerValidity))
		offers := &mockOfferRepository{
			findByIDFunc: func(_ context.Context, _ uuid.UUID) (model.Offer, error) { return offer, nil },
		}
		uc := usecase.NewRespondToOfferUseCase(requestRepoWith(fr), offers, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.RespondToOfferRequest{OfferID: offer.ID(), UserID: uuid.New(), Accept: true})
		assert.ErrorIs(t, err, usecase.ErrForbidden)
	})
}

func TestListOffers(t *testing.T) {
	customer := uuid.New()
	first := existingRequest(t, customer, civic.ID, valueobject.PlanTypeFinance, valueobject.FinanceRequestStatusCounterOffer)
	second := existingRequest(t, uuid.New(), rav4.ID, valueobject.PlanTypeLease, valueobject.FinanceRequestStatusCounterOffer)
	o1 := existingOffer(first, time.Now().Add(offerValidity))
	o2 := existingOffer(second, time.Now().Add(offerValidity))
	o3 := existingOffer(first, time.Now().Add(offerValidity))

	offers := &mockOfferRepository{
		findByRequestIDFunc: func(_ context.Context, requestID uuid.UUID) ([]model.Offer, error) {
			assert.Equal(t, first.ID(), requestID)
			return []model.Offer{o1, o3}, nil
		},
		findAllFunc: func(_ context.Context) ([]model.Offer, error) {
			return []model.Offer{o1, o2, o3}, nil
		},
	}
	uc := usecase.NewListOffersUseCase(requestRepoWith(first), offers)

	t.Run("customer lists offers on own request", func(t *testing.T) {
		out, err := uc.ForRequest(context.Background(), dto.ListOffersRequest{FinanceRequestID: first.ID(), RequesterID: customer})
		require.NoError(t, err)
		assert.Len(t, out, 2)
	})

	t.Run("other customers are refused", func(t *testing.T) {
		_, err := uc.ForRequest(context.Background(), dto.ListOffersRequest{FinanceRequestID: first.ID(), RequesterID: uuid.New()})
		assert.ErrorIs(t, err, usecase.ErrForbidden)
	})

	t.Run("staff see every offer grouped by request", func(t *testing.T) {
		groups, err := uc.All(context.Background())
		require.NoError(t, err)
		require.Len(t, groups, 2)
		assert.Equal(t, first.ID(), groups[0].FinanceRequestID)
		assert.Len(t, groups[0].Offers, 2)
		assert.Equal(t, second.ID(), groups[1].FinanceRequestID)
		assert.Len(t, groups[1].Offers, 1)
	})
}
