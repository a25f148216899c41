package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dealerfin/dealerfin/internal/application/dto"
	"github.com/dealerfin/dealerfin/internal/domain/event"
	"github.com/dealerfin/dealerfin/internal/domain/model"
	"github.com/dealerfin/dealerfin/internal/domain/port"
)

// RespondToOfferUseCase lets the customer accept or reject a counter-offer.
// Accepting also closes the finance request, atomically with the offer.
type RespondToOfferUseCase struct {
	requests  port.FinanceRequestRepository
	offers    port.OfferRepository
	publisher port.EventPublisher
}

// NewRespondToOfferUseCase wires dependencies.
func NewRespondToOfferUseCase(
	requests port.FinanceRequestRepository,
	offers port.OfferRepository,
	publisher port.EventPublisher,
) *RespondToOfferUseCase {
	return &RespondToOfferUseCase{requests: requests, offers: offers, publisher: publisher}
}

// Execute records the customer's response. An offer found past its window is
// persisted as expired and ErrOfferExpired is returned.
func (uc *RespondToOfferUseCase) Execute(ctx context.Context, req dto.RespondToOfferRequest) (dto.OfferResponse, error) {
	now := time.Now().UTC()

	offer, err := uc.offers.FindByID(ctx, req.OfferID)
	if err != nil {
		return dto.OfferResponse{}, fmt.Errorf("find offer: %w", err)
	}
	if offer.CustomerID() != req.UserID {
		return dto.OfferResponse{}, ErrForbidden
	}

	if !req.Accept {
		return uc.reject(ctx, offer, now)
	}

	accepted, err := offer.Accept(now)
	if errors.Is(err, model.ErrOfferExpired) {
		return dto.OfferResponse{}, uc.expire(ctx, offer, now)
	}
	if err != nil {
		return dto.OfferResponse{}, fmt.Errorf("accept offer: %w", err)
	}

	fr, err := uc.requests.FindByID(ctx, offer.FinanceRequestID())
	if err != nil {
		return dto.OfferResponse{}, fmt.Errorf("find finance request: %w", err)
	}
	fr, err = fr.Accept(now)
	if err != nil {
		return dto.OfferResponse{}, fmt.Errorf("accept finance request: %w", err)
	}

	if err := uc.offers.SaveWithRequest(ctx, accepted, fr); err != nil {
		return dto.OfferResponse{}, fmt.Errorf("save offer: %w", err)
	}

	evts := append([]event.DomainEvent{}, accepted.DomainEvents()...)
	evts = append(evts, fr.DomainEvents()...)
	if err := uc.publisher.Publish(ctx, evts...); err != nil {
		return dto.OfferResponse{}, fmt.Errorf("publish events: %w", err)
	}
	return toOfferResponse(accepted), nil
}

func (uc *RespondToOfferUseCase) reject(ctx context.Context, offer model.Offer, now time.Time) (dto.OfferResponse, error) {
	rejected, err := offer.Reject(now)
	if err != nil {
		return dto.OfferResponse{}, fmt.Errorf("reject offer: %w", err)
	}
	if err := uc.offers.Save(ctx, rejected); err != nil {
		return dto.OfferResponse{}, fmt.Errorf("save offer: %w", err)
	}
	if err := uc.publisher.Publish(ctx, rejected.DomainEvents()...); err != nil {
		return dto.OfferResponse{}, fmt.Errorf("publish events: %w", err)
	}
	return toOfferResponse(rejected), nil
}

func (uc *RespondToOfferUseCase) expire(ctx context.Context, offer model.Offer, now time.Time) error {
	expired, err := offer.Expire(now)
	if err != nil {
		return fmt.Errorf("expire offer: %w", err)
	}
	if err := uc.offers.Save(ctx, expired); err != nil {
		return fmt.Errorf("save expired offer: %w", err)
	}
	return model.ErrOfferExpired
}
