package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/dealerfin/dealerfin/internal/application/dto"
	"github.com/dealerfin/dealerfin/internal/domain/event"
	"github.com/dealerfin/dealerfin/internal/domain/model"
	"github.com/dealerfin/dealerfin/internal/domain/port"
)

// CreateOfferUseCase prices a dealer counter-offer and moves the request to
// counter-offer in the same transaction.
type CreateOfferUseCase struct {
	requests  port.FinanceRequestRepository
	offers    port.OfferRepository
	catalog   port.VehicleCatalog
	publisher port.EventPublisher
	validity  time.Duration
}

// NewCreateOfferUseCase wires dependencies. validity is the default window
// an offer stays open for.
func NewCreateOfferUseCase(
	requests port.FinanceRequestRepository,
	offers port.OfferRepository,
	catalog port.VehicleCatalog,
	publisher port.EventPublisher,
	validity time.Duration,
) *CreateOfferUseCase {
	return &CreateOfferUseCase{
		requests:  requests,
		offers:    offers,
		catalog:   catalog,
		publisher: publisher,
		validity:  validity,
	}
}

// Execute creates the offer.
func (uc *CreateOfferUseCase) Execute(ctx context.Context, req dto.CreateOfferRequest) (dto.OfferResponse, error) {
	now := time.Now().UTC()

	fr, err := uc.requests.FindByID(ctx, req.FinanceRequestID)
	if err != nil {
		return dto.OfferResponse{}, fmt.Errorf("find finance request: %w", err)
	}

	vehicle, err := uc.catalog.FindVehicle(ctx, fr.CarID())
	if err != nil {
		return dto.OfferResponse{}, fmt.Errorf("find vehicle %s: %w", fr.CarID(), err)
	}

	monthly, total, err := contractTerms(fr.FinanceType(), vehicle.BasePrice, req.DownPayment,
		req.InterestRate, req.TermMonths)
	if err != nil {
		return dto.OfferResponse{}, fmt.Errorf("price offer: %w", err)
	}

	validUntil := now.Add(uc.validity)
	if req.ValidUntil != nil {
		validUntil = req.ValidUntil.UTC()
	}

	offer, err := model.NewOffer(fr, req.DealerUserID, model.OfferTerms{
		MonthlyPayment: monthly,
		DownPayment:    req.DownPayment,
		TermMonths:     req.TermMonths,
		InterestRate:   req.InterestRate,
		TotalCost:      total,
		Notes:          req.Notes,
	}, validUntil, now)
	if err != nil {
		return dto.OfferResponse{}, fmt.Errorf("create offer: %w", err)
	}

	fr, err = fr.MarkCounterOffered(now)
	if err != nil {
		return dto.OfferResponse{}, fmt.Errorf("mark counter-offered: %w", err)
	}

	if err := uc.offers.SaveWithRequest(ctx, offer, fr); err != nil {
		return dto.OfferResponse{}, fmt.Errorf("save offer: %w", err)
	}

	evts := append([]event.DomainEvent{}, offer.DomainEvents()...)
	evts = append(evts, fr.DomainEvents()...)
	if err := uc.publisher.Publish(ctx, evts...); err != nil {
		return dto.OfferResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toOfferResponse(offer), nil
}
