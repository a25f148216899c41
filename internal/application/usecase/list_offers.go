package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dealerfin/dealerfin/internal/application/dto"
	"github.com/dealerfin/dealerfin/internal/domain/port"
)

// ListOffersUseCase lists counter-offers.
type ListOffersUseCase struct {
	requests port.FinanceRequestRepository
	offers   port.OfferRepository
}

func NewListOffersUseCase(requests port.FinanceRequestRepository, offers port.OfferRepository) *ListOffersUseCase {
	return &ListOffersUseCase{requests: requests, offers: offers}
}

// ForRequest lists the offers on one request. Customers may only list offers
// on their own requests.
func (uc *ListOffersUseCase) ForRequest(ctx context.Context, req dto.ListOffersRequest) ([]dto.OfferResponse, error) {
	fr, err := uc.requests.FindByID(ctx, req.FinanceRequestID)
	if err != nil {
		return nil, fmt.Errorf("find finance request: %w", err)
	}
	if !req.IsStaff && fr.UserID() != req.RequesterID {
		return nil, ErrForbidden
	}

	found, err := uc.offers.FindByRequestID(ctx, req.FinanceRequestID)
	if err != nil {
		return nil, fmt.Errorf("find offers: %w", err)
	}
	out := make([]dto.OfferResponse, 0, len(found))
	for _, o := range found {
		out = append(out, toOfferResponse(o))
	}
	return out, nil
}

// All lists every offer grouped by finance request, in the order the
// repository returns them.
func (uc *ListOffersUseCase) All(ctx context.Context) ([]dto.OfferGroup, error) {
	found, err := uc.offers.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find offers: %w", err)
	}

	index := make(map[uuid.UUID]int)
	var groups []dto.OfferGroup
	for _, o := range found {
		i, ok := index[o.FinanceRequestID()]
		if !ok {
			i = len(groups)
			index[o.FinanceRequestID()] = i
			groups = append(groups, dto.OfferGroup{FinanceRequestID: o.FinanceRequestID()})
		}
		groups[i].Offers = append(groups[i].Offers, toOfferResponse(o))
	}
	return groups, nil
}
