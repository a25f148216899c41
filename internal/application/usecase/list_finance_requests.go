package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dealerfin/dealerfin/internal/application/dto"
	"github.com/dealerfin/dealerfin/internal/domain/model"
	"github.com/dealerfin/dealerfin/internal/domain/port"
)

// ListFinanceRequestsUseCase lists finance requests, newest first.
type ListFinanceRequestsUseCase struct {
	requests port.FinanceRequestRepository
}

func NewListFinanceRequestsUseCase(requests port.FinanceRequestRepository) *ListFinanceRequestsUseCase {
	return &ListFinanceRequestsUseCase{requests: requests}
}

// ForUser lists the caller's own requests.
func (uc *ListFinanceRequestsUseCase) ForUser(ctx context.Context, userID uuid.UUID) ([]dto.FinanceRequestResponse, error) {
	found, err := uc.requests.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find finance requests for user: %w", err)
	}
	return toFinanceRequestResponses(found), nil
}

// All lists every request for staff review.
func (uc *ListFinanceRequestsUseCase) All(ctx context.Context) ([]dto.FinanceRequestResponse, error) {
	found, err := uc.requests.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find finance requests: %w", err)
	}
	return toFinanceRequestResponses(found), nil
}

func toFinanceRequestResponses(in []model.FinanceRequest) []dto.FinanceRequestResponse {
	out := make([]dto.FinanceRequestResponse, 0, len(in))
	for _, fr := range in {
		out = append(out, toFinanceRequestResponse(fr))
	}
	return out
}
