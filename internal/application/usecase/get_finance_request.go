package usecase

import (
	"context"
	"fmt"

	"github.com/dealerfin/dealerfin/internal/application/dto"
	"github.com/dealerfin/dealerfin/internal/domain/port"
)

// GetFinanceRequestUseCase retrieves one finance request. Customers may only
// read their own requests.
type GetFinanceRequestUseCase struct {
	requests port.FinanceRequestRepository
}

// NewGetFinanceRequestUseCase wires dependencies.
func NewGetFinanceRequestUseCase(requests port.FinanceRequestRepository) *GetFinanceRequestUseCase {
	return &GetFinanceRequestUseCase{requests: requests}
}

func (uc *GetFinanceRequestUseCase) Execute(ctx context.Context, req dto.GetFinanceRequest) (dto.FinanceRequestResponse, error) {
	fr, err := uc.requests.FindByID(ctx, req.ID)
	if err != nil {
		return dto.FinanceRequestResponse{}, fmt.Errorf("find finance request: %w", err)
	}
	if !req.IsStaff && fr.UserID() != req.RequesterID {
		return dto.FinanceRequestResponse{}, ErrForbidden
	}
	return toFinanceRequestResponse(fr), nil
}
