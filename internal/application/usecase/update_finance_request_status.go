package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/dealerfin/dealerfin/internal/application/dto"
	"github.com/dealerfin/dealerfin/internal/domain/port"
	"github.com/dealerfin/dealerfin/internal/domain/valueobject"
)

// UpdateFinanceRequestStatusUseCase applies a staff review decision.
type UpdateFinanceRequestStatusUseCase struct {
	requests  port.FinanceRequestRepository
	publisher port.EventPublisher
}

// NewUpdateFinanceRequestStatusUseCase wires dependencies.
func NewUpdateFinanceRequestStatusUseCase(
	requests port.FinanceRequestRepository,
	publisher port.EventPublisher,
) *UpdateFinanceRequestStatusUseCase {
	return &UpdateFinanceRequestStatusUseCase{requests: requests, publisher: publisher}
}

// Execute moves the request to the target status with optional dealer notes.
func (uc *UpdateFinanceRequestStatusUseCase) Execute(
	ctx context.Context,
	req dto.UpdateFinanceRequestStatus,
) (dto.FinanceRequestResponse, error) {
	now := time.Now().UTC()

	target, err := valueobject.NewFinanceRequestStatus(req.Status)
	if err != nil {
		return dto.FinanceRequestResponse{}, fmt.Errorf("status: %w", err)
	}

	fr, err := uc.requests.FindByID(ctx, req.ID)
	if err != nil {
		return dto.FinanceRequestResponse{}, fmt.Errorf("find finance request: %w", err)
	}

	fr, err = fr.ChangeStatus(target, req.DealerNotes, now)
	if err != nil {
		return dto.FinanceRequestResponse{}, fmt.Errorf("change status: %w", err)
	}

	if err := uc.requests.Save(ctx, fr); err != nil {
		return dto.FinanceRequestResponse{}, fmt.Errorf("save finance request: %w", err)
	}
	if err := uc.publisher.Publish(ctx, fr.DomainEvents()...); err != nil {
		return dto.FinanceRequestResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toFinanceRequestResponse(fr), nil
}
