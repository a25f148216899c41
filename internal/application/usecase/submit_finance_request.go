package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/dealerfin/dealerfin/internal/application/dto"
	"github.com/dealerfin/dealerfin/internal/domain/model"
	"github.com/dealerfin/dealerfin/internal/domain/port"
	"github.com/dealerfin/dealerfin/internal/domain/service"
	"github.com/dealerfin/dealerfin/internal/domain/valueobject"
)

// SubmitFinanceRequestUseCase records a customer's finance or lease
// application with an estimated monthly payment.
type SubmitFinanceRequestUseCase struct {
	requests    port.FinanceRequestRepository
	catalog     port.VehicleCatalog
	dealerships port.DealershipDirectory
	publisher   port.EventPublisher
}

// NewSubmitFinanceRequestUseCase wires dependencies.
func NewSubmitFinanceRequestUseCase(
	requests port.FinanceRequestRepository,
	catalog port.VehicleCatalog,
	dealerships port.DealershipDirectory,
	publisher port.EventPublisher,
) *SubmitFinanceRequestUseCase {
	return &SubmitFinanceRequestUseCase{
		requests:    requests,
		catalog:     catalog,
		dealerships: dealerships,
		publisher:   publisher,
	}
}

// Execute validates, prices, persists and announces the request.
func (uc *SubmitFinanceRequestUseCase) Execute(
	ctx context.Context,
	req dto.SubmitFinanceRequest,
) (dto.FinanceRequestResponse, error) {
	now := time.Now().UTC()

	// 1. Validate value objects.
	planType, err := valueobject.NewPlanType(req.FinanceType)
	if err != nil {
		return dto.FinanceRequestResponse{}, fmt.Errorf("finance type: %w", err)
	}
	credit, err := valueobject.NewCreditProfile(req.CreditScore, req.AnnualIncome)
	if err != nil {
		return dto.FinanceRequestResponse{}, fmt.Errorf("credit profile: %w", err)
	}

	// 2. Resolve the vehicle and dealership.
	vehicle, err := uc.catalog.FindVehicle(ctx, req.CarID)
	if err != nil {
		return dto.FinanceRequestResponse{}, fmt.Errorf("find vehicle %s: %w", req.CarID, err)
	}
	if req.DealershipID != "" {
		if _, err := uc.dealerships.FindByID(ctx, req.DealershipID); err != nil {
			return dto.FinanceRequestResponse{}, fmt.Errorf("find dealership %s: %w", req.DealershipID, err)
		}
	}

	// 3. Estimate the monthly payment from the standard rate table.
	monthly, _, err := contractTerms(planType, vehicle.BasePrice, req.DownPayment,
		service.StandardRateTable.RateFor(credit.Score()), req.TermMonths)
	if err != nil {
		return dto.FinanceRequestResponse{}, fmt.Errorf("estimate monthly payment: %w", err)
	}

	// 4. Create the aggregate.
	fr, err := model.NewFinanceRequest(model.FinanceApplication{
		UserID:        req.UserID,
		CarID:         req.CarID,
		DealershipID:  req.DealershipID,
		FinanceType:   planType,
		Credit:        credit,
		TermMonths:    req.TermMonths,
		AnnualMileage: req.AnnualMileage,
		DownPayment:   req.DownPayment,
	}, monthly, now)
	if err != nil {
		return dto.FinanceRequestResponse{}, fmt.Errorf("create finance request: %w", err)
	}

	// 5. Persist.
	if err := uc.requests.Save(ctx, fr); err != nil {
		return dto.FinanceRequestResponse{}, fmt.Errorf("save finance request: %w", err)
	}

	// 6. Publish domain events.
	if err := uc.publisher.Publish(ctx, fr.DomainEvents()...); err != nil {
		return dto.FinanceRequestResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toFinanceRequestResponse(fr), nil
}
