package usecase

import (
	"context"
	"fmt"

	"github.com/dealerfin/dealerfin/internal/application/dto"
	"github.com/dealerfin/dealerfin/internal/domain/port"
	"github.com/dealerfin/dealerfin/internal/domain/service"
)

// EstimateQuoteUseCase runs the quick estimator: finance and lease payments
// side by side from MSRP, destination fee and customer credits.
type EstimateQuoteUseCase struct {
	catalog   port.VehicleCatalog
	estimator *service.Estimator
}

// NewEstimateQuoteUseCase wires dependencies.
func NewEstimateQuoteUseCase(catalog port.VehicleCatalog, estimator *service.Estimator) *EstimateQuoteUseCase {
	return &EstimateQuoteUseCase{catalog: catalog, estimator: estimator}
}

// Execute prices the estimate. A catalog vehicle supplies the MSRP when no
// explicit MSRP is given.
func (uc *EstimateQuoteUseCase) Execute(ctx context.Context, req dto.EstimateRequest) (dto.EstimateResponse, error) {
	msrp := req.MSRP
	if msrp == nil {
		vehicle, err := resolveVehicle(ctx, uc.catalog, req.VehicleID, nil)
		if err != nil {
			return dto.EstimateResponse{}, err
		}
		msrp = &vehicle.BasePrice
	}

	est, err := uc.estimator.Estimate(service.EstimateInput{
		MSRP:        *msrp,
		CreditScore: req.CreditScore,
		TermMonths:  req.TermMonths,
		CashDown:    req.CashDown,
		TradeIn:     req.TradeIn,
		LocalOffer:  req.LocalOffer,
	})
	if err != nil {
		return dto.EstimateResponse{}, fmt.Errorf("estimate: %w", err)
	}

	return dto.EstimateResponse{
		MSRP:            *msrp,
		DestinationFee:  service.DestinationFee,
		APR:             est.APR,
		CapitalizedCost: est.CapitalizedCost,
		FinanceMonthly:  cents(est.FinanceMonthly),
		LeaseMonthly:    cents(est.Lease.MonthlyPayment),
		LeaseTermMonths: est.LeaseTermMonths,
		Lease:           toLeaseDetails(est.Lease),
	}, nil
}
