package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dealerfin/dealerfin/internal/domain/model"
	"github.com/dealerfin/dealerfin/internal/domain/port"
	"github.com/dealerfin/dealerfin/internal/domain/service"
	"github.com/dealerfin/dealerfin/internal/domain/valueobject"
)

// resolveVehicle loads a catalog vehicle, or builds an anonymous one from a
// raw price. A catalog ID takes precedence.
func resolveVehicle(
	ctx context.Context,
	catalog port.VehicleCatalog,
	vehicleID string,
	price *decimal.Decimal,
) (model.Vehicle, error) {
	if vehicleID != "" {
		v, err := catalog.FindVehicle(ctx, vehicleID)
		if err != nil {
			return model.Vehicle{}, fmt.Errorf("find vehicle %s: %w", vehicleID, err)
		}
		return v, nil
	}
	if price == nil {
		return model.Vehicle{}, ErrVehicleRequired
	}
	return model.Vehicle{BasePrice: *price}, nil
}

// contractTerms prices a request or offer with the standard lease strategy or
// the finance amortization, whichever the plan type selects. Amounts are
// rounded to cents for storage.
func contractTerms(
	planType valueobject.PlanType,
	price, downPayment, annualRate decimal.Decimal,
	termMonths int,
) (monthly, totalCost decimal.Decimal, err error) {
	if planType.IsLease() {
		lease, err := service.StandardLease{}.LeaseDetails(price, termMonths, annualRate, downPayment)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		return cents(lease.MonthlyPayment), cents(lease.TotalCost), nil
	}

	fin, err := service.FinanceDetails(price, downPayment, annualRate, termMonths)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return cents(fin.MonthlyPayment), cents(fin.TotalCost), nil
}

func cents(d decimal.Decimal) decimal.Decimal { return d.Round(2) }
