package usecase

import (
	"context"

	"github.com/dealerfin/dealerfin/internal/application/dto"
	"github.com/dealerfin/dealerfin/internal/domain/port"
	"github.com/dealerfin/dealerfin/internal/domain/service"
)

// ClassifyVehicleUseCase places a vehicle in its pricing bucket and returns
// the credit-adjusted down payment guidance.
type ClassifyVehicleUseCase struct {
	catalog    port.VehicleCatalog
	classifier *service.PricingBucketClassifier
}

// NewClassifyVehicleUseCase wires dependencies.
func NewClassifyVehicleUseCase(
	catalog port.VehicleCatalog,
	classifier *service.PricingBucketClassifier,
) *ClassifyVehicleUseCase {
	return &ClassifyVehicleUseCase{catalog: catalog, classifier: classifier}
}

func (uc *ClassifyVehicleUseCase) Execute(ctx context.Context, req dto.ClassifyRequest) (dto.BucketGuidance, error) {
	vehicle, err := resolveVehicle(ctx, uc.catalog, req.VehicleID, req.VehiclePrice)
	if err != nil {
		return dto.BucketGuidance{}, err
	}
	bucket, inRange := uc.classifier.Classify(vehicle.BasePrice)
	return toBucketGuidance(bucket, inRange, uc.classifier.Recommend(bucket, req.CreditScore)), nil
}
