package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dealerfin/dealerfin/internal/application/dto"
	"github.com/dealerfin/dealerfin/internal/domain/model"
	"github.com/dealerfin/dealerfin/internal/domain/port"
	"github.com/dealerfin/dealerfin/internal/domain/service"
	"github.com/dealerfin/dealerfin/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Package administration
// ---------------------------------------------------------------------------

// ManagePackagesUseCase creates, edits and retires dealer finance packages.
type ManagePackagesUseCase struct {
	packages port.PackageRepository
}

// NewManagePackagesUseCase wires dependencies.
func NewManagePackagesUseCase(packages port.PackageRepository) *ManagePackagesUseCase {
	return &ManagePackagesUseCase{packages: packages}
}

// Create validates and stores a new active package.
func (uc *ManagePackagesUseCase) Create(ctx context.Context, req dto.PackageRequest) (dto.PackageResponse, error) {
	terms, err := toPackageTerms(req)
	if err != nil {
		return dto.PackageResponse{}, err
	}
	pkg, err := model.NewFinancePackage(terms, time.Now().UTC())
	if err != nil {
		return dto.PackageResponse{}, fmt.Errorf("create package: %w", err)
	}
	if err := uc.packages.Save(ctx, pkg); err != nil {
		return dto.PackageResponse{}, fmt.Errorf("save package: %w", err)
	}
	return toPackageResponse(pkg), nil
}

// Update replaces the editable content of an existing package.
func (uc *ManagePackagesUseCase) Update(ctx context.Context, req dto.PackageRequest) (dto.PackageResponse, error) {
	terms, err := toPackageTerms(req)
	if err != nil {
		return dto.PackageResponse{}, err
	}
	pkg, err := uc.packages.FindByID(ctx, req.ID)
	if err != nil {
		return dto.PackageResponse{}, fmt.Errorf("find package: %w", err)
	}
	pkg, err = pkg.Update(terms, time.Now().UTC())
	if err != nil {
		return dto.PackageResponse{}, fmt.Errorf("update package: %w", err)
	}
	if err := uc.packages.Save(ctx, pkg); err != nil {
		return dto.PackageResponse{}, fmt.Errorf("save package: %w", err)
	}
	return toPackageResponse(pkg), nil
}

// Deactivate hides a package from matching without deleting it.
func (uc *ManagePackagesUseCase) Deactivate(ctx context.Context, id uuid.UUID) (dto.PackageResponse, error) {
	pkg, err := uc.packages.FindByID(ctx, id)
	if err != nil {
		return dto.PackageResponse{}, fmt.Errorf("find package: %w", err)
	}
	pkg = pkg.Deactivate(time.Now().UTC())
	if err := uc.packages.Save(ctx, pkg); err != nil {
		return dto.PackageResponse{}, fmt.Errorf("save package: %w", err)
	}
	return toPackageResponse(pkg), nil
}

// Delete removes a package permanently.
func (uc *ManagePackagesUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.packages.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete package: %w", err)
	}
	return nil
}

func toPackageTerms(req dto.PackageRequest) (model.PackageTerms, error) {
	planType, err := valueobject.NewPlanType(req.PlanType)
	if err != nil {
		return model.PackageTerms{}, fmt.Errorf("plan type: %w", err)
	}
	kind := req.AppliesToType
	if kind == "" {
		kind = valueobject.AppliesToAll
	}
	appliesTo, err := valueobject.NewAppliesTo(kind, req.AppliesToValue)
	if err != nil {
		return model.PackageTerms{}, fmt.Errorf("applies to: %w", err)
	}
	return model.PackageTerms{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Features:    req.Features,
		PlanType:    planType,
		AppliesTo:   appliesTo,
		TermMonths:  req.TermMonths,
		Rate:        req.Rate,
		DownPayment: req.DownPayment,
		Mileage:     req.Mileage,
	}, nil
}

// ---------------------------------------------------------------------------
// Package queries
// ---------------------------------------------------------------------------

// ListPackagesUseCase reads the package catalog.
type ListPackagesUseCase struct {
	packages port.PackageRepository
	catalog  port.VehicleCatalog
	matcher  *service.PackageMatcher
}

// NewListPackagesUseCase wires dependencies.
func NewListPackagesUseCase(
	packages port.PackageRepository,
	catalog port.VehicleCatalog,
	matcher *service.PackageMatcher,
) *ListPackagesUseCase {
	return &ListPackagesUseCase{packages: packages, catalog: catalog, matcher: matcher}
}

// Get returns one package.
func (uc *ListPackagesUseCase) Get(ctx context.Context, id uuid.UUID) (dto.PackageResponse, error) {
	pkg, err := uc.packages.FindByID(ctx, id)
	if err != nil {
		return dto.PackageResponse{}, fmt.Errorf("find package: %w", err)
	}
	return toPackageResponse(pkg), nil
}

// List returns packages, optionally only the active ones.
func (uc *ListPackagesUseCase) List(ctx context.Context, activeOnly bool) ([]dto.PackageResponse, error) {
	found, err := uc.packages.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("find packages: %w", err)
	}
	return toPackageResponses(found), nil
}

// ForVehicle returns the active packages of a plan type that target the
// catalog vehicle.
func (uc *ListPackagesUseCase) ForVehicle(ctx context.Context, vehicleID, planType string) ([]dto.PackageResponse, error) {
	pt, err := valueobject.NewPlanType(planType)
	if err != nil {
		return nil, fmt.Errorf("plan type: %w", err)
	}
	vehicle, err := uc.catalog.FindVehicle(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("find vehicle %s: %w", vehicleID, err)
	}
	found, err := uc.packages.FindAll(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("find packages: %w", err)
	}
	return toPackageResponses(uc.matcher.Eligible(found, vehicle, pt)), nil
}

func toPackageResponses(in []model.FinancePackage) []dto.PackageResponse {
	out := make([]dto.PackageResponse, 0, len(in))
	for _, p := range in {
		out = append(out, toPackageResponse(p))
	}
	return out
}
