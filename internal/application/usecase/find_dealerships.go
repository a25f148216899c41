package usecase

import (
	"context"
	"fmt"

	"github.com/dealerfin/dealerfin/internal/application/dto"
	"github.com/dealerfin/dealerfin/internal/domain/model"
	"github.com/dealerfin/dealerfin/internal/domain/port"
)

// FindDealershipsUseCase searches the dealership directory.
type FindDealershipsUseCase struct {
	directory port.DealershipDirectory
}

func NewFindDealershipsUseCase(directory port.DealershipDirectory) *FindDealershipsUseCase {
	return &FindDealershipsUseCase{directory: directory}
}

// Execute applies the first populated criterion of the query.
func (uc *FindDealershipsUseCase) Execute(ctx context.Context, q dto.DealershipQuery) ([]dto.DealershipResponse, error) {
	var (
		found []model.Dealership
		err   error
	)
	switch {
	case q.ID != "":
		var d model.Dealership
		d, err = uc.directory.FindByID(ctx, q.ID)
		found = []model.Dealership{d}
	case q.Zip != "":
		found, err = uc.directory.FindByZip(ctx, q.Zip)
	case q.City != "" || q.State != "":
		found, err = uc.directory.FindByCityState(ctx, q.City, q.State)
	default:
		found, err = uc.directory.Search(ctx, q.Query)
	}
	if err != nil {
		return nil, fmt.Errorf("find dealerships: %w", err)
	}

	out := make([]dto.DealershipResponse, 0, len(found))
	for _, d := range found {
		out = append(out, toDealershipResponse(d))
	}
	return out, nil
}
