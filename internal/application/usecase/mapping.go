package usecase

import (
	"github.com/dealerfin/dealerfin/internal/application/dto"
	"github.com/dealerfin/dealerfin/internal/domain/model"
	"github.com/dealerfin/dealerfin/internal/domain/service"
)

func toFinanceRequestResponse(r model.FinanceRequest) dto.FinanceRequestResponse {
	resp := dto.FinanceRequestResponse{
		ID:             r.ID(),
		UserID:         r.UserID(),
		CarID:          r.CarID(),
		DealershipID:   r.DealershipID(),
		FinanceType:    r.FinanceType().String(),
		CreditScore:    r.Credit().Score(),
		AnnualIncome:   r.Credit().AnnualIncome(),
		TermMonths:     r.TermMonths(),
		DownPayment:    r.DownPayment(),
		MonthlyPayment: r.MonthlyPayment(),
		Status:         r.Status().String(),
		DealerNotes:    r.DealerNotes(),
		CreatedAt:      r.CreatedAt(),
		UpdatedAt:      r.UpdatedAt(),
	}
	if miles, ok := r.AnnualMileage(); ok {
		resp.AnnualMileage = &miles
	}
	return resp
}

func toOfferResponse(o model.Offer) dto.OfferResponse {
	return dto.OfferResponse{
		ID:               o.ID(),
		FinanceRequestID: o.FinanceRequestID(),
		DealerUserID:     o.DealerUserID(),
		MonthlyPayment:   o.MonthlyPayment(),
		DownPayment:      o.DownPayment(),
		TermMonths:       o.TermMonths(),
		InterestRate:     o.InterestRate(),
		TotalCost:        o.TotalCost(),
		Status:           o.Status().String(),
		Notes:            o.Notes(),
		ValidUntil:       o.ValidUntil(),
		CreatedAt:        o.CreatedAt(),
	}
}

func toPackageResponse(p model.FinancePackage) dto.PackageResponse {
	resp := dto.PackageResponse{
		ID:             p.ID(),
		Name:           p.Name(),
		Description:    p.Description(),
		Price:          p.Price(),
		Features:       p.Features(),
		PlanType:       p.PlanType().String(),
		AppliesToType:  p.AppliesTo().Kind(),
		AppliesToValue: p.AppliesTo().Value(),
		TermMonths:     p.TermMonths(),
		Rate:           p.Rate(),
		DownPayment:    p.DownPayment(),
		IsActive:       p.IsActive(),
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}
	if miles, ok := p.Mileage(); ok {
		resp.Mileage = &miles
	}
	return resp
}

func toLeaseDetails(l service.LeaseBreakdown) dto.LeaseDetails {
	return dto.LeaseDetails{
		Strategy:              l.Strategy,
		ResidualValue:         cents(l.ResidualValue),
		CapitalizedCost:       cents(l.CapitalizedCost),
		MoneyFactor:           l.MoneyFactor,
		DepreciationPerMonth:  cents(l.DepreciationPerMonth),
		FinanceChargePerMonth: cents(l.FinanceChargePerMonth),
		DepreciationTotal:     cents(l.DepreciationTotal),
		TotalFinanceCharges:   cents(l.TotalFinanceCharges),
	}
}

func toBucketGuidance(
	b service.PricingBucket,
	inRange bool,
	rec service.BucketRecommendation,
) dto.BucketGuidance {
	return dto.BucketGuidance{
		ID:                  b.ID,
		Name:                b.Name,
		InRange:             inRange,
		RecommendedTerms:    append([]int(nil), b.RecommendedTerms...),
		PopularTerm:         b.PopularTerm,
		Features:            append([]string(nil), b.Features...),
		AdjustedDownPayment: rec.AdjustedDownPayment,
		Recommendations:     rec.Recommendations,
	}
}

func toDealershipResponse(d model.Dealership) dto.DealershipResponse {
	return dto.DealershipResponse{
		ID:      d.ID,
		Name:    d.Name,
		Address: d.Address,
		City:    d.City,
		State:   d.State,
		ZipCode: d.ZipCode,
		Phone:   d.Phone,
		Email:   d.Email,
	}
}
