package usecase

import (
	"context"

	"github.com/dealerfin/dealerfin/internal/application/dto"
	"github.com/dealerfin/dealerfin/internal/domain/service"
)

// RecommendPlanTypeUseCase scores the lease-or-finance questionnaire.
type RecommendPlanTypeUseCase struct {
	advisor *service.LeaseOrFinanceAdvisor
}

func NewRecommendPlanTypeUseCase(advisor *service.LeaseOrFinanceAdvisor) *RecommendPlanTypeUseCase {
	return &RecommendPlanTypeUseCase{advisor: advisor}
}

// Execute totals the answers. It never fails; unknown answers are ignored.
func (uc *RecommendPlanTypeUseCase) Execute(_ context.Context, req dto.AdvisorRequest) dto.AdvisorResponse {
	res := uc.advisor.Recommend(req.Answers)
	return dto.AdvisorResponse{
		Recommendation: res.Recommendation,
		LeaseScore:     res.LeaseScore,
		FinanceScore:   res.FinanceScore,
	}
}

// Questions returns the questionnaire for rendering.
func (uc *RecommendPlanTypeUseCase) Questions() []service.AdvisorQuestion {
	return uc.advisor.Questions()
}
