package grpc

import (
	"context"
	"log/slog"
	"time"

	"github.com/dealerfin/dealerfin/internal/application/dto"
	"github.com/dealerfin/dealerfin/internal/application/usecase"
	"github.com/dealerfin/dealerfin/internal/infrastructure/metrics"
	"github.com/dealerfin/dealerfin/pkg/auth"
)

// PublicMethods may be called without a bearer token.
var PublicMethods = []string{
	FullMethod("QuotePayment"),
	FullMethod("EstimateQuote"),
	FullMethod("ClassifyVehicle"),
	FullMethod("ListAdvisorQuestions"),
	FullMethod("RecommendLeaseOrFinance"),
	FullMethod("FindDealerships"),
	FullMethod("GetPackage"),
	FullMethod("ListPackages"),
	"/grpc.health.v1.Health/Check",
	"/grpc.health.v1.Health/Watch",
}

// UseCases groups the application services the handler dispatches to.
type UseCases struct {
	Quote             *usecase.QuotePaymentUseCase
	Estimate          *usecase.EstimateQuoteUseCase
	Classify          *usecase.ClassifyVehicleUseCase
	Advisor           *usecase.RecommendPlanTypeUseCase
	Dealerships       *usecase.FindDealershipsUseCase
	SubmitRequest     *usecase.SubmitFinanceRequestUseCase
	GetRequest        *usecase.GetFinanceRequestUseCase
	ListRequests      *usecase.ListFinanceRequestsUseCase
	UpdateStatus      *usecase.UpdateFinanceRequestStatusUseCase
	CreateOffer       *usecase.CreateOfferUseCase
	RespondToOffer    *usecase.RespondToOfferUseCase
	ListOffers        *usecase.ListOffersUseCase
	ManagePackages    *usecase.ManagePackagesUseCase
	ListPackages      *usecase.ListPackagesUseCase
	ListNotifications *usecase.ListNotificationsUseCase
}

// ---------------------------------------------------------------------------
// FinanceHandler implements FinanceServiceServer on top of the use cases.
// Caller identity always comes from the token claims, never from the request
// body.
// ---------------------------------------------------------------------------

// FinanceHandler is the gRPC handler for quoting and dealer workflows.
type FinanceHandler struct {
	uc     UseCases
	logger *slog.Logger
}

var _ FinanceServiceServer = (*FinanceHandler)(nil)

// NewFinanceHandler creates a handler over the given use cases.
func NewFinanceHandler(uc UseCases, logger *slog.Logger) *FinanceHandler {
	return &FinanceHandler{uc: uc, logger: logger}
}

func (h *FinanceHandler) fail(ctx context.Context, method string, err error) error {
	return toStatus(ctx, h.logger, method, err)
}

// ---------------------------------------------------------------------------
// Quoting
// ---------------------------------------------------------------------------

// QuotePayment prices a finance or lease quote.
func (h *FinanceHandler) QuotePayment(ctx context.Context, req *dto.QuoteRequest) (*dto.QuoteResponse, error) {
	start := time.Now()
	resp, err := h.uc.Quote.Execute(ctx, *req)
	if err != nil {
		return nil, h.fail(ctx, "QuotePayment", err)
	}
	metrics.RecordQuote("grpc", resp.FinanceType, resp.RateTable, resp.Cached, resp.Package != nil, time.Since(start).Seconds())
	return &resp, nil
}

// EstimateQuote returns side-by-side finance and lease estimates.
func (h *FinanceHandler) EstimateQuote(ctx context.Context, req *dto.EstimateRequest) (*dto.EstimateResponse, error) {
	resp, err := h.uc.Estimate.Execute(ctx, *req)
	if err != nil {
		return nil, h.fail(ctx, "EstimateQuote", err)
	}
	return &resp, nil
}

func (h *FinanceHandler) ClassifyVehicle(ctx context.Context, req *dto.ClassifyRequest) (*dto.BucketGuidance, error) {
	resp, err := h.uc.Classify.Execute(ctx, *req)
	if err != nil {
		return nil, h.fail(ctx, "ClassifyVehicle", err)
	}
	return &resp, nil
}

// ListAdvisorQuestions returns the lease-or-finance questionnaire.
func (h *FinanceHandler) ListAdvisorQuestions(_ context.Context, _ *Empty) (*AdvisorQuestionList, error) {
	questions := h.uc.Advisor.Questions()
	out := &AdvisorQuestionList{Questions: make([]AdvisorQuestion, 0, len(questions))}
	for _, q := range questions {
		aq := AdvisorQuestion{ID: q.ID, Question: q.Question}
		for _, o := range q.Options {
			aq.Options = append(aq.Options, AdvisorOption{
				Value:         o.Value,
				Label:         o.Label,
				LeasePoints:   o.LeasePoints,
				FinancePoints: o.FinancePoints,
			})
		}
		out.Questions = append(out.Questions, aq)
	}
	return out, nil
}

func (h *FinanceHandler) RecommendLeaseOrFinance(ctx context.Context, req *dto.AdvisorRequest) (*dto.AdvisorResponse, error) {
	resp := h.uc.Advisor.Execute(ctx, *req)
	return &resp, nil
}

func (h *FinanceHandler) FindDealerships(ctx context.Context, req *dto.DealershipQuery) (*DealershipList, error) {
	found, err := h.uc.Dealerships.Execute(ctx, *req)
	if err != nil {
		return nil, h.fail(ctx, "FindDealerships", err)
	}
	return &DealershipList{Dealerships: found}, nil
}

// ---------------------------------------------------------------------------
// Finance requests
// ---------------------------------------------------------------------------

// SubmitFinanceRequest files an application on behalf of the calling customer.
func (h *FinanceHandler) SubmitFinanceRequest(ctx context.Context, req *dto.SubmitFinanceRequest) (*dto.FinanceRequestResponse, error) {
	claims, err := auth.RequireRole(ctx, auth.RoleCustomer)
	if err != nil {
		return nil, err
	}

	in := *req
	in.UserID = claims.UserID
	resp, err := h.uc.SubmitRequest.Execute(ctx, in)
	if err != nil {
		return nil, h.fail(ctx, "SubmitFinanceRequest", err)
	}
	metrics.FinanceRequests.WithLabelValues(resp.Status).Inc()
	return &resp, nil
}

// GetFinanceRequest loads a request the caller owns, or any request for staff.
func (h *FinanceHandler) GetFinanceRequest(ctx context.Context, req *IDRequest) (*dto.FinanceRequestResponse, error) {
	claims, err := auth.RequireRole(ctx, auth.RoleCustomer, auth.RoleDealer, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.GetRequest.Execute(ctx, dto.GetFinanceRequest{
		ID:          req.ID,
		RequesterID: claims.UserID,
		IsStaff:     claims.IsStaff(),
	})
	if err != nil {
		return nil, h.fail(ctx, "GetFinanceRequest", err)
	}
	return &resp, nil
}

// ListMyFinanceRequests lists the caller's own requests.
func (h *FinanceHandler) ListMyFinanceRequests(ctx context.Context, _ *Empty) (*FinanceRequestList, error) {
	claims, err := auth.RequireRole(ctx, auth.RoleCustomer, auth.RoleDealer, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}

	found, err := h.uc.ListRequests.ForUser(ctx, claims.UserID)
	if err != nil {
		return nil, h.fail(ctx, "ListMyFinanceRequests", err)
	}
	return &FinanceRequestList{Requests: found}, nil
}

// ListFinanceRequests lists every request for review.
func (h *FinanceHandler) ListFinanceRequests(ctx context.Context, _ *Empty) (*FinanceRequestList, error) {
	if _, err := auth.RequireRole(ctx, auth.RoleAdmin, auth.RoleDealer); err != nil {
		return nil, err
	}

	found, err := h.uc.ListRequests.All(ctx)
	if err != nil {
		return nil, h.fail(ctx, "ListFinanceRequests", err)
	}
	return &FinanceRequestList{Requests: found}, nil
}

// UpdateFinanceRequestStatus records a review decision.
func (h *FinanceHandler) UpdateFinanceRequestStatus(ctx context.Context, req *dto.UpdateFinanceRequestStatus) (*dto.FinanceRequestResponse, error) {
	if _, err := auth.RequireRole(ctx, auth.RoleAdmin, auth.RoleDealer); err != nil {
		return nil, err
	}

	resp, err := h.uc.UpdateStatus.Execute(ctx, *req)
	if err != nil {
		return nil, h.fail(ctx, "UpdateFinanceRequestStatus", err)
	}
	metrics.FinanceRequests.WithLabelValues(resp.Status).Inc()
	return &resp, nil
}

// ---------------------------------------------------------------------------
// Offers
// ---------------------------------------------------------------------------

// CreateOffer attaches a counter-offer made by the calling staff member.
func (h *FinanceHandler) CreateOffer(ctx context.Context, req *dto.CreateOfferRequest) (*dto.OfferResponse, error) {
	claims, err := auth.RequireRole(ctx, auth.RoleAdmin, auth.RoleDealer)
	if err != nil {
		return nil, err
	}

	in := *req
	in.DealerUserID = claims.UserID
	resp, err := h.uc.CreateOffer.Execute(ctx, in)
	if err != nil {
		return nil, h.fail(ctx, "CreateOffer", err)
	}
	metrics.Offers.WithLabelValues("created").Inc()
	return &resp, nil
}

// RespondToOffer accepts or rejects an offer on the caller's own request.
func (h *FinanceHandler) RespondToOffer(ctx context.Context, req *dto.RespondToOfferRequest) (*dto.OfferResponse, error) {
	claims, err := auth.RequireRole(ctx, auth.RoleCustomer)
	if err != nil {
		return nil, err
	}

	in := *req
	in.UserID = claims.UserID
	resp, err := h.uc.RespondToOffer.Execute(ctx, in)
	if err != nil {
		return nil, h.fail(ctx, "RespondToOffer", err)
	}
	metrics.Offers.WithLabelValues(resp.Status).Inc()
	return &resp, nil
}

// ListOffers lists the offers on one request.
func (h *FinanceHandler) ListOffers(ctx context.Context, req *IDRequest) (*OfferList, error) {
	claims, err := auth.RequireRole(ctx, auth.RoleCustomer, auth.RoleDealer, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}

	found, err := h.uc.ListOffers.ForRequest(ctx, dto.ListOffersRequest{
		FinanceRequestID: req.ID,
		RequesterID:      claims.UserID,
		IsStaff:          claims.IsStaff(),
	})
	if err != nil {
		return nil, h.fail(ctx, "ListOffers", err)
	}
	return &OfferList{Offers: found}, nil
}

// ListAllOffers lists every offer grouped by request.
func (h *FinanceHandler) ListAllOffers(ctx context.Context, _ *Empty) (*OfferGroupList, error) {
	if _, err := auth.RequireRole(ctx, auth.RoleAdmin, auth.RoleDealer); err != nil {
		return nil, err
	}

	groups, err := h.uc.ListOffers.All(ctx)
	if err != nil {
		return nil, h.fail(ctx, "ListAllOffers", err)
	}
	return &OfferGroupList{Groups: groups}, nil
}

// ---------------------------------------------------------------------------
// Packages
// ---------------------------------------------------------------------------

func (h *FinanceHandler) CreatePackage(ctx context.Context, req *dto.PackageRequest) (*dto.PackageResponse, error) {
	if _, err := auth.RequireRole(ctx, auth.RoleAdmin, auth.RoleDealer); err != nil {
		return nil, err
	}

	resp, err := h.uc.ManagePackages.Create(ctx, *req)
	if err != nil {
		return nil, h.fail(ctx, "CreatePackage", err)
	}
	return &resp, nil
}

func (h *FinanceHandler) UpdatePackage(ctx context.Context, req *dto.PackageRequest) (*dto.PackageResponse, error) {
	if _, err := auth.RequireRole(ctx, auth.RoleAdmin, auth.RoleDealer); err != nil {
		return nil, err
	}

	resp, err := h.uc.ManagePackages.Update(ctx, *req)
	if err != nil {
		return nil, h.fail(ctx, "UpdatePackage", err)
	}
	return &resp, nil
}

func (h *FinanceHandler) DeactivatePackage(ctx context.Context, req *IDRequest) (*dto.PackageResponse, error) {
	if _, err := auth.RequireRole(ctx, auth.RoleAdmin, auth.RoleDealer); err != nil {
		return nil, err
	}

	resp, err := h.uc.ManagePackages.Deactivate(ctx, req.ID)
	if err != nil {
		return nil, h.fail(ctx, "DeactivatePackage", err)
	}
	return &resp, nil
}

func (h *FinanceHandler) DeletePackage(ctx context.Context, req *IDRequest) (*Empty, error) {
	if _, err := auth.RequireRole(ctx, auth.RoleAdmin, auth.RoleDealer); err != nil {
		return nil, err
	}

	if err := h.uc.ManagePackages.Delete(ctx, req.ID); err != nil {
		return nil, h.fail(ctx, "DeletePackage", err)
	}
	return &Empty{}, nil
}

// GetPackage returns one package. Inactive packages are visible to staff only.
func (h *FinanceHandler) GetPackage(ctx context.Context, req *IDRequest) (*dto.PackageResponse, error) {
	resp, err := h.uc.ListPackages.Get(ctx, req.ID)
	if err != nil {
		return nil, h.fail(ctx, "GetPackage", err)
	}
	if !resp.IsActive && !isStaff(ctx) {
		return nil, h.fail(ctx, "GetPackage", errPackageNotFound)
	}
	return &resp, nil
}

// ListPackages lists the catalog, or the packages eligible for one vehicle.
// Callers other than staff only ever see active packages.
func (h *FinanceHandler) ListPackages(ctx context.Context, req *ListPackagesRequest) (*PackageList, error) {
	var (
		found []dto.PackageResponse
		err   error
	)
	if req.VehicleID != "" {
		found, err = h.uc.ListPackages.ForVehicle(ctx, req.VehicleID, req.FinanceType)
	} else {
		found, err = h.uc.ListPackages.List(ctx, req.ActiveOnly || !isStaff(ctx))
	}
	if err != nil {
		return nil, h.fail(ctx, "ListPackages", err)
	}
	return &PackageList{Packages: found}, nil
}

// ---------------------------------------------------------------------------
// Notifications
// ---------------------------------------------------------------------------

// ListNotifications returns the caller's most recent notifications.
func (h *FinanceHandler) ListNotifications(ctx context.Context, req *ListNotificationsRequest) (*NotificationList, error) {
	claims, err := auth.RequireRole(ctx, auth.RoleCustomer, auth.RoleDealer, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}

	found, err := h.uc.ListNotifications.Execute(ctx, claims.UserID, req.Limit)
	if err != nil {
		return nil, h.fail(ctx, "ListNotifications", err)
	}
	return &NotificationList{Notifications: found}, nil
}

func isStaff(ctx context.Context) bool {
	claims, ok := auth.ClaimsFromContext(ctx)
	return ok && claims.IsStaff()
}
