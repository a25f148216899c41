package grpc

// proto.go is the hand-written equivalent of generated service bindings for
// dealerfin.finance.v1.FinanceService. Messages travel through the JSON codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dealerfin/dealerfin/internal/application/dto"
)

const ServiceName = "dealerfin.finance.v1.FinanceService"

// FullMethod returns the wire name of a FinanceService method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// FinanceServiceServer is the server API for FinanceService.
type FinanceServiceServer interface {
	QuotePayment(context.Context, *dto.QuoteRequest) (*dto.QuoteResponse, error)
	EstimateQuote(context.Context, *dto.EstimateRequest) (*dto.EstimateResponse, error)
	ClassifyVehicle(context.Context, *dto.ClassifyRequest) (*dto.BucketGuidance, error)
	ListAdvisorQuestions(context.Context, *Empty) (*AdvisorQuestionList, error)
	RecommendLeaseOrFinance(context.Context, *dto.AdvisorRequest) (*dto.AdvisorResponse, error)
	FindDealerships(context.Context, *dto.DealershipQuery) (*DealershipList, error)

	SubmitFinanceRequest(context.Context, *dto.SubmitFinanceRequest) (*dto.FinanceRequestResponse, error)
	GetFinanceRequest(context.Context, *IDRequest) (*dto.FinanceRequestResponse, error)
	ListMyFinanceRequests(context.Context, *Empty) (*FinanceRequestList, error)
	ListFinanceRequests(context.Context, *Empty) (*FinanceRequestList, error)
	UpdateFinanceRequestStatus(context.Context, *dto.UpdateFinanceRequestStatus) (*dto.FinanceRequestResponse, error)

	CreateOffer(context.Context, *dto.CreateOfferRequest) (*dto.OfferResponse, error)
	RespondToOffer(context.Context, *dto.RespondToOfferRequest) (*dto.OfferResponse, error)
	ListOffers(context.Context, *IDRequest) (*OfferList, error)
	ListAllOffers(context.Context, *Empty) (*OfferGroupList, error)

	CreatePackage(context.Context, *dto.PackageRequest) (*dto.PackageResponse, error)
	UpdatePackage(context.Context, *dto.PackageRequest) (*dto.PackageResponse, error)
	DeactivatePackage(context.Context, *IDRequest) (*dto.PackageResponse, error)
	DeletePackage(context.Context, *IDRequest) (*Empty, error)
	GetPackage(context.Context, *IDRequest) (*dto.PackageResponse, error)
	ListPackages(context.Context, *ListPackagesRequest) (*PackageList, error)

	ListNotifications(context.Context, *ListNotificationsRequest) (*NotificationList, error)
}

// RegisterFinanceServiceServer registers srv with the gRPC server.
func RegisterFinanceServiceServer(s grpclib.ServiceRegistrar, srv FinanceServiceServer) {
	s.RegisterService(&financeServiceDesc, srv)
}

var financeServiceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FinanceServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		unary("QuotePayment", FinanceServiceServer.QuotePayment),
		unary("EstimateQuote", FinanceServiceServer.EstimateQuote),
		unary("ClassifyVehicle", FinanceServiceServer.ClassifyVehicle),
		unary("ListAdvisorQuestions", FinanceServiceServer.ListAdvisorQuestions),
		unary("RecommendLeaseOrFinance", FinanceServiceServer.RecommendLeaseOrFinance),
		unary("FindDealerships", FinanceServiceServer.FindDealerships),
		unary("SubmitFinanceRequest", FinanceServiceServer.SubmitFinanceRequest),
		unary("GetFinanceRequest", FinanceServiceServer.GetFinanceRequest),
		unary("ListMyFinanceRequests", FinanceServiceServer.ListMyFinanceRequests),
		unary("ListFinanceRequests", FinanceServiceServer.ListFinanceRequests),
		unary("UpdateFinanceRequestStatus", FinanceServiceServer.UpdateFinanceRequestStatus),
		unary("CreateOffer", FinanceServiceServer.CreateOffer),
		unary("RespondToOffer", FinanceServiceServer.RespondToOffer),
		unary("ListOffers", FinanceServiceServer.ListOffers),
		unary("ListAllOffers", FinanceServiceServer.ListAllOffers),
		unary("CreatePackage", FinanceServiceServer.CreatePackage),
		unary("UpdatePackage", FinanceServiceServer.UpdatePackage),
		unary("DeactivatePackage", FinanceServiceServer.DeactivatePackage),
		unary("DeletePackage", FinanceServiceServer.DeletePackage),
		unary("GetPackage", FinanceServiceServer.GetPackage),
		unary("ListPackages", FinanceServiceServer.ListPackages),
		unary("ListNotifications", FinanceServiceServer.ListNotifications),
	},
	Streams: []grpclib.StreamDesc{},
}

// unary builds the method descriptor that decodes Req, runs the interceptor
// chain and dispatches to call.
func unary[Req, Resp any](
	method string,
	call func(FinanceServiceServer, context.Context, *Req) (*Resp, error),
) grpclib.MethodDesc {
	fullMethod := FullMethod(method)
	return grpclib.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, status.Errorf(codes.InvalidArgument, "decode %s: %v", method, err)
			}
			server := srv.(FinanceServiceServer)
			if interceptor == nil {
				return call(server, ctx, in)
			}
			info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(server, ctx, req.(*Req))
			})
		},
	}
}
