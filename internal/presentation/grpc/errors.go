package grpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dealerfin/dealerfin/internal/application/usecase"
	"github.com/dealerfin/dealerfin/internal/domain/model"
	"github.com/dealerfin/dealerfin/internal/domain/port"
	"github.com/dealerfin/dealerfin/internal/domain/service"
	"github.com/dealerfin/dealerfin/internal/domain/valueobject"
)

var errPackageNotFound = fmt.Errorf("find package: %w", port.ErrNotFound)

// codeFor maps an application error to a gRPC status code.
func codeFor(err error) codes.Code {
	if s, ok := status.FromError(err); ok {
		return s.Code()
	}

	switch {
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	case errors.Is(err, port.ErrNotFound):
		return codes.NotFound
	case errors.Is(err, usecase.ErrForbidden):
		return codes.PermissionDenied
	case errors.Is(err, port.ErrConflict):
		return codes.Aborted
	case errors.Is(err, valueobject.ErrInvalidStatusTransition),
		errors.Is(err, model.ErrOfferExpired):
		return codes.FailedPrecondition
	case errors.Is(err, valueobject.ErrInvalidInput),
		errors.Is(err, usecase.ErrVehicleRequired),
		errors.Is(err, service.ErrInvalidTerm),
		errors.Is(err, service.ErrNegativePrice),
		errors.Is(err, service.ErrNegativeRate),
		errors.Is(err, service.ErrNegativeDownPayment):
		return codes.InvalidArgument
	}
	return codes.Internal
}

// toStatus converts err into a gRPC status error. Internal failures are
// logged and their detail withheld from the caller.
func toStatus(ctx context.Context, logger *slog.Logger, method string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	code := codeFor(err)
	if code == codes.Internal {
		logger.ErrorContext(ctx, "rpc failed", "method", method, "error", err)
		return status.Error(codes.Internal, "internal error")
	}
	return status.Error(code, err.Error())
}
