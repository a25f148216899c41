package grpc

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/dealerfin/dealerfin/internal/infrastructure/metrics"
	"github.com/dealerfin/dealerfin/pkg/auth"
	"github.com/dealerfin/dealerfin/pkg/tlsutil"
)

// ServerOptions configure the listener. TLS is enabled when both files are set.
type ServerOptions struct {
	ServiceName string
	CertFile    string
	KeyFile     string
	Reflection  bool
}

// Server wraps a gRPC server with the finance handler registered.
type Server struct {
	gs     *grpclib.Server
	health *health.Server
	logger *slog.Logger
}

// NewServer creates and configures the gRPC server.
func NewServer(handler FinanceServiceServer, jwtService *auth.JWTService, opts ServerOptions, logger *slog.Logger) (*Server, error) {
	creds, secure, err := tlsutil.ServerCredentials(opts.CertFile, opts.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("grpc credentials: %w", err)
	}
	if secure {
		logger.Info("gRPC TLS enabled", "cert", opts.CertFile)
	} else {
		logger.Info("gRPC TLS not configured, running without TLS")
	}

	gs := grpclib.NewServer(
		grpclib.Creds(creds),
		grpclib.ChainUnaryInterceptor(
			UnaryObservabilityInterceptor(logger),
			auth.UnaryAuthInterceptor(jwtService, PublicMethods),
		),
	)

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(gs, healthSrv)
	healthSrv.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	if opts.ServiceName != "" {
		healthSrv.SetServingStatus(opts.ServiceName, healthpb.HealthCheckResponse_SERVING)
	}

	if opts.Reflection {
		reflection.Register(gs)
	}

	RegisterFinanceServiceServer(gs, handler)

	return &Server{gs: gs, health: healthSrv, logger: logger}, nil
}

// Serve accepts connections on addr until the server stops.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.ServeListener(lis)
}

// ServeListener accepts connections on lis until the server stops.
func (s *Server) ServeListener(lis net.Listener) error {
	s.logger.Info("gRPC server listening", "addr", lis.Addr().String())
	return s.gs.Serve(lis)
}

// GracefulStop marks the service as not serving and drains in-flight calls.
func (s *Server) GracefulStop() {
	s.logger.Info("gRPC server shutting down")
	s.health.Shutdown()
	s.gs.GracefulStop()
}

// UnaryObservabilityInterceptor counts every call by method and status code
// and logs its outcome.
func UnaryObservabilityInterceptor(logger *slog.Logger) grpclib.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpclib.UnaryServerInfo, handler grpclib.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)

		metrics.RPCRequests.WithLabelValues("grpc", info.FullMethod, code.String()).Inc()
		logger.InfoContext(ctx, "rpc",
			"method", info.FullMethod,
			"code", code.String(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return resp, err
	}
}
