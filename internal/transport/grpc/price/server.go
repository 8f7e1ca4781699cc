package price

import (
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// NewServer builds a gRPC server exposing the price service, the standard
// health service and reflection. The returned health server reports the
// price service as SERVING; callers flip it on shutdown.
func NewServer(h *Handler, logger *slog.Logger, opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(LoggingInterceptor(logger))}, opts...)
	srv := grpc.NewServer(opts...)

	RegisterPriceServiceServer(srv, h)

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(srv, healthSrv)
	healthSrv.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	// Enable reflection (for grpcurl and debugging)
	reflection.Register(srv)

	return srv, healthSrv
}
