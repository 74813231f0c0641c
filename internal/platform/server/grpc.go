package server

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

// NewGRPCServer builds the gRPC listener side of the service: the standard health service
// backed by healthServer, call logging, and reflection when enableReflection is set.
func NewGRPCServer(healthServer healthpb.HealthServer, enableReflection bool, logger *slog.Logger) *grpc.Server {
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(UnaryLogger(logger)))
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	if enableReflection {
		reflection.Register(grpcServer)
	}
	return grpcServer
}

// UnaryLogger logs every unary call with its status code, mirroring web.StructuredLogger for HTTP.
func UnaryLogger(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.DebugContext(ctx, "gRPC call completed",
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"duration_ms", float64(time.Since(start).Nanoseconds())/1e6,
		)
		return resp, err
	}
}
