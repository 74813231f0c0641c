// Package health publishes the product service status over the standard gRPC health protocol.
package health

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the gRPC health service name reported next to the server-wide "" entry.
const ServiceName = "products"

// Pinger checks a dependency the service cannot serve without.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Watcher pings a Pinger periodically and mirrors the outcome into a grpc health server.
type Watcher struct {
	server   *health.Server
	pinger   Pinger
	interval time.Duration
	logger   *slog.Logger
}

// NewWatcher creates a Watcher. Both entries start as NOT_SERVING until the first check succeeds.
func NewWatcher(pinger Pinger, interval time.Duration, logger *slog.Logger) *Watcher {
	srv := health.NewServer()
	srv.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	srv.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return &Watcher{
		server:   srv,
		pinger:   pinger,
		interval: interval,
		logger:   logger.With("component", "health"),
	}
}

// Server exposes the underlying health server.
func (w *Watcher) Server() healthpb.HealthServer {
	return w.server
}

// Check pings once and updates the published status.
func (w *Watcher) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	pingCtx, cancel := context.WithTimeout(ctx, w.interval)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := w.pinger.Ping(pingCtx); err != nil {
		w.logger.WarnContext(ctx, "Product store is not reachable", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	w.server.SetServingStatus("", status)
	w.server.SetServingStatus(ServiceName, status)
	return status
}

// Run checks immediately and then on every interval until ctx is done.
// On return every watcher of the health service is told NOT_SERVING.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			w.server.Shutdown()
			return nil
		case <-ticker.C:
			w.Check(ctx)
		}
	}
}
