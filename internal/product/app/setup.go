// Package app contains the application setup for the products service.
package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/HumayunBA/QA-API-Testing/internal/config"
	platformconfig "github.com/HumayunBA/QA-API-Testing/internal/platform/config"
	"github.com/HumayunBA/QA-API-Testing/internal/platform/server"
	"github.com/HumayunBA/QA-API-Testing/internal/product/health"
	"github.com/HumayunBA/QA-API-Testing/internal/product/service"
	"github.com/HumayunBA/QA-API-Testing/internal/product/store"
	"github.com/HumayunBA/QA-API-Testing/internal/product/transport/rest"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/grpc"
)

type Dependencies struct {
	ProductService service.ProductService
	Logger         *slog.Logger
	CORS           server.CORSConfig
}

// NewStore selects the product store named by cfg. dbPool is only used by the postgres driver.
func NewStore(cfg config.StoreConfig, dbPool *pgxpool.Pool) (store.ProductStore, error) {
	switch cfg.Driver {
	case config.StoreDriverMemory:
		return store.NewInMemoryStore(cfg.IDMode), nil
	case config.StoreDriverPostgres:
		if dbPool == nil {
			return nil, fmt.Errorf("store driver %q requires a database pool", cfg.Driver)
		}
		return store.NewPgStore(dbPool, cfg.IDMode), nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %q", cfg.Driver)
	}
}

func SetupDependencies(productStore store.ProductStore, logger *slog.Logger, corsCfg server.CORSConfig) *Dependencies {
	return &Dependencies{
		ProductService: service.NewService(productStore),
		Logger:         logger,
		CORS:           corsCfg,
	}
}

// SetupHttpHandler builds the router with middleware and product routes.
// Used by E2E tests to exercise the full HTTP stack without a listener.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger, deps.CORS)
	wireRoutes(mux, deps)
	return mux
}

func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	productHandler := rest.NewHandler(deps.ProductService, deps.Logger)
	productHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the products service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}

// SetupGrpcServer creates the gRPC server carrying the health service, and the watcher that feeds it.
func SetupGrpcServer(deps *Dependencies, cfg platformconfig.GrpcServerConfig) (*grpc.Server, *health.Watcher) {
	watcher := health.NewWatcher(deps.ProductService, cfg.HealthInterval, deps.Logger)
	return server.NewGRPCServer(watcher.Server(), cfg.ReflectionEnabled, deps.Logger), watcher
}
