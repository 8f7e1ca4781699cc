package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/price-resolver/internal/app/price/contracts"
	"github.com/light-bringer/price-resolver/internal/app/price/lifecycle"
	"github.com/light-bringer/price-resolver/internal/app/price/queries/get_effective_price"
	"github.com/light-bringer/price-resolver/internal/app/price/repo"
	"github.com/light-bringer/price-resolver/internal/app/price/sampledata"
	"github.com/light-bringer/price-resolver/internal/app/price/usecases/create_price"
	"github.com/light-bringer/price-resolver/internal/app/price/usecases/update_price"
	"github.com/light-bringer/price-resolver/internal/config"
	grpcprice "github.com/light-bringer/price-resolver/internal/transport/grpc/price"
	httptransport "github.com/light-bringer/price-resolver/internal/transport/http"
)

// store is what the wiring needs from a backend.
type store interface {
	contracts.PriceStore
	contracts.PriceImporter
}

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	Store         contracts.PriceStore
	Prices        *lifecycle.Service
	GRPCHandler   *grpcprice.Handler
	HTTPHandler   http.Handler
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg config.Config) (*ServiceOptions, error) {
	opts := &ServiceOptions{}

	// 1. Storage backend
	var st store
	switch cfg.StoreBackend {
	case config.BackendMemory:
		st = repo.NewMemoryStore()
	case config.BackendSpanner:
		client, err := spanner.NewClient(ctx, cfg.SpannerDB)
		if err != nil {
			return nil, fmt.Errorf("failed to create Spanner client: %w", err)
		}
		opts.SpannerClient = client
		st = repo.NewSpannerStore(client)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
	opts.Store = st

	if cfg.SeedSampleData {
		if err := sampledata.Load(ctx, st); err != nil {
			opts.Close()
			return nil, fmt.Errorf("failed to seed sample data: %w", err)
		}
		slog.InfoContext(ctx, "sample prices loaded", "backend", cfg.StoreBackend)
	}

	// 2. Query and command use cases
	resolver := get_effective_price.NewQuery(st)
	creator := create_price.NewInteractor(st)
	updater := update_price.NewInteractor(st)
	opts.Prices = lifecycle.NewService(resolver, creator, updater)

	// 3. Transport handlers
	opts.GRPCHandler = grpcprice.NewHandler(opts.Prices)
	opts.HTTPHandler = httptransport.NewRouter(httptransport.NewPriceHandler(opts.Prices))

	return opts, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
