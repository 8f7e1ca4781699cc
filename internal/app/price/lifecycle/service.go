// Package lifecycle is the single entry point adapters use to resolve,
// create and update prices.
package lifecycle

import (
	"context"

	"github.com/light-bringer/price-resolver/internal/app/price/domain"
	"github.com/light-bringer/price-resolver/internal/app/price/queries/get_effective_price"
	"github.com/light-bringer/price-resolver/internal/app/price/usecases/create_price"
	"github.com/light-bringer/price-resolver/internal/app/price/usecases/update_price"
)

// Service delegates to the resolver and the two interactors.
type Service struct {
	resolver *get_effective_price.Query
	creator  *create_price.Interactor
	updater  *update_price.Interactor
}

// NewService creates a new Service.
func NewService(
	resolver *get_effective_price.Query,
	creator *create_price.Interactor,
	updater *update_price.Interactor,
) *Service {
	return &Service{
		resolver: resolver,
		creator:  creator,
		updater:  updater,
	}
}

// GetEffectivePrice returns the price in effect, or false when none is.
func (s *Service) GetEffectivePrice(ctx context.Context, req *get_effective_price.Request) (*domain.Price, bool, error) {
	return s.resolver.Execute(ctx, req)
}

// Create stores a new price and returns it with its id.
func (s *Service) Create(ctx context.Context, cmd domain.CreateCommand) (*domain.Price, error) {
	return s.creator.Execute(ctx, &create_price.Request{Command: cmd})
}

// Update replaces the price with the given id, or returns false when it
// does not exist.
func (s *Service) Update(ctx context.Context, id int64, cmd domain.PriceCommand) (*domain.Price, bool, error) {
	return s.updater.Execute(ctx, &update_price.Request{Command: domain.UpdateCommand{ID: id, PriceCommand: cmd}})
}
