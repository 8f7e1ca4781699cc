package create_price

import (
	"context"
	"fmt"

	"github.com/light-bringer/price-resolver/internal/app/price/contracts"
	"github.com/light-bringer/price-resolver/internal/app/price/domain"
)

// Request contains the data needed to create a price.
type Request struct {
	Command domain.CreateCommand
}

// Interactor handles the create price use case.
type Interactor struct {
	store contracts.PriceWriter
}

// NewInteractor creates a new create price interactor.
func NewInteractor(store contracts.PriceWriter) *Interactor {
	return &Interactor{
		store: store,
	}
}

// Execute validates the command and stores a new price with the default
// priority. The stored price, carrying its id, is returned.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Price, error) {
	price, err := req.Command.ValidateCreate()
	if err != nil {
		return nil, err
	}

	saved, err := i.store.Save(ctx, price)
	if err != nil {
		return nil, fmt.Errorf("failed to save price: %w", err)
	}
	return saved, nil
}
