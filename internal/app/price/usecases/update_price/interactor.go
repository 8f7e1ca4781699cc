package update_price

import (
	"context"
	"errors"
	"fmt"

	"github.com/light-bringer/price-resolver/internal/app/price/contracts"
	"github.com/light-bringer/price-resolver/internal/app/price/domain"
)

// Request contains the data needed to replace a price.
type Request struct {
	Command domain.UpdateCommand
}

// Interactor handles the update price use case.
type Interactor struct {
	store contracts.PriceStore
}

// NewInteractor creates a new update price interactor.
func NewInteractor(store contracts.PriceStore) *Interactor {
	return &Interactor{
		store: store,
	}
}

// Execute replaces every client-settable field of the price with the given
// id, keeping its id and priority. It returns false, without writing, when
// no such price exists.
//
// The read and the write share one store transaction and the write is
// conditioned on the version read, so a concurrent update surfaces as
// domain.ErrConcurrentModification instead of being lost.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Price, bool, error) {
	attrs, err := req.Command.Validate()
	if err != nil {
		return nil, false, err
	}

	var saved *domain.Price
	err = i.store.InTransaction(ctx, func(ctx context.Context, tx contracts.PriceReadWriter) error {
		saved = nil

		current, err := tx.FindByID(ctx, req.Command.ID)
		if errors.Is(err, domain.ErrPriceNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		replacement, err := current.Replace(attrs)
		if err != nil {
			return err
		}

		saved, err = tx.Save(ctx, replacement)
		return err
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to update price %d: %w", req.Command.ID, err)
	}
	if saved == nil {
		return nil, false, nil
	}
	return saved, true, nil
}
