package contracts

import (
	"context"
	"time"

	"github.com/light-bringer/price-resolver/internal/app/price/domain"
)

// PriceReader is the read side of price persistence.
type PriceReader interface {
	// FindOverlapping returns every price of the brand/product whose closed
	// interval contains at, ordered by priority (highest first). An empty
	// slice means no price is in effect.
	FindOverlapping(ctx context.Context, brandID int32, productID int64, at time.Time) ([]*domain.Price, error)

	// FindByID returns the full stored price, or domain.ErrPriceNotFound.
	FindByID(ctx context.Context, id int64) (*domain.Price, error)
}

// PriceWriter is the write side of price persistence.
type PriceWriter interface {
	// Save inserts a price without id (assigning one) or replaces a stored
	// price in place. Replacing succeeds only when the stored version equals
	// price.Version(), otherwise domain.ErrConcurrentModification is returned.
	// The stored state is returned.
	Save(ctx context.Context, price *domain.Price) (*domain.Price, error)
}

// PriceReadWriter groups both sides; it is what a transaction exposes.
type PriceReadWriter interface {
	PriceReader
	PriceWriter
}

// PriceStore defines the interface for price persistence.
type PriceStore interface {
	PriceReadWriter

	// InTransaction runs fn with a reader/writer bound to one transaction.
	// Reads made through tx lock what they read until fn returns; fn may be
	// retried by the store and must not have side effects outside tx.
	InTransaction(ctx context.Context, fn func(ctx context.Context, tx PriceReadWriter) error) error
}

// PriceImporter loads already-identified prices as they are, keeping their
// id, priority and version. It is used for reference data, never by the
// request path.
type PriceImporter interface {
	Import(ctx context.Context, prices ...*domain.Price) error
}
