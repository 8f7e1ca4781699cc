package get_effective_price

import (
	"context"
	"fmt"
	"time"

	"github.com/light-bringer/price-resolver/internal/app/price/contracts"
	"github.com/light-bringer/price-resolver/internal/app/price/domain"
)

// Request identifies the brand/product and the instant to price.
// Nil fields are reported as missing.
type Request struct {
	At        *time.Time
	BrandID   *int32
	ProductID *int64
}

// Query resolves the price in effect at an instant.
type Query struct {
	store contracts.PriceReader
}

// NewQuery creates a new get effective price query.
func NewQuery(store contracts.PriceReader) *Query {
	return &Query{
		store: store,
	}
}

// Execute returns the winning price, or false when no price covers the
// instant.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.Price, bool, error) {
	pq, err := domain.NewPriceQuery(req.At, req.BrandID, req.ProductID)
	if err != nil {
		return nil, false, err
	}

	candidates, err := q.store.FindOverlapping(ctx, pq.BrandID, pq.ProductID, pq.At)
	if err != nil {
		return nil, false, fmt.Errorf("failed to find prices: %w", err)
	}

	best := Select(candidates, pq)
	if best == nil {
		return nil, false, nil
	}
	return best, true, nil
}

// Select picks the winner among candidates that really match the query,
// whatever order they arrive in. It returns nil when none match.
func Select(candidates []*domain.Price, pq domain.PriceQuery) *domain.Price {
	var best *domain.Price
	for _, p := range candidates {
		if p == nil || !p.Matches(pq.BrandID, pq.ProductID) || !p.IsActiveAt(pq.At) {
			continue
		}
		if best == nil || domain.ByPrecedence(p, best) < 0 {
			best = p
		}
	}
	return best
}
