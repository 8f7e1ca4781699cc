package repo

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/light-bringer/price-resolver/internal/app/price/contracts"
	"github.com/light-bringer/price-resolver/internal/app/price/domain"
)

// MemoryStore is a process-local PriceStore. Transactions are serialized
// behind one mutex and applied only when fn succeeds.
type MemoryStore struct {
	mu    sync.Mutex
	state *memState
}

var (
	_ contracts.PriceStore    = (*MemoryStore)(nil)
	_ contracts.PriceImporter = (*MemoryStore)(nil)
)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: &memState{prices: make(map[int64]*domain.Price)}}
}

func (s *MemoryStore) FindOverlapping(ctx context.Context, brandID int32, productID int64, at time.Time) ([]*domain.Price, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{state: s.state}).FindOverlapping(ctx, brandID, productID, at)
}

func (s *MemoryStore) FindByID(ctx context.Context, id int64) (*domain.Price, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{state: s.state}).FindByID(ctx, id)
}

func (s *MemoryStore) Save(ctx context.Context, price *domain.Price) (*domain.Price, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{state: s.state}).Save(ctx, price)
}

// InTransaction runs fn against a private copy of the store and publishes
// the copy when fn returns nil.
func (s *MemoryStore) InTransaction(ctx context.Context, fn func(ctx context.Context, tx contracts.PriceReadWriter) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.state.clone()
	if err := fn(ctx, &memTx{state: staged}); err != nil {
		return err
	}
	s.state = staged
	return nil
}

// Import stores identified prices unchanged. Later inserts get ids above
// the highest imported one.
func (s *MemoryStore) Import(ctx context.Context, prices ...*domain.Price) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range prices {
		if !p.HasID() {
			return fmt.Errorf("import price: id is required: %w", domain.ErrInvalidArgument)
		}
	}
	for _, p := range prices {
		s.state.prices[p.ID()] = p
		s.state.lastID = max(s.state.lastID, p.ID())
	}
	return nil
}

// Len returns the number of stored prices.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.prices)
}

type memState struct {
	prices map[int64]*domain.Price
	lastID int64
}

// clone copies the index. Prices are immutable so they are shared.
func (st *memState) clone() *memState {
	return &memState{prices: maps.Clone(st.prices), lastID: st.lastID}
}

// memTx operates on a state the caller has already locked.
type memTx struct {
	state *memState
}

func (t *memTx) FindOverlapping(ctx context.Context, brandID int32, productID int64, at time.Time) ([]*domain.Price, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var prices []*domain.Price
	for _, p := range t.state.prices {
		if p.Matches(brandID, productID) && p.IsActiveAt(at) {
			prices = append(prices, p)
		}
	}
	slices.SortFunc(prices, domain.ByPrecedence)
	return prices, nil
}

func (t *memTx) FindByID(ctx context.Context, id int64) (*domain.Price, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, ok := t.state.prices[id]
	if !ok {
		return nil, fmt.Errorf("price %d: %w", id, domain.ErrPriceNotFound)
	}
	return p, nil
}

func (t *memTx) Save(ctx context.Context, price *domain.Price) (*domain.Price, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !price.HasID() {
		saved, err := price.WithIdentity(t.state.lastID+1, 1)
		if err != nil {
			return nil, err
		}
		t.state.lastID = saved.ID()
		t.state.prices[saved.ID()] = saved
		return saved, nil
	}

	stored, ok := t.state.prices[price.ID()]
	if !ok {
		return nil, fmt.Errorf("price %d: %w", price.ID(), domain.ErrPriceNotFound)
	}
	if stored.Version() != price.Version() {
		return nil, fmt.Errorf("%w: price %d: expected version %d, got %d",
			domain.ErrConcurrentModification, price.ID(), price.Version(), stored.Version())
	}

	saved, err := price.WithIdentity(price.ID(), price.Version()+1)
	if err != nil {
		return nil, err
	}
	// priority is store-owned and survives a replace
	if saved.Priority() != stored.Priority() {
		if saved, err = domain.RestorePrice(saved.ID(), saved.Attributes(), stored.Priority(), saved.Version()); err != nil {
			return nil, err
		}
	}
	t.state.prices[saved.ID()] = saved
	return saved, nil
}
