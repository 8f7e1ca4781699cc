package repo

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/price-resolver/internal/app/price/contracts"
	"github.com/light-bringer/price-resolver/internal/app/price/domain"
	"github.com/light-bringer/price-resolver/internal/models/m_price"
	"github.com/light-bringer/price-resolver/internal/pkg/committer"
	"github.com/light-bringer/price-resolver/internal/pkg/query"
)

// numericScale is the number of fractional digits a Spanner NUMERIC keeps.
const numericScale = 9

// ErrCorruptRow is returned when a stored row cannot be turned back into a
// valid price. It is a server-side fault: the cause is formatted into the
// message but not wrapped, so validation kinds never leak to callers.
var ErrCorruptRow = errors.New("corrupt price row")

// reader is satisfied by both single-use read-only transactions and
// read-write transactions.
type reader interface {
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
	ReadRow(ctx context.Context, table string, key spanner.Key, columns []string) (*spanner.Row, error)
}

// SpannerStore implements PriceStore for Spanner.
type SpannerStore struct {
	client    *spanner.Client
	committer *committer.Committer
	model     *m_price.Model
}

var (
	_ contracts.PriceStore    = (*SpannerStore)(nil)
	_ contracts.PriceImporter = (*SpannerStore)(nil)
)

// NewSpannerStore creates a new SpannerStore.
func NewSpannerStore(client *spanner.Client) *SpannerStore {
	return &SpannerStore{
		client:    client,
		committer: committer.NewCommitter(client),
		model:     m_price.NewModel(),
	}
}

// FindOverlapping returns the prices in effect at the instant, best first.
func (s *SpannerStore) FindOverlapping(ctx context.Context, brandID int32, productID int64, at time.Time) ([]*domain.Price, error) {
	return s.findOverlapping(ctx, s.client.Single(), brandID, productID, at)
}

// FindByID reads one price by its id.
func (s *SpannerStore) FindByID(ctx context.Context, id int64) (*domain.Price, error) {
	return s.findByID(ctx, s.client.Single(), id)
}

// Save inserts or replaces the price in its own transaction.
func (s *SpannerStore) Save(ctx context.Context, price *domain.Price) (*domain.Price, error) {
	var saved *domain.Price
	err := s.InTransaction(ctx, func(ctx context.Context, tx contracts.PriceReadWriter) error {
		var err error
		saved, err = tx.Save(ctx, price)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// InTransaction runs fn inside a Spanner read-write transaction.
func (s *SpannerStore) InTransaction(ctx context.Context, fn func(ctx context.Context, tx contracts.PriceReadWriter) error) error {
	return s.committer.ReadWrite(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		return fn(ctx, &spannerTx{store: s, txn: txn})
	})
}

// Import upserts identified prices in a single commit.
func (s *SpannerStore) Import(ctx context.Context, prices ...*domain.Price) error {
	plan := committer.NewPlan()
	for _, p := range prices {
		if !p.HasID() {
			return fmt.Errorf("import price: id is required: %w", domain.ErrInvalidArgument)
		}
		plan.Add(s.model.UpsertMut(domainToData(p)))
	}
	return s.committer.Apply(ctx, plan)
}

func (s *SpannerStore) findOverlapping(ctx context.Context, r reader, brandID int32, productID int64, at time.Time) ([]*domain.Price, error) {
	stmt := query.From(m_price.TableName).
		Select(m_price.Columns...).
		Where(query.Eq(m_price.BrandID, int64(brandID))).
		Where(query.Eq(m_price.ProductID, productID)).
		Where(query.Le(m_price.StartDate, at)).
		Where(query.Ge(m_price.EndDate, at)).
		OrderBy(m_price.Priority, query.Desc).
		ThenBy(m_price.StartDate, query.Desc).
		ThenBy(m_price.PriceID, query.Desc).
		Build()

	iter := r.Query(ctx, stmt)
	defer iter.Stop()

	var prices []*domain.Price
	for {
		row, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query prices: %w", err)
		}

		var data m_price.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse price: %w", err)
		}
		price, err := dataToDomain(&data)
		if err != nil {
			return nil, err
		}
		prices = append(prices, price)
	}
	return prices, nil
}

func (s *SpannerStore) findByID(ctx context.Context, r reader, id int64) (*domain.Price, error) {
	row, err := r.ReadRow(ctx, m_price.TableName, spanner.Key{id}, m_price.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, fmt.Errorf("price %d: %w", id, domain.ErrPriceNotFound)
		}
		return nil, fmt.Errorf("failed to read price: %w", err)
	}

	var data m_price.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse price: %w", err)
	}
	return dataToDomain(&data)
}

// spannerTx binds the store's reads and writes to one transaction.
type spannerTx struct {
	store *SpannerStore
	txn   *spanner.ReadWriteTransaction
}

func (t *spannerTx) FindOverlapping(ctx context.Context, brandID int32, productID int64, at time.Time) ([]*domain.Price, error) {
	return t.store.findOverlapping(ctx, t.txn, brandID, productID, at)
}

func (t *spannerTx) FindByID(ctx context.Context, id int64) (*domain.Price, error) {
	return t.store.findByID(ctx, t.txn, id)
}

func (t *spannerTx) Save(ctx context.Context, price *domain.Price) (*domain.Price, error) {
	if !price.HasID() {
		return t.insert(ctx, price)
	}
	return t.replace(ctx, price)
}

func (t *spannerTx) insert(ctx context.Context, price *domain.Price) (*domain.Price, error) {
	iter := t.txn.Query(ctx, t.store.model.NextIDStmt())
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate price id: %w", err)
	}
	var id int64
	if err := row.Column(0, &id); err != nil {
		return nil, fmt.Errorf("failed to parse price id: %w", err)
	}

	saved, err := price.WithIdentity(id, 1)
	if err != nil {
		return nil, err
	}

	plan := committer.NewPlan()
	plan.Add(t.store.model.InsertMut(domainToData(saved)))
	if err := plan.Buffer(t.txn); err != nil {
		return nil, err
	}
	return saved, nil
}

func (t *spannerTx) replace(ctx context.Context, price *domain.Price) (*domain.Price, error) {
	err := committer.CheckVersion(ctx, t.txn, m_price.TableName, spanner.Key{price.ID()}, m_price.Version, price.Version())
	switch {
	case errors.Is(err, committer.ErrRowNotFound):
		return nil, fmt.Errorf("price %d: %w", price.ID(), domain.ErrPriceNotFound)
	case errors.Is(err, committer.ErrVersionMismatch):
		return nil, fmt.Errorf("%w: %w", domain.ErrConcurrentModification, err)
	case err != nil:
		return nil, err
	}

	saved, err := price.WithIdentity(price.ID(), price.Version()+1)
	if err != nil {
		return nil, err
	}

	plan := committer.NewPlan()
	plan.Add(t.store.model.ReplaceMut(domainToData(saved)))
	if err := plan.Buffer(t.txn); err != nil {
		return nil, err
	}
	return saved, nil
}

// domainToData converts a domain Price to database Data.
func domainToData(p *domain.Price) *m_price.Data {
	data := &m_price.Data{
		PriceID:   p.ID(),
		BrandID:   int64(p.BrandID()),
		ProductID: p.ProductID(),
		PriceList: int64(p.PriceList()),
		Priority:  int64(p.Priority()),
		StartDate: p.StartDate(),
		EndDate:   p.EndDate(),
		Currency:  p.Currency().Code(),
		Version:   p.Version(),
	}
	data.Amount.Set(p.Amount().Round(numericScale).Rat())
	return data
}

// dataToDomain converts database Data to a domain Price.
func dataToDomain(data *m_price.Data) (*domain.Price, error) {
	amount, err := ratToDecimal(&data.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: price %d: invalid amount: %v", ErrCorruptRow, data.PriceID, err)
	}
	currency, err := domain.FromCode(data.Currency)
	if err != nil {
		return nil, fmt.Errorf("%w: price %d: %v", ErrCorruptRow, data.PriceID, err)
	}

	price, err := domain.RestorePrice(data.PriceID, domain.Attributes{
		BrandID:   int32(data.BrandID),
		ProductID: data.ProductID,
		StartDate: data.StartDate,
		EndDate:   data.EndDate,
		PriceList: int32(data.PriceList),
		Amount:    amount,
		Currency:  currency,
	}, int32(data.Priority), data.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: price %d: %v", ErrCorruptRow, data.PriceID, err)
	}
	return price, nil
}

func ratToDecimal(r *big.Rat) (decimal.Decimal, error) {
	return decimal.NewFromString(r.FloatString(numericScale))
}
