package domain

import (
	"cmp"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Field names used in violations and change reporting.
const (
	FieldID        = "id"
	FieldBrandID   = "brandId"
	FieldProductID = "productId"
	FieldStartDate = "startDate"
	FieldEndDate   = "endDate"
	FieldPriceList = "priceList"
	FieldPrice     = "price"
	FieldCurrency  = "currency"
	FieldPriority  = "priority"
	FieldVersion   = "version"
	FieldAt        = "applicationDate"
)

// DefaultPriority is assigned to every newly created price.
const DefaultPriority int32 = 0

// Attributes are the client-settable fields of a price.
type Attributes struct {
	BrandID   int32
	ProductID int64
	StartDate time.Time
	EndDate   time.Time
	PriceList int32
	Amount    decimal.Decimal
	Currency  Currency
}

// Price is one priced offer for a brand/product over the closed interval
// [StartDate, EndDate]. Instances are immutable and always well-formed.
type Price struct {
	id        int64
	brandID   int32
	productID int64
	startDate time.Time
	endDate   time.Time
	priceList int32
	amount    decimal.Decimal
	currency  Currency
	priority  int32

	// Version for optimistic locking; 0 until first persisted.
	version int64
}

// NewPrice creates a price that has not been persisted yet. It has no id
// and the default priority.
func NewPrice(attrs Attributes) (*Price, error) {
	return build(0, attrs, DefaultPriority, 0)
}

// RestorePrice reconstitutes a stored price (for loading from a store).
// Stored rows go through the same invariants as new ones.
func RestorePrice(id int64, attrs Attributes, priority int32, version int64) (*Price, error) {
	if id <= 0 {
		return nil, fmt.Errorf("restore price: id must be positive, got %d: %w", id, ErrInvalidArgument)
	}
	return build(id, attrs, priority, version)
}

func build(id int64, attrs Attributes, priority int32, version int64) (*Price, error) {
	start := normalizeInstant(attrs.StartDate)
	end := normalizeInstant(attrs.EndDate)

	var vs violations
	if start.IsZero() {
		vs.add(FieldStartDate, ErrInvalidDateFormat, "start date is required")
	}
	if end.IsZero() {
		vs.add(FieldEndDate, ErrInvalidDateFormat, "end date is required")
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		vs.add(FieldStartDate, ErrInvalidArgument, "start must precede end")
	}
	if attrs.PriceList < 0 {
		vs.add(FieldPriceList, ErrInvalidArgument, fmt.Sprintf("must be >= 0, got %d", attrs.PriceList))
	}
	if attrs.Amount.IsNegative() {
		vs.add(FieldPrice, ErrInvalidArgument, fmt.Sprintf("must be >= 0, got %s", attrs.Amount))
	}
	if attrs.Currency.IsZero() {
		vs.add(FieldCurrency, ErrInvalidArgument, "currency is required")
	}
	if priority < 0 {
		vs.add(FieldPriority, ErrInvalidArgument, fmt.Sprintf("must be >= 0, got %d", priority))
	}
	if version < 0 {
		vs.add(FieldVersion, ErrInvalidArgument, fmt.Sprintf("must be >= 0, got %d", version))
	}
	if err := vs.err(); err != nil {
		return nil, err
	}

	return &Price{
		id:        id,
		brandID:   attrs.BrandID,
		productID: attrs.ProductID,
		startDate: start,
		endDate:   end,
		priceList: attrs.PriceList,
		amount:    attrs.Amount,
		currency:  attrs.Currency,
		priority:  priority,
		version:   version,
	}, nil
}

// normalizeInstant drops sub-second precision and pins the instant to UTC.
func normalizeInstant(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC().Truncate(time.Second)
}

// Getters
func (p *Price) ID() int64               { return p.id }
func (p *Price) HasID() bool             { return p.id > 0 }
func (p *Price) BrandID() int32          { return p.brandID }
func (p *Price) ProductID() int64        { return p.productID }
func (p *Price) StartDate() time.Time    { return p.startDate }
func (p *Price) EndDate() time.Time      { return p.endDate }
func (p *Price) PriceList() int32        { return p.priceList }
func (p *Price) Amount() decimal.Decimal { return p.amount }
func (p *Price) Currency() Currency      { return p.currency }
func (p *Price) Priority() int32         { return p.priority }
func (p *Price) Version() int64          { return p.version }

// Attributes returns the client-settable fields.
func (p *Price) Attributes() Attributes {
	return Attributes{
		BrandID:   p.brandID,
		ProductID: p.productID,
		StartDate: p.startDate,
		EndDate:   p.endDate,
		PriceList: p.priceList,
		Amount:    p.amount,
		Currency:  p.currency,
	}
}

// Replace builds the replacement for an update: id, priority and version are
// carried over, every client-settable field comes from attrs.
func (p *Price) Replace(attrs Attributes) (*Price, error) {
	return build(p.id, attrs, p.priority, p.version)
}

// WithIdentity returns a copy carrying the id and version assigned by a store.
func (p *Price) WithIdentity(id, version int64) (*Price, error) {
	if id <= 0 {
		return nil, fmt.Errorf("assign identity: id must be positive, got %d: %w", id, ErrInvalidArgument)
	}
	if p.HasID() && p.id != id {
		return nil, fmt.Errorf("assign identity: id %d is immutable, got %d: %w", p.id, id, ErrInvalidArgument)
	}
	cp := *p
	cp.id = id
	cp.version = version
	return &cp, nil
}

// IsActiveAt reports whether t falls inside [StartDate, EndDate], both ends
// inclusive.
func (p *Price) IsActiveAt(t time.Time) bool {
	return !t.Before(p.startDate) && !t.After(p.endDate)
}

// Matches reports whether the price belongs to the given brand and product.
func (p *Price) Matches(brandID int32, productID int64) bool {
	return p.brandID == brandID && p.productID == productID
}

// ByPrecedence orders prices so the one that wins resolution comes first:
// highest priority, then the latest start date, then the highest id.
// It has the signature expected by slices.SortFunc.
func ByPrecedence(a, b *Price) int {
	if c := cmp.Compare(b.priority, a.priority); c != 0 {
		return c
	}
	if c := b.startDate.Compare(a.startDate); c != 0 {
		return c
	}
	return cmp.Compare(b.id, a.id)
}
