package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PriceCommand carries the unvalidated fields shared by create and update.
// Pointer fields are nil when the caller did not supply them.
type PriceCommand struct {
	BrandID      *int32
	ProductID    *int64
	StartDate    *time.Time
	EndDate      *time.Time
	PriceList    *int32
	Price        *decimal.Decimal
	CurrencyCode string
}

// CreateCommand requests a new price. Priority is deliberately absent:
// it is an internal ranking control, not a client-settable attribute.
type CreateCommand struct {
	PriceCommand
}

// UpdateCommand requests the full replacement of the price identified by ID.
type UpdateCommand struct {
	ID int64
	PriceCommand
}

// ValidateAttributes runs every field rule and returns the normalized
// attributes, or a *ValidationError listing all broken rules.
func (c *PriceCommand) ValidateAttributes() (Attributes, error) {
	var vs violations
	var attrs Attributes

	if c.BrandID == nil {
		vs.add(FieldBrandID, ErrMissingField, "brand id is required")
	} else {
		attrs.BrandID = *c.BrandID
	}

	if c.ProductID == nil {
		vs.add(FieldProductID, ErrMissingField, "product id is required")
	} else {
		attrs.ProductID = *c.ProductID
	}

	if c.StartDate == nil || c.StartDate.IsZero() {
		vs.add(FieldStartDate, ErrInvalidDateFormat, "start date is required")
	} else {
		attrs.StartDate = normalizeInstant(*c.StartDate)
	}

	if c.EndDate == nil || c.EndDate.IsZero() {
		vs.add(FieldEndDate, ErrInvalidDateFormat, "end date is required")
	} else {
		attrs.EndDate = normalizeInstant(*c.EndDate)
	}

	if !attrs.StartDate.IsZero() && !attrs.EndDate.IsZero() && attrs.StartDate.After(attrs.EndDate) {
		vs.add(FieldStartDate, ErrInvalidArgument, "start must precede end")
	}

	switch {
	case c.PriceList == nil:
		vs.add(FieldPriceList, ErrMissingField, "price list is required")
	case *c.PriceList < 0:
		vs.add(FieldPriceList, ErrInvalidArgument, fmt.Sprintf("must be >= 0, got %d", *c.PriceList))
	default:
		attrs.PriceList = *c.PriceList
	}

	switch {
	case c.Price == nil:
		vs.add(FieldPrice, ErrMissingField, "price is required")
	case c.Price.IsNegative():
		vs.add(FieldPrice, ErrInvalidArgument, fmt.Sprintf("must be >= 0, got %s", c.Price))
	default:
		attrs.Amount = *c.Price
	}

	currency, err := FromCode(c.CurrencyCode)
	if err != nil {
		vs.add(FieldCurrency, ErrInvalidArgument, err.Error())
	} else {
		attrs.Currency = currency
	}

	if err := vs.err(); err != nil {
		return Attributes{}, err
	}
	return attrs, nil
}

// ValidateCreate validates the command and builds the unsaved price with
// the default priority.
func (c *CreateCommand) ValidateCreate() (*Price, error) {
	attrs, err := c.ValidateAttributes()
	if err != nil {
		return nil, err
	}
	return NewPrice(attrs)
}

// Validate checks the field rules of an update. The id is not validated:
// an id that matches no stored price is an empty result, not an error.
func (c *UpdateCommand) Validate() (Attributes, error) {
	return c.ValidateAttributes()
}

// PriceQuery asks which price is in effect for a brand/product at an instant.
type PriceQuery struct {
	At        time.Time
	BrandID   int32
	ProductID int64
}

// NewPriceQuery validates the three query inputs. The instant is reduced to
// second precision like stored interval bounds.
func NewPriceQuery(at *time.Time, brandID *int32, productID *int64) (PriceQuery, error) {
	var vs violations
	var q PriceQuery

	if at == nil || at.IsZero() {
		vs.add(FieldAt, ErrInvalidDateFormat, "application date is required")
	} else {
		q.At = normalizeInstant(*at)
	}
	if brandID == nil {
		vs.add(FieldBrandID, ErrMissingField, "brand id is required")
	} else {
		q.BrandID = *brandID
	}
	if productID == nil {
		vs.add(FieldProductID, ErrMissingField, "product id is required")
	} else {
		q.ProductID = *productID
	}

	if err := vs.err(); err != nil {
		return PriceQuery{}, err
	}
	return q, nil
}
