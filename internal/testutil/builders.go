package testutil

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/price-resolver/internal/app/price/domain"
)

// PriceCommandBuilder helps create price commands for tests with a fluent interface.
type PriceCommandBuilder struct {
	brandID   int32
	productID int64
	start     time.Time
	end       time.Time
	priceList int32
	amount    string
	currency  string
}

// NewPriceCommandBuilder creates a new builder with default values:
// brand 1, product 35455, price list 1, 10.00 EUR for June 2020.
func NewPriceCommandBuilder() *PriceCommandBuilder {
	return &PriceCommandBuilder{
		brandID:   1,
		productID: 35455,
		start:     time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
		end:       time.Date(2020, 6, 30, 23, 59, 59, 0, time.UTC),
		priceList: 1,
		amount:    "10.00",
		currency:  "EUR",
	}
}

// WithProduct sets the brand and product.
func (b *PriceCommandBuilder) WithProduct(brandID int32, productID int64) *PriceCommandBuilder {
	b.brandID = brandID
	b.productID = productID
	return b
}

// WithInterval sets the validity interval.
func (b *PriceCommandBuilder) WithInterval(start, end time.Time) *PriceCommandBuilder {
	b.start = start
	b.end = end
	return b
}

// WithPriceList sets the price list.
func (b *PriceCommandBuilder) WithPriceList(priceList int32) *PriceCommandBuilder {
	b.priceList = priceList
	return b
}

// WithAmount sets the amount, written as a decimal string.
func (b *PriceCommandBuilder) WithAmount(amount string) *PriceCommandBuilder {
	b.amount = amount
	return b
}

// WithCurrency sets the currency code.
func (b *PriceCommandBuilder) WithCurrency(code string) *PriceCommandBuilder {
	b.currency = code
	return b
}

// Build constructs the PriceCommand.
func (b *PriceCommandBuilder) Build() domain.PriceCommand {
	amount := decimal.RequireFromString(b.amount)
	start, end := b.start, b.end
	brandID, productID, priceList := b.brandID, b.productID, b.priceList
	return domain.PriceCommand{
		BrandID:      &brandID,
		ProductID:    &productID,
		StartDate:    &start,
		EndDate:      &end,
		PriceList:    &priceList,
		Price:        &amount,
		CurrencyCode: b.currency,
	}
}

// BuildCreate wraps Build in a CreateCommand.
func (b *PriceCommandBuilder) BuildCreate() domain.CreateCommand {
	return domain.CreateCommand{PriceCommand: b.Build()}
}
