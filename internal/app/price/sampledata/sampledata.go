// Package sampledata holds the reference price table for brand 1 and
// product 35455 used by local environments and acceptance tests.
package sampledata

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/price-resolver/internal/app/price/contracts"
	"github.com/light-bringer/price-resolver/internal/app/price/domain"
)

const (
	BrandID   int32 = 1
	ProductID int64 = 35455
)

type row struct {
	id        int64
	start     string
	end       string
	priceList int32
	priority  int32
	amount    string
}

var rows = []row{
	{1, "2020-06-14 00:00:00", "2020-12-31 23:59:59", 1, 0, "35.50"},
	{2, "2020-06-14 15:00:00", "2020-06-14 18:30:00", 2, 1, "25.45"},
	{3, "2020-06-15 00:00:00", "2020-06-15 11:00:00", 3, 1, "30.50"},
	{4, "2020-06-15 16:00:00", "2020-12-31 23:59:59", 4, 1, "38.95"},
}

// Layout is the wall-clock format the reference rows are written in.
const Layout = "2006-01-02 15:04:05"

// Prices builds the reference prices with fixed ids 1 to 4.
func Prices() ([]*domain.Price, error) {
	prices := make([]*domain.Price, 0, len(rows))
	for _, r := range rows {
		start, err := time.ParseInLocation(Layout, r.start, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("sample price %d: %w", r.id, err)
		}
		end, err := time.ParseInLocation(Layout, r.end, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("sample price %d: %w", r.id, err)
		}
		p, err := domain.RestorePrice(r.id, domain.Attributes{
			BrandID:   BrandID,
			ProductID: ProductID,
			StartDate: start,
			EndDate:   end,
			PriceList: r.priceList,
			Amount:    decimal.RequireFromString(r.amount),
			Currency:  domain.EUR,
		}, r.priority, 1)
		if err != nil {
			return nil, fmt.Errorf("sample price %d: %w", r.id, err)
		}
		prices = append(prices, p)
	}
	return prices, nil
}

// Load imports the reference prices into the store.
func Load(ctx context.Context, importer contracts.PriceImporter) error {
	prices, err := Prices()
	if err != nil {
		return err
	}
	if err := importer.Import(ctx, prices...); err != nil {
		return fmt.Errorf("failed to import sample prices: %w", err)
	}
	return nil
}
