package m_price

import (
	"math/big"
	"time"
)

// Data represents the database model for the prices table.
type Data struct {
	PriceID   int64     `spanner:"price_id"`
	BrandID   int64     `spanner:"brand_id"`
	ProductID int64     `spanner:"product_id"`
	PriceList int64     `spanner:"price_list"`
	Priority  int64     `spanner:"priority"`
	StartDate time.Time `spanner:"start_date"`
	EndDate   time.Time `spanner:"end_date"`
	Amount    big.Rat   `spanner:"amount"`
	Currency  string    `spanner:"currency"`
	Version   int64     `spanner:"version"`
	CreatedAt time.Time `spanner:"created_at"`
	UpdatedAt time.Time `spanner:"updated_at"`
}
