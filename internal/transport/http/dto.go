package http

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/price-resolver/internal/app/price/domain"
)

// DateTimeLayout is the wall-clock format used in paths, bodies and replies.
const DateTimeLayout = "2006-01-02 15:04:05"

// DateTime is a UTC instant written as yyyy-MM-dd HH:mm:ss.
type DateTime time.Time

func parseDateTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateTimeLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %w", errInvalidDateFormat, s, err)
	}
	return t, nil
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).UTC().Format(DateTimeLayout))
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: %s", errInvalidDateFormat, b)
	}
	t, err := parseDateTime(s)
	if err != nil {
		return err
	}
	*d = DateTime(t)
	return nil
}

// PriceDTO is the public view of a price. Priority stays internal.
type PriceDTO struct {
	ID        int64       `json:"id"`
	BrandID   int32       `json:"brandId"`
	ProductID int64       `json:"productId"`
	PriceList int32       `json:"priceList"`
	StartDate DateTime    `json:"startDate"`
	EndDate   DateTime    `json:"endDate"`
	Price     json.Number `json:"price"`
	Currency  string      `json:"currency"`
}

func toPriceDTO(p *domain.Price) PriceDTO {
	return PriceDTO{
		ID:        p.ID(),
		BrandID:   p.BrandID(),
		ProductID: p.ProductID(),
		PriceList: p.PriceList(),
		StartDate: DateTime(p.StartDate()),
		EndDate:   DateTime(p.EndDate()),
		Price:     json.Number(p.Amount().String()),
		Currency:  p.Currency().Code(),
	}
}

// PriceBody is the body of POST and PUT requests.
type PriceBody struct {
	BrandID   *int32           `json:"brandId"`
	ProductID *int64           `json:"productId"`
	PriceList *int32           `json:"priceList"`
	StartDate *DateTime        `json:"startDate"`
	EndDate   *DateTime        `json:"endDate"`
	Price     *decimal.Decimal `json:"price"`
	Currency  string           `json:"currency"`
}

func (b *PriceBody) toCommand() domain.PriceCommand {
	cmd := domain.PriceCommand{
		BrandID:      b.BrandID,
		ProductID:    b.ProductID,
		PriceList:    b.PriceList,
		Price:        b.Price,
		CurrencyCode: b.Currency,
	}
	if b.StartDate != nil {
		t := time.Time(*b.StartDate)
		cmd.StartDate = &t
	}
	if b.EndDate != nil {
		t := time.Time(*b.EndDate)
		cmd.EndDate = &t
	}
	return cmd
}
