package domain

import (
	"fmt"
	"strings"
)

// Currency is a validated ISO 4217 tag attached to a price. The zero value
// is not a valid currency.
type Currency struct {
	code string
}

// Supported currencies.
var (
	USD = Currency{code: "USD"}
	EUR = Currency{code: "EUR"}
	COP = Currency{code: "COP"}
)

// currencies is the registration table behind FromCode. Adding a currency
// only requires a new entry here.
var currencies = map[string]Currency{
	USD.code: USD,
	EUR.code: EUR,
	COP.code: COP,
}

// FromCode looks a currency up by code, ignoring case.
func FromCode(code string) (Currency, error) {
	if code == "" {
		return Currency{}, fmt.Errorf("%w: currency code must not be empty: %w", ErrInvalidCurrency, ErrInvalidArgument)
	}
	c, ok := currencies[strings.ToUpper(code)]
	if !ok {
		return Currency{}, fmt.Errorf("%w: no matching currency for code %q: %w", ErrInvalidCurrency, code, ErrInvalidArgument)
	}
	return c, nil
}

// Code returns the upper-case ISO code.
func (c Currency) Code() string { return c.code }

// IsZero reports whether c was never resolved from the registry.
func (c Currency) IsZero() bool { return c.code == "" }

func (c Currency) String() string { return c.code }
