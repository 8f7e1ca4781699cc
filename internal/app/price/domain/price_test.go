package domain

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.DateTime, s)
	if err != nil {
		panic(err)
	}
	return t
}

func validAttributes() Attributes {
	return Attributes{
		BrandID:   1,
		ProductID: 35455,
		StartDate: ts("2020-06-14 00:00:00"),
		EndDate:   ts("2020-12-31 23:59:59"),
		PriceList: 1,
		Amount:    decimal.RequireFromString("35.50"),
		Currency:  EUR,
	}
}

func TestNewPrice(t *testing.T) {
	t.Run("new price has no id and default priority", func(t *testing.T) {
		p, err := NewPrice(validAttributes())
		require.NoError(t, err)
		assert.False(t, p.HasID())
		assert.Equal(t, int64(0), p.ID())
		assert.Equal(t, DefaultPriority, p.Priority())
		assert.Equal(t, int64(0), p.Version())
		assert.Equal(t, validAttributes(), p.Attributes())
	})

	t.Run("start equal to end is allowed", func(t *testing.T) {
		attrs := validAttributes()
		attrs.EndDate = attrs.StartDate
		p, err := NewPrice(attrs)
		require.NoError(t, err)
		assert.True(t, p.IsActiveAt(attrs.StartDate))
	})

	t.Run("instants are truncated to the second in UTC", func(t *testing.T) {
		attrs := validAttributes()
		loc := time.FixedZone("UTC+2", 2*60*60)
		attrs.StartDate = time.Date(2020, 6, 14, 2, 0, 0, 999, loc)
		p, err := NewPrice(attrs)
		require.NoError(t, err)
		assert.Equal(t, ts("2020-06-14 00:00:00"), p.StartDate())
		assert.Equal(t, time.UTC, p.StartDate().Location())
	})

	t.Run("zero amount is allowed", func(t *testing.T) {
		attrs := validAttributes()
		attrs.Amount = decimal.Zero
		_, err := NewPrice(attrs)
		require.NoError(t, err)
	})
}

func TestNewPrice_Invariants(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Attributes)
		field  string
		kind   error
	}{
		{"start after end", func(a *Attributes) { a.StartDate = a.EndDate.Add(time.Second) }, FieldStartDate, ErrInvalidArgument},
		{"missing start", func(a *Attributes) { a.StartDate = time.Time{} }, FieldStartDate, ErrInvalidDateFormat},
		{"missing end", func(a *Attributes) { a.EndDate = time.Time{} }, FieldEndDate, ErrInvalidDateFormat},
		{"negative price list", func(a *Attributes) { a.PriceList = -1 }, FieldPriceList, ErrInvalidArgument},
		{"negative amount", func(a *Attributes) { a.Amount = decimal.NewFromInt(-1) }, FieldPrice, ErrInvalidArgument},
		{"no currency", func(a *Attributes) { a.Currency = Currency{} }, FieldCurrency, ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := validAttributes()
			tt.mutate(&attrs)

			p, err := NewPrice(attrs)
			require.Error(t, err)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, tt.kind)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			require.Len(t, ve.Violations, 1)
			assert.Equal(t, tt.field, ve.Violations[0].Field)
		})
	}
}

func TestRestorePrice(t *testing.T) {
	t.Run("keeps id priority and version", func(t *testing.T) {
		p, err := RestorePrice(7, validAttributes(), 3, 5)
		require.NoError(t, err)
		assert.True(t, p.HasID())
		assert.Equal(t, int64(7), p.ID())
		assert.Equal(t, int32(3), p.Priority())
		assert.Equal(t, int64(5), p.Version())
	})

	t.Run("requires an id", func(t *testing.T) {
		_, err := RestorePrice(0, validAttributes(), 0, 0)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("rejects negative priority", func(t *testing.T) {
		_, err := RestorePrice(1, validAttributes(), -1, 0)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestPrice_Replace(t *testing.T) {
	stored, err := RestorePrice(7, validAttributes(), 1, 4)
	require.NoError(t, err)

	attrs := validAttributes()
	attrs.Amount = decimal.RequireFromString("99.99")
	attrs.Currency = USD
	attrs.PriceList = 9

	replaced, err := stored.Replace(attrs)
	require.NoError(t, err)

	assert.Equal(t, int64(7), replaced.ID())
	assert.Equal(t, int32(1), replaced.Priority())
	assert.Equal(t, int64(4), replaced.Version())
	assert.Equal(t, attrs, replaced.Attributes())

	// receiver untouched
	assert.True(t, stored.Amount().Equal(decimal.RequireFromString("35.50")))
}

func TestPrice_WithIdentity(t *testing.T) {
	p, err := NewPrice(validAttributes())
	require.NoError(t, err)

	saved, err := p.WithIdentity(42, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(42), saved.ID())
	assert.Equal(t, int64(1), saved.Version())
	assert.False(t, p.HasID())

	t.Run("id is immutable once set", func(t *testing.T) {
		_, err := saved.WithIdentity(43, 2)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("same id bumps version", func(t *testing.T) {
		next, err := saved.WithIdentity(42, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(2), next.Version())
	})

	t.Run("non-positive id", func(t *testing.T) {
		_, err := p.WithIdentity(0, 1)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestPrice_IsActiveAt(t *testing.T) {
	attrs := validAttributes()
	attrs.StartDate = ts("2020-06-14 15:00:00")
	attrs.EndDate = ts("2020-06-14 18:30:00")
	p, err := NewPrice(attrs)
	require.NoError(t, err)

	assert.True(t, p.IsActiveAt(ts("2020-06-14 15:00:00")), "start is inclusive")
	assert.True(t, p.IsActiveAt(ts("2020-06-14 18:30:00")), "end is inclusive")
	assert.True(t, p.IsActiveAt(ts("2020-06-14 16:00:00")))
	assert.False(t, p.IsActiveAt(ts("2020-06-14 14:59:59")))
	assert.False(t, p.IsActiveAt(ts("2020-06-14 18:30:01")))
}

func TestByPrecedence(t *testing.T) {
	mk := func(id int64, priority int32, start string) *Price {
		attrs := validAttributes()
		attrs.StartDate = ts(start)
		p, err := RestorePrice(id, attrs, priority, 1)
		require.NoError(t, err)
		return p
	}

	low := mk(1, 0, "2020-06-14 00:00:00")
	high := mk(2, 1, "2020-06-14 00:00:00")
	highLater := mk(3, 1, "2020-06-15 00:00:00")
	highLaterBiggerID := mk(4, 1, "2020-06-15 00:00:00")

	prices := []*Price{low, high, highLater, highLaterBiggerID}
	slices.SortFunc(prices, ByPrecedence)

	assert.Equal(t, []int64{4, 3, 2, 1}, []int64{prices[0].ID(), prices[1].ID(), prices[2].ID(), prices[3].ID()})
	assert.Zero(t, ByPrecedence(high, high))
}
