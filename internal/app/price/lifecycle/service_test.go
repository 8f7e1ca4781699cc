package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/price-resolver/internal/app/price/domain"
	"github.com/light-bringer/price-resolver/internal/app/price/queries/get_effective_price"
	"github.com/light-bringer/price-resolver/internal/app/price/repo"
	"github.com/light-bringer/price-resolver/internal/app/price/usecases/create_price"
	"github.com/light-bringer/price-resolver/internal/app/price/usecases/update_price"
)

func ptr[T any](v T) *T { return &v }

func ts(s string) *time.Time {
	t, err := time.Parse(time.DateTime, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func newService() (*Service, *repo.MemoryStore) {
	store := repo.NewMemoryStore()
	return NewService(
		get_effective_price.NewQuery(store),
		create_price.NewInteractor(store),
		update_price.NewInteractor(store),
	), store
}

func command(start, end string, priceList int32, amount string) domain.PriceCommand {
	return domain.PriceCommand{
		BrandID:      ptr(int32(1)),
		ProductID:    ptr(int64(35455)),
		StartDate:    ts(start),
		EndDate:      ts(end),
		PriceList:    ptr(priceList),
		Price:        ptr(decimal.RequireFromString(amount)),
		CurrencyCode: "EUR",
	}
}

func resolve(t *testing.T, svc *Service, at string) (*domain.Price, bool) {
	t.Helper()
	p, ok, err := svc.GetEffectivePrice(context.Background(), &get_effective_price.Request{
		At:        ts(at),
		BrandID:   ptr(int32(1)),
		ProductID: ptr(int64(35455)),
	})
	require.NoError(t, err)
	return p, ok
}

func TestService_CreatedPricesAlwaysHaveDefaultPriority(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	base, err := svc.Create(ctx, domain.CreateCommand{PriceCommand: command("2020-06-14 00:00:00", "2020-12-31 23:59:59", 1, "35.50")})
	require.NoError(t, err)
	promo, err := svc.Create(ctx, domain.CreateCommand{PriceCommand: command("2020-06-14 15:00:00", "2020-06-14 18:30:00", 2, "25.45")})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultPriority, base.Priority())
	assert.Equal(t, domain.DefaultPriority, promo.Priority())
	assert.NotEqual(t, base.ID(), promo.ID())

	// equal priority: the later start wins inside the overlap
	p, ok := resolve(t, svc, "2020-06-14 16:00:00")
	require.True(t, ok)
	assert.Equal(t, promo.ID(), p.ID())
}

func TestService_HigherPriorityWinsInsideOverlap(t *testing.T) {
	ctx := context.Background()
	svc, store := newService()

	base, err := svc.Create(ctx, domain.CreateCommand{PriceCommand: command("2020-06-14 00:00:00", "2020-12-31 23:59:59", 1, "35.5")})
	require.NoError(t, err)

	// priority is never client-settable, so the promotional record is imported
	promo, err := domain.RestorePrice(100, domain.Attributes{
		BrandID:   1,
		ProductID: 35455,
		StartDate: *ts("2020-06-14 15:00:00"),
		EndDate:   *ts("2020-06-14 18:30:00"),
		PriceList: 2,
		Amount:    decimal.RequireFromString("25.45"),
		Currency:  domain.EUR,
	}, 1, 1)
	require.NoError(t, err)
	require.NoError(t, store.Import(ctx, promo))

	p, ok := resolve(t, svc, "2020-06-14 16:00:00")
	require.True(t, ok)
	assert.True(t, p.Amount().Equal(decimal.RequireFromString("25.45")))

	p, ok = resolve(t, svc, "2020-06-14 21:00:00")
	require.True(t, ok)
	assert.Equal(t, base.ID(), p.ID())
	assert.True(t, p.Amount().Equal(decimal.RequireFromString("35.5")))

	_, ok = resolve(t, svc, "2020-06-13 14:00:00")
	assert.False(t, ok)
}

func TestService_CreateRejectsInvalidCommands(t *testing.T) {
	ctx := context.Background()
	svc, store := newService()

	_, err := svc.Create(ctx, domain.CreateCommand{PriceCommand: command("2020-06-15 21:00:00", "2020-06-14 21:00:00", 1, "1")})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	cmd := command("2020-06-14 00:00:00", "2020-06-15 00:00:00", 1, "1")
	cmd.CurrencyCode = "CurrencyError"
	_, err = svc.Create(ctx, domain.CreateCommand{PriceCommand: cmd})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "CurrencyError")

	assert.Equal(t, 0, store.Len())
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svc, store := newService()

	created, err := svc.Create(ctx, domain.CreateCommand{PriceCommand: command("2020-06-14 00:00:00", "2020-12-31 23:59:59", 1, "35.50")})
	require.NoError(t, err)

	t.Run("replaces the record in place", func(t *testing.T) {
		updated, ok, err := svc.Update(ctx, created.ID(), command("2020-07-01 00:00:00", "2020-07-31 23:59:59", 5, "12.00"))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, created.ID(), updated.ID())
		assert.Equal(t, created.Priority(), updated.Priority())
		assert.Equal(t, int32(5), updated.PriceList())
		assert.Equal(t, 1, store.Len())

		_, ok = resolve(t, svc, "2020-06-20 00:00:00")
		assert.False(t, ok)
		p, ok := resolve(t, svc, "2020-07-15 00:00:00")
		require.True(t, ok)
		assert.True(t, p.Amount().Equal(decimal.NewFromInt(12)))
	})

	t.Run("unknown id is an empty result", func(t *testing.T) {
		updated, ok, err := svc.Update(ctx, 99, command("2020-07-01 00:00:00", "2020-07-31 23:59:59", 5, "12.00"))
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, updated)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("zero and negative ids are empty results", func(t *testing.T) {
		for _, id := range []int64{0, -1} {
			updated, ok, err := svc.Update(ctx, id, command("2020-07-01 00:00:00", "2020-07-31 23:59:59", 5, "12.00"))
			require.NoError(t, err, "id %d", id)
			assert.False(t, ok)
			assert.Nil(t, updated)
		}
	})
}
