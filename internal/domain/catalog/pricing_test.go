// internal/domain/catalog/pricing_test.go
package catalog

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestResolvePrice_NotOnSale(t *testing.T) {
	p := Pricing{RetailPrice: dec("100"), OnSale: false, SalePrice: decPtr("80")}

	quote := ResolvePrice(p, time.Now())

	assert.True(t, quote.EffectivePrice.Equal(dec("100.00")))
	assert.Nil(t, quote.StrikePrice)
	assert.Equal(t, 0, quote.DiscountPercent)
}

func TestResolvePrice_SalePriceWinsOverPercentage(t *testing.T) {
	p := Pricing{
		RetailPrice:    dec("100"),
		OnSale:         true,
		SalePrice:      decPtr("75"),
		SalePercentage: decPtr("50"),
	}

	quote := ResolvePrice(p, time.Now())

	assert.True(t, quote.EffectivePrice.Equal(dec("75.00")))
	require.NotNil(t, quote.StrikePrice)
	assert.True(t, quote.StrikePrice.Equal(dec("100.00")))
	assert.Equal(t, 25, quote.DiscountPercent)
}

func TestResolvePrice_SalePercentage(t *testing.T) {
	p := Pricing{
		RetailPrice:    dec("100"),
		OnSale:         true,
		SalePercentage: decPtr("20"),
	}

	quote := ResolvePrice(p, time.Now())

	assert.True(t, quote.EffectivePrice.Equal(dec("80.00")), "got %s", quote.EffectivePrice)
	require.NotNil(t, quote.StrikePrice)
	assert.True(t, quote.StrikePrice.Equal(dec("100.00")))
	assert.Equal(t, 20, quote.DiscountPercent)
}

func TestResolvePrice_SalePercentageRoundsHalfUp(t *testing.T) {
	// The raw result must land exactly on 2 places.
	p := Pricing{
		RetailPrice:    dec("37.05"),
		OnSale:         true,
		SalePercentage: decPtr("15"),
	}

	quote := ResolvePrice(p, time.Now())

	// 37.05 * 0.85 = 31.4925 -> 31.49
	assert.True(t, quote.EffectivePrice.Equal(dec("31.49")), "got %s", quote.EffectivePrice)
}

func TestResolvePrice_SalePercentageRoundsOnce(t *testing.T) {
	// 10.00 * 0.8755 = 8.755 -> 8.76. Rounding the discount amount
	// first (1.245 -> 1.25) would give 8.75 instead.
	p := Pricing{
		RetailPrice:    dec("10.00"),
		OnSale:         true,
		SalePercentage: decPtr("12.45"),
	}

	quote := ResolvePrice(p, time.Now())

	assert.True(t, quote.EffectivePrice.Equal(dec("8.76")), "got %s", quote.EffectivePrice)
}

func TestResolvePrice_DiscountPercentFloorsAndClamps(t *testing.T) {
	cases := []struct {
		name   string
		retail string
		sale   string
		want   int
	}{
		{"floors fractional discount", "29.99", "19.99", 33},
		{"clamps above retail to zero", "50", "60", 0},
		{"clamps free items to one hundred", "50", "-1", 100},
		{"zero retail yields zero", "0", "0", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Pricing{
				RetailPrice: dec(tc.retail),
				OnSale:      true,
				SalePrice:   decPtr(tc.sale),
			}
			quote := ResolvePrice(p, time.Now())
			assert.Equal(t, tc.want, quote.DiscountPercent)
		})
	}
}

func TestResolvePrice_SaleWindow(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)

	p := Pricing{
		RetailPrice:  dec("100"),
		OnSale:       true,
		SalePrice:    decPtr("80"),
		SaleStartsAt: &start,
		SaleEndsAt:   &end,
	}

	before := ResolvePrice(p, start.Add(-time.Hour))
	assert.True(t, before.EffectivePrice.Equal(dec("100.00")))
	assert.Nil(t, before.StrikePrice)

	during := ResolvePrice(p, start.Add(24*time.Hour))
	assert.True(t, during.EffectivePrice.Equal(dec("80.00")))

	after := ResolvePrice(p, end.Add(time.Hour))
	assert.True(t, after.EffectivePrice.Equal(dec("100.00")))
	assert.Equal(t, 0, after.DiscountPercent)
}

func TestResolvePrice_OnSaleWithoutSaleFields(t *testing.T) {
	// Degraded input: priced as not on sale, not an error.
	p := Pricing{RetailPrice: dec("42.50"), OnSale: true}

	quote := ResolvePrice(p, time.Now())

	assert.True(t, quote.EffectivePrice.Equal(dec("42.50")))
	assert.Nil(t, quote.StrikePrice)
	assert.Equal(t, 0, quote.DiscountPercent)
}

func TestResolvePrice_Deterministic(t *testing.T) {
	at := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	p := Pricing{
		RetailPrice:    dec("19.99"),
		OnSale:         true,
		SalePercentage: decPtr("33"),
	}

	first := ResolvePrice(p, at)
	second := ResolvePrice(p, at)

	assert.True(t, first.EffectivePrice.Equal(second.EffectivePrice))
	assert.Equal(t, first.DiscountPercent, second.DiscountPercent)
	require.Equal(t, first.StrikePrice == nil, second.StrikePrice == nil)
	if first.StrikePrice != nil {
		assert.True(t, first.StrikePrice.Equal(*second.StrikePrice))
	}
}

func TestEntryOf_VariantOverridesProduct(t *testing.T) {
	product := &Product{
		ID:        7,
		Name:      "Ceramic Teapot",
		Status:    StatusActive,
		Pricing:   Pricing{RetailPrice: dec("10")},
		StockInfo: StockInfo{Stock: 3, TrackStock: true},
	}
	variant := &Variant{
		ID:        21,
		ProductID: 7,
		Name:      "Blue / Large",
		Status:    StatusActive,
		Pricing:   Pricing{RetailPrice: dec("25")},
		StockInfo: StockInfo{Stock: 8, TrackStock: true},
	}

	entry := EntryOf(product, variant)

	require.NotNil(t, entry.VariantID)
	assert.Equal(t, uint(21), *entry.VariantID)
	assert.Equal(t, "Ceramic Teapot - Blue / Large", entry.Name)
	assert.True(t, entry.RetailPrice.Equal(dec("25")))
	assert.Equal(t, 8, entry.Stock)

	plain := EntryOf(product, nil)
	assert.Nil(t, plain.VariantID)
	assert.True(t, plain.RetailPrice.Equal(dec("10")))
}
