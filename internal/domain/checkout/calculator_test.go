// internal/domain/checkout/calculator_test.go
package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/settings"
)

func shippingRule(fee, threshold string) *settings.ShippingConfig {
	return &settings.ShippingConfig{
		ShippingFee:                 decimal.RequireFromString(fee),
		MinimumOrderForFreeShipping: decimal.RequireFromString(threshold),
	}
}

func line(price string, qty int, selected bool) cart.Line {
	return cart.Line{
		Key:       "p1",
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  qty,
		Selected:  selected,
	}
}

func TestShippingFee_ThresholdBoundary(t *testing.T) {
	rule := shippingRule("10", "50")

	below := ShippingFee(decimal.RequireFromString("49.99"), rule)
	assert.True(t, below.Equal(decimal.RequireFromString("10.00")))

	at := ShippingFee(decimal.RequireFromString("50.00"), rule)
	assert.True(t, at.IsZero())

	above := ShippingFee(decimal.RequireFromString("120.00"), rule)
	assert.True(t, above.IsZero())
}

func TestShippingFee_Monotonic(t *testing.T) {
	rule := shippingRule("7.50", "75")

	// A larger subtotal never pays more shipping than a smaller one.
	prev := ShippingFee(decimal.Zero, rule)
	for _, s := range []string{"10", "74.99", "75", "75.01", "500"} {
		fee := ShippingFee(decimal.RequireFromString(s), rule)
		assert.True(t, fee.LessThanOrEqual(prev), "fee rose at subtotal %s", s)
		prev = fee
	}
}

func TestCalculateTotals_Scenario(t *testing.T) {
	rule := shippingRule("10", "50")

	totals, err := CalculateTotals([]cart.Line{line("49.99", 1, true)}, rule)
	require.NoError(t, err)
	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("49.99")))
	assert.True(t, totals.ShippingFee.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("59.99")))
	assert.False(t, totals.FreeShipping)

	totals, err = CalculateTotals([]cart.Line{line("50.00", 1, true)}, rule)
	require.NoError(t, err)
	assert.True(t, totals.ShippingFee.IsZero())
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, totals.FreeShipping)
}

func TestCalculateTotals_TotalIdentity(t *testing.T) {
	rule := shippingRule("9.95", "60")

	lines := []cart.Line{
		line("19.99", 2, true),
		line("0.01", 3, true),
	}

	totals, err := CalculateTotals(lines, rule)
	require.NoError(t, err)
	assert.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.ShippingFee)))
}

func TestCalculateTotals_EmptySelection(t *testing.T) {
	rule := shippingRule("10", "50")

	_, err := CalculateTotals(nil, rule)
	assert.ErrorIs(t, err, ErrEmptySelection)

	_, err = CalculateTotals([]cart.Line{}, rule)
	assert.ErrorIs(t, err, ErrEmptySelection)
}
