// internal/domain/checkout/calculator.go
package checkout

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/settings"
	"github.com/your-org/storefront-backend/internal/pkg/money"
)

// ErrEmptySelection is returned when a checkout is attempted with no
// selected cart lines. Checkout is unavailable rather than
// free-shipping-eligible by accident.
var ErrEmptySelection = errors.New("no items selected for checkout")

// Totals is the money breakdown of a checkout. Total is always the
// arithmetic sum of subtotal and shipping fee; it is never stored
// without being recomputed.
type Totals struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	ShippingFee  decimal.Decimal `json:"shipping_fee"`
	Total        decimal.Decimal `json:"total"`
	FreeShipping bool            `json:"free_shipping"`
}

// ShippingFee derives the shipping cost from the subtotal: waived at or
// above the free-shipping threshold, the flat fee below it.
func ShippingFee(subtotal decimal.Decimal, cfg *settings.ShippingConfig) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(cfg.MinimumOrderForFreeShipping) {
		return decimal.Zero
	}
	return money.Round(cfg.ShippingFee)
}

// CalculateTotals computes the checkout totals over the selected lines
// only. Zero selected lines is ErrEmptySelection.
func CalculateTotals(selected []cart.Line, cfg *settings.ShippingConfig) (Totals, error) {
	if len(selected) == 0 {
		return Totals{}, ErrEmptySelection
	}

	subtotal := decimal.Zero
	for _, line := range selected {
		subtotal = subtotal.Add(line.LineTotal())
	}
	subtotal = money.Round(subtotal)

	fee := ShippingFee(subtotal, cfg)
	return Totals{
		Subtotal:     subtotal,
		ShippingFee:  fee,
		Total:        subtotal.Add(fee),
		FreeShipping: fee.IsZero(),
	}, nil
}
