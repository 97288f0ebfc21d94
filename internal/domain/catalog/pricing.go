// internal/domain/catalog/pricing.go
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/pkg/money"
)

// PriceQuote is the result of resolving an entry's price at an instant.
// StrikePrice, when set, is the original price to display crossed out.
type PriceQuote struct {
	EffectivePrice  decimal.Decimal  `json:"effective_price"`
	StrikePrice     *decimal.Decimal `json:"strike_price,omitempty"`
	DiscountPercent int              `json:"discount_percent"`
}

// ResolvePrice resolves the effective unit price of an entry at the given
// instant. It is a pure function of its inputs.
//
// Rules, in order:
//  1. Not on sale, or outside a defined sale window: retail price, no
//     discount.
//  2. Sale price set: it wins over the percentage. Discount is
//     floor((retail-sale)/retail*100) clamped to [0,100].
//  3. Only a percentage set: retail * (1 - pct/100), rounded to 2 places.
//  4. On sale with neither field set: degraded input, priced as rule 1.
func ResolvePrice(p Pricing, at time.Time) PriceQuote {
	retail := money.Round(p.RetailPrice)
	full := PriceQuote{EffectivePrice: retail}

	if !p.OnSale || !saleWindowActive(p.SaleStartsAt, p.SaleEndsAt, at) {
		return full
	}

	switch {
	case p.SalePrice != nil:
		sale := money.Round(*p.SalePrice)
		return PriceQuote{
			EffectivePrice:  sale,
			StrikePrice:     &retail,
			DiscountPercent: discountPercent(retail, sale),
		}

	case p.SalePercentage != nil:
		pct := *p.SalePercentage
		// Single rounding of retail*(100-pct)/100; rounding the cut
		// first would shift exact half-cent discounts by one cent.
		effective := money.Round(retail.Mul(decimal.NewFromInt(100).Sub(pct)).Div(decimal.NewFromInt(100)))
		return PriceQuote{
			EffectivePrice:  effective,
			StrikePrice:     &retail,
			DiscountPercent: int(pct.IntPart()),
		}

	default:
		// On sale but neither price nor percentage set.
		return full
	}
}

// saleWindowActive reports whether at falls inside [start, end].
// A missing bound is open; a sale with no bounds is always active.
func saleWindowActive(start, end *time.Time, at time.Time) bool {
	if start != nil && at.Before(*start) {
		return false
	}
	if end != nil && at.After(*end) {
		return false
	}
	return true
}

// discountPercent computes the badge percentage for an explicit sale
// price: floor of the relative discount, clamped to [0,100].
func discountPercent(retail, sale decimal.Decimal) int {
	if !retail.IsPositive() {
		return 0
	}

	pct := retail.Sub(sale).
		Mul(decimal.NewFromInt(100)).
		Div(retail).
		Floor()

	n := int(pct.IntPart())
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
