// internal/pkg/money/money.go
package money

import (
	"github.com/shopspring/decimal"
)

// Places is fixed at 2 for all stored and displayed amounts.
const Places = 2

// Round rounds an amount to currency precision (2 decimal places,
// half rounds away from zero).
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Format renders an amount as "$12.50". Negative amounts render as "-$12.50".
func Format(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(Places)
	}
	return "$" + d.StringFixed(Places)
}
