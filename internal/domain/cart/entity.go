// internal/domain/cart/entity.go
package cart

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// DefaultStockCeiling is the soft cap applied when an entry's stock is
// unknown (stock tracking disabled). It bounds a single line, it does not
// assert availability.
const DefaultStockCeiling = 99

// Line represents a single row in a shopper's cart. UnitPrice is a
// snapshot taken when the line was created; it is not recomputed from the
// live catalog on later mutations.
type Line struct {
	Key          string          `json:"key"`
	ProductID    uint            `json:"product_id"`
	VariantID    *uint           `json:"variant_id,omitempty"`
	Name         string          `json:"name"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	StockCeiling int             `json:"stock_ceiling"`
	Selected     bool            `json:"selected"`
	AddedAt      time.Time       `json:"added_at"`
}

// LineTotal returns the snapshot price times quantity.
func (l Line) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// LineKey derives the unique cart row key for a (product, variant) pair.
// Two adds with the same key merge into one line; different variants of
// the same product stay distinct.
func LineKey(productID uint, variantID *uint) string {
	if variantID != nil {
		return fmt.Sprintf("%d_%d", productID, *variantID)
	}
	return fmt.Sprintf("%d", productID)
}

// ClampQuantity bounds a requested quantity to what the line may hold.
// A ceiling of zero is a hard ceiling (nothing can be held); otherwise
// the result is max(1, min(requested, ceiling)). Clamping is idempotent.
func ClampQuantity(requested, ceiling int) int {
	if ceiling <= 0 {
		return 0
	}
	if requested > ceiling {
		return ceiling
	}
	if requested < 1 {
		return 1
	}
	return requested
}

// StockCeilingFor derives a line's ceiling from an entry's stock info.
// Untracked stock means "unknown", bounded by the soft cap; a tracked
// stock of zero stays zero and blocks the add.
func StockCeilingFor(s catalog.StockInfo) int {
	if !s.TrackStock {
		return DefaultStockCeiling
	}
	return s.Stock
}

// findLine returns the index of the line with the given key, or -1.
func findLine(lines []Line, key string) int {
	for i := range lines {
		if lines[i].Key == key {
			return i
		}
	}
	return -1
}

// mergeLine inserts line into lines, summing quantities when the key
// already exists and re-clamping the result. The incoming line's price
// snapshot is kept only for new lines.
func mergeLine(lines []Line, line Line) []Line {
	if i := findLine(lines, line.Key); i >= 0 {
		lines[i].StockCeiling = line.StockCeiling
		lines[i].Quantity = ClampQuantity(lines[i].Quantity+line.Quantity, lines[i].StockCeiling)
		return lines
	}

	line.Quantity = ClampQuantity(line.Quantity, line.StockCeiling)
	return append(lines, line)
}

// setLineQuantity replaces the quantity of the line with the given key.
// The new value is re-clamped. An absent key leaves lines untouched.
func setLineQuantity(lines []Line, key string, quantity int) ([]Line, bool) {
	i := findLine(lines, key)
	if i < 0 {
		return lines, false
	}
	lines[i].Quantity = ClampQuantity(quantity, lines[i].StockCeiling)
	return lines, true
}

// removeLine deletes the line with the given key. An absent key is a
// no-op, not an error.
func removeLine(lines []Line, key string) []Line {
	i := findLine(lines, key)
	if i < 0 {
		return lines
	}
	return append(lines[:i], lines[i+1:]...)
}

// selectLine flags whether a line participates in the current checkout.
func selectLine(lines []Line, key string, selected bool) ([]Line, bool) {
	i := findLine(lines, key)
	if i < 0 {
		return lines, false
	}
	lines[i].Selected = selected
	return lines, true
}
