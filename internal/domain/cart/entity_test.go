// internal/domain/cart/entity_test.go
package cart

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

func TestLineKey(t *testing.T) {
	variant := uint(42)

	assert.Equal(t, "7", LineKey(7, nil))
	assert.Equal(t, "7_42", LineKey(7, &variant))

	other := uint(43)
	assert.NotEqual(t, LineKey(7, &variant), LineKey(7, &other))
}

func TestClampQuantity_Bounds(t *testing.T) {
	cases := []struct {
		name      string
		requested int
		ceiling   int
		want      int
	}{
		{"within bounds", 3, 10, 3},
		{"above ceiling", 15, 10, 10},
		{"zero raised to one", 0, 10, 1},
		{"negative raised to one", -5, 10, 1},
		{"exactly at ceiling", 10, 10, 10},
		{"zero ceiling is hard", 3, 0, 0},
		{"negative ceiling is hard", 3, -1, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClampQuantity(tc.requested, tc.ceiling))
		})
	}
}

func TestClampQuantity_Idempotent(t *testing.T) {
	for _, q := range []int{-10, 0, 1, 5, 99, 1000} {
		for _, ceiling := range []int{0, 1, 5, 99} {
			once := ClampQuantity(q, ceiling)
			assert.Equal(t, once, ClampQuantity(once, ceiling),
				"clamp(clamp(%d,%d)) should equal clamp(%d,%d)", q, ceiling, q, ceiling)
		}
	}
}

func TestClampQuantity_StaysWithinCeiling(t *testing.T) {
	for q := -3; q <= 120; q += 7 {
		got := ClampQuantity(q, 50)
		assert.GreaterOrEqual(t, got, 1)
		assert.LessOrEqual(t, got, 50)
	}
}

func TestStockCeilingFor(t *testing.T) {
	assert.Equal(t, DefaultStockCeiling, StockCeilingFor(catalog.StockInfo{TrackStock: false, Stock: 0}))
	assert.Equal(t, DefaultStockCeiling, StockCeilingFor(catalog.StockInfo{TrackStock: false, Stock: 7}))
	assert.Equal(t, 7, StockCeilingFor(catalog.StockInfo{TrackStock: true, Stock: 7}))
	assert.Equal(t, 0, StockCeilingFor(catalog.StockInfo{TrackStock: true, Stock: 0}))
}

func testLine(key string, qty, ceiling int) Line {
	return Line{
		Key:          key,
		ProductID:    1,
		Name:         "Bamboo Cutlery Set",
		UnitPrice:    decimal.NewFromInt(12),
		Quantity:     qty,
		StockCeiling: ceiling,
		Selected:     true,
		AddedAt:      time.Now().UTC(),
	}
}

func TestMergeLine_SameKeySumsAndClamps(t *testing.T) {
	// Two adds of the same product against stock 5: 3 then 4 must land on
	// a single line holding 5, not 7.
	lines := mergeLine(nil, testLine("p1", 3, 5))
	lines = mergeLine(lines, testLine("p1", 4, 5))

	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestMergeLine_DistinctKeysStayDistinct(t *testing.T) {
	lines := mergeLine(nil, testLine("1", 2, 10))
	lines = mergeLine(lines, testLine("1_9", 2, 10))

	require.Len(t, lines, 2)
	assert.Equal(t, "1", lines[0].Key)
	assert.Equal(t, "1_9", lines[1].Key)
}

func TestMergeLine_KeepsOriginalPriceSnapshot(t *testing.T) {
	first := testLine("p1", 1, 10)
	first.UnitPrice = decimal.RequireFromString("19.99")

	second := testLine("p1", 1, 10)
	second.UnitPrice = decimal.RequireFromString("24.99") // price rose since first add

	lines := mergeLine(nil, first)
	lines = mergeLine(lines, second)

	require.Len(t, lines, 1)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.RequireFromString("19.99")))
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestMergeLine_Associativity(t *testing.T) {
	// Adding a then b matches adding a+b in one call when no clamping
	// occurs mid-sequence.
	const ceiling = 100
	for _, pair := range [][2]int{{1, 1}, {3, 4}, {10, 20}, {49, 50}} {
		a, b := pair[0], pair[1]

		stepwise := mergeLine(nil, testLine("p1", a, ceiling))
		stepwise = mergeLine(stepwise, testLine("p1", b, ceiling))

		oneShot := mergeLine(nil, testLine("p1", a+b, ceiling))

		require.Len(t, stepwise, 1)
		require.Len(t, oneShot, 1)
		assert.Equal(t, oneShot[0].Quantity, stepwise[0].Quantity, "a=%d b=%d", a, b)
	}
}

func TestSetLineQuantity(t *testing.T) {
	lines := []Line{testLine("p1", 2, 5)}

	lines, changed := setLineQuantity(lines, "p1", 9)
	assert.True(t, changed)
	assert.Equal(t, 5, lines[0].Quantity) // re-clamped

	lines, changed = setLineQuantity(lines, "missing", 3)
	assert.False(t, changed)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestRemoveLine_AbsentKeyIsNoOp(t *testing.T) {
	lines := []Line{testLine("p1", 2, 5), testLine("p2", 1, 5)}

	lines = removeLine(lines, "nope")
	assert.Len(t, lines, 2)

	lines = removeLine(lines, "p1")
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].Key)
}

func TestSelectLine(t *testing.T) {
	lines := []Line{testLine("p1", 2, 5)}

	lines, changed := selectLine(lines, "p1", false)
	assert.True(t, changed)
	assert.False(t, lines[0].Selected)

	_, changed = selectLine(lines, "missing", true)
	assert.False(t, changed)
}
