// internal/pkg/money/money_test.go
package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRound_HalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12.505", "12.51"},
		{"12.504", "12.5"},
		{"12.495", "12.5"},
		{"-12.505", "-12.51"},
		{"0.005", "0.01"},
		{"10", "10"},
	}

	for _, tt := range tests {
		got := Round(decimal.RequireFromString(tt.in))
		assert.Equal(t, tt.want, got.String(), "Round(%s)", tt.in)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$12.50", Format(decimal.RequireFromString("12.5")))
	assert.Equal(t, "$0.00", Format(decimal.Zero))
	assert.Equal(t, "-$3.25", Format(decimal.RequireFromString("-3.25")))
}
