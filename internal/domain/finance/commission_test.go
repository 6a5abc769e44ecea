package finance_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/sangkips/salesdesk-api/internal/domain/finance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func num(v float64) *finance.Number {
	n := finance.Number(v)
	return &n
}

func TestOrderBase(t *testing.T) {
	tests := []struct {
		name  string
		lines []finance.Line
		total finance.Number
		want  string
	}{
		{
			name: "sums price times quantity minus discount",
			lines: []finance.Line{
				{Price: 100, Quantity: 2, Discount: 10},
				{Price: 50, Quantity: 1},
			},
			want: "240",
		},
		{
			name: "explicit subtotal wins",
			lines: []finance.Line{
				{Price: 100, Quantity: 2, Subtotal: num(150)},
				{Price: 50, Quantity: 1},
			},
			total: 9999,
			want:  "200",
		},
		{
			name: "malformed terms count as zero",
			lines: []finance.Line{
				{Price: finance.Number(math.NaN()), Quantity: 3},
				{Price: 20, Quantity: 2, Discount: finance.Number(math.Inf(1))},
				{Subtotal: num(math.NaN())},
			},
			want: "40",
		},
		{name: "no lines falls back to total", total: 500, want: "500"},
		{name: "empty lines falls back to total", lines: []finance.Line{}, total: 500, want: "500"},
		{name: "no lines and malformed total", total: finance.Number(math.NaN()), want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := finance.OrderBase(tt.lines, tt.total)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestCommission(t *testing.T) {
	t.Run("ten percent of 240", func(t *testing.T) {
		got := finance.Commission(decimal.NewFromInt(240), 10)
		assert.Equal(t, "24.00", got.StringFixed(2))
	})

	t.Run("zero base", func(t *testing.T) {
		assert.True(t, finance.Commission(decimal.Zero, 37.5).IsZero())
	})

	t.Run("non-finite percentage", func(t *testing.T) {
		assert.True(t, finance.Commission(decimal.NewFromInt(240), finance.Number(math.NaN())).IsZero())
		assert.True(t, finance.Commission(decimal.NewFromInt(240), finance.Number(math.Inf(1))).IsZero())
	})

	t.Run("never more than two decimals", func(t *testing.T) {
		got := finance.Commission(decimal.RequireFromString("333.33"), 7.77)
		assert.LessOrEqual(t, -got.Exponent(), int32(2))
		assert.Equal(t, "25.90", got.StringFixed(2))
	})
}

func TestNumber_UnmarshalJSON(t *testing.T) {
	var payload struct {
		Lines []finance.Line `json:"lines"`
		Total finance.Number `json:"total"`
	}
	body := `{"lines":[{"price":"100","quantity":2,"discount":10},{"price":"abc","quantity":1},{"price":50,"quantity":1,"subtotal":null}],"total":"oops"}`

	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	require.Len(t, payload.Lines, 3)

	assert.Equal(t, 100.0, payload.Lines[0].Price.Float(0))
	assert.True(t, math.IsNaN(float64(payload.Lines[1].Price)))
	assert.Nil(t, payload.Lines[2].Subtotal)
	assert.Equal(t, 0.0, payload.Total.Float(0))

	base := finance.OrderBase(payload.Lines, payload.Total)
	assert.Equal(t, "240", base.String())
}

func TestNumber_MarshalJSON(t *testing.T) {
	out, err := json.Marshal([]finance.Number{1.5, finance.Number(math.NaN())})
	require.NoError(t, err)
	assert.JSONEq(t, `[1.5, null]`, string(out))
}
