package finance

import "github.com/shopspring/decimal"

// Line is one order line as entered by an operator. Subtotal, when present,
// wins over price*quantity-discount.
type Line struct {
	Price    Number  `json:"price"`
	Quantity Number  `json:"quantity"`
	Discount Number  `json:"discount"`
	Subtotal *Number `json:"subtotal,omitempty"`
}

// Amount returns the line's contribution to the order base.
func (l Line) Amount() decimal.Decimal {
	if l.Subtotal != nil {
		return Decimal(*l.Subtotal)
	}
	return Decimal(l.Price).Mul(Decimal(l.Quantity)).Sub(Decimal(l.Discount))
}

// OrderBase is the amount a seller's commission is computed on. With at least
// one line it is the sum of the line amounts; with no lines (nil or empty) it
// falls back to the order's total amount.
func OrderBase(lines []Line, totalAmount Number) decimal.Decimal {
	if len(lines) == 0 {
		return Decimal(totalAmount)
	}
	base := decimal.Zero
	for _, l := range lines {
		base = base.Add(l.Amount())
	}
	return base
}

// Commission returns base*pct/100 rounded to two decimal places. A non-finite
// percentage yields zero.
func Commission(base decimal.Decimal, pct Number) decimal.Decimal {
	return base.Mul(Decimal(pct)).Div(hundred).Round(2)
}
