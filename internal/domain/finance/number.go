// Package finance holds the money arithmetic shared by order entry, commissions,
// income records and supplier invoices. Every function here is pure and never
// fails: malformed numeric input is coerced to a neutral value.
package finance

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxAmount is the largest currency amount, in units, accepted as input. Its
// value in cents, with interest applied, stays well inside int64.
const MaxAmount = 1_000_000_000_000

var (
	hundred   = decimal.NewFromInt(100)
	maxAmount = decimal.NewFromInt(MaxAmount)
)

// Number is a float that decodes leniently from JSON. Numbers and numeric
// strings keep their value; anything else decodes to NaN so callers can fall
// back through FiniteOr instead of rejecting the whole payload.
type Number float64

// UnmarshalJSON never returns an error.
func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.TrimSpace(strings.Trim(s, `"`))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*n = Number(math.NaN())
		return nil
	}
	*n = Number(f)
	return nil
}

// MarshalJSON writes non-finite values as null.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
}

// Float returns the value, or def when it is not finite.
func (n Number) Float(def float64) float64 {
	return FiniteOr(float64(n), def)
}

// FiniteOr returns v unless it is NaN or infinite, in which case it returns def.
func FiniteOr(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// Decimal converts n to a decimal, treating non-finite input as zero.
func Decimal(n Number) decimal.Decimal {
	return decimal.NewFromFloat(n.Float(0))
}

// InRange reports whether n is finite and no larger in magnitude than MaxAmount.
func InRange(n Number) bool {
	f := float64(n)
	return !math.IsNaN(f) && !math.IsInf(f, 0) && math.Abs(f) <= MaxAmount
}

// WithinLimit reports whether d is no larger in magnitude than MaxAmount.
func WithinLimit(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(maxAmount)
}

// FromCents converts integer cents to currency units.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// ToCents rounds a currency amount to the nearest cent, half away from zero.
// Amounts beyond MaxAmount must be rejected before conversion.
func ToCents(d decimal.Decimal) int64 {
	return d.Mul(hundred).Round(0).IntPart()
}

// CentsOf converts a loosely typed currency amount to cents. Non-finite input
// yields 0.
func CentsOf(n Number) int64 {
	return ToCents(Decimal(n))
}
