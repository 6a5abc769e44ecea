package finance

import "github.com/shopspring/decimal"

const (
	// MaxInstallments caps a financing plan at thirty years of monthly payments
	MaxInstallments = 360
	// MaxRatePct is the largest percentage a decimal(5,2) column holds
	MaxRatePct = 999.99
)

// Gross applies a VAT percentage to a net amount in cents and rounds half-up to
// the nearest cent. A non-finite percentage counts as zero.
func Gross(netCents int64, vatPct float64) int64 {
	rate := decimal.NewFromFloat(FiniteOr(vatPct, 0)).Div(hundred)
	return decimal.NewFromInt(netCents).Mul(decimal.NewFromInt(1).Add(rate)).Round(0).IntPart()
}

// VAT returns the tax part of a net amount.
func VAT(netCents int64, vatPct float64) int64 {
	return Gross(netCents, vatPct) - netCents
}

// WithInterest returns the financed total of an order: the same half-up
// rounding as Gross, applied to the plan's interest percentage.
func WithInterest(totalCents int64, interestPct float64) int64 {
	return Gross(totalCents, interestPct)
}

// SplitInstallments divides a total into months equal parts in cents. The
// remainder cents go to the first installments so the parts always add up to
// the total. It returns nil when months is not positive or above
// MaxInstallments.
func SplitInstallments(totalCents int64, months int) []int64 {
	if months <= 0 || months > MaxInstallments {
		return nil
	}
	parts := make([]int64, months)
	each := totalCents / int64(months)
	rem := totalCents % int64(months)
	for i := range parts {
		parts[i] = each
		if int64(i) < rem {
			parts[i]++
		}
	}
	return parts
}
