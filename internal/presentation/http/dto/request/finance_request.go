package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/finance"
)

// FinancingPlanRequest represents a new financing plan
type FinancingPlanRequest struct {
	Name        string         `json:"name"`
	Months      int            `json:"months"`
	InterestPct finance.Number `json:"interest_pct"`
	IsActive    *bool          `json:"is_active"`
}

// UpdateFinancingPlanRequest represents a partial plan update
type UpdateFinancingPlanRequest struct {
	Name        *string         `json:"name"`
	Months      *int            `json:"months"`
	InterestPct *finance.Number `json:"interest_pct"`
	IsActive    *bool           `json:"is_active"`
}

// CommissionPreviewRequest is the order being entered. Malformed numbers are
// accepted and count as zero.
type CommissionPreviewRequest struct {
	Items       []finance.Line `json:"items"`
	TotalAmount finance.Number `json:"total_amount"`
	Pct         finance.Number `json:"pct"`
}

// CommissionForOrderRequest asks for the commission of a stored order
type CommissionForOrderRequest struct {
	SellerID uuid.UUID       `json:"seller_id" binding:"required"`
	OrderID  uuid.UUID       `json:"order_id" binding:"required"`
	Pct      *finance.Number `json:"pct"`
	PaidAt   *time.Time      `json:"paid_at"`
	Note     *string         `json:"note"`
}

// CreateCommissionRequest records a commission with a manual amount
type CreateCommissionRequest struct {
	SellerID uuid.UUID      `json:"seller_id" binding:"required"`
	OrderID  *uuid.UUID     `json:"order_id"`
	Amount   finance.Number `json:"amount"`
	Pct      finance.Number `json:"pct"`
	PaidAt   *time.Time     `json:"paid_at"`
	Note     *string        `json:"note"`
}

// IncomeRequest represents a new income record
type IncomeRequest struct {
	OrderID     *uuid.UUID     `json:"order_id"`
	Description string         `json:"description"`
	AmountNet   finance.Number `json:"amount_net"`
	VATPct      finance.Number `json:"vat_pct"`
	ReceivedAt  *time.Time     `json:"received_at"`
}

// UpdateIncomeRequest represents a partial income update
type UpdateIncomeRequest struct {
	Description *string         `json:"description"`
	AmountNet   *finance.Number `json:"amount_net"`
	VATPct      *finance.Number `json:"vat_pct"`
	ReceivedAt  *time.Time      `json:"received_at"`
}
