package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/enum"
	"github.com/sangkips/salesdesk-api/internal/domain/finance"
)

// OrderItemRequest is one line of an order
type OrderItemRequest struct {
	ProductID   *uuid.UUID      `json:"product_id"`
	Description string          `json:"description"`
	Quantity    finance.Number  `json:"quantity"`
	Price       *finance.Number `json:"price"`
	Discount    finance.Number  `json:"discount"`
	Subtotal    *finance.Number `json:"subtotal"`
}

// CreateOrderRequest represents an order entered by an operator. TotalAmount
// is only read when there are no items.
type CreateOrderRequest struct {
	ClientID        uuid.UUID          `json:"client_id" binding:"required"`
	SellerID        *uuid.UUID         `json:"seller_id"`
	FinancingPlanID *uuid.UUID         `json:"financing_plan_id"`
	OrderDate       *time.Time         `json:"order_date"`
	TotalAmount     finance.Number     `json:"total_amount"`
	Notes           *string            `json:"notes"`
	Items           []OrderItemRequest `json:"items" binding:"dive"`
}

// RecordPaymentRequest represents a payment received for an order
type RecordPaymentRequest struct {
	InstallmentID *uuid.UUID         `json:"installment_id"`
	Amount        finance.Number     `json:"amount"`
	Method        enum.PaymentMethod `json:"method"`
	Reference     *string            `json:"reference"`
	PaidAt        *time.Time         `json:"paid_at"`
}
