package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/enum"
	"github.com/sangkips/salesdesk-api/internal/domain/finance"
)

// ClientRequest represents a client creation request
type ClientRequest struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address"`
	TaxID   *string `json:"tax_id"`
	Notes   *string `json:"notes"`
}

// UpdateClientRequest represents a partial client update
type UpdateClientRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
	TaxID   *string `json:"tax_id"`
	Notes   *string `json:"notes"`
}

// SellerRequest represents a seller creation request
type SellerRequest struct {
	Name          string  `json:"name"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone"`
	CommissionPct float64 `json:"commission_pct"`
	IsActive      *bool   `json:"is_active"`
}

// UpdateSellerRequest represents a partial seller update
type UpdateSellerRequest struct {
	Name          *string  `json:"name"`
	Email         *string  `json:"email"`
	Phone         *string  `json:"phone"`
	CommissionPct *float64 `json:"commission_pct"`
	IsActive      *bool    `json:"is_active"`
}

// SupplierRequest represents a supplier creation request
type SupplierRequest struct {
	Name    string            `json:"name"`
	Email   *string           `json:"email" binding:"omitempty,email"`
	Phone   *string           `json:"phone"`
	Address *string           `json:"address"`
	TaxID   *string           `json:"tax_id"`
	Type    enum.SupplierType `json:"type"`
}

// UpdateSupplierRequest represents a partial supplier update
type UpdateSupplierRequest struct {
	Name    *string            `json:"name"`
	Email   *string            `json:"email"`
	Phone   *string            `json:"phone"`
	Address *string            `json:"address"`
	TaxID   *string            `json:"tax_id"`
	Type    *enum.SupplierType `json:"type"`
}

// InvoiceRequest represents a bill received from a supplier
type InvoiceRequest struct {
	Number    string         `json:"number"`
	IssuedAt  *time.Time     `json:"issued_at"`
	DueAt     *time.Time     `json:"due_at"`
	AmountNet finance.Number `json:"amount_net"`
	VATPct    finance.Number `json:"vat_pct"`
}

// UpdateInvoiceRequest represents a partial invoice update
type UpdateInvoiceRequest struct {
	Number    *string         `json:"number"`
	IssuedAt  *time.Time      `json:"issued_at"`
	DueAt     *time.Time      `json:"due_at"`
	AmountNet *finance.Number `json:"amount_net"`
	VATPct    *finance.Number `json:"vat_pct"`
}

// ApplicationRequest assigns part of a supplier payment to an invoice
type ApplicationRequest struct {
	InvoiceID uuid.UUID      `json:"invoice_id" binding:"required"`
	Amount    finance.Number `json:"amount"`
}

// SupplierPaymentRequest represents money paid to a supplier
type SupplierPaymentRequest struct {
	Amount       finance.Number       `json:"amount"`
	Method       enum.PaymentMethod   `json:"method"`
	Reference    *string              `json:"reference"`
	PaidAt       *time.Time           `json:"paid_at"`
	Applications []ApplicationRequest `json:"applications" binding:"dive"`
}
