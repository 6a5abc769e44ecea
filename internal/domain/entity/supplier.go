package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/enum"
	"github.com/sangkips/salesdesk-api/internal/domain/finance"
	"gorm.io/gorm"
)

// Supplier represents a vendor the business buys from
type Supplier struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Name      string            `gorm:"size:255;not null" json:"name"`
	Email     *string           `gorm:"size:255" json:"email,omitempty"`
	Phone     *string           `gorm:"size:50" json:"phone,omitempty"`
	Address   *string           `gorm:"type:text" json:"address,omitempty"`
	TaxID     *string           `gorm:"size:50" json:"tax_id,omitempty"`
	Type      enum.SupplierType `gorm:"size:50;default:'distributor'" json:"type"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	// Relationships
	Invoices []SupplierInvoice `gorm:"foreignKey:SupplierID" json:"-"`
	Payments []SupplierPayment `gorm:"foreignKey:SupplierID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new supplier
func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Supplier model
func (Supplier) TableName() string {
	return "suppliers"
}

// SupplierInvoice is a bill received from a supplier
type SupplierInvoice struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	SupplierID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Number      string     `gorm:"size:100;not null" json:"number"`
	IssuedAt    time.Time  `gorm:"not null" json:"issued_at"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	AmountNet   int64      `gorm:"not null" json:"-"` // Stored in cents
	VATPct      float64    `gorm:"type:decimal(5,2);default:0" json:"vat_pct"`
	AmountGross int64      `gorm:"not null" json:"-"` // Stored in cents, derived
	PaidAmount  int64      `gorm:"default:0" json:"-"` // Stored in cents
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i SupplierInvoice) MarshalJSON() ([]byte, error) {
	type Alias SupplierInvoice
	return json.Marshal(&struct {
		Alias
		AmountNet   float64 `json:"amount_net"`
		AmountGross float64 `json:"amount_gross"`
		PaidAmount  float64 `json:"paid_amount"`
		Outstanding float64 `json:"outstanding"`
	}{
		Alias:       Alias(i),
		AmountNet:   float64(i.AmountNet) / 100,
		AmountGross: float64(i.AmountGross) / 100,
		PaidAmount:  float64(i.PaidAmount) / 100,
		Outstanding: float64(i.Outstanding()) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *SupplierInvoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SupplierInvoice model
func (SupplierInvoice) TableName() string {
	return "supplier_invoices"
}

// Recompute refreshes the derived gross amount
func (i *SupplierInvoice) Recompute() {
	i.AmountGross = finance.Gross(i.AmountNet, i.VATPct)
}

// Outstanding returns the unpaid part of the invoice, in cents
func (i *SupplierInvoice) Outstanding() int64 {
	if i.PaidAmount >= i.AmountGross {
		return 0
	}
	return i.AmountGross - i.PaidAmount
}

// SupplierPayment is money paid to a supplier, spread over invoices through
// its applications
type SupplierPayment struct {
	ID         uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	SupplierID uuid.UUID          `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Amount     int64              `gorm:"not null" json:"-"` // Stored in cents
	Method     enum.PaymentMethod `gorm:"size:20;not null" json:"method"`
	Reference  *string            `gorm:"size:100" json:"reference,omitempty"`
	PaidAt     time.Time          `gorm:"not null" json:"paid_at"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`

	// Relationships
	Applications []PaymentApplication `gorm:"foreignKey:PaymentID" json:"applications,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p SupplierPayment) MarshalJSON() ([]byte, error) {
	type Alias SupplierPayment
	return json.Marshal(&struct {
		Alias
		Amount    float64 `json:"amount"`
		Unapplied float64 `json:"unapplied"`
	}{
		Alias:     Alias(p),
		Amount:    float64(p.Amount) / 100,
		Unapplied: float64(p.Unapplied()) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new supplier payment
func (p *SupplierPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SupplierPayment model
func (SupplierPayment) TableName() string {
	return "supplier_payments"
}

// Unapplied returns the part of the payment not yet applied to any invoice
func (p *SupplierPayment) Unapplied() int64 {
	remaining := p.Amount
	for _, a := range p.Applications {
		remaining -= a.Amount
	}
	return remaining
}

// PaymentApplication links part of a supplier payment to an invoice
type PaymentApplication struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PaymentID uuid.UUID `gorm:"type:uuid;not null;index" json:"payment_id"`
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Amount    int64     `gorm:"not null" json:"-"` // Stored in cents
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Invoice *SupplierInvoice `gorm:"foreignKey:InvoiceID" json:"invoice,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (a PaymentApplication) MarshalJSON() ([]byte, error) {
	type Alias PaymentApplication
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(a),
		Amount: float64(a.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new application
func (a *PaymentApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PaymentApplication model
func (PaymentApplication) TableName() string {
	return "payment_applications"
}
