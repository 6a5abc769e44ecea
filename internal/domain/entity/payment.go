package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Payment is money received from a client against an order
type Payment struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	OrderID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"order_id"`
	InstallmentID *uuid.UUID         `gorm:"type:uuid;index" json:"installment_id,omitempty"`
	Amount        int64              `gorm:"not null" json:"-"` // Stored in cents
	Method        enum.PaymentMethod `gorm:"size:20;not null" json:"method"`
	Reference     *string            `gorm:"size:100" json:"reference,omitempty"`
	PaidAt        time.Time          `gorm:"not null" json:"paid_at"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
