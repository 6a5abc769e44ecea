package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/finance"
	"gorm.io/gorm"
)

// IncomeRecord is revenue booked with its VAT breakdown
type IncomeRecord struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     *uuid.UUID `gorm:"type:uuid;index" json:"order_id,omitempty"`
	Description string     `gorm:"size:255;not null" json:"description"`
	AmountNet   int64      `gorm:"not null" json:"-"` // Stored in cents
	VATPct      float64    `gorm:"type:decimal(5,2);default:0" json:"vat_pct"`
	AmountGross int64      `gorm:"not null" json:"-"` // Stored in cents, derived
	ReceivedAt  time.Time  `gorm:"not null" json:"received_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relationships
	Order *Order `gorm:"foreignKey:OrderID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (r IncomeRecord) MarshalJSON() ([]byte, error) {
	type Alias IncomeRecord
	return json.Marshal(&struct {
		Alias
		AmountNet   float64 `json:"amount_net"`
		AmountGross float64 `json:"amount_gross"`
	}{
		Alias:       Alias(r),
		AmountNet:   float64(r.AmountNet) / 100,
		AmountGross: float64(r.AmountGross) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new income record
func (r *IncomeRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the IncomeRecord model
func (IncomeRecord) TableName() string {
	return "income_records"
}

// Recompute refreshes the derived gross amount
func (r *IncomeRecord) Recompute() {
	r.AmountGross = finance.Gross(r.AmountNet, r.VATPct)
}
