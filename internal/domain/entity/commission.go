package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommissionPayment is a commission disbursed to a seller. It may outlive the
// order it was computed from.
type CommissionPayment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	SellerID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"seller_id"`
	OrderID   *uuid.UUID `gorm:"type:uuid;index" json:"order_id,omitempty"`
	Base      int64      `gorm:"default:0" json:"-"` // Stored in cents
	Pct       float64    `gorm:"type:decimal(5,2);default:0" json:"pct"`
	Amount    int64      `gorm:"not null" json:"-"` // Stored in cents
	PaidAt    time.Time  `gorm:"not null" json:"paid_at"`
	Note      *string    `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Relationships
	Seller *Seller `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (c CommissionPayment) MarshalJSON() ([]byte, error) {
	type Alias CommissionPayment
	return json.Marshal(&struct {
		Alias
		Base   float64 `json:"base"`
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(c),
		Base:   float64(c.Base) / 100,
		Amount: float64(c.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new commission payment
func (c *CommissionPayment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CommissionPayment model
func (CommissionPayment) TableName() string {
	return "commission_payments"
}
