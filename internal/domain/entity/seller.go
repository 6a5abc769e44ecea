package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seller is a salesperson who earns commission on orders
type Seller struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Email         *string   `gorm:"size:255" json:"email,omitempty"`
	Phone         *string   `gorm:"size:50" json:"phone,omitempty"`
	CommissionPct float64   `gorm:"type:decimal(5,2);default:0" json:"commission_pct"`
	IsActive      bool      `gorm:"not null" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new seller
func (s *Seller) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Seller model
func (Seller) TableName() string {
	return "sellers"
}
