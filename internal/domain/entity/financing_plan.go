package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FinancingPlan describes how an order total is spread over monthly
// installments. Months == 0 means the order is paid at once.
type FinancingPlan struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Months      int       `gorm:"not null;default:0" json:"months"`
	InterestPct float64   `gorm:"type:decimal(5,2);default:0" json:"interest_pct"`
	IsActive    bool      `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new plan
func (p *FinancingPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FinancingPlan model
func (FinancingPlan) TableName() string {
	return "financing_plans"
}
