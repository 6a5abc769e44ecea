package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/enum"
	"github.com/sangkips/salesdesk-api/internal/domain/finance"
	"gorm.io/gorm"
)

// Order represents a sale to a client
type Order struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Code            string           `gorm:"size:100;unique;not null" json:"code"`
	ClientID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"client_id"`
	SellerID        *uuid.UUID       `gorm:"type:uuid;index" json:"seller_id,omitempty"`
	FinancingPlanID *uuid.UUID       `gorm:"type:uuid;index" json:"financing_plan_id,omitempty"`
	CreatedBy       *uuid.UUID       `gorm:"type:uuid" json:"created_by,omitempty"`
	OrderDate       time.Time        `gorm:"not null" json:"order_date"`
	Status          enum.OrderStatus `gorm:"default:0" json:"status"`
	TotalAmount     int64            `gorm:"default:0" json:"-"` // Stored in cents, before financing
	TotalFinal      int64            `gorm:"default:0" json:"-"` // Stored in cents, after financing
	PaidAmount      int64            `gorm:"default:0" json:"-"` // Stored in cents
	Notes           *string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`

	// Relationships
	Client        *Client             `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Seller        *Seller             `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	FinancingPlan *FinancingPlan      `gorm:"foreignKey:FinancingPlanID" json:"financing_plan,omitempty"`
	Items         []OrderItem         `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Installments  []Installment       `gorm:"foreignKey:OrderID" json:"installments,omitempty"`
	Payments      []Payment           `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
	Commissions   []CommissionPayment `gorm:"foreignKey:OrderID" json:"commissions,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"total_amount"`
		TotalFinal  float64 `json:"total_final"`
		PaidAmount  float64 `json:"paid_amount"`
		Due         float64 `json:"due"`
	}{
		Alias:       Alias(o),
		TotalAmount: float64(o.TotalAmount) / 100,
		TotalFinal:  float64(o.TotalFinal) / 100,
		PaidAmount:  float64(o.PaidAmount) / 100,
		Due:         float64(o.Due()) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// Due returns what is still owed on the order, in cents
func (o *Order) Due() int64 {
	due := o.TotalFinal - o.PaidAmount
	if due < 0 {
		return 0
	}
	return due
}

// Lines returns the order items in the shape the commission engine expects
func (o *Order) Lines() []finance.Line {
	lines := make([]finance.Line, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, item.Line())
	}
	return lines
}

// OrderItem represents a line of an order
type OrderItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   *uuid.UUID `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Description string     `gorm:"size:255" json:"description"`
	Quantity    float64    `gorm:"type:decimal(12,3);not null" json:"quantity"`
	Price       int64      `gorm:"not null" json:"-"` // Stored in cents
	Discount    int64      `gorm:"default:0" json:"-"` // Stored in cents
	Subtotal    int64      `gorm:"not null" json:"-"` // Stored in cents
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		Price    float64 `json:"price"`
		Discount float64 `json:"discount"`
		Subtotal float64 `json:"subtotal"`
	}{
		Alias:    Alias(i),
		Price:    float64(i.Price) / 100,
		Discount: float64(i.Discount) / 100,
		Subtotal: float64(i.Subtotal) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// Line converts the stored item back to currency units
func (i OrderItem) Line() finance.Line {
	subtotal := finance.Number(finance.FromCents(i.Subtotal).InexactFloat64())
	return finance.Line{
		Price:    finance.Number(finance.FromCents(i.Price).InexactFloat64()),
		Quantity: finance.Number(i.Quantity),
		Discount: finance.Number(finance.FromCents(i.Discount).InexactFloat64()),
		Subtotal: &subtotal,
	}
}

// Installment is one scheduled payment of a financed order
type Installment struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	OrderID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"order_id"`
	Number     int        `gorm:"not null" json:"number"`
	DueDate    time.Time  `gorm:"not null" json:"due_date"`
	Amount     int64      `gorm:"not null" json:"-"` // Stored in cents
	PaidAmount int64      `gorm:"default:0" json:"-"` // Stored in cents
	PaidAt     *time.Time `json:"paid_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i Installment) MarshalJSON() ([]byte, error) {
	type Alias Installment
	return json.Marshal(&struct {
		Alias
		Amount     float64 `json:"amount"`
		PaidAmount float64 `json:"paid_amount"`
		Paid       bool    `json:"paid"`
	}{
		Alias:      Alias(i),
		Amount:     float64(i.Amount) / 100,
		PaidAmount: float64(i.PaidAmount) / 100,
		Paid:       i.IsPaid(),
	})
}

// BeforeCreate generates a UUID before creating a new installment
func (i *Installment) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Installment model
func (Installment) TableName() string {
	return "installments"
}

// IsPaid reports whether the installment is fully covered
func (i *Installment) IsPaid() bool {
	return i.PaidAmount >= i.Amount
}

// Outstanding returns the unpaid part of the installment, in cents
func (i *Installment) Outstanding() int64 {
	if i.IsPaid() {
		return 0
	}
	return i.Amount - i.PaidAmount
}
