package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/internal/domain/enum"
	"github.com/sangkips/salesdesk-api/internal/domain/policy"
	"github.com/sangkips/salesdesk-api/pkg/pagination"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	// Create stores the order together with its items and installments
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// GetForUpdate loads the order and, where the database supports it,
	// locks the row until the surrounding transaction ends
	GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetByCode(ctx context.Context, code string) (*entity.Order, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)

	// CountDependents counts the items, payments and installments of an order
	CountDependents(ctx context.Context, id uuid.UUID) (policy.Dependents, error)
	// DeleteDependents removes the payments, installments and items of an order
	DeleteDependents(ctx context.Context, id uuid.UUID) error
	// DetachRecords clears the order reference of commission payments and
	// income records so they survive the order
	DetachRecords(ctx context.Context, id uuid.UUID) error
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.OrderStatus
	ClientID   *uuid.UUID
	SellerID   *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// InstallmentRepository defines the interface for installment data operations
type InstallmentRepository interface {
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.Installment, error)
	Update(ctx context.Context, installment *entity.Installment) error
}

// PaymentRepository defines the interface for order payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error)
}
