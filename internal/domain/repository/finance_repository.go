package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/pkg/pagination"
)

// FinancingPlanRepository defines the interface for financing plan data operations
type FinancingPlanRepository interface {
	Create(ctx context.Context, plan *entity.FinancingPlan) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.FinancingPlan, error)
	// GetForUpdate loads the plan and, where the database supports it,
	// locks the row until the surrounding transaction ends
	GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.FinancingPlan, error)
	Update(ctx context.Context, plan *entity.FinancingPlan) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, activeOnly bool) ([]entity.FinancingPlan, int64, error)
	// CountOrders returns how many orders reference the plan
	CountOrders(ctx context.Context, id uuid.UUID) (int64, error)
}

// CommissionRepository defines the interface for commission payment data operations
type CommissionRepository interface {
	Create(ctx context.Context, commission *entity.CommissionPayment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CommissionPayment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *CommissionFilterParams) ([]entity.CommissionPayment, int64, error)
}

// CommissionFilterParams contains filtering parameters for commission queries
type CommissionFilterParams struct {
	Pagination *pagination.PaginationParams
	SellerID   *uuid.UUID
	OrderID    *uuid.UUID
}

// IncomeRepository defines the interface for income record data operations
type IncomeRepository interface {
	Create(ctx context.Context, record *entity.IncomeRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.IncomeRecord, error)
	// GetForUpdate loads the record and, where the database supports it,
	// locks the row until the surrounding transaction ends
	GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.IncomeRecord, error)
	Update(ctx context.Context, record *entity.IncomeRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, orderID *uuid.UUID) ([]entity.IncomeRecord, int64, error)
}
