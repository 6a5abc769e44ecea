package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	domainRepo "github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/pkg/pagination"
	"gorm.io/gorm"
)

type financingPlanRepository struct {
	db *gorm.DB
}

// NewFinancingPlanRepository creates a new financing plan repository
func NewFinancingPlanRepository(db *gorm.DB) domainRepo.FinancingPlanRepository {
	return &financingPlanRepository{db: db}
}

func (r *financingPlanRepository) Create(ctx context.Context, plan *entity.FinancingPlan) error {
	return GetDB(ctx, r.db).Create(plan).Error
}

func (r *financingPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FinancingPlan, error) {
	var plan entity.FinancingPlan
	err := GetDB(ctx, r.db).First(&plan, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &plan, err
}

func (r *financingPlanRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.FinancingPlan, error) {
	var plan entity.FinancingPlan
	err := ForUpdate(GetDB(ctx, r.db)).First(&plan, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &plan, err
}

func (r *financingPlanRepository) Update(ctx context.Context, plan *entity.FinancingPlan) error {
	return GetDB(ctx, r.db).Save(plan).Error
}

func (r *financingPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&entity.FinancingPlan{}, "id = ?", id).Error
}

func (r *financingPlanRepository) List(ctx context.Context, params *pagination.PaginationParams, activeOnly bool) ([]entity.FinancingPlan, int64, error) {
	var plans []entity.FinancingPlan
	var total int64

	query := GetDB(ctx, r.db).Model(&entity.FinancingPlan{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).Order("months ASC, name ASC").Find(&plans).Error
	return plans, total, err
}

func (r *financingPlanRepository) CountOrders(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&entity.Order{}).Where("financing_plan_id = ?", id).Count(&count).Error
	return count, err
}

type commissionRepository struct {
	db *gorm.DB
}

// NewCommissionRepository creates a new commission payment repository
func NewCommissionRepository(db *gorm.DB) domainRepo.CommissionRepository {
	return &commissionRepository{db: db}
}

func (r *commissionRepository) Create(ctx context.Context, commission *entity.CommissionPayment) error {
	return GetDB(ctx, r.db).Create(commission).Error
}

func (r *commissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CommissionPayment, error) {
	var commission entity.CommissionPayment
	err := GetDB(ctx, r.db).Preload("Seller").First(&commission, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &commission, err
}

func (r *commissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&entity.CommissionPayment{}, "id = ?", id).Error
}

func (r *commissionRepository) List(ctx context.Context, params *domainRepo.CommissionFilterParams) ([]entity.CommissionPayment, int64, error) {
	var commissions []entity.CommissionPayment
	var total int64

	query := GetDB(ctx, r.db).Model(&entity.CommissionPayment{})
	if params.SellerID != nil {
		query = query.Where("seller_id = ?", *params.SellerID)
	}
	if params.OrderID != nil {
		query = query.Where("order_id = ?", *params.OrderID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Preload("Seller").
		Order("paid_at DESC").
		Find(&commissions).Error
	return commissions, total, err
}

type incomeRepository struct {
	db *gorm.DB
}

// NewIncomeRepository creates a new income record repository
func NewIncomeRepository(db *gorm.DB) domainRepo.IncomeRepository {
	return &incomeRepository{db: db}
}

func (r *incomeRepository) Create(ctx context.Context, record *entity.IncomeRecord) error {
	return GetDB(ctx, r.db).Create(record).Error
}

func (r *incomeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.IncomeRecord, error) {
	var record entity.IncomeRecord
	err := GetDB(ctx, r.db).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

func (r *incomeRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.IncomeRecord, error) {
	var record entity.IncomeRecord
	err := ForUpdate(GetDB(ctx, r.db)).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

func (r *incomeRepository) Update(ctx context.Context, record *entity.IncomeRecord) error {
	return GetDB(ctx, r.db).Omit("Order").Save(record).Error
}

func (r *incomeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&entity.IncomeRecord{}, "id = ?", id).Error
}

func (r *incomeRepository) List(ctx context.Context, params *pagination.PaginationParams, orderID *uuid.UUID) ([]entity.IncomeRecord, int64, error) {
	var records []entity.IncomeRecord
	var total int64

	query := GetDB(ctx, r.db).Model(&entity.IncomeRecord{})
	if orderID != nil {
		query = query.Where("order_id = ?", *orderID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).Order("received_at DESC").Find(&records).Error
	return records, total, err
}
