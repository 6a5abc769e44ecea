package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/internal/domain/policy"
	domainRepo "github.com/sangkips/salesdesk-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return GetDB(ctx, r.db).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := GetDB(ctx, r.db).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := ForUpdate(GetDB(ctx, r.db)).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetByCode(ctx context.Context, code string) (*entity.Order, error) {
	var order entity.Order
	err := GetDB(ctx, r.db).First(&order, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := GetDB(ctx, r.db).
		Preload("Client").
		Preload("Seller").
		Preload("FinancingPlan").
		Preload("Items").
		Preload("Installments", func(db *gorm.DB) *gorm.DB { return db.Order("number ASC") }).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("paid_at ASC") }).
		Preload("Commissions").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Save(order).Error
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&entity.Order{}, "id = ?", id).Error
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := GetDB(ctx, r.db).Model(&entity.Order{}).Scopes(Search(params.Search, "code"))

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.ClientID != nil {
		query = query.Where("client_id = ?", *params.ClientID)
	}
	if params.SellerID != nil {
		query = query.Where("seller_id = ?", *params.SellerID)
	}
	if params.StartDate != nil {
		query = query.Where("order_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("order_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Preload("Client").
		Preload("Seller").
		Order(orderBy(params.SortBy, params.SortOrder, "order_date", "code", "total_final")).
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepository) CountDependents(ctx context.Context, id uuid.UUID) (policy.Dependents, error) {
	var deps policy.Dependents
	db := GetDB(ctx, r.db)

	if err := db.Model(&entity.OrderItem{}).Where("order_id = ?", id).Count(&deps.Items).Error; err != nil {
		return deps, err
	}
	if err := db.Model(&entity.Payment{}).Where("order_id = ?", id).Count(&deps.Payments).Error; err != nil {
		return deps, err
	}
	if err := db.Model(&entity.Installment{}).Where("order_id = ?", id).Count(&deps.Installments).Error; err != nil {
		return deps, err
	}
	return deps, nil
}

func (r *orderRepository) DeleteDependents(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)

	if err := db.Where("order_id = ?", id).Delete(&entity.Payment{}).Error; err != nil {
		return err
	}
	if err := db.Where("order_id = ?", id).Delete(&entity.Installment{}).Error; err != nil {
		return err
	}
	return db.Where("order_id = ?", id).Delete(&entity.OrderItem{}).Error
}

func (r *orderRepository) DetachRecords(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)

	if err := db.Model(&entity.CommissionPayment{}).Where("order_id = ?", id).Update("order_id", nil).Error; err != nil {
		return err
	}
	return db.Model(&entity.IncomeRecord{}).Where("order_id = ?", id).Update("order_id", nil).Error
}

type installmentRepository struct {
	db *gorm.DB
}

// NewInstallmentRepository creates a new installment repository
func NewInstallmentRepository(db *gorm.DB) domainRepo.InstallmentRepository {
	return &installmentRepository{db: db}
}

func (r *installmentRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.Installment, error) {
	var installments []entity.Installment
	err := GetDB(ctx, r.db).Where("order_id = ?", orderID).Order("number ASC").Find(&installments).Error
	return installments, err
}

func (r *installmentRepository) Update(ctx context.Context, installment *entity.Installment) error {
	return GetDB(ctx, r.db).Save(installment).Error
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new order payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return GetDB(ctx, r.db).Create(payment).Error
}

func (r *paymentRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := GetDB(ctx, r.db).Where("order_id = ?", orderID).Order("paid_at ASC").Find(&payments).Error
	return payments, err
}
