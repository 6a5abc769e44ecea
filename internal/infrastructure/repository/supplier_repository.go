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

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db *gorm.DB) domainRepo.SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	return GetDB(ctx, r.db).Create(supplier).Error
}

func (r *supplierRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := GetDB(ctx, r.db).First(&supplier, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &supplier, err
}

func (r *supplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	return GetDB(ctx, r.db).Omit("Invoices", "Payments").Save(supplier).Error
}

func (r *supplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&entity.Supplier{}, "id = ?", id).Error
}

func (r *supplierRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Supplier, int64, error) {
	var suppliers []entity.Supplier
	var total int64

	query := GetDB(ctx, r.db).Model(&entity.Supplier{}).Scopes(Search(search, "name", "email", "tax_id"))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).Order("name ASC").Find(&suppliers).Error
	return suppliers, total, err
}

func (r *supplierRepository) CountReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	var invoices, payments int64
	db := GetDB(ctx, r.db)
	if err := db.Model(&entity.SupplierInvoice{}).Where("supplier_id = ?", id).Count(&invoices).Error; err != nil {
		return 0, err
	}
	if err := db.Model(&entity.SupplierPayment{}).Where("supplier_id = ?", id).Count(&payments).Error; err != nil {
		return 0, err
	}
	return invoices + payments, nil
}

func (r *supplierRepository) Totals(ctx context.Context, id uuid.UUID) (int64, int64, error) {
	var invoiced, paid int64
	db := GetDB(ctx, r.db)
	if err := db.Model(&entity.SupplierInvoice{}).
		Where("supplier_id = ?", id).
		Select("COALESCE(SUM(amount_gross), 0)").
		Scan(&invoiced).Error; err != nil {
		return 0, 0, err
	}
	if err := db.Model(&entity.SupplierPayment{}).
		Where("supplier_id = ?", id).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&paid).Error; err != nil {
		return 0, 0, err
	}
	return invoiced, paid, nil
}

type supplierInvoiceRepository struct {
	db *gorm.DB
}

// NewSupplierInvoiceRepository creates a new supplier invoice repository
func NewSupplierInvoiceRepository(db *gorm.DB) domainRepo.SupplierInvoiceRepository {
	return &supplierInvoiceRepository{db: db}
}

func (r *supplierInvoiceRepository) Create(ctx context.Context, invoice *entity.SupplierInvoice) error {
	return GetDB(ctx, r.db).Create(invoice).Error
}

func (r *supplierInvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SupplierInvoice, error) {
	var invoice entity.SupplierInvoice
	err := GetDB(ctx, r.db).First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *supplierInvoiceRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.SupplierInvoice, error) {
	var invoice entity.SupplierInvoice
	err := ForUpdate(GetDB(ctx, r.db)).First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *supplierInvoiceRepository) Update(ctx context.Context, invoice *entity.SupplierInvoice) error {
	return GetDB(ctx, r.db).Save(invoice).Error
}

func (r *supplierInvoiceRepository) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]entity.SupplierInvoice, error) {
	var invoices []entity.SupplierInvoice
	err := GetDB(ctx, r.db).Where("supplier_id = ?", supplierID).Order("issued_at ASC").Find(&invoices).Error
	return invoices, err
}

type supplierPaymentRepository struct {
	db *gorm.DB
}

// NewSupplierPaymentRepository creates a new supplier payment repository
func NewSupplierPaymentRepository(db *gorm.DB) domainRepo.SupplierPaymentRepository {
	return &supplierPaymentRepository{db: db}
}

func (r *supplierPaymentRepository) Create(ctx context.Context, payment *entity.SupplierPayment) error {
	return GetDB(ctx, r.db).Create(payment).Error
}

func (r *supplierPaymentRepository) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]entity.SupplierPayment, error) {
	var payments []entity.SupplierPayment
	err := GetDB(ctx, r.db).
		Preload("Applications").
		Where("supplier_id = ?", supplierID).
		Order("paid_at ASC").
		Find(&payments).Error
	return payments, err
}
