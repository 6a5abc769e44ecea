package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/pkg/pagination"
)

// SupplierRepository defines the interface for supplier data operations
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Supplier, int64, error)
	// CountReferences returns how many invoices and payments reference the supplier
	CountReferences(ctx context.Context, id uuid.UUID) (int64, error)
	// Totals returns the gross invoiced and the paid amounts of a supplier, in cents
	Totals(ctx context.Context, id uuid.UUID) (invoiced int64, paid int64, err error)
}

// SupplierInvoiceRepository defines the interface for supplier invoice data operations
type SupplierInvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.SupplierInvoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SupplierInvoice, error)
	// GetForUpdate loads the invoice and, where the database supports it,
	// locks the row until the surrounding transaction ends
	GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.SupplierInvoice, error)
	Update(ctx context.Context, invoice *entity.SupplierInvoice) error
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]entity.SupplierInvoice, error)
}

// SupplierPaymentRepository defines the interface for supplier payment data operations
type SupplierPaymentRepository interface {
	// Create stores the payment together with its applications
	Create(ctx context.Context, payment *entity.SupplierPayment) error
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]entity.SupplierPayment, error)
}
