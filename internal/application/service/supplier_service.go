package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/internal/domain/enum"
	"github.com/sangkips/salesdesk-api/internal/domain/finance"
	"github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/pkg/apperror"
	"github.com/sangkips/salesdesk-api/pkg/pagination"
)

const supplierInUseMessage = "Supplier has invoices or payments and cannot be deleted"

// SupplierService handles suppliers, their invoices and the payments made to them
type SupplierService struct {
	txManager    repository.TransactionManager
	supplierRepo repository.SupplierRepository
	invoiceRepo  repository.SupplierInvoiceRepository
	paymentRepo  repository.SupplierPaymentRepository
}

// NewSupplierService creates a new supplier service
func NewSupplierService(
	txManager repository.TransactionManager,
	supplierRepo repository.SupplierRepository,
	invoiceRepo repository.SupplierInvoiceRepository,
	paymentRepo repository.SupplierPaymentRepository,
) *SupplierService {
	return &SupplierService{
		txManager:    txManager,
		supplierRepo: supplierRepo,
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
	}
}

// CreateSupplierInput represents the create supplier input
type CreateSupplierInput struct {
	Name    string
	Email   *string
	Phone   *string
	Address *string
	TaxID   *string
	Type    enum.SupplierType
}

// CreateSupplier creates a new supplier
func (s *SupplierService) CreateSupplier(ctx context.Context, input *CreateSupplierInput) (*entity.Supplier, error) {
	if input.Type == "" {
		input.Type = enum.SupplierTypeDistributor
	}
	var errs fieldErrors
	errs.required("name", input.Name)
	if !input.Type.Valid() {
		errs.add("type", "type must be one of distributor, wholesaler, producer, services")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	supplier := &entity.Supplier{
		Name:    strings.TrimSpace(input.Name),
		Email:   trimmed(input.Email),
		Phone:   trimmed(input.Phone),
		Address: trimmed(input.Address),
		TaxID:   trimmed(input.TaxID),
		Type:    input.Type,
	}

	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}

// GetSupplier retrieves a supplier by ID
func (s *SupplierService) GetSupplier(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	return supplier, nil
}

// ListSuppliers lists suppliers matching search
func (s *SupplierService) ListSuppliers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Supplier], error) {
	suppliers, total, err := s.supplierRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(suppliers, pag), nil
}

// UpdateSupplierInput represents the update supplier input
type UpdateSupplierInput struct {
	ID      uuid.UUID
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	TaxID   *string
	Type    *enum.SupplierType
}

// UpdateSupplier updates a supplier
func (s *SupplierService) UpdateSupplier(ctx context.Context, input *UpdateSupplierInput) (*entity.Supplier, error) {
	supplier, err := s.GetSupplier(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	var errs fieldErrors
	if input.Name != nil {
		errs.required("name", *input.Name)
		supplier.Name = strings.TrimSpace(*input.Name)
	}
	if input.Type != nil {
		if !input.Type.Valid() {
			errs.add("type", "type must be one of distributor, wholesaler, producer, services")
		}
		supplier.Type = *input.Type
	}
	if err := errs.err(); err != nil {
		return nil, err
	}
	if input.Email != nil {
		supplier.Email = trimmed(input.Email)
	}
	if input.Phone != nil {
		supplier.Phone = trimmed(input.Phone)
	}
	if input.Address != nil {
		supplier.Address = trimmed(input.Address)
	}
	if input.TaxID != nil {
		supplier.TaxID = trimmed(input.TaxID)
	}

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}

// DeleteSupplier deletes a supplier without invoices or payments
func (s *SupplierService) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		supplier, err := s.supplierRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if supplier == nil {
			return apperror.NewNotFoundError("Supplier")
		}

		refs, err := s.supplierRepo.CountReferences(ctx, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return apperror.NewConflictError(supplierInUseMessage)
		}
		return s.supplierRepo.Delete(ctx, id)
	})
	return translateWriteError(err, supplierInUseMessage)
}

// SupplierBalance summarises what is owed to a supplier
type SupplierBalance struct {
	SupplierID uuid.UUID `json:"supplier_id"`
	Invoiced   float64   `json:"invoiced"`
	Paid       float64   `json:"paid"`
	Balance    float64   `json:"balance"`
}

// GetBalance returns the gross invoiced, the paid total and their difference
func (s *SupplierService) GetBalance(ctx context.Context, id uuid.UUID) (*SupplierBalance, error) {
	if _, err := s.GetSupplier(ctx, id); err != nil {
		return nil, err
	}

	invoiced, paid, err := s.supplierRepo.Totals(ctx, id)
	if err != nil {
		return nil, err
	}

	return &SupplierBalance{
		SupplierID: id,
		Invoiced:   finance.FromCents(invoiced).InexactFloat64(),
		Paid:       finance.FromCents(paid).InexactFloat64(),
		Balance:    finance.FromCents(invoiced - paid).InexactFloat64(),
	}, nil
}

// CreateInvoiceInput represents a bill received from a supplier
type CreateInvoiceInput struct {
	SupplierID uuid.UUID
	Number     string
	IssuedAt   *time.Time
	DueAt      *time.Time
	AmountNet  finance.Number
	VATPct     finance.Number
}

// CreateInvoice stores a supplier invoice with its gross amount
func (s *SupplierService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.SupplierInvoice, error) {
	var errs fieldErrors
	errs.required("number", input.Number)
	validateNetAndVAT(&errs, input.AmountNet, input.VATPct)
	if err := errs.err(); err != nil {
		return nil, err
	}

	if _, err := s.GetSupplier(ctx, input.SupplierID); err != nil {
		return nil, err
	}

	invoice := &entity.SupplierInvoice{
		SupplierID: input.SupplierID,
		Number:     strings.TrimSpace(input.Number),
		IssuedAt:   paidAtOrNow(input.IssuedAt),
		DueAt:      input.DueAt,
		AmountNet:  finance.CentsOf(input.AmountNet),
		VATPct:     float64(input.VATPct),
	}
	invoice.Recompute()

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// UpdateInvoiceInput represents a partial invoice update
type UpdateInvoiceInput struct {
	ID        uuid.UUID
	Number    *string
	IssuedAt  *time.Time
	DueAt     *time.Time
	AmountNet *finance.Number
	VATPct    *finance.Number
}

// UpdateInvoice applies the given fields and recomputes the gross amount from
// the locked stored record. The gross may not drop below what was already paid.
func (s *SupplierService) UpdateInvoice(ctx context.Context, input *UpdateInvoiceInput) (*entity.SupplierInvoice, error) {
	var invoice *entity.SupplierInvoice
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.invoiceRepo.GetForUpdate(ctx, input.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return apperror.NewNotFoundError("Supplier invoice")
		}

		var errs fieldErrors
		if input.Number != nil {
			errs.required("number", *input.Number)
		}
		net := finance.Number(0)
		if input.AmountNet != nil {
			net = *input.AmountNet
		}
		vat := finance.Number(current.VATPct)
		if input.VATPct != nil {
			vat = *input.VATPct
		}
		validateNetAndVAT(&errs, net, vat)
		if err := errs.err(); err != nil {
			return err
		}

		if input.Number != nil {
			current.Number = strings.TrimSpace(*input.Number)
		}
		if input.IssuedAt != nil {
			current.IssuedAt = *input.IssuedAt
		}
		if input.DueAt != nil {
			current.DueAt = input.DueAt
		}
		if input.AmountNet != nil {
			current.AmountNet = finance.CentsOf(net)
		}
		current.VATPct = float64(vat)
		current.Recompute()

		if current.AmountGross < current.PaidAmount {
			return apperror.NewValidationError([]apperror.FieldError{
				apperror.Field("amount_net", "invoice total cannot drop below the amount already paid"),
			})
		}

		invoice = current
		return s.invoiceRepo.Update(ctx, current)
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// ListInvoices lists the invoices of a supplier
func (s *SupplierService) ListInvoices(ctx context.Context, supplierID uuid.UUID) ([]entity.SupplierInvoice, error) {
	if _, err := s.GetSupplier(ctx, supplierID); err != nil {
		return nil, err
	}
	return s.invoiceRepo.ListBySupplier(ctx, supplierID)
}

// ApplicationInput assigns part of a payment to an invoice
type ApplicationInput struct {
	InvoiceID uuid.UUID
	Amount    finance.Number
}

// RecordSupplierPaymentInput represents money paid to a supplier
type RecordSupplierPaymentInput struct {
	SupplierID   uuid.UUID
	Amount       finance.Number
	Method       enum.PaymentMethod
	Reference    *string
	PaidAt       *time.Time
	Applications []ApplicationInput
}

// RecordPayment stores a supplier payment and its applications. The
// applications may not exceed the payment and each one may not exceed the
// outstanding balance of its invoice.
func (s *SupplierService) RecordPayment(ctx context.Context, input *RecordSupplierPaymentInput) (*entity.SupplierPayment, error) {
	var errs fieldErrors
	amount := errs.positiveMoney("amount", input.Amount)
	if input.Method == "" {
		input.Method = enum.PaymentMethodTransfer
	}
	if !input.Method.Valid() {
		errs.add("method", "method must be one of cash, card, transfer, check")
	}

	var applied int64
	for i, app := range input.Applications {
		applied += errs.positiveMoney(fmt.Sprintf("applications[%d].amount", i), app.Amount)
	}
	if applied > amount {
		errs.add("applications", "applications exceed the payment amount")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	var payment *entity.SupplierPayment
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		supplier, err := s.supplierRepo.GetByID(ctx, input.SupplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return apperror.NewNotFoundError("Supplier")
		}

		payment = &entity.SupplierPayment{
			SupplierID: supplier.ID,
			Amount:     amount,
			Method:     input.Method,
			Reference:  trimmed(input.Reference),
			PaidAt:     paidAtOrNow(input.PaidAt),
		}

		for i, app := range input.Applications {
			invoice, err := s.invoiceRepo.GetForUpdate(ctx, app.InvoiceID)
			if err != nil {
				return err
			}
			if invoice == nil || invoice.SupplierID != supplier.ID {
				return apperror.NewNotFoundError("Supplier invoice")
			}

			cents := finance.CentsOf(app.Amount)
			if cents > invoice.Outstanding() {
				return apperror.NewValidationError([]apperror.FieldError{
					apperror.Field(fmt.Sprintf("applications[%d].amount", i), "amount exceeds the invoice outstanding balance"),
				})
			}

			invoice.PaidAmount += cents
			if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
				return err
			}
			payment.Applications = append(payment.Applications, entity.PaymentApplication{
				InvoiceID: invoice.ID,
				Amount:    cents,
			})
		}

		return s.paymentRepo.Create(ctx, payment)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// ListPayments lists the payments made to a supplier with their applications
func (s *SupplierService) ListPayments(ctx context.Context, supplierID uuid.UUID) ([]entity.SupplierPayment, error) {
	if _, err := s.GetSupplier(ctx, supplierID); err != nil {
		return nil, err
	}
	return s.paymentRepo.ListBySupplier(ctx, supplierID)
}
