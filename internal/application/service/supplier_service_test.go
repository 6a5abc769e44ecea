package service

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/internal/domain/enum"
	"github.com/sangkips/salesdesk-api/internal/domain/finance"
	"github.com/sangkips/salesdesk-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) supplier(t *testing.T) *entity.Supplier {
	t.Helper()
	s, err := e.suppliers.CreateSupplier(e.ctx, &CreateSupplierInput{Name: "Maderas del Sur"})
	require.NoError(t, err)
	return s
}

func (e *testEnv) invoice(t *testing.T, supplier *entity.Supplier, net float64) *entity.SupplierInvoice {
	t.Helper()
	inv, err := e.suppliers.CreateInvoice(e.ctx, &CreateInvoiceInput{
		SupplierID: supplier.ID,
		Number:     "F-" + uuid.NewString()[:8],
		AmountNet:  finance.Number(net),
		VATPct:     21,
	})
	require.NoError(t, err)
	return inv
}

func TestSupplierService_CreateSupplier(t *testing.T) {
	env := setupTestEnv(t)

	supplier := env.supplier(t)
	assert.Equal(t, enum.SupplierTypeDistributor, supplier.Type)

	_, err := env.suppliers.CreateSupplier(env.ctx, &CreateSupplierInput{Name: "X", Type: "wholesale-ish"})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, apperror.GetAppError(err).Code)
}

func TestSupplierService_Invoices(t *testing.T) {
	env := setupTestEnv(t)
	supplier := env.supplier(t)

	invoice := env.invoice(t, supplier, 100)
	assert.Equal(t, int64(121_00), invoice.AmountGross)

	t.Run("partial update recomputes the gross", func(t *testing.T) {
		vat := finance.Number(10)
		updated, err := env.suppliers.UpdateInvoice(env.ctx, &UpdateInvoiceInput{ID: invoice.ID, VATPct: &vat})
		require.NoError(t, err)
		assert.Equal(t, int64(100_00), updated.AmountNet)
		assert.Equal(t, int64(110_00), updated.AmountGross)
	})

	t.Run("gross cannot drop below what was paid", func(t *testing.T) {
		_, err := env.suppliers.RecordPayment(env.ctx, &RecordSupplierPaymentInput{
			SupplierID:   supplier.ID,
			Amount:       60,
			Applications: []ApplicationInput{{InvoiceID: invoice.ID, Amount: 60}},
		})
		require.NoError(t, err)

		net := finance.Number(50)
		_, err = env.suppliers.UpdateInvoice(env.ctx, &UpdateInvoiceInput{ID: invoice.ID, AmountNet: &net})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, apperror.GetAppError(err).Code)
	})

	invoices, err := env.suppliers.ListInvoices(env.ctx, supplier.ID)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, int64(60_00), invoices[0].PaidAmount)
}

func TestSupplierService_RecordPayment(t *testing.T) {
	env := setupTestEnv(t)
	supplier := env.supplier(t)
	first := env.invoice(t, supplier, 100)
	second := env.invoice(t, supplier, 200)

	t.Run("applies to several invoices", func(t *testing.T) {
		payment, err := env.suppliers.RecordPayment(env.ctx, &RecordSupplierPaymentInput{
			SupplierID: supplier.ID,
			Amount:     200,
			Applications: []ApplicationInput{
				{InvoiceID: first.ID, Amount: 121},
				{InvoiceID: second.ID, Amount: 50},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, enum.PaymentMethodTransfer, payment.Method)
		assert.Len(t, payment.Applications, 2)

		payments, err := env.suppliers.ListPayments(env.ctx, supplier.ID)
		require.NoError(t, err)
		require.Len(t, payments, 1)
		assert.Len(t, payments[0].Applications, 2)
	})

	t.Run("applications above the payment", func(t *testing.T) {
		_, err := env.suppliers.RecordPayment(env.ctx, &RecordSupplierPaymentInput{
			SupplierID:   supplier.ID,
			Amount:       10,
			Applications: []ApplicationInput{{InvoiceID: second.ID, Amount: 11}},
		})
		require.Error(t, err)
		assert.Equal(t, "applications", apperror.GetAppError(err).Errors[0].Field)
	})

	t.Run("application above the invoice balance rolls back", func(t *testing.T) {
		_, err := env.suppliers.RecordPayment(env.ctx, &RecordSupplierPaymentInput{
			SupplierID: supplier.ID,
			Amount:     500,
			Applications: []ApplicationInput{
				{InvoiceID: second.ID, Amount: 10},
				{InvoiceID: first.ID, Amount: 1},
			},
		})
		require.Error(t, err)
		assert.Equal(t, "applications[1].amount", apperror.GetAppError(err).Errors[0].Field)

		invoices, err := env.suppliers.ListInvoices(env.ctx, supplier.ID)
		require.NoError(t, err)
		for _, inv := range invoices {
			if inv.ID == second.ID {
				assert.Equal(t, int64(50_00), inv.PaidAmount)
			}
		}
	})

	t.Run("invoice of another supplier", func(t *testing.T) {
		other := env.supplier(t)
		_, err := env.suppliers.RecordPayment(env.ctx, &RecordSupplierPaymentInput{
			SupplierID:   other.ID,
			Amount:       5,
			Applications: []ApplicationInput{{InvoiceID: first.ID, Amount: 5}},
		})
		assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
	})

	balance, err := env.suppliers.GetBalance(env.ctx, supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, 363.0, balance.Invoiced)
	assert.Equal(t, 200.0, balance.Paid)
	assert.Equal(t, 163.0, balance.Balance)
}

func TestSupplierService_DeleteSupplier(t *testing.T) {
	env := setupTestEnv(t)

	unused := env.supplier(t)
	require.NoError(t, env.suppliers.DeleteSupplier(env.ctx, unused.ID))

	used := env.supplier(t)
	env.invoice(t, used, 10)

	err := env.suppliers.DeleteSupplier(env.ctx, used.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
	assert.Equal(t, supplierInUseMessage, apperror.GetAppError(err).Message)
}
