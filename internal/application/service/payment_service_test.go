package service

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/enum"
	"github.com/sangkips/salesdesk-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentService_RecordPayment(t *testing.T) {
	t.Run("pays the oldest installments first", func(t *testing.T) {
		env := setupTestEnv(t)
		plan := env.plan(t, 4, 0)
		order := env.order(t, env.client(t).ID, nil, &plan.ID)

		payment, err := env.payments.RecordPayment(env.ctx, &RecordPaymentInput{OrderID: order.ID, Amount: 40})
		require.NoError(t, err)
		assert.Equal(t, int64(40_00), payment.Amount)
		assert.Equal(t, enum.PaymentMethodCash, payment.Method)

		stored, err := env.orders.GetOrder(env.ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, enum.OrderStatusPartial, stored.Status)
		assert.Equal(t, int64(40_00), stored.PaidAmount)
		assert.Equal(t, int64(60_00), stored.Due())

		assert.True(t, stored.Installments[0].IsPaid())
		assert.NotNil(t, stored.Installments[0].PaidAt)
		assert.Equal(t, int64(15_00), stored.Installments[1].PaidAmount)
		assert.Nil(t, stored.Installments[1].PaidAt)
		assert.Zero(t, stored.Installments[2].PaidAmount)
	})

	t.Run("chosen installment is paid first", func(t *testing.T) {
		env := setupTestEnv(t)
		plan := env.plan(t, 4, 0)
		order := env.order(t, env.client(t).ID, nil, &plan.ID)
		last := order.Installments[3]

		_, err := env.payments.RecordPayment(env.ctx, &RecordPaymentInput{
			OrderID:       order.ID,
			InstallmentID: &last.ID,
			Amount:        30,
			Method:        enum.PaymentMethodTransfer,
		})
		require.NoError(t, err)

		stored, err := env.orders.GetOrder(env.ctx, order.ID)
		require.NoError(t, err)
		assert.True(t, stored.Installments[3].IsPaid())
		assert.Equal(t, int64(5_00), stored.Installments[0].PaidAmount)
	})

	t.Run("paying the full amount completes the order", func(t *testing.T) {
		env := setupTestEnv(t)
		order := env.bareOrder(t, env.client(t).ID)

		_, err := env.payments.RecordPayment(env.ctx, &RecordPaymentInput{OrderID: order.ID, Amount: 50})
		require.NoError(t, err)
		_, err = env.payments.RecordPayment(env.ctx, &RecordPaymentInput{OrderID: order.ID, Amount: 30})
		require.NoError(t, err)

		stored, err := env.orders.GetOrder(env.ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, enum.OrderStatusComplete, stored.Status)
		assert.Zero(t, stored.Due())

		payments, err := env.payments.ListPayments(env.ctx, order.ID)
		require.NoError(t, err)
		assert.Len(t, payments, 2)
	})

	t.Run("amount above the balance is rejected", func(t *testing.T) {
		env := setupTestEnv(t)
		order := env.bareOrder(t, env.client(t).ID)

		_, err := env.payments.RecordPayment(env.ctx, &RecordPaymentInput{OrderID: order.ID, Amount: 80.01})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, apperror.GetAppError(err).Code)

		stored, err := env.orders.GetOrder(env.ctx, order.ID)
		require.NoError(t, err)
		assert.Zero(t, stored.PaidAmount)
	})

	t.Run("invalid input", func(t *testing.T) {
		env := setupTestEnv(t)

		_, err := env.payments.RecordPayment(env.ctx, &RecordPaymentInput{OrderID: uuid.New(), Amount: 0, Method: "barter"})
		require.Error(t, err)
		assert.Len(t, apperror.GetAppError(err).Errors, 2)

		_, err = env.payments.RecordPayment(env.ctx, &RecordPaymentInput{OrderID: uuid.New(), Amount: 1e20})
		require.Error(t, err)
		assert.Equal(t, "amount", apperror.GetAppError(err).Errors[0].Field)
		assert.Contains(t, apperror.GetAppError(err).Errors[0].Message, "must not exceed")

		_, err = env.payments.RecordPayment(env.ctx, &RecordPaymentInput{OrderID: uuid.New(), Amount: 10})
		assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
	})

	t.Run("cancelled order takes no payments", func(t *testing.T) {
		env := setupTestEnv(t)
		order := env.bareOrder(t, env.client(t).ID)
		require.NoError(t, env.orders.CancelOrder(env.ctx, order.ID))

		_, err := env.payments.RecordPayment(env.ctx, &RecordPaymentInput{OrderID: order.ID, Amount: 10})
		assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	})
}
