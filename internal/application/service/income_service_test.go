package service

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/finance"
	"github.com/sangkips/salesdesk-api/pkg/apperror"
	"github.com/sangkips/salesdesk-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncomeService_CreateIncome(t *testing.T) {
	env := setupTestEnv(t)

	record, err := env.incomes.CreateIncome(env.ctx, &CreateIncomeInput{Description: "Repair service", AmountNet: 100, VATPct: 21})
	require.NoError(t, err)
	assert.Equal(t, int64(100_00), record.AmountNet)
	assert.Equal(t, int64(121_00), record.AmountGross)
	assert.False(t, record.ReceivedAt.IsZero())

	t.Run("rounds half up to the cent", func(t *testing.T) {
		record, err := env.incomes.CreateIncome(env.ctx, &CreateIncomeInput{Description: "Fee", AmountNet: 0.05, VATPct: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(6), record.AmountGross)
	})

	t.Run("validates", func(t *testing.T) {
		_, err := env.incomes.CreateIncome(env.ctx, &CreateIncomeInput{AmountNet: -1, VATPct: 120})
		require.Error(t, err)
		assert.Len(t, apperror.GetAppError(err).Errors, 3)
	})

	t.Run("unknown order", func(t *testing.T) {
		id := uuid.New()
		_, err := env.incomes.CreateIncome(env.ctx, &CreateIncomeInput{OrderID: &id, Description: "x", AmountNet: 1})
		assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
	})
}

func TestIncomeService_UpdateIncome(t *testing.T) {
	env := setupTestEnv(t)
	record, err := env.incomes.CreateIncome(env.ctx, &CreateIncomeInput{Description: "Rent", AmountNet: 200, VATPct: 10})
	require.NoError(t, err)

	t.Run("vat only keeps the stored net", func(t *testing.T) {
		vat := finance.Number(21)
		updated, err := env.incomes.UpdateIncome(env.ctx, &UpdateIncomeInput{ID: record.ID, VATPct: &vat})
		require.NoError(t, err)
		assert.Equal(t, int64(200_00), updated.AmountNet)
		assert.Equal(t, int64(242_00), updated.AmountGross)
	})

	t.Run("net only keeps the stored vat", func(t *testing.T) {
		net := finance.Number(50)
		updated, err := env.incomes.UpdateIncome(env.ctx, &UpdateIncomeInput{ID: record.ID, AmountNet: &net})
		require.NoError(t, err)
		assert.Equal(t, 21.0, updated.VATPct)
		assert.Equal(t, int64(60_50), updated.AmountGross)

		stored, err := env.incomes.GetIncome(env.ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(60_50), stored.AmountGross)
	})

	t.Run("invalid vat leaves the record unchanged", func(t *testing.T) {
		vat := finance.Number(101)
		_, err := env.incomes.UpdateIncome(env.ctx, &UpdateIncomeInput{ID: record.ID, VATPct: &vat})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, apperror.GetAppError(err).Code)

		stored, err := env.incomes.GetIncome(env.ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, 21.0, stored.VATPct)
	})
}

func TestIncomeService_ListAndDelete(t *testing.T) {
	env := setupTestEnv(t)
	order := env.bareOrder(t, env.client(t).ID)

	linked, err := env.incomes.CreateIncome(env.ctx, &CreateIncomeInput{OrderID: &order.ID, Description: "Sale", AmountNet: 80})
	require.NoError(t, err)
	_, err = env.incomes.CreateIncome(env.ctx, &CreateIncomeInput{Description: "Other", AmountNet: 5})
	require.NoError(t, err)

	all, err := env.incomes.ListIncomes(env.ctx, pagination.DefaultPagination(), nil)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	forOrder, err := env.incomes.ListIncomes(env.ctx, pagination.DefaultPagination(), &order.ID)
	require.NoError(t, err)
	require.Len(t, forOrder.Items, 1)
	assert.Equal(t, linked.ID, forOrder.Items[0].ID)

	require.NoError(t, env.incomes.DeleteIncome(env.ctx, linked.ID))
	err = env.incomes.DeleteIncome(env.ctx, linked.ID)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}
