package service

import (
	"math"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/finance"
	"github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommissionService_Preview(t *testing.T) {
	svc := &CommissionService{}

	tests := []struct {
		name   string
		input  CommissionPreviewInput
		base   string
		amount string
	}{
		{
			name: "lines",
			input: CommissionPreviewInput{
				Items: []finance.Line{
					{Price: 100, Quantity: 2, Discount: 10},
					{Price: 50, Quantity: 1},
				},
				TotalAmount: 999,
				Pct:         10,
			},
			base:   "240",
			amount: "24",
		},
		{
			name:   "no lines falls back to the total",
			input:  CommissionPreviewInput{TotalAmount: 300, Pct: 5},
			base:   "300",
			amount: "15",
		},
		{
			name:   "empty lines falls back to the total",
			input:  CommissionPreviewInput{Items: []finance.Line{}, TotalAmount: 300, Pct: 5},
			base:   "300",
			amount: "15",
		},
		{
			name:   "malformed pct counts as zero",
			input:  CommissionPreviewInput{TotalAmount: 300, Pct: finance.Number(math.NaN())},
			base:   "300",
			amount: "0",
		},
		{
			name:   "subtotal wins over price",
			input:  CommissionPreviewInput{Items: []finance.Line{{Price: 100, Quantity: 3, Subtotal: num(80)}}, Pct: 12.5},
			base:   "80",
			amount: "10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preview := svc.Preview(&tt.input)
			assert.Equal(t, tt.base, preview.Base.String())
			assert.Equal(t, tt.amount, preview.Amount.String())
		})
	}
}

func TestCommissionService_CreateForOrder(t *testing.T) {
	env := setupTestEnv(t)
	seller := env.seller(t, 7.5)
	order := env.order(t, env.client(t).ID, &seller.ID, nil)

	t.Run("defaults to the seller percentage", func(t *testing.T) {
		commission, err := env.commissions.CreateForOrder(env.ctx, &CreateForOrderInput{SellerID: seller.ID, OrderID: order.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(100_00), commission.Base)
		assert.Equal(t, 7.5, commission.Pct)
		assert.Equal(t, int64(7_50), commission.Amount)
		require.NotNil(t, commission.OrderID)
		assert.Equal(t, order.ID, *commission.OrderID)
	})

	t.Run("explicit percentage", func(t *testing.T) {
		commission, err := env.commissions.CreateForOrder(env.ctx, &CreateForOrderInput{SellerID: seller.ID, OrderID: order.ID, Pct: num(10)})
		require.NoError(t, err)
		assert.Equal(t, int64(10_00), commission.Amount)
	})

	t.Run("order without items uses its total", func(t *testing.T) {
		bare := env.bareOrder(t, order.ClientID)
		commission, err := env.commissions.CreateForOrder(env.ctx, &CreateForOrderInput{SellerID: seller.ID, OrderID: bare.ID, Pct: num(10)})
		require.NoError(t, err)
		assert.Equal(t, int64(80_00), commission.Base)
		assert.Equal(t, int64(8_00), commission.Amount)
	})

	t.Run("percentage out of range", func(t *testing.T) {
		_, err := env.commissions.CreateForOrder(env.ctx, &CreateForOrderInput{SellerID: seller.ID, OrderID: order.ID, Pct: num(150)})
		assert.Equal(t, http.StatusUnprocessableEntity, apperror.GetAppError(err).Code)
	})

	t.Run("unknown seller", func(t *testing.T) {
		_, err := env.commissions.CreateForOrder(env.ctx, &CreateForOrderInput{SellerID: uuid.New(), OrderID: order.ID})
		assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
	})

	list, err := env.commissions.ListCommissions(env.ctx, &repository.CommissionFilterParams{SellerID: &seller.ID})
	require.NoError(t, err)
	assert.Len(t, list.Items, 3)
}

func TestCommissionService_CreateCommission(t *testing.T) {
	env := setupTestEnv(t)
	seller := env.seller(t, 5)

	commission, err := env.commissions.CreateCommission(env.ctx, &CreateCommissionInput{SellerID: seller.ID, Amount: 42.5, Pct: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(42_50), commission.Amount)
	assert.Nil(t, commission.OrderID)

	_, err = env.commissions.CreateCommission(env.ctx, &CreateCommissionInput{SellerID: seller.ID, Amount: 0})
	assert.Equal(t, http.StatusUnprocessableEntity, apperror.GetAppError(err).Code)

	require.NoError(t, env.commissions.DeleteCommission(env.ctx, commission.ID))
	_, err = env.commissions.GetCommission(env.ctx, commission.ID)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}
