package service

import (
	"math"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/finance"
	"github.com/sangkips/salesdesk-api/pkg/apperror"
	"github.com/sangkips/salesdesk-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePlan(t *testing.T) {
	tests := []struct {
		name   string
		input  FinancingPlanInput
		fields []string
	}{
		{"valid", FinancingPlanInput{Name: "12 months", Months: 12, InterestPct: 15}, nil},
		{"cash plan", FinancingPlanInput{Name: "Cash", Months: 0, InterestPct: 0}, nil},
		{"blank name", FinancingPlanInput{Name: "  ", Months: 3}, []string{"name"}},
		{"negative months", FinancingPlanInput{Name: "x", Months: -1}, []string{"months"}},
		{"negative interest", FinancingPlanInput{Name: "x", Months: 3, InterestPct: -2}, []string{"interest_pct"}},
		{"nan interest", FinancingPlanInput{Name: "x", Months: 3, InterestPct: finance.Number(math.NaN())}, []string{"interest_pct"}},
		{"longest plan", FinancingPlanInput{Name: "30 years", Months: finance.MaxInstallments, InterestPct: finance.MaxRatePct}, nil},
		{"too many months", FinancingPlanInput{Name: "x", Months: finance.MaxInstallments + 1}, []string{"months"}},
		{"huge months", FinancingPlanInput{Name: "x", Months: 1 << 62}, []string{"months"}},
		{"interest beyond the column", FinancingPlanInput{Name: "x", Months: 3, InterestPct: 1000}, []string{"interest_pct"}},
		{"everything wrong", FinancingPlanInput{Months: -3, InterestPct: finance.Number(math.Inf(1))}, []string{"name", "months", "interest_pct"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePlan(&tt.input)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var got []string
			for _, fe := range apperror.GetAppError(err).Errors {
				got = append(got, fe.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestFinancingPlanService_CRUD(t *testing.T) {
	env := setupTestEnv(t)

	plan, err := env.plans.CreatePlan(env.ctx, &FinancingPlanInput{Name: " 6 months ", Months: 6, InterestPct: 12.5})
	require.NoError(t, err)
	assert.Equal(t, "6 months", plan.Name)
	assert.True(t, plan.IsActive)

	inactive := false
	_, err = env.plans.CreatePlan(env.ctx, &FinancingPlanInput{Name: "Old", Months: 24, IsActive: &inactive})
	require.NoError(t, err)

	all, err := env.plans.ListPlans(env.ctx, pagination.DefaultPagination(), false)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	active, err := env.plans.ListPlans(env.ctx, pagination.DefaultPagination(), true)
	require.NoError(t, err)
	require.Len(t, active.Items, 1)
	assert.Equal(t, plan.ID, active.Items[0].ID)

	t.Run("partial update keeps the other fields", func(t *testing.T) {
		months := 9
		updated, err := env.plans.UpdatePlan(env.ctx, &UpdatePlanInput{ID: plan.ID, Months: &months})
		require.NoError(t, err)
		assert.Equal(t, 9, updated.Months)
		assert.Equal(t, 12.5, updated.InterestPct)
		assert.Equal(t, "6 months", updated.Name)
	})

	t.Run("merged result is validated", func(t *testing.T) {
		bad := finance.Number(-1)
		_, err := env.plans.UpdatePlan(env.ctx, &UpdatePlanInput{ID: plan.ID, InterestPct: &bad})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, apperror.GetAppError(err).Code)

		stored, err := env.plans.GetPlan(env.ctx, plan.ID)
		require.NoError(t, err)
		assert.Equal(t, 12.5, stored.InterestPct)
	})

	t.Run("months are bounded on update", func(t *testing.T) {
		months := 1 << 62
		_, err := env.plans.UpdatePlan(env.ctx, &UpdatePlanInput{ID: plan.ID, Months: &months})
		require.Error(t, err)
		assert.Equal(t, "months", apperror.GetAppError(err).Errors[0].Field)
	})

	t.Run("unknown plan", func(t *testing.T) {
		_, err := env.plans.UpdatePlan(env.ctx, &UpdatePlanInput{ID: uuid.New()})
		assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
	})
}

func TestFinancingPlanService_DeletePlan(t *testing.T) {
	env := setupTestEnv(t)

	unused := env.plan(t, 3, 0)
	require.NoError(t, env.plans.DeletePlan(env.ctx, unused.ID))
	_, err := env.plans.GetPlan(env.ctx, unused.ID)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)

	used := env.plan(t, 3, 0)
	env.order(t, env.client(t).ID, nil, &used.ID)

	err = env.plans.DeletePlan(env.ctx, used.ID)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusConflict, appErr.Code)
	assert.Equal(t, planInUseMessage, appErr.Message)
}
