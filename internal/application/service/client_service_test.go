package service

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/pkg/apperror"
	"github.com/sangkips/salesdesk-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientService(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("name and phone are required", func(t *testing.T) {
		_, err := env.clients.CreateClient(env.ctx, &CreateClientInput{Name: " "})
		require.Error(t, err)
		assert.Len(t, apperror.GetAppError(err).Errors, 2)
	})

	client := env.client(t)

	t.Run("update", func(t *testing.T) {
		email := " ana@example.com "
		updated, err := env.clients.UpdateClient(env.ctx, &UpdateClientInput{ID: client.ID, Email: &email})
		require.NoError(t, err)
		require.NotNil(t, updated.Email)
		assert.Equal(t, "ana@example.com", *updated.Email)
		assert.Equal(t, client.Phone, updated.Phone)

		blank := ""
		_, err = env.clients.UpdateClient(env.ctx, &UpdateClientInput{ID: client.ID, Phone: &blank})
		assert.Equal(t, http.StatusUnprocessableEntity, apperror.GetAppError(err).Code)
	})

	t.Run("list searches by name", func(t *testing.T) {
		_, err := env.clients.CreateClient(env.ctx, &CreateClientInput{Name: "Bruno Díaz", Phone: "555-0102"})
		require.NoError(t, err)

		result, err := env.clients.ListClients(env.ctx, pagination.DefaultPagination(), "bruno")
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "Bruno Díaz", result.Items[0].Name)
	})

	t.Run("client with orders cannot be deleted", func(t *testing.T) {
		env.bareOrder(t, client.ID)

		err := env.clients.DeleteClient(env.ctx, client.ID)
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
	})

	t.Run("delete unknown", func(t *testing.T) {
		err := env.clients.DeleteClient(env.ctx, uuid.New())
		assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
	})
}

func TestSellerService(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.sellers.CreateSeller(env.ctx, &CreateSellerInput{Name: "Eva", CommissionPct: 101})
	require.Error(t, err)
	assert.Equal(t, "commission_pct", apperror.GetAppError(err).Errors[0].Field)

	seller := env.seller(t, 3)
	assert.True(t, seller.IsActive)

	pct := 4.5
	updated, err := env.sellers.UpdateSeller(env.ctx, &UpdateSellerInput{ID: seller.ID, CommissionPct: &pct})
	require.NoError(t, err)
	assert.Equal(t, 4.5, updated.CommissionPct)

	_, err = env.commissions.CreateCommission(env.ctx, &CreateCommissionInput{SellerID: seller.ID, Amount: 10})
	require.NoError(t, err)

	err = env.sellers.DeleteSeller(env.ctx, seller.ID)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)

	free := env.seller(t, 1)
	assert.NoError(t, env.sellers.DeleteSeller(env.ctx, free.ID))
}
