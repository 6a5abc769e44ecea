package service

import (
	"net/http"
	"testing"
	"time"

	"github.com/sangkips/salesdesk-api/internal/config"
	"github.com/sangkips/salesdesk-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/salesdesk-api/internal/infrastructure/repository"
	"github.com/sangkips/salesdesk-api/pkg/apperror"
	"github.com/sangkips/salesdesk-api/pkg/pagination"
	"github.com/sangkips/salesdesk-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupAuth(t *testing.T) (*testEnv, *AuthService, *UserService) {
	t.Helper()
	env := setupTestEnv(t)
	require.NoError(t, database.SeedDefaultData(env.db, config.AdminConfig{
		Email:    "Admin@Example.com",
		Password: "changeme123",
	}, zap.NewNop()))

	userRepo := infraRepo.NewUserRepository(env.db)
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return env,
		NewAuthService(userRepo, jwtManager),
		NewUserService(env.tx, userRepo, infraRepo.NewRoleRepository(env.db))
}

func TestAuthService_Login(t *testing.T) {
	env, auth, _ := setupAuth(t)

	out, err := auth.Login(env.ctx, &LoginInput{Email: " admin@example.com ", Password: "changeme123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, []string{"admin"}, out.User.RoleNames())
	assert.Contains(t, out.User.GetPermissions(), "manage-orders")

	t.Run("wrong password", func(t *testing.T) {
		_, err := auth.Login(env.ctx, &LoginInput{Email: "admin@example.com", Password: "nope"})
		assert.Equal(t, apperror.ErrInvalidCredentials, err)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := auth.Login(env.ctx, &LoginInput{Email: "ghost@example.com", Password: "changeme123"})
		assert.Equal(t, apperror.ErrInvalidCredentials, err)
	})

	t.Run("refresh", func(t *testing.T) {
		refreshed, err := auth.RefreshToken(env.ctx, out.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, out.User.ID, refreshed.User.ID)

		_, err = auth.RefreshToken(env.ctx, out.AccessToken)
		assert.Equal(t, apperror.ErrInvalidToken, err)
	})
}

func TestAuthService_Profile(t *testing.T) {
	env, auth, _ := setupAuth(t)
	out, err := auth.Login(env.ctx, &LoginInput{Email: "admin@example.com", Password: "changeme123"})
	require.NoError(t, err)
	id := out.User.ID

	user, err := auth.UpdateProfile(env.ctx, id, "  Head Office  ")
	require.NoError(t, err)
	assert.Equal(t, "Head Office", user.Name)

	_, err = auth.UpdateProfile(env.ctx, id, " ")
	assert.Equal(t, http.StatusUnprocessableEntity, apperror.GetAppError(err).Code)

	err = auth.ChangePassword(env.ctx, &ChangePasswordInput{UserID: id, CurrentPassword: "wrong", NewPassword: "longenough1"})
	assert.Equal(t, "current_password", apperror.GetAppError(err).Errors[0].Field)

	require.NoError(t, auth.ChangePassword(env.ctx, &ChangePasswordInput{UserID: id, CurrentPassword: "changeme123", NewPassword: "longenough1"}))
	_, err = auth.Login(env.ctx, &LoginInput{Email: "admin@example.com", Password: "longenough1"})
	assert.NoError(t, err)
}

func TestUserService(t *testing.T) {
	env, auth, users := setupAuth(t)

	staff, err := users.CreateUser(env.ctx, &CreateUserInput{
		Name:     "Counter",
		Email:    "Counter@Example.com",
		Password: "counter123",
		Roles:    []string{"staff"},
	})
	require.NoError(t, err)
	assert.Equal(t, "counter@example.com", staff.Email)
	assert.True(t, staff.IsActive)
	assert.NotContains(t, staff.GetPermissions(), "manage-users")

	t.Run("validation", func(t *testing.T) {
		_, err := users.CreateUser(env.ctx, &CreateUserInput{Password: "short"})
		assert.Len(t, apperror.GetAppError(err).Errors, 3)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := users.CreateUser(env.ctx, &CreateUserInput{Name: "Dup", Email: "counter@example.com", Password: "counter123"})
		assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := users.CreateUser(env.ctx, &CreateUserInput{Name: "X", Email: "x@example.com", Password: "counter123", Roles: []string{"owner"}})
		assert.Equal(t, "roles", apperror.GetAppError(err).Errors[0].Field)
	})

	t.Run("promote then disable", func(t *testing.T) {
		updated, err := users.UpdateUser(env.ctx, &UpdateUserInput{ID: staff.ID, Roles: []string{"admin"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"admin"}, updated.RoleNames())

		inactive := false
		_, err = users.UpdateUser(env.ctx, &UpdateUserInput{ID: staff.ID, IsActive: &inactive})
		require.NoError(t, err)

		_, err = auth.Login(env.ctx, &LoginInput{Email: "counter@example.com", Password: "counter123"})
		assert.Equal(t, apperror.ErrAccountDisabled, err)
	})

	result, err := users.ListUsers(env.ctx, pagination.NewParams(1, 15), "counter")
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)

	roles, err := users.ListRoles(env.ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 2)
}
