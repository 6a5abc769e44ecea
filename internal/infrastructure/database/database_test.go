package database

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/config"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := NewSQLiteDB(dsn, nil)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func TestSeedDefaultData(t *testing.T) {
	db := openTestDB(t)
	admin := config.AdminConfig{Email: "admin@example.com", Password: "changeme123"}

	require.NoError(t, SeedDefaultData(db, admin, zap.NewNop()))
	// second run must not duplicate anything
	require.NoError(t, SeedDefaultData(db, admin, zap.NewNop()))

	var perms int64
	require.NoError(t, db.Model(&entity.Permission{}).Count(&perms).Error)
	assert.Equal(t, int64(len(Permissions)), perms)

	var users []entity.User
	require.NoError(t, db.Preload("Roles.Permissions").Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "Administrator", users[0].Name)
	assert.True(t, users[0].IsActive)
	assert.True(t, users[0].HasRole("admin"))
	assert.ElementsMatch(t, Permissions, users[0].GetPermissions())
	assert.True(t, utils.CheckPasswordHash("changeme123", users[0].Password))

	var staff entity.Role
	require.NoError(t, db.Preload("Permissions").Where("name = ?", "staff").First(&staff).Error)
	assert.Len(t, staff.Permissions, len(staffPermissions))
}

func TestSeedDefaultData_NoAdminConfigured(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, SeedDefaultData(db, config.AdminConfig{}, zap.NewNop()))

	var users int64
	require.NoError(t, db.Model(&entity.User{}).Count(&users).Error)
	assert.Zero(t, users)
}

func TestNewSQLiteDB_EnforcesForeignKeys(t *testing.T) {
	db := openTestDB(t)

	item := entity.OrderItem{OrderID: uuid.New(), Description: "orphan", Quantity: 1, Price: 100, Subtotal: 100}
	err := db.Create(&item).Error
	assert.ErrorIs(t, err, gorm.ErrForeignKeyViolated)
}
