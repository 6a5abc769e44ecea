package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sangkips/salesdesk-api/internal/config"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Permissions guarding the API route groups
var Permissions = []string{
	"manage-orders",
	"manage-clients",
	"manage-sellers",
	"manage-products",
	"manage-financing-plans",
	"manage-commissions",
	"manage-incomes",
	"manage-suppliers",
	"manage-users",
}

var staffPermissions = []string{
	"manage-orders",
	"manage-clients",
	"manage-products",
}

// SeedDefaultData creates the permissions, the admin and staff roles and,
// when configured, the first admin user. Running it again is a no-op.
func SeedDefaultData(db *gorm.DB, admin config.AdminConfig, log *zap.Logger) error {
	byName := make(map[string]entity.Permission, len(Permissions))
	for _, name := range Permissions {
		perm := entity.Permission{Name: name}
		if err := db.Where(entity.Permission{Name: name}).FirstOrCreate(&perm).Error; err != nil {
			return fmt.Errorf("seed permission %s: %w", name, err)
		}
		byName[name] = perm
	}

	all := make([]entity.Permission, 0, len(Permissions))
	for _, name := range Permissions {
		all = append(all, byName[name])
	}
	staff := make([]entity.Permission, 0, len(staffPermissions))
	for _, name := range staffPermissions {
		staff = append(staff, byName[name])
	}

	adminRole, err := seedRole(db, "admin", all)
	if err != nil {
		return err
	}
	if _, err := seedRole(db, "staff", staff); err != nil {
		return err
	}

	if admin.Email == "" || admin.Password == "" {
		log.Info("default data seeded, no admin account configured")
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(admin.Email))
	var existing entity.User
	err = db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Debug("admin user already exists", zap.String("email", admin.Email))
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("look up admin user: %w", err)
	}

	hashed, err := utils.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	name := admin.Name
	if name == "" {
		name = "Administrator"
	}
	user := entity.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		IsActive: true,
		Roles:    []entity.Role{*adminRole},
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	log.Info("admin user created", zap.String("email", admin.Email))
	return nil
}

func seedRole(db *gorm.DB, name string, perms []entity.Permission) (*entity.Role, error) {
	role := entity.Role{Name: name}
	if err := db.Where(entity.Role{Name: name}).FirstOrCreate(&role).Error; err != nil {
		return nil, fmt.Errorf("seed role %s: %w", name, err)
	}
	if err := db.Model(&role).Association("Permissions").Replace(perms); err != nil {
		return nil, fmt.Errorf("assign permissions to %s: %w", name, err)
	}
	return &role, nil
}
