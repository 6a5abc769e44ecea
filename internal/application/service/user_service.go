package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/pkg/apperror"
	"github.com/sangkips/salesdesk-api/pkg/pagination"
	"github.com/sangkips/salesdesk-api/pkg/utils"
)

// UserService handles operator account management
type UserService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	roleRepo  repository.RoleRepository
}

// NewUserService creates a new user service
func NewUserService(
	txManager repository.TransactionManager,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
) *UserService {
	return &UserService{
		txManager: txManager,
		userRepo:  userRepo,
		roleRepo:  roleRepo,
	}
}

// CreateUserInput represents a new operator account
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Roles    []string
}

// CreateUser creates an active operator with the given roles
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var errs fieldErrors
	errs.required("name", input.Name)
	errs.required("email", email)
	if len(input.Password) < minPasswordLength {
		errs.add("password", "password must be at least 8 characters")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	var userID uuid.UUID
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.NewConflictError("Email already registered")
		}

		roles, err := s.resolveRoles(ctx, input.Roles)
		if err != nil {
			return err
		}

		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			return err
		}

		user := &entity.User{
			Name:     strings.TrimSpace(input.Name),
			Email:    email,
			Password: hashed,
			IsActive: true,
			Roles:    roles,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return err
		}
		userID = user.ID
		return nil
	})
	if err != nil {
		return nil, translateWriteError(err, "Email already registered")
	}
	return s.GetUser(ctx, userID)
}

func (s *UserService) resolveRoles(ctx context.Context, names []string) ([]entity.Role, error) {
	roles := make([]entity.Role, 0, len(names))
	for _, name := range names {
		role, err := s.roleRepo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if role == nil {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				apperror.Field("roles", "unknown role "+name),
			})
		}
		roles = append(roles, *role)
	}
	return roles, nil
}

// ListUsers returns a paginated list of users with their roles
func (s *UserService) ListUsers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.User], error) {
	users, total, err := s.userRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(users, pag), nil
}

// GetUser returns a user by ID with roles and permissions
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateUserInput represents an admin edit of an operator. Nil fields are
// left unchanged; a non-nil Roles replaces the whole role set.
type UpdateUserInput struct {
	ID       uuid.UUID
	Name     *string
	IsActive *bool
	Roles    []string
}

// UpdateUser updates an operator's name, status and roles
func (s *UserService) UpdateUser(ctx context.Context, input *UpdateUserInput) (*entity.User, error) {
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.GetByID(ctx, input.ID)
		if err != nil {
			return err
		}
		if user == nil {
			return apperror.NewNotFoundError("User")
		}

		if input.Name != nil {
			var errs fieldErrors
			errs.required("name", *input.Name)
			if err := errs.err(); err != nil {
				return err
			}
			user.Name = strings.TrimSpace(*input.Name)
		}
		if input.IsActive != nil {
			user.IsActive = *input.IsActive
		}
		if err := s.userRepo.Update(ctx, user); err != nil {
			return err
		}

		if input.Roles != nil {
			roles, err := s.resolveRoles(ctx, input.Roles)
			if err != nil {
				return err
			}
			return s.userRepo.ReplaceRoles(ctx, user, roles)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetUser(ctx, input.ID)
}

// ListRoles returns all available roles
func (s *UserService) ListRoles(ctx context.Context) ([]entity.Role, error) {
	return s.roleRepo.List(ctx)
}
