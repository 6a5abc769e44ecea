package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/internal/domain/finance"
	"github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/internal/infrastructure/logger"
	"github.com/sangkips/salesdesk-api/pkg/apperror"
	"github.com/sangkips/salesdesk-api/pkg/pagination"
	"go.uber.org/zap"
)

const planInUseMessage = "Financing plan is in use"

// FinancingPlanService handles financing plan operations
type FinancingPlanService struct {
	txManager repository.TransactionManager
	planRepo  repository.FinancingPlanRepository
}

// NewFinancingPlanService creates a new financing plan service
func NewFinancingPlanService(txManager repository.TransactionManager, planRepo repository.FinancingPlanRepository) *FinancingPlanService {
	return &FinancingPlanService{txManager: txManager, planRepo: planRepo}
}

// FinancingPlanInput is a complete plan as submitted for creation
type FinancingPlanInput struct {
	Name        string
	Months      int
	InterestPct finance.Number
	IsActive    *bool
}

// ValidatePlan checks a plan before it is stored
func ValidatePlan(input *FinancingPlanInput) error {
	var errs fieldErrors
	if strings.TrimSpace(input.Name) == "" {
		errs.add("name", "name is required")
	}
	if input.Months < 0 || input.Months > finance.MaxInstallments {
		errs.add("months", fmt.Sprintf("months must be between 0 and %d", finance.MaxInstallments))
	}
	interest := float64(input.InterestPct)
	if math.IsNaN(interest) || math.IsInf(interest, 0) || interest < 0 || interest > finance.MaxRatePct {
		errs.add("interest_pct", fmt.Sprintf("interest_pct must be a number between 0 and %.2f", finance.MaxRatePct))
	}
	return errs.err()
}

// CreatePlan validates and stores a new plan. Plans are active unless the
// input says otherwise.
func (s *FinancingPlanService) CreatePlan(ctx context.Context, input *FinancingPlanInput) (*entity.FinancingPlan, error) {
	if err := ValidatePlan(input); err != nil {
		return nil, err
	}

	plan := &entity.FinancingPlan{
		Name:        strings.TrimSpace(input.Name),
		Months:      input.Months,
		InterestPct: float64(input.InterestPct),
		IsActive:    true,
	}
	if input.IsActive != nil {
		plan.IsActive = *input.IsActive
	}

	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, translateWriteError(err, "Financing plan already exists")
	}
	return plan, nil
}

// GetPlan retrieves a plan by ID
func (s *FinancingPlanService) GetPlan(ctx context.Context, id uuid.UUID) (*entity.FinancingPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperror.NewNotFoundError("Financing plan")
	}
	return plan, nil
}

// ListPlans lists plans, optionally only the active ones
func (s *FinancingPlanService) ListPlans(ctx context.Context, params *pagination.PaginationParams, activeOnly bool) (*pagination.PaginatedResult[entity.FinancingPlan], error) {
	plans, total, err := s.planRepo.List(ctx, params, activeOnly)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(plans, pag), nil
}

// UpdatePlanInput represents a partial plan update. Nil fields are left unchanged.
type UpdatePlanInput struct {
	ID          uuid.UUID
	Name        *string
	Months      *int
	InterestPct *finance.Number
	IsActive    *bool
}

// UpdatePlan merges the given fields into the stored plan and validates the result
func (s *FinancingPlanService) UpdatePlan(ctx context.Context, input *UpdatePlanInput) (*entity.FinancingPlan, error) {
	var plan *entity.FinancingPlan
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.planRepo.GetForUpdate(ctx, input.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return apperror.NewNotFoundError("Financing plan")
		}

		merged := FinancingPlanInput{
			Name:        current.Name,
			Months:      current.Months,
			InterestPct: finance.Number(current.InterestPct),
		}
		if input.Name != nil {
			merged.Name = *input.Name
		}
		if input.Months != nil {
			merged.Months = *input.Months
		}
		if input.InterestPct != nil {
			merged.InterestPct = *input.InterestPct
		}
		if err := ValidatePlan(&merged); err != nil {
			return err
		}

		current.Name = strings.TrimSpace(merged.Name)
		current.Months = merged.Months
		current.InterestPct = float64(merged.InterestPct)
		if input.IsActive != nil {
			current.IsActive = *input.IsActive
		}

		plan = current
		return s.planRepo.Update(ctx, current)
	})
	if err != nil {
		return nil, translateWriteError(err, "Financing plan already exists")
	}
	return plan, nil
}

// DeletePlan removes a plan that no order references
func (s *FinancingPlanService) DeletePlan(ctx context.Context, id uuid.UUID) error {
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		plan, err := s.planRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if plan == nil {
			return apperror.NewNotFoundError("Financing plan")
		}

		inUse, err := s.planRepo.CountOrders(ctx, id)
		if err != nil {
			return err
		}
		if inUse > 0 {
			return apperror.NewConflictError(planInUseMessage)
		}
		return s.planRepo.Delete(ctx, id)
	})
	if err != nil {
		return translateWriteError(err, planInUseMessage)
	}

	logger.FromContext(ctx).Info("financing plan deleted", zap.String("plan_id", id.String()))
	return nil
}
