package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/internal/domain/finance"
	"github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/pkg/apperror"
	"github.com/sangkips/salesdesk-api/pkg/pagination"
)

// IncomeService handles income records
type IncomeService struct {
	txManager  repository.TransactionManager
	incomeRepo repository.IncomeRepository
	orderRepo  repository.OrderRepository
}

// NewIncomeService creates a new income service
func NewIncomeService(txManager repository.TransactionManager, incomeRepo repository.IncomeRepository, orderRepo repository.OrderRepository) *IncomeService {
	return &IncomeService{txManager: txManager, incomeRepo: incomeRepo, orderRepo: orderRepo}
}

// CreateIncomeInput represents the create income input
type CreateIncomeInput struct {
	OrderID     *uuid.UUID
	Description string
	AmountNet   finance.Number
	VATPct      finance.Number
	ReceivedAt  *time.Time
}

func validateNetAndVAT(errs *fieldErrors, net, vat finance.Number) {
	errs.money("amount_net", net)
	errs.percent("vat_pct", float64(vat))
}

// CreateIncome stores an income record with its gross amount
func (s *IncomeService) CreateIncome(ctx context.Context, input *CreateIncomeInput) (*entity.IncomeRecord, error) {
	var errs fieldErrors
	errs.required("description", input.Description)
	validateNetAndVAT(&errs, input.AmountNet, input.VATPct)
	if err := errs.err(); err != nil {
		return nil, err
	}

	if input.OrderID != nil {
		order, err := s.orderRepo.GetByID(ctx, *input.OrderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, apperror.NewNotFoundError("Order")
		}
	}

	record := &entity.IncomeRecord{
		OrderID:     input.OrderID,
		Description: strings.TrimSpace(input.Description),
		AmountNet:   finance.CentsOf(input.AmountNet),
		VATPct:      float64(input.VATPct),
		ReceivedAt:  paidAtOrNow(input.ReceivedAt),
	}
	record.Recompute()

	if err := s.incomeRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetIncome retrieves an income record by ID
func (s *IncomeService) GetIncome(ctx context.Context, id uuid.UUID) (*entity.IncomeRecord, error) {
	record, err := s.incomeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NewNotFoundError("Income record")
	}
	return record, nil
}

// ListIncomes lists income records, optionally for one order
func (s *IncomeService) ListIncomes(ctx context.Context, params *pagination.PaginationParams, orderID *uuid.UUID) (*pagination.PaginatedResult[entity.IncomeRecord], error) {
	records, total, err := s.incomeRepo.List(ctx, params, orderID)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(records, pag), nil
}

// UpdateIncomeInput represents a partial income update
type UpdateIncomeInput struct {
	ID          uuid.UUID
	Description *string
	AmountNet   *finance.Number
	VATPct      *finance.Number
	ReceivedAt  *time.Time
}

// UpdateIncome applies the given fields and recomputes the gross amount. The
// field that was not sent is read from the locked stored record.
func (s *IncomeService) UpdateIncome(ctx context.Context, input *UpdateIncomeInput) (*entity.IncomeRecord, error) {
	var record *entity.IncomeRecord
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.incomeRepo.GetForUpdate(ctx, input.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return apperror.NewNotFoundError("Income record")
		}

		var errs fieldErrors
		if input.Description != nil {
			errs.required("description", *input.Description)
		}
		net := finance.Number(0)
		if input.AmountNet != nil {
			net = *input.AmountNet
		}
		vat := finance.Number(current.VATPct)
		if input.VATPct != nil {
			vat = *input.VATPct
		}
		validateNetAndVAT(&errs, net, vat)
		if err := errs.err(); err != nil {
			return err
		}

		if input.Description != nil {
			current.Description = strings.TrimSpace(*input.Description)
		}
		if input.ReceivedAt != nil {
			current.ReceivedAt = *input.ReceivedAt
		}
		if input.AmountNet != nil {
			current.AmountNet = finance.CentsOf(net)
		}
		current.VATPct = float64(vat)
		current.Recompute()

		record = current
		return s.incomeRepo.Update(ctx, current)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// DeleteIncome removes an income record
func (s *IncomeService) DeleteIncome(ctx context.Context, id uuid.UUID) error {
	record, err := s.incomeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if record == nil {
		return apperror.NewNotFoundError("Income record")
	}
	return s.incomeRepo.Delete(ctx, id)
}
