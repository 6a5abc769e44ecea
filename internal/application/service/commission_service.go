package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/internal/domain/finance"
	"github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/pkg/apperror"
	"github.com/sangkips/salesdesk-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// CommissionService computes and records seller commissions
type CommissionService struct {
	txManager      repository.TransactionManager
	commissionRepo repository.CommissionRepository
	sellerRepo     repository.SellerRepository
	orderRepo      repository.OrderRepository
}

// NewCommissionService creates a new commission service
func NewCommissionService(
	txManager repository.TransactionManager,
	commissionRepo repository.CommissionRepository,
	sellerRepo repository.SellerRepository,
	orderRepo repository.OrderRepository,
) *CommissionService {
	return &CommissionService{
		txManager:      txManager,
		commissionRepo: commissionRepo,
		sellerRepo:     sellerRepo,
		orderRepo:      orderRepo,
	}
}

// CommissionPreviewInput is the order being entered, before it is saved
type CommissionPreviewInput struct {
	Items       []finance.Line
	TotalAmount finance.Number
	Pct         finance.Number
}

// CommissionPreview is the commission an order would earn
type CommissionPreview struct {
	Base   decimal.Decimal `json:"base"`
	Pct    finance.Number  `json:"pct"`
	Amount decimal.Decimal `json:"amount"`
}

// Preview computes the commission of an order being entered. It never fails:
// malformed numbers count as zero.
func (s *CommissionService) Preview(input *CommissionPreviewInput) *CommissionPreview {
	base := finance.OrderBase(input.Items, input.TotalAmount)
	pct := finance.Number(input.Pct.Float(0))
	return &CommissionPreview{
		Base:   base.Round(2),
		Pct:    pct,
		Amount: finance.Commission(base, pct),
	}
}

// CreateForOrderInput asks for the commission of a stored order. Pct defaults
// to the seller's commission percentage.
type CreateForOrderInput struct {
	SellerID uuid.UUID
	OrderID  uuid.UUID
	Pct      *finance.Number
	PaidAt   *time.Time
	Note     *string
}

// CreateForOrder computes the commission of an order from its stored items and
// records it as paid to the seller
func (s *CommissionService) CreateForOrder(ctx context.Context, input *CreateForOrderInput) (*entity.CommissionPayment, error) {
	if input.Pct != nil {
		var errs fieldErrors
		errs.percent("pct", float64(*input.Pct))
		if err := errs.err(); err != nil {
			return nil, err
		}
	}

	var commission *entity.CommissionPayment
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		seller, err := s.sellerRepo.GetByID(ctx, input.SellerID)
		if err != nil {
			return err
		}
		if seller == nil {
			return apperror.NewNotFoundError("Seller")
		}

		order, err := s.orderRepo.GetWithDetails(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}

		pct := finance.Number(seller.CommissionPct)
		if input.Pct != nil {
			pct = *input.Pct
		}
		total := finance.Number(finance.FromCents(order.TotalAmount).InexactFloat64())
		base := finance.OrderBase(order.Lines(), total)

		commission = &entity.CommissionPayment{
			SellerID: seller.ID,
			OrderID:  &order.ID,
			Base:     finance.ToCents(base),
			Pct:      float64(pct),
			Amount:   finance.ToCents(finance.Commission(base, pct)),
			PaidAt:   paidAtOrNow(input.PaidAt),
			Note:     trimmed(input.Note),
		}
		return s.commissionRepo.Create(ctx, commission)
	})
	if err != nil {
		return nil, err
	}
	return commission, nil
}

// CreateCommissionInput records a commission with a manually entered amount
type CreateCommissionInput struct {
	SellerID uuid.UUID
	OrderID  *uuid.UUID
	Amount   finance.Number
	Pct      finance.Number
	PaidAt   *time.Time
	Note     *string
}

// CreateCommission records a manual commission payment
func (s *CommissionService) CreateCommission(ctx context.Context, input *CreateCommissionInput) (*entity.CommissionPayment, error) {
	var errs fieldErrors
	amount := errs.positiveMoney("amount", input.Amount)
	errs.percent("pct", input.Pct.Float(0))
	if err := errs.err(); err != nil {
		return nil, err
	}

	var commission *entity.CommissionPayment
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		seller, err := s.sellerRepo.GetByID(ctx, input.SellerID)
		if err != nil {
			return err
		}
		if seller == nil {
			return apperror.NewNotFoundError("Seller")
		}
		if input.OrderID != nil {
			order, err := s.orderRepo.GetByID(ctx, *input.OrderID)
			if err != nil {
				return err
			}
			if order == nil {
				return apperror.NewNotFoundError("Order")
			}
		}

		commission = &entity.CommissionPayment{
			SellerID: seller.ID,
			OrderID:  input.OrderID,
			Pct:      input.Pct.Float(0),
			Amount:   amount,
			PaidAt:   paidAtOrNow(input.PaidAt),
			Note:     trimmed(input.Note),
		}
		return s.commissionRepo.Create(ctx, commission)
	})
	if err != nil {
		return nil, err
	}
	return commission, nil
}

// GetCommission retrieves a commission payment by ID
func (s *CommissionService) GetCommission(ctx context.Context, id uuid.UUID) (*entity.CommissionPayment, error) {
	commission, err := s.commissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if commission == nil {
		return nil, apperror.NewNotFoundError("Commission payment")
	}
	return commission, nil
}

// ListCommissions lists commission payments filtered by seller and order
func (s *CommissionService) ListCommissions(ctx context.Context, params *repository.CommissionFilterParams) (*pagination.PaginatedResult[entity.CommissionPayment], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	commissions, total, err := s.commissionRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(commissions, pag), nil
}

// DeleteCommission removes a commission payment
func (s *CommissionService) DeleteCommission(ctx context.Context, id uuid.UUID) error {
	commission, err := s.commissionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if commission == nil {
		return apperror.NewNotFoundError("Commission payment")
	}
	return s.commissionRepo.Delete(ctx, id)
}

func paidAtOrNow(t *time.Time) time.Time {
	if t != nil {
		return *t
	}
	return time.Now()
}
