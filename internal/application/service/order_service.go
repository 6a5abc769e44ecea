package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/internal/domain/enum"
	"github.com/sangkips/salesdesk-api/internal/domain/finance"
	"github.com/sangkips/salesdesk-api/internal/domain/policy"
	"github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/internal/infrastructure/logger"
	"github.com/sangkips/salesdesk-api/pkg/apperror"
	"github.com/sangkips/salesdesk-api/pkg/pagination"
	"github.com/sangkips/salesdesk-api/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReasonOrderHasDependents is reported when an order delete needs confirmation
const ReasonOrderHasDependents = "order_has_dependents"

// OrderService handles order-related operations
type OrderService struct {
	txManager   repository.TransactionManager
	orderRepo   repository.OrderRepository
	clientRepo  repository.ClientRepository
	sellerRepo  repository.SellerRepository
	planRepo    repository.FinancingPlanRepository
	productRepo repository.ProductRepository
}

// NewOrderService creates a new order service
func NewOrderService(
	txManager repository.TransactionManager,
	orderRepo repository.OrderRepository,
	clientRepo repository.ClientRepository,
	sellerRepo repository.SellerRepository,
	planRepo repository.FinancingPlanRepository,
	productRepo repository.ProductRepository,
) *OrderService {
	return &OrderService{
		txManager:   txManager,
		orderRepo:   orderRepo,
		clientRepo:  clientRepo,
		sellerRepo:  sellerRepo,
		planRepo:    planRepo,
		productRepo: productRepo,
	}
}

// OrderItemInput represents an item in an order. Price defaults to the
// product's price when a product is given.
type OrderItemInput struct {
	ProductID   *uuid.UUID
	Description string
	Quantity    finance.Number
	Price       *finance.Number
	Discount    finance.Number
	Subtotal    *finance.Number
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	UserID          uuid.UUID
	ClientID        uuid.UUID
	SellerID        *uuid.UUID
	FinancingPlanID *uuid.UUID
	OrderDate       *time.Time
	// TotalAmount is only used for orders entered without items
	TotalAmount finance.Number
	Notes       *string
	Items       []OrderItemInput
}

func finite(n finance.Number) bool {
	f := float64(n)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func validateOrderInput(input *CreateOrderInput) error {
	var errs fieldErrors
	if input.ClientID == uuid.Nil {
		errs.add("client_id", "client_id is required")
	}
	if len(input.Items) == 0 {
		errs.positiveMoney("total_amount", input.TotalAmount)
	}
	for i, item := range input.Items {
		field := fmt.Sprintf("items[%d]", i)
		if !finite(item.Quantity) || item.Quantity <= 0 {
			errs.add(field+".quantity", "quantity must be greater than zero")
		}
		if item.Price == nil && item.ProductID == nil {
			errs.add(field+".price", "price is required")
		}
		if item.Price != nil {
			errs.money(field+".price", *item.Price)
		}
		errs.money(field+".discount", item.Discount)
		if item.Subtotal != nil {
			errs.money(field+".subtotal", *item.Subtotal)
		}
	}
	return errs.err()
}

// CreateOrder stores an order with its items and, for financed orders, its
// installment schedule
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if err := validateOrderInput(input); err != nil {
		return nil, err
	}

	orderDate := time.Now()
	if input.OrderDate != nil {
		orderDate = *input.OrderDate
	}

	var orderID uuid.UUID
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		client, err := s.clientRepo.GetByID(ctx, input.ClientID)
		if err != nil {
			return err
		}
		if client == nil {
			return apperror.NewNotFoundError("Client")
		}

		if input.SellerID != nil {
			seller, err := s.sellerRepo.GetByID(ctx, *input.SellerID)
			if err != nil {
				return err
			}
			if seller == nil {
				return apperror.NewNotFoundError("Seller")
			}
		}

		var plan *entity.FinancingPlan
		if input.FinancingPlanID != nil {
			plan, err = s.planRepo.GetByID(ctx, *input.FinancingPlanID)
			if err != nil {
				return err
			}
			if plan == nil {
				return apperror.NewNotFoundError("Financing plan")
			}
			if !plan.IsActive {
				return apperror.NewValidationError([]apperror.FieldError{
					apperror.Field("financing_plan_id", "financing plan is not active"),
				})
			}
			if plan.Months > finance.MaxInstallments {
				return apperror.NewValidationError([]apperror.FieldError{
					apperror.Field("financing_plan_id", "financing plan has too many installments"),
				})
			}
		}

		items, err := s.buildItems(ctx, input.Items)
		if err != nil {
			return err
		}

		var total int64
		for _, item := range items {
			total += item.Subtotal
			if total > finance.MaxAmount*100 {
				return apperror.NewValidationError([]apperror.FieldError{
					apperror.Field("items", tooLarge("order total")),
				})
			}
		}
		if len(items) == 0 {
			total = finance.CentsOf(input.TotalAmount)
		}

		order := &entity.Order{
			Code:            utils.GenerateOrderCode(orderDate),
			ClientID:        client.ID,
			SellerID:        input.SellerID,
			FinancingPlanID: input.FinancingPlanID,
			OrderDate:       orderDate,
			Status:          enum.OrderStatusPending,
			TotalAmount:     total,
			TotalFinal:      total,
			Notes:           trimmed(input.Notes),
			Items:           items,
		}
		if input.UserID != uuid.Nil {
			order.CreatedBy = &input.UserID
		}
		if plan != nil {
			order.TotalFinal = finance.WithInterest(total, plan.InterestPct)
			for i, amount := range finance.SplitInstallments(order.TotalFinal, plan.Months) {
				order.Installments = append(order.Installments, entity.Installment{
					Number:  i + 1,
					DueDate: orderDate.AddDate(0, i+1, 0),
					Amount:  amount,
				})
			}
		}

		if err := s.orderRepo.Create(ctx, order); err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(ctx, orderID)
}

func (s *OrderService) buildItems(ctx context.Context, inputs []OrderItemInput) ([]entity.OrderItem, error) {
	items := make([]entity.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		item := entity.OrderItem{
			ProductID:   in.ProductID,
			Description: strings.TrimSpace(in.Description),
			Quantity:    float64(in.Quantity),
			Discount:    finance.CentsOf(in.Discount),
		}

		if in.ProductID != nil {
			product, err := s.productRepo.GetByID(ctx, *in.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil {
				return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", in.ProductID))
			}
			item.Price = product.Price
			if item.Description == "" {
				item.Description = product.Name
			}
		}
		if in.Price != nil {
			item.Price = finance.CentsOf(*in.Price)
		}

		line := finance.Line{
			Price:    finance.Number(finance.FromCents(item.Price).InexactFloat64()),
			Quantity: in.Quantity,
			Discount: in.Discount,
			Subtotal: in.Subtotal,
		}
		amount := line.Amount()
		if !finance.WithinLimit(amount) {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				apperror.Field("items", tooLarge("line amount")),
			})
		}
		item.Subtotal = finance.ToCents(amount)
		if item.Subtotal < 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				apperror.Field("items", "discount exceeds the line amount"),
			})
		}
		items = append(items, item)
	}
	return items, nil
}

// GetOrder retrieves an order with its items, installments and payments
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// CancelOrder marks an unpaid order as cancelled
func (s *OrderService) CancelOrder(ctx context.Context, id uuid.UUID) error {
	return s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}
		if order.Status == enum.OrderStatusCancel {
			return apperror.NewBadRequestError("Order is already cancelled")
		}
		if order.PaidAmount > 0 {
			return apperror.NewBadRequestError("Order has payments and cannot be cancelled")
		}

		order.Status = enum.OrderStatusCancel
		return s.orderRepo.Update(ctx, order)
	})
}

func blockedDeleteError(deps policy.Dependents) error {
	return apperror.NewBlockedError(
		"Order has items, payments or installments. Confirm to delete them as well.",
		ReasonOrderHasDependents,
		deps,
	)
}

// DeleteOrder deletes an order. Without force an order that still has items,
// payments or installments is left untouched and reported as blocked. With
// force the dependents are deleted, commission payments and income records
// are detached, and the order is removed, all in one transaction.
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID, force bool) (policy.DeletionOutcome, error) {
	log := logger.FromContext(ctx).With(zap.String("order_id", id.String()), zap.Bool("force", force))

	var deps policy.Dependents
	state := policy.DeletionPending

	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}

		deps, err = s.orderRepo.CountDependents(ctx, id)
		if err != nil {
			return err
		}

		state = state.Next(deps.Any(), force)
		if state == policy.DeletionBlocked {
			return blockedDeleteError(deps)
		}
		if state == policy.DeletionForceRequested {
			if err := s.orderRepo.DeleteDependents(ctx, id); err != nil {
				return err
			}
			state = state.Next(deps.Any(), force)
		}
		if force {
			if err := s.orderRepo.DetachRecords(ctx, id); err != nil {
				return err
			}
		}
		return s.orderRepo.Delete(ctx, id)
	})

	switch {
	case err == nil:
		if force {
			log.Warn("order force deleted",
				zap.Int64("items", deps.Items),
				zap.Int64("payments", deps.Payments),
				zap.Int64("installments", deps.Installments),
			)
		} else {
			log.Info("order deleted")
		}
		return policy.OutcomeDeleted, nil
	case errors.Is(err, gorm.ErrForeignKeyViolated) && force:
		log.Error("forced order delete hit a foreign key", zap.String("state", state.String()), zap.Error(err))
		return policy.OutcomeFailed, apperror.NewInternalError("Failed to delete order")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		log.Info("order delete blocked by referencing records")
		return policy.OutcomeBlockedHasDependents, blockedDeleteError(deps)
	case apperror.IsAppError(err):
		appErr := apperror.GetAppError(err)
		if appErr.Reason == ReasonOrderHasDependents {
			return policy.OutcomeBlockedHasDependents, appErr
		}
		return policy.OutcomeFailed, appErr
	default:
		log.Error("order delete failed", zap.String("state", state.String()), zap.Error(err))
		return policy.OutcomeFailed, apperror.NewInternalError("Failed to delete order")
	}
}
