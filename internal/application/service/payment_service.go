package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/internal/domain/enum"
	"github.com/sangkips/salesdesk-api/internal/domain/finance"
	"github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/pkg/apperror"
)

// PaymentService records client payments against orders
type PaymentService struct {
	txManager       repository.TransactionManager
	orderRepo       repository.OrderRepository
	installmentRepo repository.InstallmentRepository
	paymentRepo     repository.PaymentRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	txManager repository.TransactionManager,
	orderRepo repository.OrderRepository,
	installmentRepo repository.InstallmentRepository,
	paymentRepo repository.PaymentRepository,
) *PaymentService {
	return &PaymentService{
		txManager:       txManager,
		orderRepo:       orderRepo,
		installmentRepo: installmentRepo,
		paymentRepo:     paymentRepo,
	}
}

// RecordPaymentInput represents a payment received for an order
type RecordPaymentInput struct {
	OrderID       uuid.UUID
	InstallmentID *uuid.UUID
	Amount        finance.Number
	Method        enum.PaymentMethod
	Reference     *string
	PaidAt        *time.Time
}

// RecordPayment stores a payment and applies it to the order's installments,
// the chosen one first and then the oldest unpaid ones
func (s *PaymentService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*entity.Payment, error) {
	var errs fieldErrors
	amount := errs.positiveMoney("amount", input.Amount)
	if input.Method == "" {
		input.Method = enum.PaymentMethodCash
	}
	if !input.Method.Valid() {
		errs.add("method", "method must be one of cash, card, transfer, check")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	paidAt := time.Now()
	if input.PaidAt != nil {
		paidAt = *input.PaidAt
	}

	var payment *entity.Payment
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetForUpdate(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}
		if order.Status == enum.OrderStatusCancel {
			return apperror.NewBadRequestError("Order is cancelled")
		}
		if amount > order.Due() {
			return apperror.NewValidationError([]apperror.FieldError{
				apperror.Field("amount", "amount exceeds the outstanding balance"),
			})
		}

		installments, err := s.installmentRepo.ListByOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		if input.InstallmentID != nil {
			if !containsInstallment(installments, *input.InstallmentID) {
				return apperror.NewNotFoundError("Installment")
			}
			sort.SliceStable(installments, func(i, j int) bool {
				return installments[i].ID == *input.InstallmentID && installments[j].ID != *input.InstallmentID
			})
		}

		remaining := amount
		for i := range installments {
			inst := &installments[i]
			if remaining == 0 {
				break
			}
			open := inst.Outstanding()
			if open == 0 {
				continue
			}
			applied := min(open, remaining)
			inst.PaidAmount += applied
			remaining -= applied
			if inst.IsPaid() {
				inst.PaidAt = &paidAt
			}
			if err := s.installmentRepo.Update(ctx, inst); err != nil {
				return err
			}
		}

		payment = &entity.Payment{
			OrderID:       order.ID,
			InstallmentID: input.InstallmentID,
			Amount:        amount,
			Method:        input.Method,
			Reference:     trimmed(input.Reference),
			PaidAt:        paidAt,
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}

		order.PaidAmount += amount
		if order.PaidAmount >= order.TotalFinal {
			order.Status = enum.OrderStatusComplete
		} else {
			order.Status = enum.OrderStatusPartial
		}
		return s.orderRepo.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func containsInstallment(installments []entity.Installment, id uuid.UUID) bool {
	for _, inst := range installments {
		if inst.ID == id {
			return true
		}
	}
	return false
}

// ListPayments lists the payments of an order, oldest first
func (s *PaymentService) ListPayments(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return s.paymentRepo.ListByOrder(ctx, orderID)
}
