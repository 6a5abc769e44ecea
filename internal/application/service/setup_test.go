package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/internal/domain/finance"
	"github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/salesdesk-api/internal/infrastructure/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	ctx context.Context
	db  *gorm.DB
	tx  repository.TransactionManager

	orders      *OrderService
	payments    *PaymentService
	plans       *FinancingPlanService
	commissions *CommissionService
	incomes     *IncomeService
	suppliers   *SupplierService
	clients     *ClientService
	sellers     *SellerService
	products    *ProductService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := database.NewSQLiteDB(dsn, nil)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	tx := infraRepo.NewTransactionManager(db)
	orderRepo := infraRepo.NewOrderRepository(db)
	clientRepo := infraRepo.NewClientRepository(db)
	sellerRepo := infraRepo.NewSellerRepository(db)
	planRepo := infraRepo.NewFinancingPlanRepository(db)
	productRepo := infraRepo.NewProductRepository(db)

	return &testEnv{
		ctx:         context.Background(),
		db:          db,
		tx:          tx,
		orders:      NewOrderService(tx, orderRepo, clientRepo, sellerRepo, planRepo, productRepo),
		payments:    NewPaymentService(tx, orderRepo, infraRepo.NewInstallmentRepository(db), infraRepo.NewPaymentRepository(db)),
		plans:       NewFinancingPlanService(tx, planRepo),
		commissions: NewCommissionService(tx, infraRepo.NewCommissionRepository(db), sellerRepo, orderRepo),
		incomes:     NewIncomeService(tx, infraRepo.NewIncomeRepository(db), orderRepo),
		suppliers: NewSupplierService(tx, infraRepo.NewSupplierRepository(db),
			infraRepo.NewSupplierInvoiceRepository(db), infraRepo.NewSupplierPaymentRepository(db)),
		clients:  NewClientService(tx, clientRepo),
		sellers:  NewSellerService(tx, sellerRepo),
		products: NewProductService(productRepo),
	}
}

func num(v float64) *finance.Number {
	n := finance.Number(v)
	return &n
}

func (e *testEnv) client(t *testing.T) *entity.Client {
	t.Helper()
	c, err := e.clients.CreateClient(e.ctx, &CreateClientInput{Name: "Ana Pérez", Phone: "555-0101"})
	require.NoError(t, err)
	return c
}

func (e *testEnv) seller(t *testing.T, pct float64) *entity.Seller {
	t.Helper()
	s, err := e.sellers.CreateSeller(e.ctx, &CreateSellerInput{Name: "Luis", CommissionPct: pct})
	require.NoError(t, err)
	return s
}

func (e *testEnv) plan(t *testing.T, months int, interest float64) *entity.FinancingPlan {
	t.Helper()
	p, err := e.plans.CreatePlan(e.ctx, &FinancingPlanInput{
		Name:        fmt.Sprintf("%d months", months),
		Months:      months,
		InterestPct: finance.Number(interest),
	})
	require.NoError(t, err)
	return p
}

// order creates an order with a single item worth 100.00
func (e *testEnv) order(t *testing.T, clientID uuid.UUID, sellerID, planID *uuid.UUID) *entity.Order {
	t.Helper()
	date := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	o, err := e.orders.CreateOrder(e.ctx, &CreateOrderInput{
		ClientID:        clientID,
		SellerID:        sellerID,
		FinancingPlanID: planID,
		OrderDate:       &date,
		Items: []OrderItemInput{
			{Description: "Chair", Quantity: 2, Price: num(50)},
		},
	})
	require.NoError(t, err)
	return o
}

// bareOrder creates an order entered with a total and no items
func (e *testEnv) bareOrder(t *testing.T, clientID uuid.UUID) *entity.Order {
	t.Helper()
	o, err := e.orders.CreateOrder(e.ctx, &CreateOrderInput{ClientID: clientID, TotalAmount: 80})
	require.NoError(t, err)
	return o
}
