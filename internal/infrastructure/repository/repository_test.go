package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestFinancingPlanRepository_GetByID(t *testing.T) {
	t.Run("finds existing plan", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()

		planID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "name", "months", "interest_pct", "is_active"}).
			AddRow(planID, "12 months", 12, 15.0, true)

		mock.ExpectQuery(`SELECT \* FROM "financing_plans" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(planID, 1).
			WillReturnRows(rows)

		plan, err := NewFinancingPlanRepository(db).GetByID(context.Background(), planID)

		require.NoError(t, err)
		require.NotNil(t, plan)
		assert.Equal(t, planID, plan.ID)
		assert.Equal(t, 12, plan.Months)
		assert.Equal(t, 15.0, plan.InterestPct)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing plan returns nil", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()

		planID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "financing_plans" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(planID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		plan, err := NewFinancingPlanRepository(db).GetByID(context.Background(), planID)

		assert.NoError(t, err)
		assert.Nil(t, plan)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepository_GetForUpdateLocksOnPostgres(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()

	orderID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1 ORDER BY .* LIMIT .* FOR UPDATE`).
		WithArgs(orderID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "total_final"}).AddRow(orderID, "ORD-1", 1000))

	order, err := NewOrderRepository(db).GetForUpdate(context.Background(), orderID)

	require.NoError(t, err)
	assert.Equal(t, int64(1000), order.TotalFinal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinancingPlanRepository_GetForUpdateLocksOnPostgres(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()

	planID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "financing_plans" WHERE id = \$1 ORDER BY .* LIMIT .* FOR UPDATE`).
		WithArgs(planID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "months"}).AddRow(planID, "12 months", 12))

	plan, err := NewFinancingPlanRepository(db).GetForUpdate(context.Background(), planID)

	require.NoError(t, err)
	assert.Equal(t, 12, plan.Months)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_CountDependents(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()

	orderID := uuid.New()
	for _, n := range []struct {
		table string
		count int
	}{{"order_items", 2}, {"payments", 1}, {"installments", 3}} {
		mock.ExpectQuery(`SELECT count\(\*\) FROM "` + n.table + `" WHERE order_id = \$1`).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(n.count))
	}

	deps, err := NewOrderRepository(db).CountDependents(context.Background(), orderID)

	require.NoError(t, err)
	assert.Equal(t, int64(2), deps.Items)
	assert.Equal(t, int64(1), deps.Payments)
	assert.Equal(t, int64(3), deps.Installments)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_RunInTx(t *testing.T) {
	t.Run("commits and shares the transaction", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()

		planID := uuid.New()
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE financing_plan_id = \$1`).
			WithArgs(planID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec(`DELETE FROM "financing_plans" WHERE id = \$1`).
			WithArgs(planID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tm := NewTransactionManager(db)
		repo := NewFinancingPlanRepository(db)
		err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
			if _, err := repo.CountOrders(ctx, planID); err != nil {
				return err
			}
			return tm.RunInTx(ctx, func(ctx context.Context) error {
				return repo.Delete(ctx, planID)
			})
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		err := NewTransactionManager(db).RunInTx(context.Background(), func(ctx context.Context) error {
			return boom
		})

		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetDB_WithoutTransactionUsesRoot(t *testing.T) {
	db, _, mockDB := newMockDB(t)
	defer mockDB.Close()

	got := GetDB(context.Background(), db)
	assert.Same(t, db.Config, got.Config)
	assert.Equal(t, "postgres", got.Dialector.Name())
}

func TestOrderBy(t *testing.T) {
	assert.Equal(t, "created_at DESC", orderBy("", "", "code"))
	assert.Equal(t, "code ASC", orderBy("code", "ASC", "code"))
	assert.Equal(t, "created_at ASC", orderBy("id; DROP TABLE orders", "asc", "code"))
}
