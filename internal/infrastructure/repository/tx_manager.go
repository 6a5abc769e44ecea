package repository

import (
	"context"

	domainRepo "github.com/sangkips/salesdesk-api/internal/domain/repository"
	"gorm.io/gorm"
)

const txKey ctxKey = "gorm_tx"

type transactionManager struct {
	db *gorm.DB
}

// NewTransactionManager creates a transaction manager that carries the open
// transaction in the context
func NewTransactionManager(db *gorm.DB) domainRepo.TransactionManager {
	return &transactionManager{db: db}
}

// RunInTx commits when fn returns nil and rolls back otherwise. Nested calls
// reuse the outer transaction.
func (t *transactionManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}

// GetDB returns the transaction stored in ctx, or the root handle when there is none
func GetDB(ctx context.Context, rootDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return rootDB.WithContext(ctx)
}
