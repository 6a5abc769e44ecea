package repository

import "context"

// TransactionManager runs fn inside a database transaction. Repositories
// called with the context passed to fn take part in the same transaction.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
