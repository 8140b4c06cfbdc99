package repository

import "context"

// TransactionManager runs a unit of work inside a single database transaction.
// The repositories handed to fn are bound to that transaction. A non-nil error
// from fn rolls the transaction back, otherwise it is committed.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(users UserRepository) error) error
}
