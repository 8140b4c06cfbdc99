package sqlite

import (
	"context"
	"database/sql"

	"hosting-storefront/internal/repository"
)

type TransactionManager struct {
	db *sql.DB
}

func NewTransactionManager(db *sql.DB) repository.TransactionManager {
	return &TransactionManager{db: db}
}

func (m *TransactionManager) Execute(ctx context.Context, fn func(users repository.UserRepository) error) error {
	return repository.RunInTx(ctx, m.db, func(tx *sql.Tx) error {
		return fn(NewUserRepository(tx))
	})
}
