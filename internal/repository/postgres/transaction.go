package postgres

import (
	"context"
	"database/sql"

	"hosting-storefront/internal/repository"
)

type TransactionManager struct {
	db     *sql.DB
	tables Tables
}

func NewTransactionManager(db *sql.DB, tables Tables) repository.TransactionManager {
	return &TransactionManager{db: db, tables: tables}
}

func (m *TransactionManager) Execute(ctx context.Context, fn func(users repository.UserRepository) error) error {
	return repository.RunInTx(ctx, m.db, func(tx *sql.Tx) error {
		return fn(NewUserRepository(tx, m.tables))
	})
}
