package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hosting-storefront/internal/domain"
	"hosting-storefront/internal/repository"
)

type UserRepository struct {
	db     repository.DBTX
	tables Tables
}

func NewUserRepository(db repository.DBTX, tables Tables) repository.UserRepository {
	return &UserRepository{db: db, tables: tables}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if err := ensureSchema(ctx, r.db, r.tables.Schema); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	id BIGSERIAL PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	full_name TEXT DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`, r.tables.Users)); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT id FROM %s WHERE email = $1`, r.tables.Users),
		email,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lookup user email: %w", err)
	}
	return true, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := fmt.Sprintf(`
INSERT INTO %s (email, password_hash, full_name)
VALUES ($1, $2, $3)
RETURNING id, created_at`, r.tables.Users)

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.FullName,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueConstraintViolation(err) {
			return fmt.Errorf("insert user: %w", repository.ErrDuplicateEmail)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	user.CreatedAt = user.CreatedAt.UTC()
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`
SELECT id, email, password_hash, full_name, created_at
FROM %s
WHERE email = $1`, r.tables.Users)

	var (
		user     domain.User
		fullName sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &fullName, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	user.FullName = fullName.String
	user.CreatedAt = user.CreatedAt.UTC()
	return &user, nil
}
