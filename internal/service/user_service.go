package service

import (
	"context"
	"errors"
	"fmt"

	"hosting-storefront/internal/domain"
	"hosting-storefront/internal/repository"
)

var (
	// ErrMissingCredentials indicates that email or password was not supplied.
	ErrMissingCredentials = domain.NewError(domain.KindValidation, "Email и password обязательны")
	// ErrUserAlreadyExists is returned when registering an email that is already taken.
	ErrUserAlreadyExists = domain.NewError(domain.KindConflict, "Пользователь с таким email уже существует")
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = domain.NewError(domain.KindAuthentication, "Неверный email или password")
)

// PasswordHasher produces and checks stored password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, stored string) bool
}

// UserService describes customer account operations.
type UserService interface {
	Register(ctx context.Context, email, password, fullName string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

type userService struct {
	users  repository.UserRepository
	tx     repository.TransactionManager
	hasher PasswordHasher
}

func NewUserService(users repository.UserRepository, tx repository.TransactionManager, hasher PasswordHasher) UserService {
	return &userService{
		users:  users,
		tx:     tx,
		hasher: hasher,
	}
}

func (s *userService) Register(ctx context.Context, email, password, fullName string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	var user *domain.User
	// The unique constraint on email is what actually prevents duplicates;
	// the lookup only turns the common case into a clean conflict.
	err := s.tx.Execute(ctx, func(users repository.UserRepository) error {
		exists, err := users.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return ErrUserAlreadyExists
		}

		hash, err := s.hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user = &domain.User{
			Email:        email,
			PasswordHash: hash,
			FullName:     fullName,
		}
		return users.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
	}
}
