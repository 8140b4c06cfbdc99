package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hosting-storefront/internal/auth"
	"hosting-storefront/internal/domain"
	"hosting-storefront/internal/repository"
)

type fakeUsers struct {
	byEmail   map[string]*domain.User
	nextID    int64
	lookups   int
	inserts   int
	createErr error
	getErr    error
	// skipLookup simulates a concurrent registration that slipped past the pre-check
	skipLookup bool
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]*domain.User{}}
}

func (f *fakeUsers) Init(context.Context) error { return nil }

func (f *fakeUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.lookups++
	if f.skipLookup {
		return false, nil
	}
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeUsers) Create(_ context.Context, user *domain.User) error {
	f.inserts++
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[user.Email]; ok {
		return fmt.Errorf("insert user: %w", repository.ErrDuplicateEmail)
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now().UTC()
	stored := *user
	f.byEmail[user.Email] = &stored
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.lookups++
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeTx struct {
	users      *fakeUsers
	executions int
	committed  int
}

func (f *fakeTx) Execute(ctx context.Context, fn func(users repository.UserRepository) error) error {
	f.executions++
	if err := fn(f.users); err != nil {
		return err
	}
	f.committed++
	return nil
}

func newTestService() (UserService, *fakeUsers, *fakeTx) {
	users := newFakeUsers()
	tx := &fakeTx{users: users}
	return NewUserService(users, tx, auth.NewSaltedSHA256()), users, tx
}

func TestRegister_Success(t *testing.T) {
	svc, users, tx := newTestService()

	user, err := svc.Register(context.Background(), "a@x.com", "secret", "A")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "A", user.FullName)
	assert.Empty(t, user.PasswordHash)
	assert.False(t, user.CreatedAt.IsZero())

	assert.Equal(t, 1, tx.executions)
	assert.Equal(t, 1, tx.committed)
	assert.Equal(t, 1, users.lookups)
	assert.Equal(t, 1, users.inserts)

	stored := users.byEmail["a@x.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret", stored.PasswordHash)
	assert.True(t, auth.NewSaltedSHA256().Verify("secret", stored.PasswordHash))
}

func TestRegister_MissingFields(t *testing.T) {
	svc, users, tx := newTestService()

	for _, tc := range []struct{ email, password string }{
		{"", "secret"},
		{"a@x.com", ""},
		{"", ""},
	} {
		_, err := svc.Register(context.Background(), tc.email, tc.password, "")
		assert.ErrorIs(t, err, ErrMissingCredentials)
	}
	assert.Zero(t, tx.executions)
	assert.Zero(t, users.inserts)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, users, _ := newTestService()

	_, err := svc.Register(context.Background(), "a@x.com", "secret", "A")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "a@x.com", "other", "B")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	assert.Equal(t, 1, users.inserts)

	var appErr *domain.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, domain.KindConflict, appErr.Kind)
}

func TestRegister_UniqueViolationMapsToConflict(t *testing.T) {
	svc, users, _ := newTestService()
	users.byEmail["a@x.com"] = &domain.User{ID: 9, Email: "a@x.com"}
	users.skipLookup = true

	_, err := svc.Register(context.Background(), "a@x.com", "secret", "")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegister_StorageErrorPropagates(t *testing.T) {
	svc, users, tx := newTestService()
	boom := errors.New("connection refused")
	users.createErr = boom

	_, err := svc.Register(context.Background(), "a@x.com", "secret", "")
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, tx.committed)

	var appErr *domain.Error
	assert.False(t, errors.As(err, &appErr))
}

func TestAuthenticate_Success(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Register(context.Background(), "a@x.com", "secret", "A")
	require.NoError(t, err)

	user, err := svc.Authenticate(context.Background(), "a@x.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "A", user.FullName)
	assert.Empty(t, user.PasswordHash)
}

func TestAuthenticate_FailuresAreIndistinguishable(t *testing.T) {
	svc, users, _ := newTestService()
	_, err := svc.Register(context.Background(), "a@x.com", "secret", "A")
	require.NoError(t, err)
	inserts := users.inserts

	_, unknown := svc.Authenticate(context.Background(), "ghost@x.com", "secret")
	_, wrong := svc.Authenticate(context.Background(), "a@x.com", "wrong")

	assert.ErrorIs(t, unknown, ErrInvalidCredentials)
	assert.ErrorIs(t, wrong, ErrInvalidCredentials)
	assert.Equal(t, unknown.Error(), wrong.Error())
	assert.Equal(t, inserts, users.inserts)
}

func TestAuthenticate_MissingFields(t *testing.T) {
	svc, users, _ := newTestService()

	_, err := svc.Authenticate(context.Background(), "a@x.com", "")
	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.Zero(t, users.lookups)
}

func TestAuthenticate_StorageErrorPropagates(t *testing.T) {
	svc, users, _ := newTestService()
	boom := errors.New("timeout")
	users.getErr = boom

	_, err := svc.Authenticate(context.Background(), "a@x.com", "secret")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
