package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/widget-api/internal/domain"
	"github.com/phrazzld/widget-api/internal/service/auth"
	"github.com/phrazzld/widget-api/internal/store"
)

// UserService provisions API users.
type UserService interface {
	// CreateUser validates and hashes password and stores a new user.
	// Returns an error wrapping store.ErrEmailExists for a taken email.
	CreateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	db        *sql.DB
	logger    *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	db *sql.DB,
	logger *slog.Logger,
) (*UserServiceImpl, error) {
	if userStore == nil || hasher == nil || db == nil {
		return nil, ErrNilDependency
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		db:        db,
		logger:    logger.With("component", "user_service"),
	}, nil
}

// CreateUser creates a new user with the specified email and password
// inside a transaction.
func (s *UserServiceImpl) CreateUser(ctx context.Context, email, password string) (*domain.User, error) {
	if err := domain.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, newServiceError("user", "hash password", err)
	}

	user, err := domain.NewUser(email, hashed)
	if err != nil {
		s.logger.Debug("invalid user data", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to create user with existing email")
		} else {
			s.logger.Error("failed to save user to database", "error", err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created", "user_id", user.ID)
	return user, nil
}
