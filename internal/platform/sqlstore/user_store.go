package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/widget-api/internal/domain"
	"github.com/phrazzld/widget-api/internal/platform/logger"
	"github.com/phrazzld/widget-api/internal/store"
)

// UserStore implements store.UserStore on database/sql.
type UserStore struct {
	db      store.DBTX
	pool    *sql.DB
	dialect Dialect
	logger  *slog.Logger
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a UserStore. If logger is nil, slog.Default is used.
func NewUserStore(db *sql.DB, dialect Dialect, logger *slog.Logger) *UserStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		db:      db,
		pool:    db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "user_store")),
	}
}

// WithTx implements store.UserStore.WithTx.
func (s *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &UserStore{db: tx, pool: s.pool, dialect: s.dialect, logger: s.logger}
}

// Create implements store.UserStore.Create.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := s.dialect.Rebind(`
		INSERT INTO users (id, email, hashed_password, created_at)
		VALUES (?, ?, ?, ?)
	`)
	_, err := s.db.ExecContext(ctx, query, user.ID.String(), user.Email, user.HashedPassword, user.CreatedAt)
	if err != nil {
		err = s.dialect.MapError(err)
		if errors.Is(err, store.ErrDuplicate) {
			log.Debug("email already registered", slog.String("user_id", user.ID.String()))
			return store.ErrEmailExists
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return store.NewStoreError("user", "create", "insert failed", err)
	}

	log.Info("user created", slog.String("user_id", user.ID.String()))
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.getOne(ctx, "id", id.String())
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getOne(ctx, "email", email)
}

func (s *UserStore) getOne(ctx context.Context, column string, value any) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := s.dialect.Rebind(`
		SELECT id, email, hashed_password, created_at
		FROM users
		WHERE ` + column + ` = ?
	`)

	var (
		user domain.User
		id   string
	)
	err := s.db.QueryRowContext(ctx, query, value).Scan(&id, &user.Email, &user.HashedPassword, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("by", column))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user", slog.String("by", column), slog.String("error", err.Error()))
		return nil, store.NewStoreError("user", "get", "query failed", s.dialect.MapError(err))
	}

	if user.ID, err = uuid.Parse(id); err != nil {
		return nil, store.NewStoreError("user", "get", "invalid id column", err)
	}
	return &user, nil
}
