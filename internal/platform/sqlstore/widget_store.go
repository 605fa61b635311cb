package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/widget-api/internal/domain"
	"github.com/phrazzld/widget-api/internal/platform/logger"
	"github.com/phrazzld/widget-api/internal/store"
)

// WidgetStore implements store.WidgetStore on database/sql.
type WidgetStore struct {
	db      store.DBTX
	pool    *sql.DB
	dialect Dialect
	logger  *slog.Logger
}

var _ store.WidgetStore = (*WidgetStore)(nil)

// NewWidgetStore creates a WidgetStore. If logger is nil, slog.Default is used.
func NewWidgetStore(db *sql.DB, dialect Dialect, logger *slog.Logger) *WidgetStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WidgetStore{
		db:      db,
		pool:    db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "widget_store")),
	}
}

// WithTx implements store.WidgetStore.WithTx.
func (s *WidgetStore) WithTx(tx *sql.Tx) store.WidgetStore {
	return &WidgetStore{db: tx, pool: s.pool, dialect: s.dialect, logger: s.logger}
}

// DB returns the connection pool the store was created with.
func (s *WidgetStore) DB() *sql.DB {
	return s.pool
}

// Create implements store.WidgetStore.Create.
func (s *WidgetStore) Create(ctx context.Context, w *domain.Widget) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := w.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := s.dialect.Rebind(`
		INSERT INTO widgets (name, description)
		VALUES (?, ?)
		RETURNING id
	`)
	err := s.db.QueryRowContext(ctx, query, w.Name, nullString(w.Description)).Scan(&w.ID)
	if err != nil {
		return s.writeError(log, "create", w, err)
	}

	log.Info("widget created", slog.Int64("widget_id", w.ID))
	return nil
}

// GetByID implements store.WidgetStore.GetByID.
func (s *WidgetStore) GetByID(ctx context.Context, id int64) (*domain.Widget, error) {
	return s.getOne(ctx, "id", id)
}

// GetByName implements store.WidgetStore.GetByName.
func (s *WidgetStore) GetByName(ctx context.Context, name string) (*domain.Widget, error) {
	return s.getOne(ctx, "name", name)
}

func (s *WidgetStore) getOne(ctx context.Context, column string, value any) (*domain.Widget, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := s.dialect.Rebind(`
		SELECT id, name, description
		FROM widgets
		WHERE ` + column + ` = ?
	`)

	w, err := scanWidget(s.db.QueryRowContext(ctx, query, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("widget not found", slog.String("by", column), slog.Any("value", value))
			return nil, store.ErrWidgetNotFound
		}
		log.Error("failed to get widget", slog.String("by", column), slog.String("error", err.Error()))
		return nil, store.NewStoreError("widget", "get", "query failed", s.dialect.MapError(err))
	}
	return w, nil
}

// List implements store.WidgetStore.List.
func (s *WidgetStore) List(ctx context.Context) ([]*domain.Widget, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, description FROM widgets ORDER BY id`)
	if err != nil {
		log.Error("failed to list widgets", slog.String("error", err.Error()))
		return nil, store.NewStoreError("widget", "list", "query failed", s.dialect.MapError(err))
	}
	defer func() { _ = rows.Close() }()

	widgets := make([]*domain.Widget, 0)
	for rows.Next() {
		w, err := scanWidget(rows)
		if err != nil {
			return nil, store.NewStoreError("widget", "list", "scan failed", err)
		}
		widgets = append(widgets, w)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("widget", "list", "iteration failed", err)
	}

	log.Debug("listed widgets", slog.Int("count", len(widgets)))
	return widgets, nil
}

// Update implements store.WidgetStore.Update.
func (s *WidgetStore) Update(ctx context.Context, w *domain.Widget) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := w.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := s.dialect.Rebind(`
		UPDATE widgets
		SET name = ?, description = ?
		WHERE id = ?
	`)
	result, err := s.db.ExecContext(ctx, query, w.Name, nullString(w.Description), w.ID)
	if err != nil {
		return s.writeError(log, "update", w, err)
	}
	if err := CheckRowsAffected(result, store.ErrWidgetNotFound); err != nil {
		return err
	}

	log.Info("widget updated", slog.Int64("widget_id", w.ID))
	return nil
}

// Delete implements store.WidgetStore.Delete.
func (s *WidgetStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, s.dialect.Rebind(`DELETE FROM widgets WHERE id = ?`), id)
	if err != nil {
		log.Error("failed to delete widget", slog.Int64("widget_id", id), slog.String("error", err.Error()))
		return store.NewStoreError("widget", "delete", "delete failed", s.dialect.MapError(err))
	}
	if err := CheckRowsAffected(result, store.ErrWidgetNotFound); err != nil {
		return err
	}

	log.Info("widget deleted", slog.Int64("widget_id", id))
	return nil
}

func (s *WidgetStore) writeError(log *slog.Logger, op string, w *domain.Widget, err error) error {
	err = s.dialect.MapError(err)
	if errors.Is(err, store.ErrDuplicate) {
		log.Debug("widget name already taken", slog.String("operation", op))
		return store.ErrWidgetNameExists
	}
	log.Error("failed to write widget",
		slog.String("operation", op),
		slog.Int64("widget_id", w.ID),
		slog.String("error", err.Error()))
	return store.NewStoreError("widget", op, "write failed", err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWidget(row rowScanner) (*domain.Widget, error) {
	var (
		w    domain.Widget
		desc sql.NullString
	)
	if err := row.Scan(&w.ID, &w.Name, &desc); err != nil {
		return nil, err
	}
	if desc.Valid {
		w.Description = &desc.String
	}
	return &w, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
