package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/widget-api/internal/platform/sqlstore"
	"github.com/phrazzld/widget-api/internal/store"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

var pragmas = []string{
	"PRAGMA foreign_keys = ON",
	"PRAGMA busy_timeout = 5000",
}

// Open opens a SQLite database. dsn is a file path or "file::memory:".
// The pool is limited to one connection: SQLite serialises writers anyway
// and an in-memory database lives only as long as its connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}
	return db, nil
}

// MapError maps a SQLite error to the matching store sentinel.
// Unknown errors are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var sqlErr *msqlite.Error
	if !errors.As(err, &sqlErr) {
		return err
	}

	switch code := sqlErr.Code(); {
	case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE, code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case code == sqlite3.SQLITE_CONSTRAINT_NOTNULL,
		code == sqlite3.SQLITE_CONSTRAINT_CHECK,
		code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	case code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(err.Error(), "UNIQUE"):
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}
	return err
}

// Dialect is the SQLite sqlstore.Dialect. SQLite accepts '?' natively.
type Dialect struct{}

var _ sqlstore.Dialect = Dialect{}

// Name implements sqlstore.Dialect.
func (Dialect) Name() string { return "sqlite" }

// Rebind implements sqlstore.Dialect.
func (Dialect) Rebind(query string) string { return query }

// MapError implements sqlstore.Dialect.
func (Dialect) MapError(err error) error { return MapError(err) }

// NewUserStore returns a user store backed by SQLite.
func NewUserStore(db *sql.DB, logger *slog.Logger) *sqlstore.UserStore {
	return sqlstore.NewUserStore(db, Dialect{}, logger)
}

// NewWidgetStore returns a widget store backed by SQLite.
func NewWidgetStore(db *sql.DB, logger *slog.Logger) *sqlstore.WidgetStore {
	return sqlstore.NewWidgetStore(db, Dialect{}, logger)
}
