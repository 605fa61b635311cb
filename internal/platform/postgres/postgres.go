package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	// Registers the "pgx" database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/phrazzld/widget-api/internal/platform/sqlstore"
)

// DriverName is the database/sql driver registered by pgx.
const DriverName = "pgx"

// Connection pool settings
const (
	maxOpenConns    = 25
	maxIdleConns    = 25
	connMaxLifetime = 5 * time.Minute
	pingTimeout     = 5 * time.Second
)

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Dialect is the PostgreSQL sqlstore.Dialect.
type Dialect struct{}

var _ sqlstore.Dialect = Dialect{}

// Name implements sqlstore.Dialect.
func (Dialect) Name() string { return "postgres" }

// Rebind replaces each '?' with $1, $2, ... in order.
func (Dialect) Rebind(query string) string {
	var (
		b strings.Builder
		n int
	)
	b.Grow(len(query) + 8)
	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			b.WriteByte(query[i])
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

// MapError implements sqlstore.Dialect.
func (Dialect) MapError(err error) error { return MapError(err) }

// NewUserStore returns a user store backed by PostgreSQL.
func NewUserStore(db *sql.DB, logger *slog.Logger) *sqlstore.UserStore {
	return sqlstore.NewUserStore(db, Dialect{}, logger)
}

// NewWidgetStore returns a widget store backed by PostgreSQL.
func NewWidgetStore(db *sql.DB, logger *slog.Logger) *sqlstore.WidgetStore {
	return sqlstore.NewWidgetStore(db, Dialect{}, logger)
}
