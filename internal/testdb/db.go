package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/phrazzld/widget-api/internal/platform/migrations"
	"github.com/phrazzld/widget-api/internal/platform/postgres"
	"github.com/phrazzld/widget-api/internal/platform/sqlite"
	"github.com/phrazzld/widget-api/internal/store"
	"github.com/stretchr/testify/require"
)

// DatabaseURLEnv names a PostgreSQL URL to test against instead of SQLite.
const DatabaseURLEnv = "WIDGET_TEST_DATABASE_URL"

// TestTimeout bounds setup and teardown queries.
const TestTimeout = 5 * time.Second

// DB is a migrated test database.
type DB struct {
	*sql.DB
	Driver string
}

// Open returns a migrated database that is closed when t ends. PostgreSQL
// databases are migrated down again on cleanup so each test starts empty.
func Open(t *testing.T) *DB {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	driver := migrations.DriverSQLite
	var (
		db  *sql.DB
		err error
	)
	if url := os.Getenv(DatabaseURLEnv); url != "" {
		driver = migrations.DriverPostgres
		db, err = postgres.Open(ctx, url)
	} else {
		db, err = sqlite.Open(ctx, "file::memory:")
	}
	require.NoError(t, err, "failed to open test database")

	m, err := migrations.New(db, driver, nil)
	require.NoError(t, err)
	require.NoError(t, m.Up(ctx), "failed to migrate test database")

	t.Cleanup(func() {
		if driver == migrations.DriverPostgres {
			downCtx, cancel := context.WithTimeout(context.Background(), TestTimeout)
			defer cancel()
			for {
				v, err := m.Version(downCtx)
				if err != nil || v == 0 {
					break
				}
				if err := m.Down(downCtx); err != nil {
					t.Logf("failed to roll back test database: %v", err)
					break
				}
			}
		}
		_ = db.Close()
	})

	return &DB{DB: db, Driver: driver}
}

// UserStore returns the user store for the database's driver.
func (db *DB) UserStore() store.UserStore {
	if db.Driver == migrations.DriverPostgres {
		return postgres.NewUserStore(db.DB, nil)
	}
	return sqlite.NewUserStore(db.DB, nil)
}

// WidgetStore returns the widget store for the database's driver.
func (db *DB) WidgetStore() store.WidgetStore {
	if db.Driver == migrations.DriverPostgres {
		return postgres.NewWidgetStore(db.DB, nil)
	}
	return sqlite.NewWidgetStore(db.DB, nil)
}

// WithTx runs fn inside a transaction that is always rolled back.
func (db *DB) WithTx(t *testing.T, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin transaction")
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Errorf("failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}
