package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/widget-api/internal/config"
	"github.com/phrazzld/widget-api/internal/platform/migrations"
	"github.com/phrazzld/widget-api/internal/platform/postgres"
	"github.com/phrazzld/widget-api/internal/platform/sqlite"
	"github.com/phrazzld/widget-api/internal/redact"
	"github.com/phrazzld/widget-api/internal/store"
)

// setupAppDatabase opens the configured database.
func setupAppDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)
	switch cfg.Driver {
	case migrations.DriverPostgres:
		db, err = postgres.Open(ctx, cfg.URL)
	case migrations.DriverSQLite:
		db, err = sqlite.Open(ctx, cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %s", redact.Error(err))
	}

	logger.Info("database connection established", "driver", cfg.Driver)
	return db, nil
}

// newStores returns the store implementations for driver.
func newStores(db *sql.DB, driver string, logger *slog.Logger) (store.UserStore, store.WidgetStore, error) {
	switch driver {
	case migrations.DriverPostgres:
		return postgres.NewUserStore(db, logger), postgres.NewWidgetStore(db, logger), nil
	case migrations.DriverSQLite:
		return sqlite.NewUserStore(db, logger), sqlite.NewWidgetStore(db, logger), nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
