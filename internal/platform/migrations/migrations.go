package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"
)

//go:embed sql
var embedded embed.FS

// Supported drivers, matching config.DatabaseConfig.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Status describes one known migration.
type Status struct {
	Version   int64
	Path      string
	Applied   bool
	AppliedAt time.Time
}

// Migrator applies the embedded schema migrations for one driver.
type Migrator struct {
	provider *goose.Provider
	logger   *slog.Logger
}

// New creates a Migrator for db. driver selects the SQL dialect and the
// matching migration set.
func New(db *sql.DB, driver string, logger *slog.Logger) (*Migrator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "migrations"), slog.String("driver", driver))

	var dialect goose.Dialect
	switch driver {
	case DriverPostgres:
		dialect = goose.DialectPostgres
	case DriverSQLite:
		dialect = goose.DialectSQLite3
	default:
		return nil, fmt.Errorf("unsupported migration driver %q", driver)
	}

	fsys, err := fs.Sub(embedded, "sql/"+driver)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s migrations: %w", driver, err)
	}

	provider, err := goose.NewProvider(dialect, db, fsys,
		goose.WithLogger(&gooseLogger{logger: logger}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}

	return &Migrator{provider: provider, logger: logger}, nil
}

// Up applies all pending migrations.
func (m *Migrator) Up(ctx context.Context) error {
	results, err := m.provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("migration up failed: %w", err)
	}
	for _, r := range results {
		m.logger.Info("applied migration",
			slog.Int64("version", r.Source.Version),
			slog.String("path", r.Source.Path),
			slog.Int64("duration_ms", r.Duration.Milliseconds()))
	}
	if len(results) == 0 {
		m.logger.Info("no pending migrations")
	}
	return nil
}

// Down rolls back the most recent migration.
func (m *Migrator) Down(ctx context.Context) error {
	result, err := m.provider.Down(ctx)
	if err != nil {
		return fmt.Errorf("migration down failed: %w", err)
	}
	m.logger.Info("rolled back migration",
		slog.Int64("version", result.Source.Version),
		slog.String("path", result.Source.Path))
	return nil
}

// Status reports every known migration in version order.
func (m *Migrator) Status(ctx context.Context) ([]Status, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration status failed: %w", err)
	}

	out := make([]Status, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, Status{
			Version:   s.Source.Version,
			Path:      s.Source.Path,
			Applied:   s.State == goose.StateApplied,
			AppliedAt: s.AppliedAt,
		})
	}
	return out, nil
}

// Version returns the current schema version, 0 for an empty database.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	v, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return v, nil
}

// gooseLogger adapts goose.Logger to slog. Fatalf does not exit; goose
// errors are returned to the caller.
type gooseLogger struct {
	logger *slog.Logger
}

func (l *gooseLogger) Printf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...))
}
