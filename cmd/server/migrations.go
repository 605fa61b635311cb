package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/widget-api/internal/platform/migrations"
)

// handleMigrations runs one migration command (up, down or status) and
// writes a short report to out.
func handleMigrations(ctx context.Context, db *sql.DB, driver, command string, out io.Writer, logger *slog.Logger) error {
	m, err := migrations.New(db, driver, logger)
	if err != nil {
		return err
	}

	switch command {
	case "up":
		if err := m.Up(ctx); err != nil {
			return err
		}
	case "down":
		if err := m.Down(ctx); err != nil {
			return err
		}
	case "status":
		statuses, err := m.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			state := "pending"
			if s.Applied {
				state = "applied " + s.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(out, "%5d  %-30s  %s\n", s.Version, s.Path, state)
		}
		return nil
	default:
		return fmt.Errorf("unknown migration command %q (want up, down or status)", command)
	}

	version, err := m.Version(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "database at version %d\n", version)
	return nil
}
