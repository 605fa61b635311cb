package sqlstore

import (
	"database/sql"
	"fmt"

	"github.com/phrazzld/widget-api/internal/store"
)

// Dialect adapts the shared queries to one database engine.
type Dialect interface {
	// Name identifies the engine in logs ("postgres", "sqlite").
	Name() string

	// Rebind rewrites '?' placeholders into the engine's syntax.
	Rebind(query string) string

	// MapError translates driver errors into store sentinels
	// (store.ErrDuplicate, store.ErrNotFound, store.ErrInvalidEntity).
	// Unknown errors are returned unchanged.
	MapError(err error) error
}

// CheckRowsAffected returns notFound when result reports zero affected rows.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		if notFound == nil {
			return store.ErrNotFound
		}
		return notFound
	}
	return nil
}
