package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/widget-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unique violation", &pgconn.PgError{Code: "23505", ConstraintName: "widgets_name_key"}, store.ErrDuplicate},
		{"wrapped unique violation", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505"}), store.ErrDuplicate},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, store.ErrInvalidEntity},
		{"check violation", &pgconn.PgError{Code: "23514"}, store.ErrInvalidEntity},
		{"not null violation", &pgconn.PgError{Code: "23502", ColumnName: "name"}, store.ErrInvalidEntity},
		{"string too long", &pgconn.PgError{Code: "22001"}, store.ErrInvalidEntity},
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, MapError(tt.err), tt.want)
		})
	}
}

func TestMapErrorPassesThroughUnknown(t *testing.T) {
	assert.NoError(t, MapError(nil))

	plain := errors.New("connection refused")
	assert.Same(t, plain, MapError(plain))

	other := &pgconn.PgError{Code: "40001"}
	assert.Equal(t, error(other), MapError(other))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("23505")))
}

func TestDialectRebind(t *testing.T) {
	d := Dialect{}

	assert.Equal(t, "SELECT 1", d.Rebind("SELECT 1"))
	assert.Equal(t,
		"UPDATE widgets SET name = $1, description = $2 WHERE id = $3",
		d.Rebind("UPDATE widgets SET name = ?, description = ? WHERE id = ?"))
	assert.Equal(t, "postgres", d.Name())
}
