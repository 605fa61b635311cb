// Package sqlstore implements the internal/store interfaces on database/sql.
// Queries are written once with '?' placeholders; a Dialect supplied by the
// postgres or sqlite package rebinds them and maps driver errors.
package sqlstore
