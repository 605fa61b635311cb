// Package postgres wires the sqlstore implementations to PostgreSQL through
// the pgx database/sql driver. It owns connection setup, placeholder
// rebinding and the mapping of PostgreSQL error codes to store errors.
package postgres
