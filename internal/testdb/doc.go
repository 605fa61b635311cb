// Package testdb provides migrated databases for tests. By default each
// call opens a private in-memory SQLite database; setting
// WIDGET_TEST_DATABASE_URL runs the same tests against PostgreSQL.
package testdb
