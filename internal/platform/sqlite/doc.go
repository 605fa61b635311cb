// Package sqlite wires the sqlstore implementations to SQLite through the
// pure-Go modernc.org/sqlite driver. It backs local development and the
// test suites, which run against an in-memory database.
package sqlite
