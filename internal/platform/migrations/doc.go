// Package migrations embeds the database schema and applies it with goose.
// Each supported driver has its own migration set under sql/<driver>.
package migrations
