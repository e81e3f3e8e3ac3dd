// Package postgres provides a PostgreSQL run-log sink. It opens connections
// through the pgx stdlib driver, applies the embedded goose migrations, and
// stores one row per model call in the runs table.
package postgres
