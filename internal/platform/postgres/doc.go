// Package postgres provides the PostgreSQL implementation of the exam store
// defined in internal/store, together with the embedded goose migrations that
// create its schema and the pgx connection helper.
package postgres
