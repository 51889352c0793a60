// Package adapters provides database adapter implementations for the PostgreSQL
// lending store.
//
// This package implements the adapter pattern to support multiple PostgreSQL
// database libraries: pgx.Pool, sql.DB, and sqlx.DB. All adapters provide
// equivalent functionality through a common DBAdapter interface, allowing the
// lending store to work seamlessly with any supported database connection type.
//
// On top of plain query execution the adapters expose transactions through
// Begin, so the store can run lease bulk-updates and loan transitions
// atomically regardless of the underlying library.
package adapters
