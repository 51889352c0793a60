// Package postgresstore implements the lending stores on PostgreSQL.
//
// The store works with any of the supported database libraries: pgx.Pool,
// sql.DB, and sqlx.DB, selected through the matching factory function. SQL
// is built with goqu and executed through a thin adapter layer so the same
// gateway code serves all three libraries.
//
// The one-ongoing-loan-per-(user, book) invariant is enforced by a partial
// unique index, not application logic. A losing concurrent insert surfaces
// as lending.ErrDuplicateActiveLoan so callers can re-query and adopt the
// loan that won.
package postgresstore
