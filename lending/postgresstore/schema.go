package postgresstore

import (
	"context"
	"fmt"
)

const logActionMigrate = "migrate schema"

// Migrate creates the lending tables and indexes if they do not exist yet.
// It is idempotent and safe to run on every startup.
//
// The partial unique index on the loans table carries the core invariant:
// at most one ongoing loan per (user, book) pair. Terminal loans fall out
// of the index, so a fresh borrow after expiry or cancellation is allowed.
func (s *Stores) Migrate(ctx context.Context) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id uuid PRIMARY KEY,
				title text NOT NULL,
				abstract text NOT NULL DEFAULT '',
				isbn text NOT NULL DEFAULT '',
				page_count integer NOT NULL DEFAULT 0,
				publication_year integer NOT NULL DEFAULT 0,
				published timestamptz NULL
			)`, s.tables.Books),

		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id uuid PRIMARY KEY,
				user_id uuid NOT NULL,
				book_id uuid NOT NULL REFERENCES %s (id) ON DELETE CASCADE,
				status text NOT NULL DEFAULT 'ongoing',
				ended timestamptz NULL,
				archived timestamptz NULL
			)`, s.tables.Loans, s.tables.Books),

		fmt.Sprintf(`
			CREATE UNIQUE INDEX IF NOT EXISTS %s_one_ongoing_per_user_book
				ON %s (user_id, book_id)
				WHERE status = 'ongoing'`, s.tables.Loans, s.tables.Loans),

		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id bigserial PRIMARY KEY,
				loan_id uuid NOT NULL REFERENCES %s (id) ON DELETE CASCADE,
				started timestamptz NOT NULL,
				duration_days integer NOT NULL,
				status text NOT NULL DEFAULT 'ongoing'
			)`, s.tables.Leases, s.tables.Loans),

		fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS %s_active_by_loan
				ON %s (loan_id)
				WHERE status = 'ongoing'`, s.tables.Leases, s.tables.Leases),
	}

	for _, statement := range statements {
		logSQL(s.logger, logActionMigrate, statement)

		if _, execErr := s.db.Exec(ctx, statement); execErr != nil {
			return execErr
		}
	}

	return nil
}
