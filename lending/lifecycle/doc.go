// Package lifecycle orchestrates the loan state machine: borrowing and
// extending via the Engine, lease bookkeeping via the LeaseManager, and
// catalog maintenance via the Catalog.
//
// Borrow unifies first-time loans and extensions behind one operation: the
// engine looks up the ongoing loan for the (user, book) pair, creates one
// only when absent, and always appends a fresh lease. The store enforces
// the one-ongoing-loan-per-pair invariant; when a concurrent borrow loses
// that race the engine retries and extends the loan that won.
//
// CheckExpiry and Cancel run their lease bulk-updates and the loan's own
// status transition inside one store transaction, then notify the
// fire-and-forget event publisher after the commit.
package lifecycle
