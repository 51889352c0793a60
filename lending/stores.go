package lending

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LoanStore is the persistence abstraction for Loan records.
type LoanStore interface {
	// Insert stores a new loan. It returns ErrDuplicateActiveLoan when an
	// ongoing loan already exists for the same (user, book) pair; the store
	// is the authority for that invariant, not the caller.
	Insert(ctx context.Context, loan Loan) error

	// FindByID returns the loan with the given id, or ErrLoanNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (Loan, error)

	// FindOngoing returns the ongoing loan for the (user, book) pair,
	// or ErrLoanNotFound when none exists.
	FindOngoing(ctx context.Context, userID uuid.UUID, bookID uuid.UUID) (Loan, error)

	// ListOngoing returns every loan with ongoing status.
	ListOngoing(ctx context.Context) ([]Loan, error)

	// MarkExpired transitions the loan to expired and records endedAt.
	// It only applies while the loan is ongoing; on a terminal loan it
	// returns ErrLoanNotOngoing, on a missing one ErrLoanNotFound.
	MarkExpired(ctx context.Context, id uuid.UUID, endedAt time.Time) error

	// MarkCancelled transitions the loan to cancelled and records endedAt,
	// under the same guards as MarkExpired.
	MarkCancelled(ctx context.Context, id uuid.UUID, endedAt time.Time) error
}

// LeaseStore is the persistence abstraction for Lease records.
type LeaseStore interface {
	// Insert stores a new lease and returns it with its assigned id.
	Insert(ctx context.Context, lease Lease) (Lease, error)

	// ActiveByLoan returns all ongoing leases of the loan, oldest first.
	ActiveByLoan(ctx context.Context, loanID uuid.UUID) ([]Lease, error)

	// SumActiveDuration returns the total duration in days over the loan's
	// ongoing leases; 0 when there are none.
	SumActiveDuration(ctx context.Context, loanID uuid.UUID) (int, error)

	// EarliestActiveStart returns the earliest start among the loan's
	// ongoing leases, or ErrNoActiveLeases.
	EarliestActiveStart(ctx context.Context, loanID uuid.UUID) (time.Time, error)

	// ExpireActive flips ongoing leases of the loan to expired and returns
	// how many were updated. With onlyElapsed set, only leases whose
	// elapsed time strictly exceeds their duration at the given instant are
	// touched; otherwise all ongoing leases are expired unconditionally.
	// A loan with zero matching leases yields 0, not an error.
	ExpireActive(ctx context.Context, loanID uuid.UUID, now time.Time, onlyElapsed bool) (int64, error)

	// CancelActive flips all ongoing leases of the loan to cancelled and
	// returns how many were updated.
	CancelActive(ctx context.Context, loanID uuid.UUID) (int64, error)
}

// BookStore is the catalog abstraction consumed by the lending core.
type BookStore interface {
	// FindByID returns the book with the given id, or ErrBookNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (Book, error)

	// Save inserts or updates a book record.
	Save(ctx context.Context, book Book) error

	// Delete removes a book record. Loans referencing it are removed by the
	// store's cascade rules together with their leases.
	Delete(ctx context.Context, id uuid.UUID) error
}

// Stores bundles the loan and lease stores with a transactional boundary.
//
// WithinTx runs fn with store views bound to one transaction: either every
// write fn performs commits, or none does. The lifecycle engine relies on
// this to keep bulk lease updates atomic with the owning loan's own status
// transition.
type Stores interface {
	Loans() LoanStore
	Leases() LeaseStore
	WithinTx(ctx context.Context, fn func(ctx context.Context, loans LoanStore, leases LeaseStore) error) error
}

// EventPublisher is the fire-and-forget notification sink invoked by the
// lifecycle engine. Publish failures are logged by the caller and never
// roll back the transition that triggered them.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
}
