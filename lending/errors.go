package lending

import (
	"errors"
)

var (
	// ErrBookNotFound is returned when a borrow references a book that does
	// not exist or is not published.
	ErrBookNotFound = errors.New("book not found")

	// ErrLoanNotFound is returned when an operation references a loan that
	// does not exist, or when no ongoing loan matches a (user, book) pair.
	ErrLoanNotFound = errors.New("loan not found")

	// ErrDuplicateActiveLoan is returned by a loan store when inserting a
	// loan would violate the one-ongoing-loan-per-(user, book) constraint.
	// Borrow folds this into extending the loan that won the race.
	ErrDuplicateActiveLoan = errors.New("an ongoing loan already exists for this user and book")

	// ErrLoanNotOngoing is returned when a state transition is requested on
	// a loan that is already in a terminal state.
	ErrLoanNotOngoing = errors.New("loan is not ongoing")

	// ErrInvalidLeaseDuration is returned when a lease is created with a
	// non-positive number of days.
	ErrInvalidLeaseDuration = errors.New("lease duration must be a positive number of days")

	// ErrNoActiveLeases is returned when an aggregate over a loan's active
	// leases is requested but the loan has none.
	ErrNoActiveLeases = errors.New("loan has no active leases")

	// ErrStoreUnavailable wraps transient data store failures.
	ErrStoreUnavailable = errors.New("data store unavailable")
)
