package lending

import (
	"time"

	"github.com/google/uuid"
)

// Loan is a book borrowing by a given user.
//
// There is at most one ongoing loan per unique (user, book) pair; extending
// the loan period works by appending a new Lease to it, several leases of
// the same book sharing the same loan id.
type Loan struct {
	ID     uuid.UUID
	UserID uuid.UUID
	BookID uuid.UUID
	Status Status

	// Ended is set when the loan reaches a terminal status.
	Ended *time.Time

	// Archived marks "no more avails to the user, since?". It is written by
	// an external housekeeping process, never by this core.
	Archived *time.Time
}

// BuildLoan creates a new ongoing Loan for the given user and book.
func BuildLoan(userID uuid.UUID, bookID uuid.UUID) Loan {
	return Loan{
		ID:     uuid.New(),
		UserID: userID,
		BookID: bookID,
		Status: StatusOngoing,
	}
}

// IsOngoing reports whether the loan is still active.
func (l Loan) IsOngoing() bool {
	return l.Status == StatusOngoing
}

// IsTerminal reports whether the loan reached a final status.
func (l Loan) IsTerminal() bool {
	return l.Status.IsTerminal()
}
