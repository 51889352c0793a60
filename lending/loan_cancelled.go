package lending

import (
	"time"
)

// LoanCancelledEventKind is the event kind identifier.
const LoanCancelledEventKind = "loan_cancelled"

// LoanCancelled is published when a loan was revoked prior to termination,
// together with all of its active leases.
type LoanCancelled struct {
	EventKind  string
	LoanID     string
	UserID     string
	BookID     string
	EndedAt    time.Time
	OccurredAt time.Time
}

// BuildLoanCancelled creates a new LoanCancelled event.
func BuildLoanCancelled(loan Loan, endedAt time.Time, occurredAt time.Time) LoanCancelled {
	return LoanCancelled{
		EventKind:  LoanCancelledEventKind,
		LoanID:     loan.ID.String(),
		UserID:     loan.UserID.String(),
		BookID:     loan.BookID.String(),
		EndedAt:    ToTimestamp(endedAt),
		OccurredAt: ToTimestamp(occurredAt),
	}
}

// Kind returns the event kind identifier.
func (e LoanCancelled) Kind() string {
	return LoanCancelledEventKind
}

// HasOccurredAt returns when this event occurred.
func (e LoanCancelled) HasOccurredAt() time.Time {
	return e.OccurredAt
}
