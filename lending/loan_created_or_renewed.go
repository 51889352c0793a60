package lending

import (
	"time"
)

// LoanCreatedOrRenewedEventKind is the event kind identifier.
const LoanCreatedOrRenewedEventKind = "loan_created_or_renewed"

// LoanCreatedOrRenewed is published when a borrow either created a new loan
// or extended an existing one with a fresh lease.
type LoanCreatedOrRenewed struct {
	EventKind    string
	LoanID       string
	UserID       string
	BookID       string
	DurationDays int
	OccurredAt   time.Time
}

// BuildLoanCreatedOrRenewed creates a new LoanCreatedOrRenewed event.
func BuildLoanCreatedOrRenewed(loan Loan, durationDays int, occurredAt time.Time) LoanCreatedOrRenewed {
	return LoanCreatedOrRenewed{
		EventKind:    LoanCreatedOrRenewedEventKind,
		LoanID:       loan.ID.String(),
		UserID:       loan.UserID.String(),
		BookID:       loan.BookID.String(),
		DurationDays: durationDays,
		OccurredAt:   ToTimestamp(occurredAt),
	}
}

// Kind returns the event kind identifier.
func (e LoanCreatedOrRenewed) Kind() string {
	return LoanCreatedOrRenewedEventKind
}

// HasOccurredAt returns when this event occurred.
func (e LoanCreatedOrRenewed) HasOccurredAt() time.Time {
	return e.OccurredAt
}
