package lending

import (
	"time"
)

// LoanExpiredEventKind is the event kind identifier.
const LoanExpiredEventKind = "loan_expired"

// LoanExpired is published when the expiry check found every active lease
// of a loan elapsed and transitioned the loan to its terminal expired state.
type LoanExpired struct {
	EventKind  string
	LoanID     string
	UserID     string
	BookID     string
	EndedAt    time.Time
	OccurredAt time.Time
}

// BuildLoanExpired creates a new LoanExpired event.
func BuildLoanExpired(loan Loan, endedAt time.Time, occurredAt time.Time) LoanExpired {
	return LoanExpired{
		EventKind:  LoanExpiredEventKind,
		LoanID:     loan.ID.String(),
		UserID:     loan.UserID.String(),
		BookID:     loan.BookID.String(),
		EndedAt:    ToTimestamp(endedAt),
		OccurredAt: ToTimestamp(occurredAt),
	}
}

// Kind returns the event kind identifier.
func (e LoanExpired) Kind() string {
	return LoanExpiredEventKind
}

// HasOccurredAt returns when this event occurred.
func (e LoanExpired) HasOccurredAt() time.Time {
	return e.OccurredAt
}
