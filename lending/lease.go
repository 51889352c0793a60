package lending

import (
	"time"

	"github.com/google/uuid"
)

// Lease is a single duration grant on a loan: the original borrow or one
// extension. Started is immutable after creation; extending a loan never
// mutates a previously issued lease.
type Lease struct {
	ID           int64
	LoanID       uuid.UUID
	Started      time.Time
	DurationDays int
	Status       Status
}

// BuildLease creates a new ongoing Lease for the given loan.
// The caller is responsible for validating the duration.
func BuildLease(loanID uuid.UUID, startedAt time.Time, durationDays int) Lease {
	return Lease{
		LoanID:       loanID,
		Started:      ToTimestamp(startedAt),
		DurationDays: durationDays,
		Status:       StatusOngoing,
	}
}

// Duration returns the lease duration as a time.Duration.
func (l Lease) Duration() time.Duration {
	return time.Duration(l.DurationDays) * 24 * time.Hour
}

// ElapsedAt reports whether the lease has timed out at the given instant.
// The comparison is strict: a lease whose elapsed time equals its duration
// exactly has not elapsed yet.
func (l Lease) ElapsedAt(now time.Time) bool {
	return now.Sub(l.Started) > l.Duration()
}

// IsOngoing reports whether the lease is still active.
func (l Lease) IsOngoing() bool {
	return l.Status == StatusOngoing
}
