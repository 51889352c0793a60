package lending

import (
	"time"
)

// Status is the lifecycle status shared by loans and leases.
type Status string

const (
	// StatusOngoing marks an active loan or lease.
	StatusOngoing Status = "ongoing"

	// StatusExpired marks a loan or lease revoked after timing out.
	StatusExpired Status = "expired"

	// StatusCancelled marks a loan or lease revoked prior to termination.
	StatusCancelled Status = "cancelled"
)

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusExpired || s == StatusCancelled
}

// ToTimestamp normalizes a time to UTC with microsecond precision,
// matching what a Postgres timestamptz column round-trips.
func ToTimestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// Clock supplies the current time to the lifecycle engine and the lease
// manager so that elapse detection stays testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by the wall clock.
type SystemClock struct{}

// Now returns the current wall-clock time, normalized via ToTimestamp.
func (SystemClock) Now() time.Time {
	return ToTimestamp(time.Now())
}
