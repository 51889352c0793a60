package lifecycle

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shelfwise/lending-lifecycle-go/lending"
)

// LeaseManager bundles the lease operations scoped to one loan. It is a
// cheap value; the engine constructs one per store view so the same
// operations work both inside and outside a transaction.
type LeaseManager struct {
	leases lending.LeaseStore
	clock  lending.Clock
}

// NewLeaseManager creates a LeaseManager over the given lease store.
func NewLeaseManager(leases lending.LeaseStore, clock lending.Clock) LeaseManager {
	return LeaseManager{
		leases: leases,
		clock:  clock,
	}
}

// Create appends a new ongoing lease to the loan, started now. There is no
// constraint on count; every borrow or extension adds one more lease to the
// loan's history.
func (m LeaseManager) Create(ctx context.Context, loanID uuid.UUID, durationDays int) (lending.Lease, error) {
	if durationDays <= 0 {
		return lending.Lease{}, lending.ErrInvalidLeaseDuration
	}

	return m.leases.Insert(ctx, lending.BuildLease(loanID, m.clock.Now(), durationDays))
}

// ActiveLeases returns all ongoing leases of the loan.
func (m LeaseManager) ActiveLeases(ctx context.Context, loanID uuid.UUID) ([]lending.Lease, error) {
	return m.leases.ActiveByLoan(ctx, loanID)
}

// TotalDuration returns the sum of durations (days) over the loan's active
// leases: the initial value of the loan's expiry counting down. 0 if none.
func (m LeaseManager) TotalDuration(ctx context.Context, loanID uuid.UUID) (int, error) {
	return m.leases.SumActiveDuration(ctx, loanID)
}

// StartedAt returns the loan's start: the earliest start among its active
// leases. Returns lending.ErrNoActiveLeases when there are none.
func (m LeaseManager) StartedAt(ctx context.Context, loanID uuid.UUID) (time.Time, error) {
	return m.leases.EarliestActiveStart(ctx, loanID)
}

// Expire revokes leases on the loan and returns how many were updated.
// With onlyElapsed set (the sweep path) only timed-out leases are touched;
// the unconditional path is reserved and has no production caller yet.
func (m LeaseManager) Expire(ctx context.Context, loanID uuid.UUID, onlyElapsed bool) (int64, error) {
	return m.leases.ExpireActive(ctx, loanID, m.clock.Now(), onlyElapsed)
}

// Cancel revokes all active leases on the loan and returns how many were
// updated. A loan with zero active leases yields 0, not an error.
func (m LeaseManager) Cancel(ctx context.Context, loanID uuid.UUID) (int64, error) {
	return m.leases.CancelActive(ctx, loanID)
}
