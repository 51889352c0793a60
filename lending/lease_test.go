package lending_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/shelfwise/lending-lifecycle-go/lending"
)

func Test_Lease_ElapsedAt_IsStrictAtTheBoundary(t *testing.T) {
	// arrange
	started := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	lease := lending.BuildLease(uuid.New(), started, 7)

	testCases := []struct {
		name    string
		at      time.Time
		elapsed bool
	}{
		{name: "well within the window", at: started.Add(3 * 24 * time.Hour), elapsed: false},
		{name: "exactly at duration is not elapsed", at: started.Add(7 * 24 * time.Hour), elapsed: false},
		{name: "one second past duration is elapsed", at: started.Add(7*24*time.Hour + time.Second), elapsed: true},
		{name: "long past duration", at: started.Add(30 * 24 * time.Hour), elapsed: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			elapsed := lease.ElapsedAt(tc.at)

			// assert
			assert.Equal(t, tc.elapsed, elapsed)
		})
	}
}

func Test_BuildLease_StartsOngoingWithNormalizedStart(t *testing.T) {
	// arrange
	loanID := uuid.New()
	started := time.Date(2024, 3, 1, 12, 0, 0, 123456789, time.FixedZone("CET", 3600))

	// act
	lease := lending.BuildLease(loanID, started, 3)

	// assert
	assert.Equal(t, loanID, lease.LoanID)
	assert.Equal(t, lending.StatusOngoing, lease.Status)
	assert.True(t, lease.IsOngoing())
	assert.Equal(t, time.UTC, lease.Started.Location())
	assert.Equal(t, lending.ToTimestamp(started), lease.Started)
	assert.Equal(t, 3*24*time.Hour, lease.Duration())
}
