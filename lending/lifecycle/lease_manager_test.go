package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfwise/lending-lifecycle-go/lending"
	"github.com/shelfwise/lending-lifecycle-go/lending/lifecycle"
	"github.com/shelfwise/lending-lifecycle-go/lending/memorystore"
	"github.com/shelfwise/lending-lifecycle-go/testutil"
)

func Test_LeaseManager_Create_NonPositiveDuration_IsRejected(t *testing.T) {
	// arrange
	ctx := context.Background()
	manager, _, _ := givenLeaseManager(t)

	// act
	_, err := manager.Create(ctx, uuid.New(), 0)

	// assert
	assert.ErrorIs(t, err, lending.ErrInvalidLeaseDuration)
}

func Test_LeaseManager_Create_StampsTheClockTime(t *testing.T) {
	// arrange
	ctx := context.Background()
	manager, _, clock := givenLeaseManager(t)
	loanID := uuid.New()

	// act
	lease, err := manager.Create(ctx, loanID, 3)

	// assert
	require.NoError(t, err)
	assert.Equal(t, lending.ToTimestamp(clock.Now()), lease.Started)
	assert.Equal(t, 3, lease.DurationDays)
	assert.True(t, lease.IsOngoing())
}

func Test_LeaseManager_StartedAt_ReturnsTheEarliestActiveStart(t *testing.T) {
	// arrange
	ctx := context.Background()
	manager, _, clock := givenLeaseManager(t)
	loanID := uuid.New()

	earliest := lending.ToTimestamp(clock.Now())
	_, err := manager.Create(ctx, loanID, 3)
	require.NoError(t, err)

	clock.Advance(48 * time.Hour)
	_, err = manager.Create(ctx, loanID, 3)
	require.NoError(t, err)

	// act
	startedAt, err := manager.StartedAt(ctx, loanID)

	// assert
	require.NoError(t, err)
	assert.Equal(t, earliest, startedAt)
}

func Test_LeaseManager_StartedAt_WithoutActiveLeases_IsRejected(t *testing.T) {
	// arrange
	ctx := context.Background()
	manager, _, _ := givenLeaseManager(t)

	// act
	_, err := manager.StartedAt(ctx, uuid.New())

	// assert
	assert.ErrorIs(t, err, lending.ErrNoActiveLeases)
}

func Test_LeaseManager_Expire_OnlyElapsed_SkipsLiveLeases(t *testing.T) {
	// arrange
	ctx := context.Background()
	manager, _, clock := givenLeaseManager(t)
	loanID := uuid.New()

	_, err := manager.Create(ctx, loanID, 1)
	require.NoError(t, err)
	_, err = manager.Create(ctx, loanID, 5)
	require.NoError(t, err)

	clock.Advance(24*time.Hour + time.Second)

	// act
	expired, err := manager.Expire(ctx, loanID, true)

	// assert
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	remaining, err := manager.ActiveLeases(ctx, loanID)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
	assert.Equal(t, 5, remaining[0].DurationDays)
}

func Test_LeaseManager_Expire_Unconditional_RevokesLiveLeases(t *testing.T) {
	// arrange
	ctx := context.Background()
	manager, _, _ := givenLeaseManager(t)
	loanID := uuid.New()

	_, err := manager.Create(ctx, loanID, 30)
	require.NoError(t, err)

	// act
	expired, err := manager.Expire(ctx, loanID, false)

	// assert
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)
	assertNoActiveLeases(t, manager, loanID)
}

func Test_LeaseManager_Cancel_RevokesAllActiveLeases(t *testing.T) {
	// arrange
	ctx := context.Background()
	manager, _, _ := givenLeaseManager(t)
	loanID := uuid.New()

	_, err := manager.Create(ctx, loanID, 3)
	require.NoError(t, err)
	_, err = manager.Create(ctx, loanID, 4)
	require.NoError(t, err)

	// act
	cancelled, err := manager.Cancel(ctx, loanID)

	// assert
	require.NoError(t, err)
	assert.Equal(t, int64(2), cancelled)
	assertNoActiveLeases(t, manager, loanID)
}

func Test_LeaseManager_TotalDuration_SumsActiveLeases(t *testing.T) {
	// arrange
	ctx := context.Background()
	manager, _, _ := givenLeaseManager(t)
	loanID := uuid.New()

	_, err := manager.Create(ctx, loanID, 3)
	require.NoError(t, err)
	_, err = manager.Create(ctx, loanID, 7)
	require.NoError(t, err)

	// act
	total, err := manager.TotalDuration(ctx, loanID)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 10, total)
}

/*** Test Helpers ***/

func givenLeaseManager(t *testing.T) (lifecycle.LeaseManager, *memorystore.Store, *testutil.Clock) {
	t.Helper()

	store := memorystore.New()
	clock := testutil.NewClockAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	return lifecycle.NewLeaseManager(store.Leases(), clock), store, clock
}

func assertNoActiveLeases(t *testing.T, manager lifecycle.LeaseManager, loanID uuid.UUID) {
	t.Helper()

	remaining, err := manager.ActiveLeases(context.Background(), loanID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
