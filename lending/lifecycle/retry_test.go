package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfwise/lending-lifecycle-go/lending"
)

func Test_RetryOnLoanConflict_SucceedsAfterConflicts(t *testing.T) {
	// arrange
	attempts := 0

	// act
	err := retryOnLoanConflict(context.Background(), func(_ context.Context) error {
		attempts++
		if attempts < 3 {
			return lending.ErrDuplicateActiveLoan
		}

		return nil
	}, WithBaseDelay(time.Millisecond))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func Test_RetryOnLoanConflict_OtherErrors_FailFast(t *testing.T) {
	// arrange
	attempts := 0
	storeErr := errors.New("connection refused")

	// act
	err := retryOnLoanConflict(context.Background(), func(_ context.Context) error {
		attempts++
		return storeErr
	})

	// assert
	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, 1, attempts)
}

func Test_RetryOnLoanConflict_ExhaustsAttempts(t *testing.T) {
	// arrange
	attempts := 0

	// act
	err := retryOnLoanConflict(context.Background(), func(_ context.Context) error {
		attempts++
		return lending.ErrDuplicateActiveLoan
	}, WithMaxAttempts(2), WithBaseDelay(time.Millisecond))

	// assert
	assert.ErrorIs(t, err, lending.ErrDuplicateActiveLoan)
	assert.Equal(t, 2, attempts)
}

func Test_RetryOnLoanConflict_CancelledContext_StopsWaiting(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// act
	err := retryOnLoanConflict(ctx, func(_ context.Context) error {
		return lending.ErrDuplicateActiveLoan
	}, WithBaseDelay(time.Second))

	// assert
	assert.ErrorIs(t, err, context.Canceled)
}

func Test_RetryOptions_Validation(t *testing.T) {
	config := &retryConfig{}

	assert.ErrorIs(t, WithMaxAttempts(0)(config), ErrInvalidMaxAttempts)
	assert.ErrorIs(t, WithBaseDelay(-time.Second)(config), ErrNegativeBaseDelay)
	assert.ErrorIs(t, WithJitterFactor(1.5)(config), ErrInvalidJitterFactor)
}
