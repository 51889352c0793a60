package lending_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/shelfwise/lending-lifecycle-go/lending"
)

func Test_BuildLoan_StartsOngoing(t *testing.T) {
	// arrange
	userID := uuid.New()
	bookID := uuid.New()

	// act
	loan := lending.BuildLoan(userID, bookID)

	// assert
	assert.NotEqual(t, uuid.Nil, loan.ID)
	assert.Equal(t, userID, loan.UserID)
	assert.Equal(t, bookID, loan.BookID)
	assert.True(t, loan.IsOngoing())
	assert.False(t, loan.IsTerminal())
	assert.Nil(t, loan.Ended)
	assert.Nil(t, loan.Archived)
}

func Test_Status_IsTerminal(t *testing.T) {
	assert.False(t, lending.StatusOngoing.IsTerminal())
	assert.True(t, lending.StatusExpired.IsTerminal())
	assert.True(t, lending.StatusCancelled.IsTerminal())
}

func Test_Config_Normalize_FillsDefaults(t *testing.T) {
	// act
	normalized := lending.Config{}.Normalize()

	// assert
	assert.Equal(t, lending.DefaultConfig(), normalized)
}

func Test_Config_Normalize_KeepsExplicitValues(t *testing.T) {
	// arrange
	cfg := lending.Config{LeaseDurationDays: 14, SweepInterval: lending.DefaultSweepInterval * 5}

	// act
	normalized := cfg.Normalize()

	// assert
	assert.Equal(t, cfg, normalized)
}
