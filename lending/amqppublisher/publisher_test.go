package amqppublisher

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfwise/lending-lifecycle-go/lending"
)

func Test_BuildPublishing_CarriesKindAndPayload(t *testing.T) {
	// arrange
	loan := lending.BuildLoan(uuid.New(), uuid.New())
	occurredAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	event := lending.BuildLoanCreatedOrRenewed(loan, 7, occurredAt)

	// act
	publishing, err := buildPublishing(event)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "application/json", publishing.ContentType)
	assert.Equal(t, lending.LoanCreatedOrRenewedEventKind, publishing.Type)

	var decoded lending.LoanCreatedOrRenewed
	require.NoError(t, json.Unmarshal(publishing.Body, &decoded))
	assert.Equal(t, loan.ID.String(), decoded.LoanID)
	assert.Equal(t, 7, decoded.DurationDays)
	assert.True(t, occurredAt.Equal(decoded.OccurredAt))
}

func Test_NewPublisher_EmptyURL_IsRejected(t *testing.T) {
	_, err := NewPublisher("")

	assert.ErrorIs(t, err, ErrEmptyBrokerURL)
}

func Test_WithExchangeName_Empty_IsRejected(t *testing.T) {
	publisher := &Publisher{}

	err := WithExchangeName("")(publisher)

	assert.ErrorIs(t, err, ErrEmptyExchangeName)
}
