package adapters

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func Test_IsUniqueViolation_PGXError(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "loans_one_ongoing_per_user_book"}

	assert.True(t, IsUniqueViolation(err))
	assert.True(t, IsUniqueViolation(fmt.Errorf("inserting loan: %w", err)))
}

func Test_IsUniqueViolation_PQError(t *testing.T) {
	err := &pq.Error{Code: "23505"}

	assert.True(t, IsUniqueViolation(err))
}

func Test_IsUniqueViolation_OtherSQLState_IsFalse(t *testing.T) {
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
}

func Test_IsUniqueViolation_PlainError_IsFalse(t *testing.T) {
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
	assert.False(t, IsUniqueViolation(nil))
}
