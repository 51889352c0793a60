package postgresstore_test

import (
	"database/sql"
	"testing"

	_ "github.com/lib/pq" // postgres driver
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfwise/lending-lifecycle-go/lending/postgresstore"
	"github.com/shelfwise/lending-lifecycle-go/testutil/config"
)

func Test_Factories_NilConnection_IsRejected(t *testing.T) {
	_, err := postgresstore.NewStoresFromPGXPool(nil)
	assert.ErrorIs(t, err, postgresstore.ErrNilDatabaseConnection)

	_, err = postgresstore.NewStoresFromSQLDB(nil)
	assert.ErrorIs(t, err, postgresstore.ErrNilDatabaseConnection)

	_, err = postgresstore.NewStoresFromSQLX(nil)
	assert.ErrorIs(t, err, postgresstore.ErrNilDatabaseConnection)
}

func Test_WithTableNames_EmptyName_IsRejected(t *testing.T) {
	// sql.Open does not dial; no running database is needed here.
	db, openErr := sql.Open("postgres", config.PostgresDSN())
	require.NoError(t, openErr)

	defer func() { _ = db.Close() }()

	_, err := postgresstore.NewStoresFromSQLDB(db, postgresstore.WithTableNames(postgresstore.TableNames{
		Loans:  "loans",
		Leases: "",
		Books:  "books",
	}))

	require.ErrorIs(t, err, postgresstore.ErrEmptyTableName)
}
