package postgresstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/shelfwise/lending-lifecycle-go/lending"
	"github.com/shelfwise/lending-lifecycle-go/lending/postgresstore/internal/adapters"
)

const (
	defaultLoansTableName  = "loans"
	defaultLeasesTableName = "leases"
	defaultBooksTableName  = "books"

	dialectPostgres = "postgres"

	logMsgSQLExecuted    = "executed sql for: "
	logMsgBeginTxFailed  = "failed to begin transaction"
	logMsgRollbackFailed = "failed to roll back transaction"
	logAttrError         = "error"
	logAttrQuery         = "query"

	colID           = "id"
	colUserID       = "user_id"
	colBookID       = "book_id"
	colLoanID       = "loan_id"
	colStatus       = "status"
	colEnded        = "ended"
	colArchived     = "archived"
	colStarted      = "started"
	colDurationDays = "duration_days"
	colTitle        = "title"
	colAbstract     = "abstract"
	colISBN         = "isbn"
	colPageCount    = "page_count"
	colPubYear      = "publication_year"
	colPublished    = "published"
)

var (
	// ErrNilDatabaseConnection is returned when a factory receives a nil connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptyTableName is returned when a table name option is empty.
	ErrEmptyTableName = errors.New("table names must not be empty")
)

// TableNames holds the table names the store reads and writes.
type TableNames struct {
	Loans  string
	Leases string
	Books  string
}

// Stores gives access to the loan, lease and book gateways backed by one
// PostgreSQL database, and runs multi-gateway work in transactions.
type Stores struct {
	db     adapters.DBAdapter
	tables TableNames
	logger lending.Logger
}

// Option defines a functional option for configuring Stores.
type Option func(*Stores) error

// WithTableNames overrides the default table names.
func WithTableNames(tables TableNames) Option {
	return func(s *Stores) error {
		if tables.Loans == "" || tables.Leases == "" || tables.Books == "" {
			return ErrEmptyTableName
		}

		s.tables = tables

		return nil
	}
}

// WithLogger sets the logger. SQL statements are logged at debug level.
func WithLogger(logger lending.Logger) Option {
	return func(s *Stores) error {
		s.logger = logger
		return nil
	}
}

// NewStoresFromPGXPool creates Stores using a pgx Pool with optional configuration.
func NewStoresFromPGXPool(db *pgxpool.Pool, options ...Option) (*Stores, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newStores(adapters.NewPGXAdapter(db), options...)
}

// NewStoresFromSQLDB creates Stores using a sql.DB with optional configuration.
func NewStoresFromSQLDB(db *sql.DB, options ...Option) (*Stores, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newStores(adapters.NewSQLAdapter(db), options...)
}

// NewStoresFromSQLX creates Stores using a sqlx.DB with optional configuration.
func NewStoresFromSQLX(db *sqlx.DB, options ...Option) (*Stores, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newStores(adapters.NewSQLXAdapter(db), options...)
}

func newStores(db adapters.DBAdapter, options ...Option) (*Stores, error) {
	stores := &Stores{
		db: db,
		tables: TableNames{
			Loans:  defaultLoansTableName,
			Leases: defaultLeasesTableName,
			Books:  defaultBooksTableName,
		},
	}

	for _, option := range options {
		if err := option(stores); err != nil {
			return nil, err
		}
	}

	return stores, nil
}

// Loans returns the loan gateway bound to the connection.
func (s *Stores) Loans() lending.LoanStore {
	return loanGateway{db: s.db, table: s.tables.Loans, logger: s.logger}
}

// Leases returns the lease gateway bound to the connection.
func (s *Stores) Leases() lending.LeaseStore {
	return leaseGateway{db: s.db, table: s.tables.Leases, logger: s.logger}
}

// Books returns the book gateway bound to the connection.
func (s *Stores) Books() lending.BookStore {
	return bookGateway{db: s.db, table: s.tables.Books, logger: s.logger}
}

// WithinTx runs fn with loan and lease gateways bound to one transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (s *Stores) WithinTx(
	ctx context.Context,
	fn func(ctx context.Context, loans lending.LoanStore, leases lending.LeaseStore) error,
) error {

	tx, beginErr := s.db.Begin(ctx)
	if beginErr != nil {
		s.logError(logMsgBeginTxFailed, beginErr)
		return errors.Join(lending.ErrStoreUnavailable, beginErr)
	}

	loans := loanGateway{db: tx, table: s.tables.Loans, logger: s.logger}
	leases := leaseGateway{db: tx, table: s.tables.Leases, logger: s.logger}

	if fnErr := fn(ctx, loans, leases); fnErr != nil {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			s.logError(logMsgRollbackFailed, rollbackErr)
		}

		return fnErr
	}

	return tx.Commit(ctx)
}

func (s *Stores) logError(msg string, err error) {
	if s.logger != nil {
		s.logger.Error(msg, logAttrError, err.Error())
	}
}

var _ lending.Stores = (*Stores)(nil)

// builder returns the goqu dialect the gateways build their SQL with.
func builder() goqu.DialectWrapper {
	return goqu.Dialect(dialectPostgres)
}

func logSQL(logger lending.Logger, action string, query string) {
	if logger != nil {
		logger.Debug(logMsgSQLExecuted+action, logAttrQuery, query)
	}
}
