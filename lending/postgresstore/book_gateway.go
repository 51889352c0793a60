package postgresstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/shelfwise/lending-lifecycle-go/lending"
	"github.com/shelfwise/lending-lifecycle-go/lending/postgresstore/internal/adapters"
)

const (
	logActionSaveBook   = "save book"
	logActionSelectBook = "select book"
	logActionDeleteBook = "delete book"
)

// bookGateway implements lending.BookStore over one table.
type bookGateway struct {
	db     adapters.Querier
	table  string
	logger lending.Logger
}

func (g bookGateway) FindByID(ctx context.Context, id uuid.UUID) (lending.Book, error) {
	selectStmt := builder().
		From(g.table).
		Select(colID, colTitle, colAbstract, colISBN, colPageCount, colPubYear, colPublished).
		Where(goqu.C(colID).Eq(id.String()))

	query, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return lending.Book{}, toSQLErr
	}

	logSQL(g.logger, logActionSelectBook, query)

	rows, queryErr := g.db.Query(ctx, query)
	if queryErr != nil {
		return lending.Book{}, queryErr
	}

	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		return lending.Book{}, lending.ErrBookNotFound
	}

	return scanBook(rows)
}

// Save creates the book or updates it in place when it already exists.
func (g bookGateway) Save(ctx context.Context, book lending.Book) error {
	record := goqu.Record{
		colID:        book.ID.String(),
		colTitle:     book.Title,
		colAbstract:  book.Abstract,
		colISBN:      book.ISBN,
		colPageCount: book.PageCount,
		colPubYear:   book.PublicationYear,
		colPublished: nullableTimestamp(book.Published),
	}

	insertStmt := builder().
		Insert(g.table).
		Rows(record).
		OnConflict(goqu.DoUpdate(colID, record))

	query, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return toSQLErr
	}

	logSQL(g.logger, logActionSaveBook, query)

	_, execErr := g.db.Exec(ctx, query)

	return execErr
}

// Delete removes the book. The schema cascades the delete onto loans and
// their leases.
func (g bookGateway) Delete(ctx context.Context, id uuid.UUID) error {
	deleteStmt := builder().
		Delete(g.table).
		Where(goqu.C(colID).Eq(id.String()))

	query, _, toSQLErr := deleteStmt.ToSQL()
	if toSQLErr != nil {
		return toSQLErr
	}

	logSQL(g.logger, logActionDeleteBook, query)

	result, execErr := g.db.Exec(ctx, query)
	if execErr != nil {
		return execErr
	}

	affected, affectedErr := result.RowsAffected()
	if affectedErr != nil {
		return affectedErr
	}

	if affected == 0 {
		return lending.ErrBookNotFound
	}

	return nil
}

func scanBook(rows adapters.DBRows) (lending.Book, error) {
	var (
		book      lending.Book
		idRaw     string
		published sql.NullTime
	)

	scanErr := rows.Scan(&idRaw, &book.Title, &book.Abstract, &book.ISBN,
		&book.PageCount, &book.PublicationYear, &published)
	if scanErr != nil {
		return lending.Book{}, scanErr
	}

	id, idErr := uuid.Parse(idRaw)
	if idErr != nil {
		return lending.Book{}, idErr
	}

	book.ID = id

	if published.Valid {
		publishedAt := published.Time.UTC()
		book.Published = &publishedAt
	}

	return book, nil
}

// nullableTimestamp maps an optional time onto a SQL value, NULL when absent.
func nullableTimestamp(t *time.Time) any {
	if t == nil {
		return nil
	}

	return lending.ToTimestamp(*t)
}

var _ lending.BookStore = bookGateway{}
