package postgresstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"

	"github.com/shelfwise/lending-lifecycle-go/lending"
	"github.com/shelfwise/lending-lifecycle-go/lending/postgresstore/internal/adapters"
)

const (
	logActionInsertLoan     = "insert loan"
	logActionSelectLoans    = "select loans"
	logActionTransitionLoan = "transition loan"
)

// loanGateway implements lending.LoanStore over one table. It is bound to
// either the connection or an open transaction, depending on who built it.
type loanGateway struct {
	db     adapters.Querier
	table  string
	logger lending.Logger
}

func (g loanGateway) Insert(ctx context.Context, loan lending.Loan) error {
	insertStmt := builder().
		Insert(g.table).
		Rows(goqu.Record{
			colID:     loan.ID.String(),
			colUserID: loan.UserID.String(),
			colBookID: loan.BookID.String(),
			colStatus: string(loan.Status),
		})

	query, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return toSQLErr
	}

	logSQL(g.logger, logActionInsertLoan, query)

	if _, execErr := g.db.Exec(ctx, query); execErr != nil {
		if adapters.IsUniqueViolation(execErr) {
			return errors.Join(lending.ErrDuplicateActiveLoan, execErr)
		}

		return execErr
	}

	return nil
}

func (g loanGateway) FindByID(ctx context.Context, id uuid.UUID) (lending.Loan, error) {
	loans, queryErr := g.queryLoans(ctx, goqu.C(colID).Eq(id.String()))
	if queryErr != nil {
		return lending.Loan{}, queryErr
	}

	if len(loans) == 0 {
		return lending.Loan{}, lending.ErrLoanNotFound
	}

	return loans[0], nil
}

func (g loanGateway) FindOngoing(ctx context.Context, userID uuid.UUID, bookID uuid.UUID) (lending.Loan, error) {
	loans, queryErr := g.queryLoans(ctx,
		goqu.C(colUserID).Eq(userID.String()),
		goqu.C(colBookID).Eq(bookID.String()),
		goqu.C(colStatus).Eq(string(lending.StatusOngoing)),
	)
	if queryErr != nil {
		return lending.Loan{}, queryErr
	}

	if len(loans) == 0 {
		return lending.Loan{}, lending.ErrLoanNotFound
	}

	return loans[0], nil
}

func (g loanGateway) ListOngoing(ctx context.Context) ([]lending.Loan, error) {
	return g.queryLoans(ctx, goqu.C(colStatus).Eq(string(lending.StatusOngoing)))
}

func (g loanGateway) MarkExpired(ctx context.Context, id uuid.UUID, endedAt time.Time) error {
	return g.transition(ctx, id, lending.StatusExpired, endedAt)
}

func (g loanGateway) MarkCancelled(ctx context.Context, id uuid.UUID, endedAt time.Time) error {
	return g.transition(ctx, id, lending.StatusCancelled, endedAt)
}

// transition moves an ongoing loan into a terminal status. The status guard
// is part of the statement; zero affected rows then means either an unknown
// loan or one that already reached a terminal state.
func (g loanGateway) transition(ctx context.Context, id uuid.UUID, to lending.Status, endedAt time.Time) error {
	updateStmt := builder().
		Update(g.table).
		Set(goqu.Record{
			colStatus: string(to),
			colEnded:  lending.ToTimestamp(endedAt),
		}).
		Where(
			goqu.C(colID).Eq(id.String()),
			goqu.C(colStatus).Eq(string(lending.StatusOngoing)),
		)

	query, _, toSQLErr := updateStmt.ToSQL()
	if toSQLErr != nil {
		return toSQLErr
	}

	logSQL(g.logger, logActionTransitionLoan, query)

	result, execErr := g.db.Exec(ctx, query)
	if execErr != nil {
		return execErr
	}

	affected, affectedErr := result.RowsAffected()
	if affectedErr != nil {
		return affectedErr
	}

	if affected == 1 {
		return nil
	}

	if _, findErr := g.FindByID(ctx, id); findErr != nil {
		return findErr
	}

	return lending.ErrLoanNotOngoing
}

func (g loanGateway) queryLoans(ctx context.Context, where ...exp.Expression) ([]lending.Loan, error) {
	selectStmt := builder().
		From(g.table).
		Select(colID, colUserID, colBookID, colStatus, colEnded, colArchived).
		Where(where...).
		Order(goqu.C(colID).Asc())

	query, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return nil, toSQLErr
	}

	logSQL(g.logger, logActionSelectLoans, query)

	rows, queryErr := g.db.Query(ctx, query)
	if queryErr != nil {
		return nil, queryErr
	}

	defer func() { _ = rows.Close() }()

	var loans []lending.Loan

	for rows.Next() {
		loan, scanErr := scanLoan(rows)
		if scanErr != nil {
			return nil, scanErr
		}

		loans = append(loans, loan)
	}

	return loans, nil
}

func scanLoan(rows adapters.DBRows) (lending.Loan, error) {
	var (
		idRaw     string
		userRaw   string
		bookRaw   string
		statusRaw string
		ended     sql.NullTime
		archived  sql.NullTime
	)

	if scanErr := rows.Scan(&idRaw, &userRaw, &bookRaw, &statusRaw, &ended, &archived); scanErr != nil {
		return lending.Loan{}, scanErr
	}

	id, idErr := uuid.Parse(idRaw)
	if idErr != nil {
		return lending.Loan{}, idErr
	}

	userID, userErr := uuid.Parse(userRaw)
	if userErr != nil {
		return lending.Loan{}, userErr
	}

	bookID, bookErr := uuid.Parse(bookRaw)
	if bookErr != nil {
		return lending.Loan{}, bookErr
	}

	loan := lending.Loan{
		ID:     id,
		UserID: userID,
		BookID: bookID,
		Status: lending.Status(statusRaw),
	}

	if ended.Valid {
		endedAt := ended.Time.UTC()
		loan.Ended = &endedAt
	}

	if archived.Valid {
		archivedAt := archived.Time.UTC()
		loan.Archived = &archivedAt
	}

	return loan, nil
}

var _ lending.LoanStore = loanGateway{}
