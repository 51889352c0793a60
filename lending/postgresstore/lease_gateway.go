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
	logActionInsertLease   = "insert lease"
	logActionSelectLeases  = "select leases"
	logActionSumDuration   = "sum active lease duration"
	logActionEarliestStart = "earliest active lease start"
	logActionExpireLeases  = "expire leases"
	logActionCancelLeases  = "cancel leases"

	// Elapse test done in SQL so the sweep needs no per-lease roundtrips.
	elapsedCondition = "? + make_interval(days => ?) < ?"
)

// leaseGateway implements lending.LeaseStore over one table. It is bound to
// either the connection or an open transaction, depending on who built it.
type leaseGateway struct {
	db     adapters.Querier
	table  string
	logger lending.Logger
}

func (g leaseGateway) Insert(ctx context.Context, lease lending.Lease) (lending.Lease, error) {
	insertStmt := builder().
		Insert(g.table).
		Rows(goqu.Record{
			colLoanID:       lease.LoanID.String(),
			colStarted:      lease.Started,
			colDurationDays: lease.DurationDays,
			colStatus:       string(lease.Status),
		}).
		Returning(colID)

	query, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return lending.Lease{}, toSQLErr
	}

	logSQL(g.logger, logActionInsertLease, query)

	rows, queryErr := g.db.Query(ctx, query)
	if queryErr != nil {
		return lending.Lease{}, queryErr
	}

	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		return lending.Lease{}, sql.ErrNoRows
	}

	if scanErr := rows.Scan(&lease.ID); scanErr != nil {
		return lending.Lease{}, scanErr
	}

	return lease, nil
}

func (g leaseGateway) ActiveByLoan(ctx context.Context, loanID uuid.UUID) ([]lending.Lease, error) {
	selectStmt := builder().
		From(g.table).
		Select(colID, colLoanID, colStarted, colDurationDays, colStatus).
		Where(g.activeOfLoan(loanID)...).
		Order(goqu.C(colID).Asc())

	query, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return nil, toSQLErr
	}

	logSQL(g.logger, logActionSelectLeases, query)

	rows, queryErr := g.db.Query(ctx, query)
	if queryErr != nil {
		return nil, queryErr
	}

	defer func() { _ = rows.Close() }()

	var leases []lending.Lease

	for rows.Next() {
		lease, scanErr := scanLease(rows)
		if scanErr != nil {
			return nil, scanErr
		}

		leases = append(leases, lease)
	}

	return leases, nil
}

func (g leaseGateway) SumActiveDuration(ctx context.Context, loanID uuid.UUID) (int, error) {
	selectStmt := builder().
		From(g.table).
		Select(goqu.COALESCE(goqu.SUM(goqu.C(colDurationDays)), 0)).
		Where(g.activeOfLoan(loanID)...)

	query, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return 0, toSQLErr
	}

	logSQL(g.logger, logActionSumDuration, query)

	rows, queryErr := g.db.Query(ctx, query)
	if queryErr != nil {
		return 0, queryErr
	}

	defer func() { _ = rows.Close() }()

	var total int

	if rows.Next() {
		if scanErr := rows.Scan(&total); scanErr != nil {
			return 0, scanErr
		}
	}

	return total, nil
}

func (g leaseGateway) EarliestActiveStart(ctx context.Context, loanID uuid.UUID) (time.Time, error) {
	selectStmt := builder().
		From(g.table).
		Select(goqu.MIN(goqu.C(colStarted))).
		Where(g.activeOfLoan(loanID)...)

	query, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return time.Time{}, toSQLErr
	}

	logSQL(g.logger, logActionEarliestStart, query)

	rows, queryErr := g.db.Query(ctx, query)
	if queryErr != nil {
		return time.Time{}, queryErr
	}

	defer func() { _ = rows.Close() }()

	var earliest sql.NullTime

	if rows.Next() {
		if scanErr := rows.Scan(&earliest); scanErr != nil {
			return time.Time{}, scanErr
		}
	}

	if !earliest.Valid {
		return time.Time{}, lending.ErrNoActiveLeases
	}

	return earliest.Time.UTC(), nil
}

func (g leaseGateway) ExpireActive(ctx context.Context, loanID uuid.UUID, now time.Time, onlyElapsed bool) (int64, error) {
	updateStmt := builder().
		Update(g.table).
		Set(goqu.Record{colStatus: string(lending.StatusExpired)}).
		Where(g.activeOfLoan(loanID)...)

	if onlyElapsed {
		updateStmt = updateStmt.Where(goqu.L(
			elapsedCondition,
			goqu.C(colStarted),
			goqu.C(colDurationDays),
			lending.ToTimestamp(now),
		))
	}

	return g.bulkUpdate(ctx, logActionExpireLeases, updateStmt)
}

func (g leaseGateway) CancelActive(ctx context.Context, loanID uuid.UUID) (int64, error) {
	updateStmt := builder().
		Update(g.table).
		Set(goqu.Record{colStatus: string(lending.StatusCancelled)}).
		Where(g.activeOfLoan(loanID)...)

	return g.bulkUpdate(ctx, logActionCancelLeases, updateStmt)
}

func (g leaseGateway) bulkUpdate(ctx context.Context, action string, updateStmt *goqu.UpdateDataset) (int64, error) {
	query, _, toSQLErr := updateStmt.ToSQL()
	if toSQLErr != nil {
		return 0, toSQLErr
	}

	logSQL(g.logger, action, query)

	result, execErr := g.db.Exec(ctx, query)
	if execErr != nil {
		return 0, execErr
	}

	return result.RowsAffected()
}

func (g leaseGateway) activeOfLoan(loanID uuid.UUID) []goqu.Expression {
	return []goqu.Expression{
		goqu.C(colLoanID).Eq(loanID.String()),
		goqu.C(colStatus).Eq(string(lending.StatusOngoing)),
	}
}

func scanLease(rows adapters.DBRows) (lending.Lease, error) {
	var (
		lease     lending.Lease
		loanRaw   string
		started   time.Time
		statusRaw string
	)

	if scanErr := rows.Scan(&lease.ID, &loanRaw, &started, &lease.DurationDays, &statusRaw); scanErr != nil {
		return lending.Lease{}, scanErr
	}

	loanID, loanErr := uuid.Parse(loanRaw)
	if loanErr != nil {
		return lending.Lease{}, loanErr
	}

	lease.LoanID = loanID
	lease.Started = started.UTC()
	lease.Status = lending.Status(statusRaw)

	return lease, nil
}

var _ lending.LeaseStore = leaseGateway{}
