package lifecycle

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/shelfwise/lending-lifecycle-go/lending"
)

const (
	logMsgLoanBorrowed       = "loan created or renewed"
	logMsgLoanExpired        = "loan expired"
	logMsgLoanCancelled      = "loan cancelled"
	logMsgPublishEventFailed = "publishing lifecycle event failed"
	logAttrError             = "error"
	logAttrLoanID            = "loan_id"
	logAttrUserID            = "user_id"
	logAttrBookID            = "book_id"
	logAttrEventKind         = "event_kind"
	logAttrDurationDays      = "duration_days"
	logAttrLeasesActive      = "leases_active"
	logAttrLeasesExpired     = "leases_expired"

	metricPublishFailures = "lending_publish_failures_total"
	metricLoansExpired    = "lending_loans_expired_total"
	metricLoansCancelled  = "lending_loans_cancelled_total"
)

var (
	// ErrNilStores is returned when the engine is built without stores.
	ErrNilStores = errors.New("stores must not be nil")

	// ErrNilBookStore is returned when the engine is built without a book store.
	ErrNilBookStore = errors.New("book store must not be nil")
)

// ExpiryCounts reports one expiry check on a loan: how many leases were
// active before the check ran, and how many of those were expired by it.
type ExpiryCounts struct {
	Active  int
	Expired int
}

// Engine drives the loan state machine. Borrow and Cancel serve request
// traffic; CheckExpiry is invoked per loan by the expiry scheduler. All
// three publish their lifecycle event fire-and-forget: a publisher failure
// is logged and never rolls back the transition that triggered it.
type Engine struct {
	stores       lending.Stores
	books        lending.BookStore
	publisher    lending.EventPublisher
	clock        lending.Clock
	config       lending.Config
	logger       lending.ContextualLogger
	metrics      lending.MetricsCollector
	retryOptions []RetryOption
}

// Option configures an Engine.
type Option func(*Engine) error

// WithClock sets the time source; defaults to the system clock.
func WithClock(clock lending.Clock) Option {
	return func(e *Engine) error {
		e.clock = clock
		return nil
	}
}

// WithConfig sets the lending configuration; it is normalized on apply.
func WithConfig(config lending.Config) Option {
	return func(e *Engine) error {
		e.config = config.Normalize()
		return nil
	}
}

// WithLogger sets the contextual logger for lifecycle operations.
func WithLogger(logger lending.ContextualLogger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for lifecycle operations.
func WithMetrics(collector lending.MetricsCollector) Option {
	return func(e *Engine) error {
		e.metrics = collector
		return nil
	}
}

// WithRetryOptions sets a custom retry configuration for the borrow path.
func WithRetryOptions(opts ...RetryOption) Option {
	return func(e *Engine) error {
		e.retryOptions = opts
		return nil
	}
}

// NewEngine creates a lifecycle Engine with optional configuration.
// The publisher may be nil; lifecycle transitions then run unannounced.
func NewEngine(
	stores lending.Stores,
	books lending.BookStore,
	publisher lending.EventPublisher,
	options ...Option,
) (*Engine, error) {

	if stores == nil {
		return nil, ErrNilStores
	}

	if books == nil {
		return nil, ErrNilBookStore
	}

	engine := &Engine{
		stores:    stores,
		books:     books,
		publisher: publisher,
		clock:     lending.SystemClock{},
		config:    lending.DefaultConfig(),
	}

	for _, option := range options {
		if err := option(engine); err != nil {
			return nil, err
		}
	}

	return engine, nil
}

// Borrow covers two use cases behind one operation: a first-time loan, or
// extending an existing loan's duration by adding a new lease to it.
//
// The book must exist and be published. A durationDays of 0 borrows for the
// configured default. The returned loan is the ongoing loan for the
// (user, book) pair, freshly created or reused.
//
// Loan resolution and the lease append run in one transaction, so a sweep
// expiring the loan concurrently cannot leave a fresh lease dangling on a
// terminal loan; it either sees the new lease or serializes before it.
func (e *Engine) Borrow(ctx context.Context, userID uuid.UUID, bookID uuid.UUID, durationDays int) (lending.Loan, error) {
	if durationDays == 0 {
		durationDays = e.config.LeaseDurationDays
	}

	if durationDays < 0 {
		return lending.Loan{}, lending.ErrInvalidLeaseDuration
	}

	book, findBookErr := e.books.FindByID(ctx, bookID)
	if findBookErr != nil {
		return lending.Loan{}, findBookErr
	}

	if !book.IsPublished() {
		return lending.Loan{}, lending.ErrBookNotFound
	}

	var loan lending.Loan

	// The store rejects a duplicate loan insert under race; the retry
	// reruns the transaction, which re-queries and adopts the winner.
	retryErr := retryOnLoanConflict(ctx, func(retryCtx context.Context) error {
		return e.stores.WithinTx(retryCtx, func(txCtx context.Context, loans lending.LoanStore, leases lending.LeaseStore) error {
			resolved, resolveErr := findOrCreateLoan(txCtx, loans, userID, bookID)
			if resolveErr != nil {
				return resolveErr
			}

			leaseManager := NewLeaseManager(leases, e.clock)
			if _, leaseErr := leaseManager.Create(txCtx, resolved.ID, durationDays); leaseErr != nil {
				return leaseErr
			}

			loan = resolved

			return nil
		})
	}, e.retryOptions...)

	if retryErr != nil {
		return lending.Loan{}, retryErr
	}

	e.publish(ctx, lending.BuildLoanCreatedOrRenewed(loan, durationDays, e.clock.Now()))
	e.logInfo(ctx, logMsgLoanBorrowed,
		logAttrLoanID, loan.ID.String(),
		logAttrUserID, userID.String(),
		logAttrBookID, bookID.String(),
		logAttrDurationDays, durationDays)

	return loan, nil
}

// findOrCreateLoan resolves the ongoing loan for the (user, book) pair on
// the given store view, inserting a fresh one when none exists.
func findOrCreateLoan(ctx context.Context, loans lending.LoanStore, userID uuid.UUID, bookID uuid.UUID) (lending.Loan, error) {
	existing, findErr := loans.FindOngoing(ctx, userID, bookID)

	switch {
	case findErr == nil:
		return existing, nil

	case errors.Is(findErr, lending.ErrLoanNotFound):
		fresh := lending.BuildLoan(userID, bookID)
		if insertErr := loans.Insert(ctx, fresh); insertErr != nil {
			return lending.Loan{}, insertErr
		}

		return fresh, nil

	default:
		return lending.Loan{}, findErr
	}
}

// CheckExpiry expires all timed-out leases on the loan and, when none
// survived, transitions the loan itself to expired. Partial expiry is legal
// and expected: one lease extension can outlive another, and the loan stays
// ongoing as long as any lease does.
//
// The returned counts are reported regardless of whether the loan
// transitioned; transitioned tells the caller whether it did.
func (e *Engine) CheckExpiry(ctx context.Context, loanID uuid.UUID) (counts ExpiryCounts, transitioned bool, err error) {
	now := e.clock.Now()

	var expiredLoan lending.Loan

	txErr := e.stores.WithinTx(ctx, func(txCtx context.Context, loans lending.LoanStore, leases lending.LeaseStore) error {
		loan, findErr := loans.FindByID(txCtx, loanID)
		if findErr != nil {
			return findErr
		}

		leaseManager := NewLeaseManager(leases, e.clock)

		active, activeErr := leaseManager.ActiveLeases(txCtx, loan.ID)
		if activeErr != nil {
			return activeErr
		}
		counts.Active = len(active)

		expired, expireErr := leaseManager.Expire(txCtx, loan.ID, true)
		if expireErr != nil {
			return expireErr
		}
		counts.Expired = int(expired)

		// The loan survives as long as any lease does. Terminal loans are
		// left untouched; the sweep only feeds ongoing ones here anyway.
		if counts.Expired != counts.Active || !loan.IsOngoing() {
			return nil
		}

		if markErr := loans.MarkExpired(txCtx, loan.ID, now); markErr != nil {
			return markErr
		}

		transitioned = true
		loan.Status = lending.StatusExpired
		loan.Ended = &now
		expiredLoan = loan

		return nil
	})

	if txErr != nil {
		return ExpiryCounts{}, false, txErr
	}

	if transitioned {
		e.publish(ctx, lending.BuildLoanExpired(expiredLoan, now, now))
		e.logInfo(ctx, logMsgLoanExpired,
			logAttrLoanID, loanID.String(),
			logAttrLeasesActive, counts.Active,
			logAttrLeasesExpired, counts.Expired)
		e.count(metricLoansExpired)
	}

	return counts, transitioned, nil
}

// Cancel revokes an ongoing loan alongside its active leases, atomically.
// Cancelling a loan that already reached a terminal state is rejected with
// lending.ErrLoanNotOngoing; terminal states are final.
func (e *Engine) Cancel(ctx context.Context, loanID uuid.UUID) (lending.Loan, error) {
	now := e.clock.Now()

	var cancelled lending.Loan

	txErr := e.stores.WithinTx(ctx, func(txCtx context.Context, loans lending.LoanStore, leases lending.LeaseStore) error {
		loan, findErr := loans.FindByID(txCtx, loanID)
		if findErr != nil {
			return findErr
		}

		if !loan.IsOngoing() {
			return lending.ErrLoanNotOngoing
		}

		leaseManager := NewLeaseManager(leases, e.clock)
		if _, cancelErr := leaseManager.Cancel(txCtx, loan.ID); cancelErr != nil {
			return cancelErr
		}

		if markErr := loans.MarkCancelled(txCtx, loan.ID, now); markErr != nil {
			return markErr
		}

		loan.Status = lending.StatusCancelled
		loan.Ended = &now
		cancelled = loan

		return nil
	})

	if txErr != nil {
		return lending.Loan{}, txErr
	}

	e.publish(ctx, lending.BuildLoanCancelled(cancelled, now, now))
	e.logInfo(ctx, logMsgLoanCancelled, logAttrLoanID, loanID.String())
	e.count(metricLoansCancelled)

	return cancelled, nil
}

// publish hands the event to the publisher fire-and-forget.
func (e *Engine) publish(ctx context.Context, event lending.DomainEvent) {
	if e.publisher == nil {
		return
	}

	if publishErr := e.publisher.Publish(ctx, event); publishErr != nil {
		if e.logger != nil {
			e.logger.ErrorContext(ctx, logMsgPublishEventFailed,
				logAttrError, publishErr.Error(),
				logAttrEventKind, event.Kind())
		}

		e.count(metricPublishFailures)
	}
}

func (e *Engine) logInfo(ctx context.Context, msg string, args ...any) {
	if e.logger != nil {
		e.logger.InfoContext(ctx, msg, args...)
	}
}

func (e *Engine) count(metric string) {
	if e.metrics != nil {
		e.metrics.IncrementCounter(metric, nil)
	}
}
